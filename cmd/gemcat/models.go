// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gemcat/internal/logging"
)

func newModelsCmd(g *globalOptions, stdout io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "Manage the cache of well-known models",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List well-known models and their cache state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, g)
			if err != nil {
				return err
			}
			defer e.close()

			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tPATH")
			for _, name := range e.store.Names() {
				path, ok := e.store.Cached(name)
				if !ok {
					path = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\n", name, path)
			}

			return tw.Flush()
		},
	}

	fetch := &cobra.Command{
		Use:   "fetch NAME",
		Short: "Download a well-known model into the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g)
			if err != nil {
				return err
			}
			defer e.close()

			path, err := e.store.Path(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			e.log.Info("model cached", logging.String("model", args[0]), logging.String("path", path))
			fmt.Fprintln(stdout, path)

			return nil
		},
	}

	wipe := &cobra.Command{
		Use:   "wipe",
		Short: "Delete every cached model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := setup(cmd, g)
			if err != nil {
				return err
			}
			defer e.close()

			if err = e.store.Wipe(); err != nil {
				return err
			}
			e.log.Info("model cache wiped", logging.String("root", e.store.Root()))

			return nil
		},
	}

	cmd.AddCommand(list, fetch, wipe)

	return cmd
}
