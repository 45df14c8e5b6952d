// SPDX-License-Identifier: MIT

package main

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gemcat/adjacency"
	"github.com/katalvlaran/gemcat/components"
	"github.com/katalvlaran/gemcat/internal/logging"
)

// newSubnetworksCmd reports the weakly connected components of a model's
// unweighted metabolite graph. Rankings are computed over the whole graph,
// so small disconnected pieces are worth knowing about.
func newSubnetworksCmd(g *globalOptions, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "subnetworks MODEL",
		Short: "List the weakly connected metabolite subnetworks of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, g)
			if err != nil {
				return err
			}
			defer e.close()

			model, err := e.loadModel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			graph, err := adjacency.PureTransform(model, nil, adjacency.WithReversible(e.cfg.Workflow.Reversible))
			if err != nil {
				return err
			}
			res, err := components.Weak(graph, components.WithContext(cmd.Context()))
			if err != nil {
				return err
			}
			e.log.Info("subnetworks found",
				logging.Int("components", len(res.Components)),
				logging.Int("largest", len(res.Largest())),
			)

			w := csv.NewWriter(stdout)
			if err = w.Write([]string{"metabolite", "component", "size"}); err != nil {
				return err
			}
			for c, members := range res.Components {
				for _, id := range members {
					if err = w.Write([]string{id, strconv.Itoa(c), strconv.Itoa(len(members))}); err != nil {
						return err
					}
				}
			}
			w.Flush()

			return w.Error()
		},
	}
}
