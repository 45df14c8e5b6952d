// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/internal/config"
	"github.com/katalvlaran/gemcat/internal/logging"
	"github.com/katalvlaran/gemcat/internal/tabular"
	"github.com/katalvlaran/gemcat/workflow"
)

// runRank is the root command: load, score both conditions, write.
func runRank(cmd *cobra.Command, g *globalOptions, o *runOptions, modelRef, exprPath string, stdout io.Writer) (err error) {
	e, err := setup(cmd, g)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	o.apply(cmd, &e.cfg.Workflow)
	wcfg, err := e.cfg.WorkflowConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	model, err := e.loadModel(ctx, modelRef)
	if err != nil {
		return err
	}

	comparison, err := tabular.ReadExpressionFile(exprPath, o.exprColumn)
	if err != nil {
		return err
	}
	var baseline expression.GeneExpression
	if o.baseline != "" {
		if baseline, err = tabular.ReadExpressionFile(o.baseline, o.baselineColumn); err != nil {
			return err
		}
	} else {
		baseline = onesLike(comparison)
		e.log.Info("no baseline given, using all ones", logging.Int("genes", len(baseline)))
	}

	wf, err := workflow.New(wcfg, workflow.WithLogger(e.log), workflow.WithRecorder(e.recorder()))
	if err != nil {
		return err
	}
	res, err := wf.Run(ctx, model, baseline, comparison)
	if err != nil {
		return err
	}

	return writeResults(e.log, o.outfile, res.Ranked(), stdout)
}

// apply copies explicitly set flags over the loaded configuration.
func (o *runOptions) apply(cmd *cobra.Command, w *config.Workflow) {
	f := cmd.Flags()
	if f.Changed("gene-fill") {
		w.GeneFill = o.geneFill
	}
	if f.Changed("adjacency") {
		w.Adjacency = o.adjacency
	}
	if f.Changed("integration") {
		w.Integration = o.integration
	}
	if f.Changed("combine") {
		w.Combine = o.combine
	}
	if f.Changed("damping") {
		w.Damping = o.damping
	}
	if f.Changed("tolerance") {
		w.Tolerance = o.tolerance
	}
	if f.Changed("max-iterations") {
		w.MaxIterations = o.maxIterations
	}
	if f.Changed("strict-convergence") {
		w.StrictConvergence = o.strictConvergence
	}
	if f.Changed("strict-identifiers") {
		w.StrictIdentifiers = o.strictIdentifiers
	}
}

// onesLike is the implicit fold-change baseline.
func onesLike(data expression.GeneExpression) expression.GeneExpression {
	out := make(expression.GeneExpression, len(data))
	for gene := range data {
		out[gene] = 1
	}

	return out
}

// writeResults writes to stdout for an empty or "-" path, otherwise to a
// .csv or .tsv file.
func writeResults(log logging.Logger, path string, entries []workflow.Entry, stdout io.Writer) error {
	if path == "" || path == "-" {
		return tabular.WriteResults(stdout, entries, ',')
	}

	out, delim, changed := tabular.OutputPath(path)
	if changed {
		log.Warn("unsupported output extension, writing csv", logging.String("requested", path), logging.String("path", out))
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("outfile: %w", err)
	}
	if err = tabular.WriteResults(f, entries, delim); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("outfile: %w", err)
	}
	log.Info("results written", logging.String("path", out), logging.Int("metabolites", len(entries)))

	return nil
}
