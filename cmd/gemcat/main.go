// SPDX-License-Identifier: MIT

// Command gemcat ranks metabolites by how much their network centrality
// changes between two gene expression conditions.
//
// Usage:
//
//	gemcat [flags] MODEL EXPRESSION
//	gemcat models list|fetch NAME|wipe
//	gemcat subnetworks MODEL
//
// MODEL is an SBML (.xml, .sbml) or COBRA JSON (.json) file, or the name
// of a well-known model that is downloaded and cached on first use.
//
// Examples:
//
//	# fold changes against an implicit all-ones baseline
//	gemcat recon3d fold_change.csv
//
//	# two conditions from one table, difference scoring, tsv output
//	gemcat -e treated -b expr.csv -c control --combine difference -o out.tsv model.xml expr.csv
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// globalOptions are shared by every command.
type globalOptions struct {
	configPath  string
	modelsDir   string
	logfile     string
	verbose     bool
	metricsFile string
}

// runOptions are the flags of the root command.
type runOptions struct {
	exprColumn     string
	baseline       string
	baselineColumn string
	outfile        string

	geneFill          float64
	adjacency         string
	integration       string
	combine           string
	damping           float64
	tolerance         float64
	maxIterations     int
	strictConvergence bool
	strictIdentifiers bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalOptions{}
	o := &runOptions{}

	root := &cobra.Command{
		Use:   "gemcat [flags] MODEL EXPRESSION",
		Short: "Differential metabolite centrality from gene expression",
		Long: `gemcat maps gene expression onto a genome-scale metabolic model through
its gene-reaction rules, builds an activity-weighted metabolite graph for a
baseline and a comparison condition, ranks both with PageRank and reports
the per-metabolite ratio (or difference) of the two rankings.

EXPRESSION and --baseline are .csv, .tsv or .txt tables whose first column
holds gene identifiers. Without --baseline every gene of the comparison is
given the value 1, which suits fold-change data.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRank(cmd, g, o, args[0], args[1], stdout)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "YAML config file")
	pf.StringVar(&g.modelsDir, "models-dir", "", "directory caching well-known models")
	pf.StringVarP(&g.logfile, "logfile", "l", "", "write logs to this file instead of stderr")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&g.metricsFile, "metrics-file", "", "write Prometheus metrics to this file at exit")

	f := root.Flags()
	f.StringVarP(&o.exprColumn, "expression-column", "e", "", "column of EXPRESSION to use")
	f.StringVarP(&o.baseline, "baseline", "b", "", "baseline expression table")
	f.StringVarP(&o.baselineColumn, "baseline-column", "c", "", "column of the baseline table to use")
	f.StringVarP(&o.outfile, "outfile", "o", "", "result file (.csv or .tsv); stdout when empty")
	f.Float64VarP(&o.geneFill, "gene-fill", "g", 1, "value of genes missing from the expression data")
	f.StringVar(&o.adjacency, "adjacency", "pure", "edge weighting: pure, half or full")
	f.StringVar(&o.integration, "integration", "means", "GPR combination: means or average")
	f.StringVar(&o.combine, "combine", "ratio", "scoring: ratio or difference")
	f.Float64Var(&o.damping, "damping", 0.85, "PageRank damping factor")
	f.Float64Var(&o.tolerance, "tolerance", 1e-6, "PageRank L1 convergence tolerance")
	f.IntVar(&o.maxIterations, "max-iterations", 100, "PageRank iteration limit")
	f.BoolVar(&o.strictConvergence, "strict-convergence", false, "fail when PageRank does not converge")
	f.BoolVar(&o.strictIdentifiers, "strict-identifiers", false, "fail when expression genes miss the model entirely")

	root.AddCommand(newModelsCmd(g, stdout), newSubnetworksCmd(g, stdout))

	return root
}
