// SPDX-License-Identifier: MIT

// Package gemcat ranks metabolites of a genome-scale metabolic model by the
// change in their network centrality between two gene expression
// conditions.
//
// The pipeline, one package per stage:
//
//	gpr/        - gene-protein-reaction rule parsing
//	network/    - species, reactions and stoichiometry of a model
//	expression/ - folding gene expression through GPR rules into reaction activity
//	adjacency/  - activity-weighted metabolite graphs (pure, half, full)
//	ranking/    - PageRank over a sparse weighted graph
//	components/ - weakly connected subnetworks
//	workflow/   - both conditions end to end, ratio or difference scoring
//	matrix/     - dense and CSR sparse matrices with vector helpers
//
// The gemcat command (cmd/gemcat) reads SBML or COBRA JSON models and
// csv/tsv expression tables, and can download well-known models into a
// local cache.
//
// Quick start:
//
//	wf, _ := workflow.New(workflow.DefaultConfig())
//	res, err := wf.Run(ctx, model, baseline, comparison)
//	for _, e := range res.Ranked() {
//		fmt.Println(e.ID, e.Score)
//	}
package gemcat
