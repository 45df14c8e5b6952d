// SPDX-License-Identifier: MIT

// Package workflow runs the full differential centrality pipeline:
//
//	expression → reaction activity → adjacency → PageRank
//
// once for a baseline and once for a comparison condition over the same
// model and configuration, then combines the two centrality vectors per
// species by ratio (comparison/baseline) or difference (comparison-baseline).
//
// The conditions share only the read-only model, so they run concurrently
// when Config.Parallel is set. Logging and metrics are injected through
// options and default to no-ops.
//
// A species with zero baseline centrality has no defined ratio. With
// ZeroPropagate the score is +Inf (or NaN for 0/0) and a warning is logged;
// with ZeroFail the run returns ErrZeroBaseline.
package workflow
