// SPDX-License-Identifier: MIT

// Package expression turns per-gene expression values into per-reaction
// activities by folding each reaction's gene-product rule.
//
// Policies:
//
//	means   (default) AND → geometric mean, OR → arithmetic mean.
//	average           AND and OR → arithmetic mean.
//
// Under "means" a zero child disables the whole AND branch: one absent
// subunit disables the complex. Genes missing from the data take the fill
// value (default 1.0, the neutral fold change). Reactions without a rule take
// the neutral activity (default 1.0).
//
// Integrate also reports how many model genes the data covers, so the caller
// can flag expression files keyed by the wrong identifier namespace.
package expression
