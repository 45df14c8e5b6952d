// SPDX-License-Identifier: MIT

// Package matrix provides the numeric containers used by the gemcat pipeline.
//
// The package offers:
//
//   - Matrix, a small interface over two-dimensional float64 arrays with
//     bounds-checked accessors (At/Set return errors, never panic).
//   - Dense, a row-major matrix for small or dense data such as the
//     stoichiometric matrix of a model.
//   - Sparse, a compressed-sparse-row (CSR) matrix for metabolite adjacency.
//     Genome-scale networks have thousands of species but only a few
//     neighbours per species, so adjacency is always stored sparse.
//   - Builder, which accumulates (row, col, value) contributions, summing
//     duplicates, and freezes them into a Sparse matrix in a fixed order.
//   - Vector helpers (Sum, L1Distance, Normalize) used by the ranking loop.
//
// Determinism:
//
//	Every loop walks rows in ascending order and, within a row, columns in
//	ascending order. Builders never iterate Go maps when producing output, so
//	identical inputs produce bit-for-bit identical matrices and sums.
//
// Numeric policy:
//
//	By default Set and Builder.Add reject NaN and ±Inf (ErrNaNInf). The policy
//	can be relaxed per matrix with WithNoValidateNaNInf.
package matrix
