// SPDX-License-Identifier: MIT

// Package matrix: shared types. The Matrix interface is the common surface of
// Dense and Sparse; algorithms that need speed type-switch to the concrete
// type and operate on the backing slices directly.
package matrix

// pairKey is an ordered (row, col) pair used by Builder to merge duplicate
// contributions. Using ints keeps the key compact and hash-friendly.
type pairKey struct {
	u int // row index
	v int // column index
}

// Matrix represents a two-dimensional array of float64 values.
//
// Complexity notes: Rows/Cols are O(1); At/Set are O(1) for Dense and
// O(log k) for Sparse (k = non-zeros in the row); Clone is O(storage).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange for invalid indices and ErrNaNInf for non-finite
	// values under the default numeric policy.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	Clone() Matrix
}
