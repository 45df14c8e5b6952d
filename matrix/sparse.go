// SPDX-License-Identifier: MIT

// Package matrix - compressed sparse row (CSR) storage.
//
// Layout:
//   - rowPtr has length r+1; the non-zeros of row i live in
//     colIdx[rowPtr[i]:rowPtr[i+1]] and vals[rowPtr[i]:rowPtr[i+1]].
//   - Column indices inside a row are strictly ascending.
//
// Complexity quicksheet:
//   - At: O(log k) via binary search in the row; Set on a stored entry: O(log k);
//     Set that inserts a new entry: O(nnz) (shifts the tail).
//   - Row iteration: O(k). RowSums: O(nnz).
package matrix

import (
	"fmt"
	"sort"
	"strings"
)

func sparseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Sparse.%s(%d,%d): %w", method, row, col, err)
}

// Sparse is a CSR matrix. Build one with a Builder or NewSparse.
type Sparse struct {
	r, c           int
	rowPtr         []int
	colIdx         []int
	vals           []float64
	validateNaNInf bool
}

var (
	_ Matrix       = (*Sparse)(nil)
	_ fmt.Stringer = (*Sparse)(nil)
)

// NewSparse returns an empty rows×cols sparse matrix. Zero dimensions are
// allowed here because an empty network yields an empty adjacency.
func NewSparse(rows, cols int, opts ...Option) (*Sparse, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Sparse{
		r:              rows,
		c:              cols,
		rowPtr:         make([]int, rows+1),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// Rows returns the number of rows.
func (s *Sparse) Rows() int { return s.r }

// Cols returns the number of columns.
func (s *Sparse) Cols() int { return s.c }

// NNZ returns the number of stored entries.
func (s *Sparse) NNZ() int { return len(s.vals) }

// find returns the storage offset of (row, col) and whether it is stored.
// When not stored, the offset is the insertion point.
func (s *Sparse) find(row, col int) (int, bool) {
	lo, hi := s.rowPtr[row], s.rowPtr[row+1]
	k := lo + sort.SearchInts(s.colIdx[lo:hi], col)

	return k, k < hi && s.colIdx[k] == col
}

// At retrieves the element at (row, col); unstored entries are zero.
func (s *Sparse) At(row, col int) (float64, error) {
	if row < 0 || row >= s.r || col < 0 || col >= s.c {
		return 0, sparseErrorf(ctxAt, row, col, ErrOutOfRange)
	}
	if k, ok := s.find(row, col); ok {
		return s.vals[k], nil
	}

	return 0, nil
}

// Set assigns v at (row, col), inserting a new entry when needed.
func (s *Sparse) Set(row, col int, v float64) error {
	if row < 0 || row >= s.r || col < 0 || col >= s.c {
		return sparseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if s.validateNaNInf && isNonFinite(v) {
		return sparseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	k, ok := s.find(row, col)
	if ok {
		s.vals[k] = v
		return nil
	}
	s.colIdx = append(s.colIdx, 0)
	s.vals = append(s.vals, 0)
	copy(s.colIdx[k+1:], s.colIdx[k:])
	copy(s.vals[k+1:], s.vals[k:])
	s.colIdx[k], s.vals[k] = col, v
	for i := row + 1; i <= s.r; i++ {
		s.rowPtr[i]++
	}

	return nil
}

// Row returns the column indices and values stored in row i. The slices alias
// internal storage and must not be modified. An invalid index yields nil slices.
func (s *Sparse) Row(i int) (cols []int, vals []float64) {
	if i < 0 || i >= s.r {
		return nil, nil
	}
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]

	return s.colIdx[lo:hi], s.vals[lo:hi]
}

// RowSums returns the sum of every row, accumulated in ascending column order.
func (s *Sparse) RowSums() []float64 {
	out := make([]float64, s.r)
	for i := 0; i < s.r; i++ {
		sum := 0.0
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			sum += s.vals[k]
		}
		out[i] = sum
	}

	return out
}

// Transpose returns the c×r transpose.
func (s *Sparse) Transpose() *Sparse {
	t := &Sparse{
		r:              s.c,
		c:              s.r,
		rowPtr:         make([]int, s.c+1),
		colIdx:         make([]int, len(s.colIdx)),
		vals:           make([]float64, len(s.vals)),
		validateNaNInf: s.validateNaNInf,
	}
	for _, j := range s.colIdx {
		t.rowPtr[j+1]++
	}
	for j := 0; j < s.c; j++ {
		t.rowPtr[j+1] += t.rowPtr[j]
	}
	next := make([]int, s.c)
	copy(next, t.rowPtr[:s.c])
	// Rows are visited in ascending order, so each transposed row receives
	// its columns already sorted.
	for i := 0; i < s.r; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			j := s.colIdx[k]
			t.colIdx[next[j]] = i
			t.vals[next[j]] = s.vals[k]
			next[j]++
		}
	}

	return t
}

// ToDense materializes the matrix. Returns ErrInvalidDimensions for 0×k shapes.
func (s *Sparse) ToDense() (*Dense, error) {
	d, err := NewDense(s.r, s.c)
	if err != nil {
		return nil, err
	}
	d.validateNaNInf = s.validateNaNInf
	for i := 0; i < s.r; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			d.data[i*s.c+s.colIdx[k]] = s.vals[k]
		}
	}

	return d, nil
}

// Clone returns a deep copy.
func (s *Sparse) Clone() Matrix {
	cp := &Sparse{
		r:              s.r,
		c:              s.c,
		rowPtr:         append([]int(nil), s.rowPtr...),
		colIdx:         append([]int(nil), s.colIdx...),
		vals:           append([]float64(nil), s.vals...),
		validateNaNInf: s.validateNaNInf,
	}

	return cp
}

// String renders stored entries as "(i,j)=v" lines.
func (s *Sparse) String() string {
	var sb strings.Builder
	for i := 0; i < s.r; i++ {
		for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
			fmt.Fprintf(&sb, "(%d,%d)=%g\n", i, s.colIdx[k], s.vals[k])
		}
	}

	return sb.String()
}
