// SPDX-License-Identifier: MIT

// Package matrix - Builder accumulates sparse contributions.
//
// Each Add(i, j, v) adds v to cell (i, j); repeated pairs are summed in the
// order they were added. Build sorts the touched cells by (row, col) and
// freezes them into CSR. Given the same sequence of Add calls, Build always
// produces the same matrix bit for bit.
package matrix

import (
	"fmt"
	"sort"
)

// Builder collects (row, col, value) contributions for a Sparse matrix.
// A Builder is not safe for concurrent use.
type Builder struct {
	r, c  int
	opts  Options
	cells map[pairKey]float64
	order []pairKey // first-touch order; sorted once in Build
}

// NewBuilder returns a Builder for a rows×cols matrix.
func NewBuilder(rows, cols int, opts ...Option) (*Builder, error) {
	if rows < 0 || cols < 0 {
		return nil, ErrInvalidDimensions
	}

	return &Builder{
		r:     rows,
		c:     cols,
		opts:  gatherOptions(opts...),
		cells: make(map[pairKey]float64),
	}, nil
}

// Add accumulates v into (row, col).
func (b *Builder) Add(row, col int, v float64) error {
	if row < 0 || row >= b.r || col < 0 || col >= b.c {
		return fmt.Errorf("Builder.Add(%d,%d): %w", row, col, ErrOutOfRange)
	}
	if b.opts.validateNaNInf && isNonFinite(v) {
		return fmt.Errorf("Builder.Add(%d,%d): %w", row, col, ErrNaNInf)
	}
	key := pairKey{u: row, v: col}
	if _, ok := b.cells[key]; !ok {
		b.order = append(b.order, key)
	}
	b.cells[key] += v

	return nil
}

// Len returns the number of distinct cells touched so far.
func (b *Builder) Len() int { return len(b.order) }

// Build freezes the contributions into a Sparse matrix. Explicit zeros are
// dropped unless the builder was created WithKeepZeros. The Builder may keep
// receiving Adds afterwards; later Builds include them.
func (b *Builder) Build() *Sparse {
	keys := make([]pairKey, 0, len(b.order))
	for _, k := range b.order {
		if b.opts.dropZeros && b.cells[k] == 0 {
			continue
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].u != keys[j].u {
			return keys[i].u < keys[j].u
		}
		return keys[i].v < keys[j].v
	})

	s := &Sparse{
		r:              b.r,
		c:              b.c,
		rowPtr:         make([]int, b.r+1),
		colIdx:         make([]int, len(keys)),
		vals:           make([]float64, len(keys)),
		validateNaNInf: b.opts.validateNaNInf,
	}
	for k, key := range keys {
		s.rowPtr[key.u+1]++
		s.colIdx[k] = key.v
		s.vals[k] = b.cells[key]
	}
	for i := 0; i < b.r; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}

	return s
}
