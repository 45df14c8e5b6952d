// SPDX-License-Identifier: MIT

package ranking

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gemcat/matrix"
)

// PageRank runs the power iteration over g.
//
// Returns ErrGraphNil, ErrEmptyGraph, ErrShape or ErrNegativeWeight for bad
// input, ErrOptionViolation for bad options, the context error on
// cancellation, and ErrNotConverged in strict mode.
//
// Complexity: O(MaxIterations · (N + E)) time, O(N) extra memory.
func PageRank(g Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	ids := g.IDs()
	w := g.Matrix()
	n := len(ids)
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if w == nil || w.Rows() != n || w.Cols() != n {
		return nil, fmt.Errorf("PageRank: %d ids: %w", n, ErrShape)
	}

	out, err := outWeights(w)
	if err != nil {
		return nil, err
	}
	teleport, err := teleportVector(ids, o.Personalization)
	if err != nil {
		return nil, err
	}

	uniform := 1 / float64(n)
	v := make([]float64, n)
	for i := range v {
		v[i] = uniform
	}
	next := make([]float64, n)

	res := &Result{IDs: ids}
	d := o.Damping
	for res.Iterations < o.MaxIterations {
		if err = o.Ctx.Err(); err != nil {
			return nil, err
		}

		dangling := 0.0
		for i := range next {
			next[i] = 0
		}
		for i := 0; i < n; i++ {
			if out[i] == 0 {
				dangling += v[i]
				continue
			}
			share := v[i] / out[i]
			cols, vals := w.Row(i)
			for k, j := range cols {
				next[j] += share * vals[k]
			}
		}
		spread := d * dangling * uniform
		for j := range next {
			next[j] = d*next[j] + spread + (1-d)*teleport[j]
		}

		res.Iterations++
		res.Residual, _ = matrix.L1Distance(next, v)
		v, next = next, v
		if res.Residual < o.Tolerance {
			res.Converged = true
			break
		}
	}

	if err = matrix.Normalize(v); err != nil {
		return nil, fmt.Errorf("PageRank: %w", err)
	}
	if !res.Converged && o.Strict {
		return nil, fmt.Errorf("PageRank: residual %g after %d iterations: %w", res.Residual, res.Iterations, ErrNotConverged)
	}

	res.Vector = v
	res.Scores = make(map[string]float64, n)
	for i, id := range ids {
		res.Scores[id] = v[i]
	}

	return res, nil
}

// outWeights returns the row sums of w after checking every entry.
func outWeights(w *matrix.Sparse) ([]float64, error) {
	for i := 0; i < w.Rows(); i++ {
		_, vals := w.Row(i)
		for _, x := range vals {
			if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("PageRank: row %d weight %v: %w", i, x, ErrNegativeWeight)
			}
		}
	}

	return w.RowSums(), nil
}

// teleportVector returns the uniform distribution, or p normalised and laid
// out in ids order.
func teleportVector(ids []string, p map[string]float64) ([]float64, error) {
	t := make([]float64, len(ids))
	if p == nil {
		for i := range t {
			t[i] = 1 / float64(len(ids))
		}
		return t, nil
	}

	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	for id, x := range p {
		i, ok := pos[id]
		if !ok {
			return nil, fmt.Errorf("%w: personalization names unknown node %q", ErrOptionViolation, id)
		}
		t[i] = x
	}
	if err := matrix.Normalize(t); err != nil {
		return nil, fmt.Errorf("%w: personalization: %v", ErrOptionViolation, err)
	}

	return t, nil
}
