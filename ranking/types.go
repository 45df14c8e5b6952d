// SPDX-License-Identifier: MIT

// Package ranking computes PageRank centrality over a weighted directed graph
// given as a square CSR matrix.
//
// Each row is divided by its sum to obtain transition probabilities. Rows
// summing to zero (dangling species) jump uniformly to every species. With
// damping d the walk follows an edge with probability d and teleports with
// probability 1-d, uniformly or according to a personalization vector.
//
// Iteration starts from the uniform vector and stops when the L1 change
// between successive iterates drops below the tolerance or the iteration cap
// is reached. The returned scores always sum to 1.
//
// Non-convergence is deterministic: in strict mode PageRank fails with
// ErrNotConverged, otherwise it returns the last iterate with Converged=false.
package ranking

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/matrix"
)

// Sentinel errors for ranking.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = gemerr.New(gemerr.ErrStructural, "ranking: graph is nil")

	// ErrEmptyGraph is returned for a graph without nodes.
	ErrEmptyGraph = gemerr.New(gemerr.ErrStructural, "ranking: graph has no nodes")

	// ErrShape is returned when the matrix is not square or disagrees with IDs.
	ErrShape = gemerr.New(gemerr.ErrStructural, "ranking: matrix shape does not match ids")

	// ErrNegativeWeight is returned when the matrix holds a negative or non-finite entry.
	ErrNegativeWeight = gemerr.New(gemerr.ErrInvalidInput, "ranking: negative or non-finite edge weight")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = gemerr.New(gemerr.ErrConfiguration, "ranking: invalid option supplied")

	// ErrNotConverged is returned in strict mode when the iteration cap is hit.
	ErrNotConverged = gemerr.New(gemerr.ErrConvergence, "ranking: did not converge")
)

// Graph is the input of PageRank: node identifiers and the square weight
// matrix whose row and column order follows IDs.
type Graph interface {
	IDs() []string
	Matrix() *matrix.Sparse
}

const (
	// DefaultDamping is the probability of following an edge.
	DefaultDamping = 0.85

	// DefaultTolerance bounds the L1 change between iterates at convergence.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations caps the power iteration.
	DefaultMaxIterations = 100
)

// Option configures PageRank via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation when
// PageRank is invoked.
type Option func(*Options)

// Options holds the parameters of one PageRank run.
type Options struct {
	// Ctx allows cancellation between iterations.
	Ctx context.Context

	// Damping in [0,1].
	Damping float64

	// Tolerance > 0.
	Tolerance float64

	// MaxIterations > 0.
	MaxIterations int

	// Personalization replaces uniform teleportation when non-nil.
	Personalization map[string]float64

	// Strict turns non-convergence into ErrNotConverged.
	Strict bool

	err error
}

// DefaultOptions returns damping 0.85, tolerance 1e-6, 100 iterations,
// uniform teleportation and lenient convergence.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		Damping:       DefaultDamping,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithDamping sets the damping factor; d outside [0,1] is a violation.
func WithDamping(d float64) Option {
	return func(o *Options) {
		if !(d >= 0 && d <= 1) {
			o.err = fmt.Errorf("%w: damping must be in [0,1] (%v)", ErrOptionViolation, d)
			return
		}
		o.Damping = d
	}
}

// WithTolerance sets the convergence threshold; it must be positive and finite.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if !(tol > 0) || math.IsInf(tol, 1) {
			o.err = fmt.Errorf("%w: tolerance must be positive (%v)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}

// WithMaxIterations caps the number of iterations; n must be positive.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: max iterations must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxIterations = n
	}
}

// WithPersonalization teleports according to p instead of uniformly.
// Values must be finite and non-negative with at least one positive entry;
// identifiers absent from the graph are rejected by PageRank.
func WithPersonalization(p map[string]float64) Option {
	return func(o *Options) {
		positive := false
		for id, v := range p {
			if !(v >= 0) || math.IsInf(v, 1) {
				o.err = fmt.Errorf("%w: personalization[%q]=%v", ErrOptionViolation, id, v)
				return
			}
			if v > 0 {
				positive = true
			}
		}
		if !positive {
			o.err = fmt.Errorf("%w: personalization needs a positive entry", ErrOptionViolation)
			return
		}
		o.Personalization = p
	}
}

// WithStrict selects strict (true) or lenient (false) convergence handling.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.Strict = strict }
}

// Result holds the outcome of PageRank.
type Result struct {
	// IDs are the node identifiers in matrix order.
	IDs []string

	// Vector holds the scores in IDs order; it sums to 1.
	Vector []float64

	// Scores maps each identifier to its score.
	Scores map[string]float64

	// Iterations performed.
	Iterations int

	// Residual is the L1 change of the last iteration.
	Residual float64

	// Converged reports whether Residual fell below the tolerance.
	Converged bool
}
