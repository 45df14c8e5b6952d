// SPDX-License-Identifier: MIT

package components

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/matrix"
)

// Sentinel errors.
var (
	// ErrGraphNil is returned if a nil graph is passed.
	ErrGraphNil = gemerr.New(gemerr.ErrStructural, "components: graph is nil")

	// ErrShape is returned when the matrix is not square or disagrees with IDs.
	ErrShape = gemerr.New(gemerr.ErrStructural, "components: matrix shape does not match ids")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = gemerr.New(gemerr.ErrConfiguration, "components: invalid option supplied")
)

// Graph is a node list plus a square weight matrix in the same order.
type Graph interface {
	IDs() []string
	Matrix() *matrix.Sparse
}

// Option configures Weak via functional arguments. Invalid options are
// recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters for Weak.
type Options struct {
	// Ctx allows cancellation.
	Ctx context.Context

	// MinWeight ignores edges whose weight is not greater than it.
	MinWeight float64

	// OnVisit, if set, is called once per node with its component number.
	OnVisit func(id string, component int)

	err error
}

// DefaultOptions keeps every positive-weight edge.
func DefaultOptions() Options {
	return Options{Ctx: context.Background(), OnVisit: func(string, int) {}}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMinWeight ignores edges of weight ≤ w. Negative or NaN w is a violation.
func WithMinWeight(w float64) Option {
	return func(o *Options) {
		if !(w >= 0) || math.IsInf(w, 1) {
			o.err = fmt.Errorf("%w: MinWeight must be finite and non-negative (%v)", ErrOptionViolation, w)
			return
		}
		o.MinWeight = w
	}
}

// WithOnVisit registers a callback run for every node as it is reached.
func WithOnVisit(fn func(id string, component int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the weakly connected components.
type Result struct {
	// Components lists member IDs per component.
	Components [][]string

	// Of maps every node to its component number.
	Of map[string]int
}

// Largest returns the members of the biggest component (first on ties).
func (r *Result) Largest() []string {
	var best []string
	for _, c := range r.Components {
		if len(c) > len(best) {
			best = c
		}
	}

	return best
}
