// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for matrix construction.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: constructors panic only on nonsensical values
//     (programmer error), never on data.
package matrix

import "math"

// DefaultValidateNaNInf toggles strict finite-value validation on Set and Builder.Add.
const DefaultValidateNaNInf = true

// DefaultDropZeros removes explicit zero entries when a Builder is frozen.
const DefaultDropZeros = true

// DefaultEpsilon is the tolerance used by approximate comparisons (AllClose).
const DefaultEpsilon = 1e-9

const panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	validateNaNInf bool    // DefaultValidateNaNInf
	dropZeros      bool    // DefaultDropZeros
	eps            float64 // DefaultEpsilon
}

// WithValidateNaNInf enables strict finite-value validation (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation for the matrix being built.
// The flag propagates only on creation; existing matrices are unaffected.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithKeepZeros keeps explicit zero entries in a frozen Sparse matrix.
// Useful when the sparsity pattern itself carries meaning, e.g. a pair linked
// only by reactions whose activity is zero.
func WithKeepZeros() Option {
	return func(o *Options) { o.dropZeros = false }
}

// WithEpsilon sets the absolute tolerance used by AllClose.
// Panics when eps is NaN, Inf or negative.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

func defaultOptions() Options {
	return Options{
		validateNaNInf: DefaultValidateNaNInf,
		dropZeros:      DefaultDropZeros,
		eps:            DefaultEpsilon,
	}
}

// gatherOptions resolves user options over the documented defaults.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, opt := range user {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
