// SPDX-License-Identifier: MIT

// Package matrix - vector helpers for iterative algorithms.
// All helpers accumulate left to right so results are reproducible.
package matrix

import "fmt"

// Sum returns the sum of x.
func Sum(x []float64) float64 {
	s := 0.0
	for _, v := range x {
		s += v
	}

	return s
}

// L1Distance returns Σ|a[i]-b[i]|. Returns ErrDimensionMismatch for unequal lengths.
func L1Distance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("L1Distance(%d,%d): %w", len(a), len(b), ErrDimensionMismatch)
	}
	d := 0.0
	for i := range a {
		diff := a[i] - b[i]
		if diff < 0 {
			diff = -diff
		}
		d += diff
	}

	return d, nil
}

// Normalize scales x in place so that it sums to 1.
// Returns ErrZeroSum when the sum is zero and ErrNaNInf when it is not finite.
func Normalize(x []float64) error {
	s := Sum(x)
	if isNonFinite(s) {
		return ErrNaNInf
	}
	if s == 0 {
		return ErrZeroSum
	}
	for i := range x {
		x[i] /= s
	}

	return nil
}

// AllClose reports whether a and b have equal length and every pair differs
// by at most eps (DefaultEpsilon unless overridden WithEpsilon).
func AllClose(a, b []float64, opts ...Option) bool {
	if len(a) != len(b) {
		return false
	}
	eps := gatherOptions(opts...).eps
	for i := range a {
		d := a[i] - b[i]
		if d < -eps || d > eps {
			return false
		}
	}

	return true
}
