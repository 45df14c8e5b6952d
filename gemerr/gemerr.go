// SPDX-License-Identifier: MIT

// Package gemerr holds the failure categories shared by every gemcat package.
//
// Each package defines its own sentinel errors ("network: unknown species",
// "ranking: did not converge", ...). Those sentinels additionally match exactly
// one category below, so callers can classify a failure without knowing which
// package produced it:
//
//	if errors.Is(err, gemerr.ErrConfiguration) { ... }
//
// Categories:
//
//	ErrStructural          - malformed network model (unknown species, empty reaction, bad GPR).
//	ErrConfiguration       - unknown policy name or invalid algorithm parameter.
//	ErrConvergence         - ranking did not converge while strict mode was requested.
//	ErrIdentifierMismatch  - expression data shares no gene with the model (strict mode only).
//	ErrInvalidInput        - numeric input outside its domain (negative or NaN expression, missing activity).
package gemerr

import (
	"errors"
	"fmt"
)

var (
	// ErrStructural marks an invalid network model. Unrecoverable.
	ErrStructural = errors.New("gemcat: structural error")

	// ErrConfiguration marks an unknown policy or an invalid parameter. Unrecoverable.
	ErrConfiguration = errors.New("gemcat: configuration error")

	// ErrConvergence marks a ranking that exhausted its iteration budget in strict mode.
	ErrConvergence = errors.New("gemcat: convergence error")

	// ErrIdentifierMismatch marks expression data whose gene identifiers do not
	// intersect the model's gene set. Returned only on request; otherwise it is a
	// logged diagnostic.
	ErrIdentifierMismatch = errors.New("gemcat: identifier mismatch")

	// ErrInvalidInput marks numeric input outside the accepted domain.
	ErrInvalidInput = errors.New("gemcat: invalid input")
)

// categorized is a package sentinel that also matches its category.
type categorized struct {
	msg      string
	category error
}

func (e *categorized) Error() string { return e.msg }

// Is reports whether target is the category of e.
func (e *categorized) Is(target error) bool { return target == e.category }

// New returns a sentinel with message msg that matches category under errors.Is.
// Two sentinels created with the same message are still distinct values.
func New(category error, msg string) error {
	return &categorized{msg: msg, category: category}
}

// Category returns the category sentinel matched by err, or nil when err
// belongs to none of them.
func Category(err error) error {
	for _, c := range []error{ErrStructural, ErrConfiguration, ErrConvergence, ErrIdentifierMismatch, ErrInvalidInput} {
		if errors.Is(err, c) {
			return c
		}
	}

	return nil
}

// Wrapf annotates err with a formatted prefix while keeping it matchable.
func Wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
