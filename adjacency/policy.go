// SPDX-License-Identifier: MIT

package adjacency

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/network"
)

// Policy names an edge weighting scheme.
type Policy string

const (
	// Pure weights every reactant→product edge by the reaction activity.
	Pure Policy = "pure"

	// Half additionally scales by the product coefficient.
	Half Policy = "half"

	// Full scales by both reactant and product coefficients.
	Full Policy = "full"
)

// Sentinel errors.
var (
	// ErrUnknownPolicy indicates an adjacency policy name that is not recognised.
	ErrUnknownPolicy = gemerr.New(gemerr.ErrConfiguration, "adjacency: unknown policy")

	// ErrNilModel indicates a nil model was passed to a Transform.
	ErrNilModel = gemerr.New(gemerr.ErrStructural, "adjacency: nil model")

	// ErrBadActivity indicates an activity map that misses a reaction or holds
	// a negative or non-finite value.
	ErrBadActivity = gemerr.New(gemerr.ErrInvalidInput, "adjacency: bad reaction activity")
)

// Transform builds an Adjacency from model and act. A nil act gives every
// reaction activity 1.
type Transform func(model *network.Model, act expression.Activity, opts ...Option) (*Adjacency, error)

// weightFunc maps activity and the two coefficients of an edge to its weight.
type weightFunc func(a, cr, cp float64) float64

var weights = map[Policy]weightFunc{
	Pure: func(a, _, _ float64) float64 { return a },
	Half: func(a, _, cp float64) float64 { return a * cp },
	Full: func(a, cr, cp float64) float64 { return a * cr * cp },
}

// Policies lists the accepted policy names.
func Policies() []Policy { return []Policy{Pure, Half, Full} }

// ParsePolicy maps a case-insensitive name onto a Policy.
func ParsePolicy(name string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := weights[p]; !ok {
		return "", fmt.Errorf("ParsePolicy(%q): %w", name, ErrUnknownPolicy)
	}

	return p, nil
}

// Lookup returns the Transform implementing p. Names are matched like
// ParsePolicy does, ignoring case and surrounding space.
func Lookup(p Policy) (Transform, error) {
	canon, err := ParsePolicy(string(p))
	if err != nil {
		return nil, fmt.Errorf("Lookup(%q): %w", p, ErrUnknownPolicy)
	}
	w := weights[canon]

	return func(model *network.Model, act expression.Activity, opts ...Option) (*Adjacency, error) {
		return build(model, act, w, opts...)
	}, nil
}

// PureTransform is Lookup(Pure).
func PureTransform(model *network.Model, act expression.Activity, opts ...Option) (*Adjacency, error) {
	return build(model, act, weights[Pure], opts...)
}

// HalfTransform is Lookup(Half).
func HalfTransform(model *network.Model, act expression.Activity, opts ...Option) (*Adjacency, error) {
	return build(model, act, weights[Half], opts...)
}

// FullTransform is Lookup(Full).
func FullTransform(model *network.Model, act expression.Activity, opts ...Option) (*Adjacency, error) {
	return build(model, act, weights[Full], opts...)
}
