// SPDX-License-Identifier: MIT

package expression

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/gpr"
	"github.com/katalvlaran/gemcat/network"
)

// GeneExpression maps a gene identifier to a non-negative expression value.
type GeneExpression map[string]float64

// Activity maps a reaction identifier to a non-negative activity.
type Activity map[string]float64

const (
	// DefaultGeneFill is the value used for genes absent from the data.
	DefaultGeneFill = 1.0

	// DefaultNeutralActivity is the activity of reactions without a rule.
	DefaultNeutralActivity = 1.0
)

var (
	// ErrOptionViolation is returned by NewIntegrator when an option is out of range.
	ErrOptionViolation = gemerr.New(gemerr.ErrConfiguration, "expression: option violation")

	// ErrBadValue is returned by Integrate for a negative or non-finite expression value.
	ErrBadValue = gemerr.New(gemerr.ErrInvalidInput, "expression: value must be finite and non-negative")
)

// Integrator evaluates gene-product rules against expression data.
// It is immutable and safe for concurrent use.
type Integrator struct {
	policy  Policy
	fill    float64
	neutral float64
}

// Option configures an Integrator.
type Option func(*Integrator) error

// WithPolicy selects the AND/OR combination policy.
func WithPolicy(p Policy) Option {
	return func(ig *Integrator) error {
		canon, err := ParsePolicy(string(p))
		if err != nil {
			return err
		}
		ig.policy = canon

		return nil
	}
}

// WithGeneFill sets the value used for genes absent from the data.
// Must be finite and non-negative.
func WithGeneFill(v float64) Option {
	return func(ig *Integrator) error {
		if !finiteNonNegative(v) {
			return fmt.Errorf("gene fill %v: %w", v, ErrOptionViolation)
		}
		ig.fill = v

		return nil
	}
}

// WithNeutralActivity sets the activity of reactions without a rule.
// Must be finite and non-negative.
func WithNeutralActivity(v float64) Option {
	return func(ig *Integrator) error {
		if !finiteNonNegative(v) {
			return fmt.Errorf("neutral activity %v: %w", v, ErrOptionViolation)
		}
		ig.neutral = v

		return nil
	}
}

// NewIntegrator returns an Integrator with the "means" policy, gene fill 1 and
// neutral activity 1, overridden by opts. The first failing option aborts.
func NewIntegrator(opts ...Option) (*Integrator, error) {
	ig := &Integrator{policy: Means, fill: DefaultGeneFill, neutral: DefaultNeutralActivity}
	for _, opt := range opts {
		if err := opt(ig); err != nil {
			return nil, fmt.Errorf("NewIntegrator: %w", err)
		}
	}

	return ig, nil
}

// Policy returns the configured policy.
func (ig *Integrator) Policy() Policy { return ig.policy }

// GeneFill returns the configured fill value.
func (ig *Integrator) GeneFill() float64 { return ig.fill }

// Evaluate folds rule over data. A nil rule yields the neutral activity.
func (ig *Integrator) Evaluate(rule *gpr.Node, data GeneExpression) float64 {
	if rule == nil {
		return ig.neutral
	}
	leaf := func(gene string) float64 {
		if v, ok := data[gene]; ok {
			return v
		}

		return ig.fill
	}

	return rule.Fold(leaf, ig.combine)
}

func (ig *Integrator) combine(kind gpr.Kind, values []float64) float64 {
	if kind == gpr.KindAnd && ig.policy == Means {
		return geometricMean(values)
	}

	return arithmeticMean(values)
}

// Integrate evaluates every reaction of model and returns one activity per
// reaction together with the gene coverage of data.
//
// Returns ErrBadValue (wrapped with the gene) if data holds a negative or
// non-finite value. Coverage is returned even then, so a caller can still
// report it. Expression values are non-negative, so a negative leaf is
// rejected rather than folded; zero passes and collapses any AND above it.
func (ig *Integrator) Integrate(model *network.Model, data GeneExpression) (Activity, Coverage, error) {
	cov := coverage(model, data)
	for g, v := range data {
		if !finiteNonNegative(v) {
			return nil, cov, fmt.Errorf("Integrate: gene %q value %v: %w", g, v, ErrBadValue)
		}
	}

	act := make(Activity, model.NumReactions())
	model.Each(func(_ int, r *network.Reaction) {
		act[r.ID] = ig.Evaluate(r.Rule, data)
	})

	return act, cov, nil
}

// geometricMean is computed in log space; any non-positive child yields 0.
func geometricMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	logSum := 0.0
	for _, v := range values {
		if v <= 0 {
			return 0
		}
		logSum += math.Log(v)
	}

	return math.Exp(logSum / float64(len(values)))
}

func arithmeticMean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := 0.0
	for _, v := range values {
		s += v
	}

	return s / float64(len(values))
}

func finiteNonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
