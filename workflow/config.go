// SPDX-License-Identifier: MIT

package workflow

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/gemcat/adjacency"
	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/ranking"
)

// Combine selects how two centrality vectors are compared.
type Combine string

const (
	// Ratio scores comparison/baseline.
	Ratio Combine = "ratio"

	// Difference scores comparison-baseline.
	Difference Combine = "difference"
)

// ZeroBaseline selects the handling of a zero baseline score in ratio mode.
type ZeroBaseline string

const (
	// ZeroPropagate keeps the IEEE result (+Inf or NaN) and logs a warning.
	ZeroPropagate ZeroBaseline = "propagate"

	// ZeroFail aborts with ErrZeroBaseline.
	ZeroFail ZeroBaseline = "fail"
)

// Sentinel errors.
var (
	// ErrInvalidConfig is returned by Validate for an unusable configuration.
	ErrInvalidConfig = gemerr.New(gemerr.ErrConfiguration, "workflow: invalid configuration")

	// ErrZeroBaseline is returned in ZeroFail mode when a baseline score is zero.
	ErrZeroBaseline = gemerr.New(gemerr.ErrInvalidInput, "workflow: zero baseline centrality")

	// ErrNoOverlap is returned when two centrality vectors share no species.
	ErrNoOverlap = gemerr.New(gemerr.ErrIdentifierMismatch, "workflow: centrality vectors share no species")

	// ErrNilModel is returned when Run or Score receives a nil model.
	ErrNilModel = gemerr.New(gemerr.ErrStructural, "workflow: nil model")
)

// ParseCombine maps a case-insensitive name onto a Combine mode.
func ParseCombine(name string) (Combine, error) {
	switch c := Combine(strings.ToLower(strings.TrimSpace(name))); c {
	case Ratio, Difference:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown combine mode %q", ErrInvalidConfig, name)
	}
}

// ParseZeroBaseline maps a case-insensitive name onto a ZeroBaseline policy.
func ParseZeroBaseline(name string) (ZeroBaseline, error) {
	switch z := ZeroBaseline(strings.ToLower(strings.TrimSpace(name))); z {
	case ZeroPropagate, ZeroFail:
		return z, nil
	default:
		return "", fmt.Errorf("%w: unknown zero-baseline policy %q", ErrInvalidConfig, name)
	}
}

// Config is the complete, shared configuration of both condition runs.
type Config struct {
	// Integration is the GPR combination policy.
	Integration expression.Policy

	// Adjacency is the edge weighting policy.
	Adjacency adjacency.Policy

	// GeneFill is the value of genes missing from the data.
	GeneFill float64

	// Reversible lets reversible reactions add backward edges.
	Reversible bool

	// Combine selects ratio or difference scoring.
	Combine Combine

	// ZeroBaseline selects zero-baseline handling in ratio mode.
	ZeroBaseline ZeroBaseline

	// Damping, Tolerance and MaxIterations parameterise PageRank.
	Damping       float64
	Tolerance     float64
	MaxIterations int

	// StrictConvergence turns non-convergence into an error.
	StrictConvergence bool

	// StrictIdentifiers turns disjoint gene identifiers into an error.
	StrictIdentifiers bool

	// Parallel runs baseline and comparison concurrently.
	Parallel bool
}

// DefaultConfig returns the recommended configuration: means integration,
// pure adjacency, gene fill 1, ratio scoring, lenient handling everywhere.
func DefaultConfig() Config {
	return Config{
		Integration:   expression.Means,
		Adjacency:     adjacency.Pure,
		GeneFill:      expression.DefaultGeneFill,
		Reversible:    true,
		Combine:       Ratio,
		ZeroBaseline:  ZeroPropagate,
		Damping:       ranking.DefaultDamping,
		Tolerance:     ranking.DefaultTolerance,
		MaxIterations: ranking.DefaultMaxIterations,
		Parallel:      true,
	}
}

// Validate reports the first invalid field. Policy errors keep their own
// sentinels (expression.ErrUnknownPolicy, adjacency.ErrUnknownPolicy);
// everything else is ErrInvalidConfig. All are configuration errors.
func (c Config) Validate() error {
	if _, err := expression.ParsePolicy(string(c.Integration)); err != nil {
		return err
	}
	if _, err := adjacency.ParsePolicy(string(c.Adjacency)); err != nil {
		return err
	}
	if _, err := ParseCombine(string(c.Combine)); err != nil {
		return err
	}
	if _, err := ParseZeroBaseline(string(c.ZeroBaseline)); err != nil {
		return err
	}
	switch {
	case !(c.GeneFill >= 0) || math.IsInf(c.GeneFill, 1):
		return fmt.Errorf("%w: gene fill %v", ErrInvalidConfig, c.GeneFill)
	case !(c.Damping >= 0 && c.Damping <= 1):
		return fmt.Errorf("%w: damping %v", ErrInvalidConfig, c.Damping)
	case !(c.Tolerance > 0):
		return fmt.Errorf("%w: tolerance %v", ErrInvalidConfig, c.Tolerance)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max iterations %d", ErrInvalidConfig, c.MaxIterations)
	}

	return nil
}
