// SPDX-License-Identifier: MIT

package expression_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/gpr"
	"github.com/katalvlaran/gemcat/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-12

// TestParsePolicy accepts known names case-insensitively and rejects others.
func TestParsePolicy(t *testing.T) {
	p, err := expression.ParsePolicy(" Means ")
	require.NoError(t, err)
	assert.Equal(t, expression.Means, p)

	_, err = expression.ParsePolicy("sum")
	require.ErrorIs(t, err, expression.ErrUnknownPolicy)
	require.ErrorIs(t, err, gemerr.ErrConfiguration)
}

// TestNewIntegrator_Options validates option ranges.
func TestNewIntegrator_Options(t *testing.T) {
	ig, err := expression.NewIntegrator()
	require.NoError(t, err)
	assert.Equal(t, expression.Means, ig.Policy())
	assert.Equal(t, 1.0, ig.GeneFill())

	_, err = expression.NewIntegrator(expression.WithGeneFill(-1))
	require.ErrorIs(t, err, expression.ErrOptionViolation)

	_, err = expression.NewIntegrator(expression.WithNeutralActivity(math.NaN()))
	require.ErrorIs(t, err, gemerr.ErrConfiguration)

	_, err = expression.NewIntegrator(expression.WithPolicy("max"))
	require.ErrorIs(t, err, expression.ErrUnknownPolicy)
}

// TestEvaluate_MixedDepth checks geometric AND and arithmetic OR on a depth-3 tree.
func TestEvaluate_MixedDepth(t *testing.T) {
	// (a and (b or c)) or d
	rule := gpr.MustParse("(a and (b or c)) or d")
	data := expression.GeneExpression{"a": 4, "b": 1, "c": 3, "d": 6}

	means, err := expression.NewIntegrator()
	require.NoError(t, err)
	inner := (1.0 + 3.0) / 2
	and := math.Sqrt(4 * inner)
	want := (and + 6) / 2
	assert.InDelta(t, want, means.Evaluate(rule, data), eps)

	avg, err := expression.NewIntegrator(expression.WithPolicy(expression.Average))
	require.NoError(t, err)
	want = ((4+inner)/2 + 6) / 2
	assert.InDelta(t, want, avg.Evaluate(rule, data), eps)
}

// TestEvaluate_GeometricMean compares a three-gene complex against the closed form.
func TestEvaluate_GeometricMean(t *testing.T) {
	ig, err := expression.NewIntegrator()
	require.NoError(t, err)

	got := ig.Evaluate(gpr.MustParse("x and y and z"), expression.GeneExpression{"x": 2, "y": 4, "z": 8})
	assert.InDelta(t, 4.0, got, eps)
}

// TestEvaluate_ZeroCollapsesAnd disables the complex when one subunit is zero.
func TestEvaluate_ZeroCollapsesAnd(t *testing.T) {
	ig, err := expression.NewIntegrator()
	require.NoError(t, err)

	data := expression.GeneExpression{"a": 0, "b": 5, "c": 2}
	assert.Zero(t, ig.Evaluate(gpr.MustParse("a and b"), data))
	assert.InDelta(t, 1.0, ig.Evaluate(gpr.MustParse("(a and b) or c"), data), eps)
}

// TestWithPolicy_CaseInsensitive keeps geometric AND for a capitalised name.
func TestWithPolicy_CaseInsensitive(t *testing.T) {
	ig, err := expression.NewIntegrator(expression.WithPolicy("Means"))
	require.NoError(t, err)
	data := expression.GeneExpression{"a": 0, "b": 4}
	assert.Zero(t, ig.Evaluate(gpr.MustParse("a and b"), data))

	ig, err = expression.NewIntegrator(expression.WithPolicy(" AVERAGE "))
	require.NoError(t, err)
	assert.InDelta(t, 2.0, ig.Evaluate(gpr.MustParse("a and b"), data), eps)
}

// TestEvaluate_FillAndNeutral covers missing genes and rule-less reactions.
func TestEvaluate_FillAndNeutral(t *testing.T) {
	ig, err := expression.NewIntegrator(expression.WithGeneFill(0), expression.WithNeutralActivity(0.5))
	require.NoError(t, err)

	assert.Zero(t, ig.Evaluate(gpr.MustParse("missing"), nil))
	assert.InDelta(t, 1.5, ig.Evaluate(gpr.MustParse("missing or present"), expression.GeneExpression{"present": 3}), eps)
	assert.Equal(t, 0.5, ig.Evaluate(nil, expression.GeneExpression{"present": 3}))
}

func testModel(t *testing.T) *network.Model {
	t.Helper()
	m, err := network.New(
		[]network.Species{{ID: "A"}, {ID: "B"}},
		[]network.Reaction{
			{ID: "R1", Reactants: []network.Term{{Species: "A", Coefficient: 1}}, Products: []network.Term{{Species: "B", Coefficient: 1}}, Rule: gpr.MustParse("g1 and g2")},
			{ID: "R2", Reactants: []network.Term{{Species: "B", Coefficient: 1}}, Products: []network.Term{{Species: "A", Coefficient: 1}}},
		},
	)
	require.NoError(t, err)

	return m
}

// TestIntegrate_OneEntryPerReaction checks completeness and coverage.
func TestIntegrate_OneEntryPerReaction(t *testing.T) {
	ig, err := expression.NewIntegrator()
	require.NoError(t, err)

	act, cov, err := ig.Integrate(testModel(t), expression.GeneExpression{"g1": 4, "other": 7})
	require.NoError(t, err)
	require.Len(t, act, 2)
	assert.InDelta(t, 2.0, act["R1"], eps) // sqrt(4 * fill 1)
	assert.Equal(t, 1.0, act["R2"])

	assert.Equal(t, expression.Coverage{ModelGenes: 2, DataGenes: 2, Matched: 1}, cov)
	assert.False(t, cov.Disjoint())
	assert.InDelta(t, 0.5, cov.Fraction(), eps)
}

// TestIntegrate_DisjointIdentifiers yields neutral activities and a Disjoint coverage.
func TestIntegrate_DisjointIdentifiers(t *testing.T) {
	ig, err := expression.NewIntegrator()
	require.NoError(t, err)

	act, cov, err := ig.Integrate(testModel(t), expression.GeneExpression{"ENSG1": 3})
	require.NoError(t, err)
	assert.True(t, cov.Disjoint())
	for _, v := range act {
		assert.Equal(t, 1.0, v)
	}
}

// TestIntegrate_RejectsBadValues refuses negative and NaN expression values.
func TestIntegrate_RejectsBadValues(t *testing.T) {
	ig, err := expression.NewIntegrator()
	require.NoError(t, err)

	for _, v := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, _, err = ig.Integrate(testModel(t), expression.GeneExpression{"g1": v})
		require.ErrorIs(t, err, expression.ErrBadValue)
		require.ErrorIs(t, err, gemerr.ErrInvalidInput)
	}
}
