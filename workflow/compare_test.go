// SPDX-License-Identifier: MIT

package workflow_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/gemcat/ranking"
	"github.com/katalvlaran/gemcat/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(ids []string, vals ...float64) *ranking.Result {
	r := &ranking.Result{IDs: ids, Vector: vals, Scores: map[string]float64{}}
	for i, id := range ids {
		r.Scores[id] = vals[i]
	}

	return r
}

// TestCompareCentrality_Intersection restricts to shared species and reports the rest.
func TestCompareCentrality_Intersection(t *testing.T) {
	base := result([]string{"a", "b", "x"}, 0.5, 0.25, 0.25)
	comp := result([]string{"y", "b", "a"}, 0.2, 0.5, 0.3)

	cmp, err := workflow.CompareCentrality(base, comp, workflow.Ratio, workflow.ZeroPropagate)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cmp.IDs)
	assert.Equal(t, []string{"x", "y"}, cmp.Dropped)
	assert.InDelta(t, 0.6, cmp.Scores["a"], 1e-15)
	assert.Equal(t, 2.0, cmp.Scores["b"])

	diff, err := workflow.CompareCentrality(base, comp, workflow.Difference, workflow.ZeroPropagate)
	require.NoError(t, err)
	assert.Equal(t, 0.25, diff.Scores["b"])
}

// TestCompareCentrality_ZeroBaseline covers +Inf, NaN and failure.
func TestCompareCentrality_ZeroBaseline(t *testing.T) {
	base := result([]string{"a", "b", "c"}, 0, 0, 1)
	comp := result([]string{"a", "b", "c"}, 0.5, 0, 0.5)

	cmp, err := workflow.CompareCentrality(base, comp, workflow.Ratio, workflow.ZeroPropagate)
	require.NoError(t, err)
	assert.True(t, math.IsInf(cmp.Scores["a"], 1))
	assert.True(t, math.IsNaN(cmp.Scores["b"]))
	assert.Equal(t, []string{"a", "b"}, cmp.ZeroBaseline)

	_, err = workflow.CompareCentrality(base, comp, workflow.Ratio, workflow.ZeroFail)
	require.ErrorIs(t, err, workflow.ErrZeroBaseline)

	// difference mode has no undefined values
	diff, err := workflow.CompareCentrality(base, comp, workflow.Difference, workflow.ZeroFail)
	require.NoError(t, err)
	assert.Empty(t, diff.ZeroBaseline)
}

// TestCompareCentrality_Errors rejects disjoint vectors and bad modes.
func TestCompareCentrality_Errors(t *testing.T) {
	_, err := workflow.CompareCentrality(result([]string{"a"}, 1), result([]string{"b"}, 1), workflow.Ratio, workflow.ZeroPropagate)
	require.ErrorIs(t, err, workflow.ErrNoOverlap)

	_, err = workflow.CompareCentrality(result([]string{"a"}, 1), result([]string{"a"}, 1), "product", workflow.ZeroPropagate)
	require.ErrorIs(t, err, workflow.ErrInvalidConfig)

	_, err = workflow.CompareCentrality(nil, result([]string{"a"}, 1), workflow.Ratio, workflow.ZeroPropagate)
	require.Error(t, err)
}

// TestResult_Ranked orders by score, puts NaN last and breaks ties by ID.
func TestResult_Ranked(t *testing.T) {
	res := &workflow.Result{
		IDs:    []string{"d", "c", "b", "a", "e"},
		Scores: map[string]float64{"a": 1, "b": math.NaN(), "c": 2, "d": 1, "e": math.Inf(1)},
	}

	ids := make([]string, 0, 5)
	for _, e := range res.Ranked() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"e", "c", "a", "d", "b"}, ids)
}
