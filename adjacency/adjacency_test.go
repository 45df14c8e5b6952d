// SPDX-License-Identifier: MIT

package adjacency_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/gemcat/adjacency"
	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func term(id string, c float64) network.Term { return network.Term{Species: id, Coefficient: c} }

// stoichModel: R1: 2 A + B → 3 C (irreversible); R2: A → C (reversible); R3: C → C + D.
func stoichModel(t *testing.T) *network.Model {
	t.Helper()
	m, err := network.New(
		[]network.Species{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
		[]network.Reaction{
			{ID: "R1", Reactants: []network.Term{term("A", 2), term("B", 1)}, Products: []network.Term{term("C", 3)}},
			{ID: "R2", Reactants: []network.Term{term("A", 1)}, Products: []network.Term{term("C", 1)}, Reversible: true},
			{ID: "R3", Reactants: []network.Term{term("C", 1)}, Products: []network.Term{term("C", 1), term("D", 1)}},
		},
	)
	require.NoError(t, err)

	return m
}

// TestLookup_UnknownPolicy rejects names outside pure/half/full.
func TestLookup_UnknownPolicy(t *testing.T) {
	_, err := adjacency.Lookup("quarter")
	require.ErrorIs(t, err, adjacency.ErrUnknownPolicy)
	require.ErrorIs(t, err, gemerr.ErrConfiguration)

	_, err = adjacency.ParsePolicy("Quarter")
	require.ErrorIs(t, err, adjacency.ErrUnknownPolicy)

	p, err := adjacency.ParsePolicy("FULL")
	require.NoError(t, err)
	require.Equal(t, adjacency.Full, p)
}

// TestLookup_CaseInsensitive resolves names the way ParsePolicy does.
func TestLookup_CaseInsensitive(t *testing.T) {
	m := stoichModel(t)
	act := expression.Activity{"R1": 2, "R2": 0.5, "R3": 1}

	tr, err := adjacency.Lookup("Half")
	require.NoError(t, err)
	got, err := tr(m, act)
	require.NoError(t, err)
	want, err := adjacency.HalfTransform(m, act)
	require.NoError(t, err)
	for _, from := range want.IDs() {
		for _, to := range want.IDs() {
			assert.Equal(t, want.Weight(from, to), got.Weight(from, to), "%s->%s", from, to)
		}
	}
}

// TestPolicies_Weights checks the three weightings on a hand-computed model.
func TestPolicies_Weights(t *testing.T) {
	m := stoichModel(t)
	act := expression.Activity{"R1": 2, "R2": 0.5, "R3": 1}

	cases := []struct {
		policy         adjacency.Policy
		ac, bc, ca, cd float64
	}{
		// A→C gets R1 plus R2; C→A only the reversed R2.
		{adjacency.Pure, 2 + 0.5, 2, 0.5, 1},
		{adjacency.Half, 2*3 + 0.5*1, 2 * 3, 0.5 * 1, 1},
		{adjacency.Full, 2*2*3 + 0.5, 2 * 1 * 3, 0.5, 1},
	}
	for _, tc := range cases {
		t.Run(string(tc.policy), func(t *testing.T) {
			tr, err := adjacency.Lookup(tc.policy)
			require.NoError(t, err)
			g, err := tr(m, act)
			require.NoError(t, err)

			assert.InDelta(t, tc.ac, g.Weight("A", "C"), 1e-12)
			assert.InDelta(t, tc.bc, g.Weight("B", "C"), 1e-12)
			assert.InDelta(t, tc.ca, g.Weight("C", "A"), 1e-12)
			assert.InDelta(t, tc.cd, g.Weight("C", "D"), 1e-12)
			assert.Zero(t, g.Weight("C", "C"), "self loops are skipped")
			assert.Zero(t, g.Weight("A", "B"), "co-reactants are not linked")
		})
	}
}

// TestPure_IncidenceCount: with unit activity, pure weights count linking reactions.
func TestPure_IncidenceCount(t *testing.T) {
	m := stoichModel(t)
	g, err := adjacency.PureTransform(m, nil, adjacency.WithReversible(false))
	require.NoError(t, err)

	ids := g.IDs()
	want := map[[2]string]float64{{"A", "C"}: 2, {"B", "C"}: 1, {"C", "D"}: 1}
	for _, from := range ids {
		for _, to := range ids {
			assert.Equal(t, want[[2]string{from, to}], g.Weight(from, to), "%s→%s", from, to)
		}
	}
	assert.Equal(t, 3, g.Edges())
	assert.Equal(t, map[string]float64{"C": 2}, g.Out("A"))
	assert.Nil(t, g.Out("Z"))
}

// TestTransform_ZeroActivityKeepsOtherEdges: a disabled reaction does not remove edges of others.
func TestTransform_ZeroActivityKeepsOtherEdges(t *testing.T) {
	m := stoichModel(t)
	g, err := adjacency.PureTransform(m, expression.Activity{"R1": 0, "R2": 1, "R3": 1})
	require.NoError(t, err)

	assert.Equal(t, 1.0, g.Weight("A", "C"))
	assert.Zero(t, g.Weight("B", "C"))
	assert.Empty(t, g.Out("B"))
}

// TestTransform_NonNegative: every stored weight is non-negative for each policy.
func TestTransform_NonNegative(t *testing.T) {
	m := stoichModel(t)
	for _, p := range adjacency.Policies() {
		tr, err := adjacency.Lookup(p)
		require.NoError(t, err)
		g, err := tr(m, expression.Activity{"R1": 0.1, "R2": 7, "R3": 0})
		require.NoError(t, err)

		sp := g.Matrix()
		for i := 0; i < sp.Rows(); i++ {
			_, vals := sp.Row(i)
			for _, v := range vals {
				assert.GreaterOrEqual(t, v, 0.0)
			}
		}
	}
}

// TestTransform_BadActivity rejects missing, negative and NaN activities.
func TestTransform_BadActivity(t *testing.T) {
	m := stoichModel(t)
	for _, act := range []expression.Activity{
		{"R1": 1, "R2": 1},
		{"R1": 1, "R2": -1, "R3": 1},
		{"R1": math.NaN(), "R2": 1, "R3": 1},
	} {
		_, err := adjacency.HalfTransform(m, act)
		require.ErrorIs(t, err, adjacency.ErrBadActivity)
		require.ErrorIs(t, err, gemerr.ErrInvalidInput)
	}

	_, err := adjacency.FullTransform(nil, nil)
	require.ErrorIs(t, err, adjacency.ErrNilModel)
}
