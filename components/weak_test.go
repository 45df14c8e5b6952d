// SPDX-License-Identifier: MIT

package components_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/gemcat/adjacency"
	"github.com/katalvlaran/gemcat/components"
	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/matrix"
	"github.com/katalvlaran/gemcat/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testGraph struct {
	ids []string
	m   *matrix.Sparse
}

func (g testGraph) IDs() []string          { return g.ids }
func (g testGraph) Matrix() *matrix.Sparse { return g.m }

func build(t *testing.T, ids []string, arcs ...[3]float64) testGraph {
	t.Helper()
	b, err := matrix.NewBuilder(len(ids), len(ids))
	require.NoError(t, err)
	for _, a := range arcs {
		require.NoError(t, b.Add(int(a[0]), int(a[1]), a[2]))
	}

	return testGraph{ids: ids, m: b.Build()}
}

// TestWeak_IgnoresDirection joins nodes linked only by opposite arcs.
func TestWeak_IgnoresDirection(t *testing.T) {
	// 0→1, 2→1 form one component; 3 and 4 form another; 5 is isolated.
	g := build(t, []string{"a", "b", "c", "d", "e", "f"},
		[3]float64{0, 1, 1}, [3]float64{2, 1, 1}, [3]float64{4, 3, 2})

	var visited []string
	res, err := components.Weak(g, components.WithOnVisit(func(id string, _ int) { visited = append(visited, id) }))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d", "e"}, {"f"}}, res.Components)
	assert.Equal(t, 1, res.Of["e"])
	assert.Equal(t, []string{"a", "b", "c"}, res.Largest())
	assert.Len(t, visited, 6)
}

// TestWeak_MinWeight drops light edges before walking.
func TestWeak_MinWeight(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [3]float64{0, 1, 0.1}, [3]float64{1, 2, 5})

	res, err := components.Weak(g, components.WithMinWeight(0.5))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}, {"b", "c"}}, res.Components)

	_, err = components.Weak(g, components.WithMinWeight(-1))
	require.ErrorIs(t, err, components.ErrOptionViolation)
	require.ErrorIs(t, err, gemerr.ErrConfiguration)
}

// TestWeak_Adjacency splits a two-pathway model built by the adjacency package.
func TestWeak_Adjacency(t *testing.T) {
	one := func(id string) []network.Term { return []network.Term{{Species: id, Coefficient: 1}} }
	m, err := network.New(
		[]network.Species{{ID: "glc"}, {ID: "g6p"}, {ID: "atp"}, {ID: "adp"}},
		[]network.Reaction{
			{ID: "HEX", Reactants: one("glc"), Products: one("g6p")},
			{ID: "ATPS", Reactants: one("adp"), Products: one("atp")},
		},
	)
	require.NoError(t, err)

	g, err := adjacency.PureTransform(m, expression.Activity{"HEX": 1, "ATPS": 0})
	require.NoError(t, err)

	res, err := components.Weak(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"glc", "g6p"}, {"atp"}, {"adp"}}, res.Components)
}

// TestWeak_Errors covers nil graphs, shape mismatches and cancellation.
func TestWeak_Errors(t *testing.T) {
	_, err := components.Weak(nil)
	require.ErrorIs(t, err, components.ErrGraphNil)

	g := build(t, []string{"a", "b"}, [3]float64{0, 1, 1})
	_, err = components.Weak(testGraph{ids: []string{"a"}, m: g.m})
	require.ErrorIs(t, err, components.ErrShape)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = components.Weak(g, components.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
