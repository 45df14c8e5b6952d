// SPDX-License-Identifier: MIT

package adjacency

import (
	"fmt"
	"math"

	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/matrix"
	"github.com/katalvlaran/gemcat/network"
)

// Adjacency is a weighted directed graph over the species of a model.
// Row i, column j holds the influence of species IDs()[i] on IDs()[j].
// It is read-only once built.
type Adjacency struct {
	ids   []string
	index map[string]int
	m     *matrix.Sparse
}

// build is the shared body of every Transform.
func build(model *network.Model, act expression.Activity, w weightFunc, opts ...Option) (*Adjacency, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	n := model.NumSpecies()
	b, err := matrix.NewBuilder(n, n)
	if err != nil {
		return nil, fmt.Errorf("adjacency: %w", err)
	}

	var failure error
	model.Each(func(_ int, r *network.Reaction) {
		if failure != nil {
			return
		}
		a := 1.0
		if act != nil {
			v, ok := act[r.ID]
			if !ok || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				failure = fmt.Errorf("adjacency: reaction %q activity %v (present=%t): %w", r.ID, v, ok, ErrBadActivity)
				return
			}
			a = v
		}
		if failure = link(b, model, r.Reactants, r.Products, a, w); failure != nil {
			return
		}
		if o.Reversible && r.Reversible {
			failure = link(b, model, r.Products, r.Reactants, a, w)
		}
	})
	if failure != nil {
		return nil, failure
	}

	ids := model.SpeciesIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	return &Adjacency{ids: ids, index: index, m: b.Build()}, nil
}

// link adds one edge per (from, to) pair of distinct species.
func link(b *matrix.Builder, model *network.Model, from, to []network.Term, a float64, w weightFunc) error {
	for _, s := range from {
		i := model.SpeciesIndex(s.Species)
		for _, p := range to {
			j := model.SpeciesIndex(p.Species)
			if i == j {
				continue
			}
			if err := b.Add(i, j, w(a, s.Coefficient, p.Coefficient)); err != nil {
				return fmt.Errorf("adjacency: %s→%s: %w", s.Species, p.Species, err)
			}
		}
	}

	return nil
}

// IDs returns the species identifiers in row order. The slice is a copy.
func (g *Adjacency) IDs() []string { return append([]string(nil), g.ids...) }

// Len returns the number of species.
func (g *Adjacency) Len() int { return len(g.ids) }

// Edges returns the number of stored non-zero edges.
func (g *Adjacency) Edges() int { return g.m.NNZ() }

// Matrix returns the underlying CSR matrix. Callers must not modify it.
func (g *Adjacency) Matrix() *matrix.Sparse { return g.m }

// Weight returns the weight of from→to, or 0 when either species is unknown.
func (g *Adjacency) Weight(from, to string) float64 {
	i, ok := g.index[from]
	if !ok {
		return 0
	}
	j, ok := g.index[to]
	if !ok {
		return 0
	}
	v, _ := g.m.At(i, j)

	return v
}

// Out returns the outgoing edges of id keyed by target species.
func (g *Adjacency) Out(id string) map[string]float64 {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	cols, vals := g.m.Row(i)
	out := make(map[string]float64, len(cols))
	for k, j := range cols {
		out[g.ids[j]] = vals[k]
	}

	return out
}
