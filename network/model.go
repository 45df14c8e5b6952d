// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/gemcat/gpr"
	"github.com/katalvlaran/gemcat/matrix"
)

// Model is a validated, immutable metabolic network.
type Model struct {
	species   []Species
	index     map[string]int // species ID → canonical index
	reactions []Reaction
	rxnIndex  map[string]int // reaction ID → input position
	genes     []string       // sorted union of all rule genes
}

// New validates species and reactions and returns the Model.
//
// Species order is kept as the canonical order. Inputs are copied, so the
// caller may reuse its slices.
//
// Returns one of the package sentinels (all structural) wrapped with the
// offending identifier.
func New(species []Species, reactions []Reaction) (*Model, error) {
	if len(species) == 0 || len(reactions) == 0 {
		return nil, fmt.Errorf("New: %d species, %d reactions: %w", len(species), len(reactions), ErrEmptyModel)
	}

	m := &Model{
		species:   append([]Species(nil), species...),
		index:     make(map[string]int, len(species)),
		reactions: make([]Reaction, 0, len(reactions)),
		rxnIndex:  make(map[string]int, len(reactions)),
	}

	for i, s := range m.species {
		if s.ID == "" {
			return nil, fmt.Errorf("New: species #%d: %w", i, ErrEmptyID)
		}
		if _, dup := m.index[s.ID]; dup {
			return nil, fmt.Errorf("New: species %q: %w", s.ID, ErrDuplicateID)
		}
		m.index[s.ID] = i
	}

	geneSet := make(map[string]struct{})
	for i, r := range reactions {
		if r.ID == "" {
			return nil, fmt.Errorf("New: reaction #%d: %w", i, ErrEmptyID)
		}
		if _, dup := m.rxnIndex[r.ID]; dup {
			return nil, fmt.Errorf("New: reaction %q: %w", r.ID, ErrDuplicateID)
		}
		if len(r.Reactants) == 0 && len(r.Products) == 0 {
			return nil, fmt.Errorf("New: reaction %q: %w", r.ID, ErrEmptyReaction)
		}
		if err := m.checkSide(r.ID, r.Reactants); err != nil {
			return nil, err
		}
		if err := m.checkSide(r.ID, r.Products); err != nil {
			return nil, err
		}
		for _, g := range r.Rule.Genes() {
			geneSet[g] = struct{}{}
		}
		m.rxnIndex[r.ID] = len(m.reactions)
		m.reactions = append(m.reactions, r.clone())
	}

	m.genes = make([]string, 0, len(geneSet))
	for g := range geneSet {
		m.genes = append(m.genes, g)
	}
	sort.Strings(m.genes)

	return m, nil
}

// checkSide validates the terms of one reaction side.
func (m *Model) checkSide(rxn string, terms []Term) error {
	seen := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		if _, ok := m.index[t.Species]; !ok {
			return fmt.Errorf("New: reaction %q species %q: %w", rxn, t.Species, ErrUnknownSpecies)
		}
		if _, dup := seen[t.Species]; dup {
			return fmt.Errorf("New: reaction %q lists %q twice: %w", rxn, t.Species, ErrBadCoefficient)
		}
		seen[t.Species] = struct{}{}
		if !(t.Coefficient > 0) || math.IsInf(t.Coefficient, 0) {
			return fmt.Errorf("New: reaction %q species %q coefficient %v: %w", rxn, t.Species, t.Coefficient, ErrBadCoefficient)
		}
	}

	return nil
}

// NumSpecies returns the number of species.
func (m *Model) NumSpecies() int { return len(m.species) }

// NumReactions returns the number of reactions.
func (m *Model) NumReactions() int { return len(m.reactions) }

// SpeciesIDs returns species identifiers in canonical order.
// The slice is a copy.
func (m *Model) SpeciesIDs() []string {
	ids := make([]string, len(m.species))
	for i, s := range m.species {
		ids[i] = s.ID
	}

	return ids
}

// Species returns the species with the given ID.
func (m *Model) Species(id string) (Species, bool) {
	i, ok := m.index[id]
	if !ok {
		return Species{}, false
	}

	return m.species[i], true
}

// SpeciesIndex returns the canonical index of id, or -1.
func (m *Model) SpeciesIndex(id string) int {
	if i, ok := m.index[id]; ok {
		return i
	}

	return -1
}

// ReactionIDs returns reaction identifiers in input order.
func (m *Model) ReactionIDs() []string {
	ids := make([]string, len(m.reactions))
	for i, r := range m.reactions {
		ids[i] = r.ID
	}

	return ids
}

// Reactions returns a copy of every reaction in input order.
func (m *Model) Reactions() []Reaction {
	out := make([]Reaction, len(m.reactions))
	for i, r := range m.reactions {
		out[i] = r.clone()
	}

	return out
}

// Reaction returns a copy of the reaction with the given ID.
func (m *Model) Reaction(id string) (Reaction, error) {
	i, ok := m.rxnIndex[id]
	if !ok {
		return Reaction{}, fmt.Errorf("Reaction(%q): %w", id, ErrUnknownReaction)
	}

	return m.reactions[i].clone(), nil
}

// Stoichiometry returns the reactant and product terms of reaction id.
func (m *Model) Stoichiometry(id string) (reactants, products []Term, err error) {
	r, err := m.Reaction(id)
	if err != nil {
		return nil, nil, err
	}

	return r.Reactants, r.Products, nil
}

// Rule returns the gene-product rule of reaction id (nil when it has none).
func (m *Model) Rule(id string) (*gpr.Node, error) {
	i, ok := m.rxnIndex[id]
	if !ok {
		return nil, fmt.Errorf("Rule(%q): %w", id, ErrUnknownReaction)
	}

	return m.reactions[i].Rule, nil
}

// Genes returns the sorted set of gene identifiers referenced by any rule.
func (m *Model) Genes() []string { return append([]string(nil), m.genes...) }

// Each calls fn for every reaction in input order without copying.
// fn must not modify the reaction's term slices.
func (m *Model) Each(fn func(i int, r *Reaction)) {
	for i := range m.reactions {
		fn(i, &m.reactions[i])
	}
}

// StoichiometricMatrix returns the species×reactions matrix S with reactant
// coefficients negative and product coefficients positive.
func (m *Model) StoichiometricMatrix() (*matrix.Dense, error) {
	s, err := matrix.NewDense(len(m.species), len(m.reactions))
	if err != nil {
		return nil, fmt.Errorf("StoichiometricMatrix: %w", err)
	}
	for j, r := range m.reactions {
		for _, t := range r.Reactants {
			if err = s.Set(m.index[t.Species], j, -t.Coefficient); err != nil {
				return nil, fmt.Errorf("StoichiometricMatrix: %w", err)
			}
		}
		for _, t := range r.Products {
			if err = s.Set(m.index[t.Species], j, t.Coefficient); err != nil {
				return nil, fmt.Errorf("StoichiometricMatrix: %w", err)
			}
		}
	}

	return s, nil
}
