// SPDX-License-Identifier: MIT

package network

import (
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/gpr"
)

// Sentinel errors for model construction and lookup.
var (
	// ErrEmptyModel indicates a model without species or without reactions.
	ErrEmptyModel = gemerr.New(gemerr.ErrStructural, "network: empty model")

	// ErrEmptyID indicates a species or reaction with a blank identifier.
	ErrEmptyID = gemerr.New(gemerr.ErrStructural, "network: empty identifier")

	// ErrDuplicateID indicates two species or two reactions sharing an identifier.
	ErrDuplicateID = gemerr.New(gemerr.ErrStructural, "network: duplicate identifier")

	// ErrUnknownSpecies indicates a reaction term naming a species that is not in the model.
	ErrUnknownSpecies = gemerr.New(gemerr.ErrStructural, "network: unknown species")

	// ErrEmptyReaction indicates a reaction with empty reactant and product sets.
	ErrEmptyReaction = gemerr.New(gemerr.ErrStructural, "network: reaction has no reactants and no products")

	// ErrBadCoefficient indicates a non-positive or non-finite stoichiometric
	// coefficient, or a species listed twice on the same side of a reaction.
	ErrBadCoefficient = gemerr.New(gemerr.ErrStructural, "network: bad stoichiometric coefficient")

	// ErrUnknownReaction indicates a lookup of a reaction that is not in the model.
	ErrUnknownReaction = gemerr.New(gemerr.ErrInvalidInput, "network: unknown reaction")
)

// Species is a metabolite node of the network.
type Species struct {
	// ID uniquely identifies the species within its Model.
	ID string

	// Name is an optional display name.
	Name string

	// Compartment is the optional compartment identifier ("c", "m", ...).
	Compartment string
}

// Term is one side entry of a reaction: a species and its stoichiometric
// coefficient. Coefficient is always positive; the side (reactant or product)
// carries the direction.
type Term struct {
	Species     string
	Coefficient float64
}

// Reaction converts Reactants into Products.
//
// Reactants and Products keep their input order. Rule is the gene-product
// rule; nil means the reaction has no gene association.
type Reaction struct {
	// ID uniquely identifies the reaction within its Model.
	ID string

	// Name is an optional display name.
	Name string

	// Reactants are consumed by one reaction event.
	Reactants []Term

	// Products are produced by one reaction event.
	Products []Term

	// Reversible marks reactions that may also run products→reactants.
	Reversible bool

	// Rule is the gene-product rule. Nodes are immutable and may be shared.
	Rule *gpr.Node
}

// clone returns a copy of r whose term slices are not shared with r.
func (r Reaction) clone() Reaction {
	cp := r
	cp.Reactants = append([]Term(nil), r.Reactants...)
	cp.Products = append([]Term(nil), r.Products...)

	return cp
}

// Genes returns the sorted gene identifiers referenced by the reaction's rule.
func (r Reaction) Genes() []string { return r.Rule.Genes() }
