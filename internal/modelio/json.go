// SPDX-License-Identifier: MIT

package modelio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/katalvlaran/gemcat/gpr"
	"github.com/katalvlaran/gemcat/network"
)

type cobraJSON struct {
	ID          string          `json:"id"`
	Metabolites []cobraSpecies  `json:"metabolites"`
	Reactions   []cobraReaction `json:"reactions"`
}

type cobraSpecies struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Compartment string `json:"compartment"`
}

type cobraReaction struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Metabolites map[string]float64 `json:"metabolites"`
	LowerBound  float64            `json:"lower_bound"`
	UpperBound  float64            `json:"upper_bound"`
	Rule        string             `json:"gene_reaction_rule"`
}

// ReadJSON decodes a COBRA JSON model. Negative coefficients are reactants,
// positive ones products; a negative lower bound marks the reaction
// reversible. Reactions without any non-zero coefficient are skipped.
func ReadJSON(r io.Reader) (*network.Model, error) {
	var doc cobraJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w: %v", ErrMalformed, err)
	}

	species := make([]network.Species, len(doc.Metabolites))
	index := make(map[string]int, len(doc.Metabolites))
	for i, m := range doc.Metabolites {
		species[i] = network.Species{ID: m.ID, Name: m.Name, Compartment: m.Compartment}
		index[m.ID] = i
	}

	reactions := make([]network.Reaction, 0, len(doc.Reactions))
	for _, cr := range doc.Reactions {
		rxn := network.Reaction{ID: cr.ID, Name: cr.Name, Reversible: cr.LowerBound < 0}
		for id, c := range cr.Metabolites {
			switch {
			case c < 0:
				rxn.Reactants = append(rxn.Reactants, network.Term{Species: id, Coefficient: -c})
			case c > 0:
				rxn.Products = append(rxn.Products, network.Term{Species: id, Coefficient: c})
			}
		}
		if len(rxn.Reactants) == 0 && len(rxn.Products) == 0 {
			continue
		}
		sortTerms(rxn.Reactants, index)
		sortTerms(rxn.Products, index)

		rule, err := gpr.Parse(cr.Rule)
		if err != nil {
			return nil, fmt.Errorf("reaction %q: %w", cr.ID, err)
		}
		rxn.Rule = rule
		reactions = append(reactions, rxn)
	}

	return network.New(species, reactions)
}
