// SPDX-License-Identifier: MIT

package modelio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/gemcat/gpr"
	"github.com/katalvlaran/gemcat/network"
)

// Element and attribute tags carry no namespace, so both the core SBML
// namespace and the fbc: prefixed ones match by local name.
type sbmlDoc struct {
	Model struct {
		ID           string         `xml:"id,attr"`
		Species      []sbmlSpecies  `xml:"listOfSpecies>species"`
		GeneProducts []sbmlGene     `xml:"listOfGeneProducts>geneProduct"`
		Reactions    []sbmlReaction `xml:"listOfReactions>reaction"`
	} `xml:"model"`
}

type sbmlSpecies struct {
	ID          string `xml:"id,attr"`
	Name        string `xml:"name,attr"`
	Compartment string `xml:"compartment,attr"`
}

type sbmlGene struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type sbmlRef struct {
	Species       string `xml:"species,attr"`
	Stoichiometry string `xml:"stoichiometry,attr"`
}

type sbmlReaction struct {
	ID          string    `xml:"id,attr"`
	Name        string    `xml:"name,attr"`
	Reversible  string    `xml:"reversible,attr"`
	Reactants   []sbmlRef `xml:"listOfReactants>speciesReference"`
	Products    []sbmlRef `xml:"listOfProducts>speciesReference"`
	Association *sbmlGPA  `xml:"geneProductAssociation"`
}

type sbmlGPA struct {
	Root []sbmlNode `xml:",any"`
}

// sbmlNode is one of fbc:and, fbc:or or fbc:geneProductRef.
type sbmlNode struct {
	XMLName     xml.Name
	GeneProduct string     `xml:"geneProduct,attr"`
	Children    []sbmlNode `xml:",any"`
}

// ReadSBML decodes an SBML Level 3 document with FBC v2 gene associations.
// Gene product references resolve to the product label when one is set.
func ReadSBML(r io.Reader) (*network.Model, error) {
	var doc sbmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode sbml: %w: %v", ErrMalformed, err)
	}

	labels := make(map[string]string, len(doc.Model.GeneProducts))
	for _, g := range doc.Model.GeneProducts {
		if g.Label != "" {
			labels[g.ID] = g.Label
		} else {
			labels[g.ID] = g.ID
		}
	}

	species := make([]network.Species, len(doc.Model.Species))
	for i, s := range doc.Model.Species {
		species[i] = network.Species{ID: s.ID, Name: s.Name, Compartment: s.Compartment}
	}

	reactions := make([]network.Reaction, 0, len(doc.Model.Reactions))
	for _, sr := range doc.Model.Reactions {
		rxn := network.Reaction{ID: sr.ID, Name: sr.Name, Reversible: sr.Reversible == "true"}
		var err error
		if rxn.Reactants, err = sbmlTerms(sr.ID, sr.Reactants); err != nil {
			return nil, err
		}
		if rxn.Products, err = sbmlTerms(sr.ID, sr.Products); err != nil {
			return nil, err
		}
		if sr.Association != nil && len(sr.Association.Root) > 0 {
			if rxn.Rule, err = sbmlRule(sr.Association.Root[0], labels); err != nil {
				return nil, fmt.Errorf("reaction %q: %w", sr.ID, err)
			}
		}
		reactions = append(reactions, rxn)
	}

	return network.New(species, reactions)
}

func sbmlTerms(rxn string, refs []sbmlRef) ([]network.Term, error) {
	terms := make([]network.Term, 0, len(refs))
	for _, ref := range refs {
		c := 1.0
		if ref.Stoichiometry != "" {
			v, err := strconv.ParseFloat(ref.Stoichiometry, 64)
			if err != nil {
				return nil, fmt.Errorf("reaction %q species %q: %w: %v", rxn, ref.Species, ErrMalformed, err)
			}
			c = v
		}
		if c == 0 {
			continue
		}
		terms = append(terms, network.Term{Species: ref.Species, Coefficient: c})
	}

	return terms, nil
}

// sbmlRule converts an FBC association subtree into a gpr.Node.
func sbmlRule(n sbmlNode, labels map[string]string) (*gpr.Node, error) {
	switch n.XMLName.Local {
	case "geneProductRef":
		gene, ok := labels[n.GeneProduct]
		if !ok {
			gene = n.GeneProduct
		}
		return gpr.Leaf(gene)
	case "and", "or":
		children := make([]*gpr.Node, 0, len(n.Children))
		for _, c := range n.Children {
			child, err := sbmlRule(c, labels)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if n.XMLName.Local == "and" {
			return gpr.And(children...)
		}
		return gpr.Or(children...)
	default:
		return nil, fmt.Errorf("%w: unexpected association element %q", ErrMalformed, n.XMLName.Local)
	}
}
