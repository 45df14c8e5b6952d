// SPDX-License-Identifier: MIT

package expression

import "github.com/katalvlaran/gemcat/network"

// Coverage counts how the genes of a data set overlap the genes of a model.
type Coverage struct {
	// ModelGenes is the number of distinct genes referenced by model rules.
	ModelGenes int

	// DataGenes is the number of genes in the expression data.
	DataGenes int

	// Matched is the number of model genes present in the data.
	Matched int
}

// Disjoint reports whether the model references genes but the data matches
// none of them. Every rule then evaluates on fill values alone, which
// usually means the data uses another identifier namespace.
func (c Coverage) Disjoint() bool { return c.ModelGenes > 0 && c.Matched == 0 }

// Fraction returns Matched/ModelGenes, or 1 for a model without genes.
func (c Coverage) Fraction() float64 {
	if c.ModelGenes == 0 {
		return 1
	}

	return float64(c.Matched) / float64(c.ModelGenes)
}

func coverage(model *network.Model, data GeneExpression) Coverage {
	genes := model.Genes()
	c := Coverage{ModelGenes: len(genes), DataGenes: len(data)}
	for _, g := range genes {
		if _, ok := data[g]; ok {
			c.Matched++
		}
	}

	return c
}
