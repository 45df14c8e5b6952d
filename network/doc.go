// SPDX-License-Identifier: MIT

// Package network holds a genome-scale metabolic network: species, reactions
// with stoichiometric terms, and the gene-product rule of every reaction.
//
// A Model is validated once by New and is read-only afterwards, so any number
// of goroutines may query it concurrently without locking.
//
// Canonical order:
//
//	Species are indexed in the order they were passed to New. That order is
//	the row/column order of every adjacency structure and centrality vector
//	derived from the model, so two runs over the same model always align.
//
// Errors:
//
//	ErrEmptyModel        - no species or no reactions.
//	ErrEmptyID           - species or reaction identifier is blank.
//	ErrDuplicateID       - identifier used twice.
//	ErrUnknownSpecies    - reaction references a species not in the model.
//	ErrEmptyReaction     - reaction with neither reactants nor products.
//	ErrBadCoefficient    - coefficient not finite and positive, or species repeated on one side.
//	ErrUnknownReaction   - lookup of a reaction not in the model.
//
// All of them are structural errors (gemerr.ErrStructural) except
// ErrUnknownReaction, which is an input error.
package network
