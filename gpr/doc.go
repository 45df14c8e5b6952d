// SPDX-License-Identifier: MIT

// Package gpr models gene-product rules: the boolean expressions that say
// which genes (or gene complexes) enable a metabolic reaction.
//
// A rule is an immutable tree with three node kinds:
//
//	LEAF(gene)          - a single gene identifier
//	AND(children...)    - every child is required (an enzyme complex)
//	OR(children...)     - any child suffices (isozymes)
//
// Rules are usually written as strings in model files:
//
//	(b0351 and b1241) or b3115
//
// Parse turns such a string into a tree. "and" binds tighter than "or", and a
// chain of the same operator becomes one n-ary node, so "a and b and c" is a
// single AND with three leaves while "(a and b) and c" keeps the nested group.
// The distinction matters to numeric folds such as the geometric mean.
//
// An empty rule means "no gene association" and is represented by a nil *Node.
package gpr
