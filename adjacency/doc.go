// SPDX-License-Identifier: MIT

// Package adjacency derives a weighted, directed metabolite×metabolite graph
// from a network model and per-reaction activities.
//
// Every reaction links each of its reactants to each of its products. With
// activity a, reactant coefficient cr and product coefficient cp the edge
// weight contributed is:
//
//	pure  a
//	half  a·cp
//	full  a·cr·cp
//
// Contributions of different reactions to the same pair are summed. Self
// loops are skipped and rows are not normalised. Reversible reactions also
// contribute product→reactant edges with the roles swapped; WithReversible
// (false) restricts every reaction to its forward direction.
//
// The policies share one Transform signature, so callers pick one by name
// with Lookup and never branch on the policy themselves.
package adjacency
