// SPDX-License-Identifier: MIT

// Package components splits a weighted directed graph into weakly connected
// components, i.e. the subnetworks that remain connected when edge direction
// is ignored.
//
// The walk is breadth-first from the lowest unvisited index, so the output
// is deterministic: members of a component are listed in canonical index
// order, and components are ordered by their first member.
//
// Edges lighter than a threshold (WithMinWeight) can be ignored, which lets a
// caller see how a network fragments once low-activity reactions drop out.
package components
