// SPDX-License-Identifier: MIT

package gpr

import (
	"sort"
	"strings"

	"github.com/katalvlaran/gemcat/gemerr"
)

// Kind tags a Node.
type Kind int

const (
	// KindLeaf is a single gene reference.
	KindLeaf Kind = iota
	// KindAnd requires all children.
	KindAnd
	// KindOr requires any child.
	KindOr
)

// String returns the lower-case keyword of k.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	default:
		return "unknown"
	}
}

// ErrEmptyGene is returned when a leaf would carry an empty gene identifier.
var ErrEmptyGene = gemerr.New(gemerr.ErrStructural, "gpr: empty gene identifier")

// ErrNoChildren is returned when an AND/OR node is built without children.
var ErrNoChildren = gemerr.New(gemerr.ErrStructural, "gpr: operator without operands")

// Node is one vertex of a rule tree. The zero value is not useful; build nodes
// with Leaf, And, Or or Parse. Nodes never change after construction, so a tree
// can be shared freely between goroutines.
type Node struct {
	kind     Kind
	gene     string  // set for KindLeaf only
	children []*Node // set for KindAnd/KindOr only
}

// Leaf returns a node referencing gene.
func Leaf(gene string) (*Node, error) {
	gene = strings.TrimSpace(gene)
	if gene == "" {
		return nil, ErrEmptyGene
	}

	return &Node{kind: KindLeaf, gene: gene}, nil
}

// And returns a node that requires all children.
func And(children ...*Node) (*Node, error) { return operator(KindAnd, children) }

// Or returns a node that requires any of children.
func Or(children ...*Node) (*Node, error) { return operator(KindOr, children) }

func operator(kind Kind, children []*Node) (*Node, error) {
	if len(children) == 0 {
		return nil, ErrNoChildren
	}
	for _, c := range children {
		if c == nil {
			return nil, ErrNoChildren
		}
	}
	// A single operand needs no operator around it.
	if len(children) == 1 {
		return children[0], nil
	}
	cs := make([]*Node, len(children))
	copy(cs, children)

	return &Node{kind: kind, children: cs}, nil
}

// Kind returns the node tag.
func (n *Node) Kind() Kind { return n.kind }

// Gene returns the gene identifier of a leaf, or "" for operators.
func (n *Node) Gene() string { return n.gene }

// Children returns a copy of the operand list (nil for leaves).
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)

	return out
}

// Fold evaluates the tree bottom-up. leaf maps a gene to a value; combine
// merges the values of an operator's children. Children are visited in order.
func (n *Node) Fold(leaf func(gene string) float64, combine func(kind Kind, values []float64) float64) float64 {
	if n.kind == KindLeaf {
		return leaf(n.gene)
	}
	vals := make([]float64, len(n.children))
	for i, c := range n.children {
		vals[i] = c.Fold(leaf, combine)
	}

	return combine(n.kind, vals)
}

// Genes returns the sorted set of gene identifiers referenced by the tree.
// A nil tree has no genes.
func (n *Node) Genes() []string {
	if n == nil {
		return nil
	}
	seen := make(map[string]struct{})
	n.collect(seen)
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)

	return out
}

func (n *Node) collect(seen map[string]struct{}) {
	if n.kind == KindLeaf {
		seen[n.gene] = struct{}{}
		return
	}
	for _, c := range n.children {
		c.collect(seen)
	}
}

// Depth returns the number of levels in the tree; a single leaf has depth 1.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	d := 0
	for _, c := range n.children {
		if cd := c.Depth(); cd > d {
			d = cd
		}
	}

	return d + 1
}

// String renders the rule with explicit parentheses around nested operators.
// Parse(n.String()) reproduces an equal tree.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.write(&sb, false)

	return sb.String()
}

func (n *Node) write(sb *strings.Builder, nested bool) {
	if n.kind == KindLeaf {
		sb.WriteString(n.gene)
		return
	}
	if nested {
		sb.WriteByte('(')
	}
	sep := " " + n.kind.String() + " "
	for i, c := range n.children {
		if i > 0 {
			sb.WriteString(sep)
		}
		c.write(sb, true)
	}
	if nested {
		sb.WriteByte(')')
	}
}

// Equal reports whether a and b have the same shape and genes.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || a.gene != b.gene || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}

	return true
}
