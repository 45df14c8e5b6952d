// SPDX-License-Identifier: MIT

package gpr

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/katalvlaran/gemcat/gemerr"
)

// ErrSyntax is returned for a rule string that is not a valid expression.
var ErrSyntax = gemerr.New(gemerr.ErrStructural, "gpr: syntax error")

type tokenKind int

const (
	tokGene tokenKind = iota
	tokAnd
	tokOr
	tokOpen
	tokClose
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the rule, for error messages
}

// Parse converts a rule string into a tree.
//
// Accepted operators are "and"/"or" in any letter case plus "&", "&&", "|"
// and "||". Any other run of non-space characters outside parentheses is a
// gene identifier. A blank rule yields (nil, nil).
//
// Errors:
//   - ErrSyntax (wrapped with the offending position) for unbalanced
//     parentheses, dangling operators or adjacent identifiers.
func Parse(rule string) (*Node, error) {
	toks := tokenize(rule)
	if len(toks) == 1 { // only EOF
		return nil, nil
	}
	p := &parser{toks: toks}
	n, err := p.orExpr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, syntaxErrorf(t.pos, "unexpected %q", t.text)
	}

	return n, nil
}

// MustParse is Parse for rules known to be valid; it panics on error.
func MustParse(rule string) *Node {
	n, err := Parse(rule)
	if err != nil {
		panic(err)
	}

	return n
}

func syntaxErrorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, pos, fmt.Sprintf(format, args...))
}

func tokenize(rule string) []token {
	var toks []token
	i := 0
	for i < len(rule) {
		c := rule[i]
		switch {
		case unicode.IsSpace(rune(c)):
			i++
		case c == '(':
			toks = append(toks, token{kind: tokOpen, text: "(", pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokClose, text: ")", pos: i})
			i++
		case c == '&' || c == '|':
			kind := tokAnd
			if c == '|' {
				kind = tokOr
			}
			start := i
			i++
			if i < len(rule) && rule[i] == c {
				i++
			}
			toks = append(toks, token{kind: kind, text: rule[start:i], pos: start})
		default:
			start := i
			for i < len(rule) && !isDelimiter(rule[i]) {
				i++
			}
			word := rule[start:i]
			switch strings.ToLower(word) {
			case "and":
				toks = append(toks, token{kind: tokAnd, text: word, pos: start})
			case "or":
				toks = append(toks, token{kind: tokOr, text: word, pos: start})
			default:
				toks = append(toks, token{kind: tokGene, text: word, pos: start})
			}
		}
	}

	return append(toks, token{kind: tokEOF, text: "end of rule", pos: len(rule)})
}

func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '&' || c == '|' || unicode.IsSpace(rune(c))
}

// parser is a recursive-descent parser over a token slice.
//
//	orExpr  := andExpr { OR andExpr }
//	andExpr := primary { AND primary }
//	primary := GENE | "(" orExpr ")"
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) orExpr() (*Node, error) {
	first, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	operands := []*Node{first}
	for p.peek().kind == tokOr {
		p.next()
		n, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}

	return Or(operands...)
}

func (p *parser) andExpr() (*Node, error) {
	first, err := p.primary()
	if err != nil {
		return nil, err
	}
	operands := []*Node{first}
	for p.peek().kind == tokAnd {
		p.next()
		n, err := p.primary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, n)
	}

	return And(operands...)
}

func (p *parser) primary() (*Node, error) {
	t := p.next()
	switch t.kind {
	case tokGene:
		return Leaf(t.text)
	case tokOpen:
		n, err := p.orExpr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokClose {
			return nil, syntaxErrorf(c.pos, "expected ')' but found %q", c.text)
		}

		return n, nil
	default:
		return nil, syntaxErrorf(t.pos, "expected gene or '(' but found %q", t.text)
	}
}
