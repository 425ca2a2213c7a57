package ast

import (
	"github.com/mical-lang/mical/cst"
	"github.com/mical-lang/mical/syntax"
)

// Value is one of Boolean, Integer, LineString, QuotedString, or
// BlockString.
type Value interface {
	isValue()
	Syntax() *cst.Node
}

func valueOf(parent *cst.Node) (Value, bool) {
	n := parent.ChildNodeAny()
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.Boolean:
		return Boolean{syntax: n}, true
	case syntax.Integer:
		return Integer{syntax: n}, true
	case syntax.LineString:
		return LineString{syntax: n}, true
	case syntax.QuotedString:
		return QuotedString{syntax: n}, true
	case syntax.BlockString:
		return BlockString{syntax: n}, true
	default:
		// The first non-key child node is not a value node (for
		// example the ERROR node recorded for a tab separator), so
		// no value is reported.
		return nil, false
	}
}

// BooleanKind distinguishes `true` from `false`.
type BooleanKind uint8

const (
	True BooleanKind = iota
	False
)

// Boolean is a bare `true`/`false` value.
type Boolean struct {
	syntax *cst.Node
}

func (b Boolean) isValue()          {}
func (b Boolean) Syntax() *cst.Node { return b.syntax }

func (b Boolean) Kind() (BooleanKind, bool) {
	if b.syntax.ChildToken(syntax.True) != nil {
		return True, true
	}
	if b.syntax.ChildToken(syntax.False) != nil {
		return False, true
	}
	return 0, false
}

// Integer is a (possibly signed) bare numeral value.
type Integer struct {
	syntax *cst.Node
}

func (i Integer) isValue()          {}
func (i Integer) Syntax() *cst.Node { return i.syntax }

// Sign returns the leading `+`/`-` token, if the integer was signed.
func (i Integer) Sign() (*cst.Token, bool) {
	if tok := i.syntax.ChildToken(syntax.Plus); tok != nil {
		return tok, true
	}
	if tok := i.syntax.ChildToken(syntax.Minus); tok != nil {
		return tok, true
	}
	return nil, false
}

// Numeral returns the NUMERAL token, or false if the parser recorded
// none.
func (i Integer) Numeral() (*cst.Token, bool) {
	tok := i.syntax.ChildToken(syntax.Numeral)
	return tok, tok != nil
}

// LineString is a value that runs to the end of its line verbatim.
type LineString struct {
	syntax *cst.Node
}

func (l LineString) isValue()          {}
func (l LineString) Syntax() *cst.Node { return l.syntax }

// String returns the line's single remapped STRING token, or false if
// the node has none. A blank block-string line is a LineString node
// with no token, so this is false for it.
func (l LineString) String() (*cst.Token, bool) {
	tok := l.syntax.ChildToken(syntax.String)
	return tok, tok != nil
}

// QuotedString is a `"..."`/`'...'` value.
type QuotedString struct {
	syntax *cst.Node
}

func (q QuotedString) isValue()          {}
func (q QuotedString) Syntax() *cst.Node { return q.syntax }

// String returns the quoted value's raw body token (escapes not yet
// decoded), or false if the parser recorded no body (e.g. a missing
// closing quote left the body unparsed).
func (q QuotedString) String() (*cst.Token, bool) {
	tok := q.syntax.ChildToken(syntax.String)
	return tok, tok != nil
}

// BlockStringStyle distinguishes literal (`|`) from folded (`>`)
// blocks.
type BlockStringStyle uint8

const (
	Literal BlockStringStyle = iota
	Folded
)

// Chomp is the trailing-newline disposition a block string's header
// selects.
type Chomp uint8

const (
	ChompClip Chomp = iota
	ChompStrip
	ChompKeep
)

// BlockString is a `|`/`>` introduced multi-line value.
type BlockString struct {
	syntax *cst.Node
}

func (b BlockString) isValue()          {}
func (b BlockString) Syntax() *cst.Node { return b.syntax }

func (b BlockString) Header() (BlockStringHeader, bool) {
	n := b.syntax.ChildNode(syntax.BlockStringHeader)
	if n == nil {
		return BlockStringHeader{}, false
	}
	return BlockStringHeader{syntax: n}, true
}

// Lines returns every content/blank line of the block, in source
// order. Each is a LineString node; a blank line is a LineString node
// with no STRING token.
func (b BlockString) Lines() []LineString {
	nodes := b.syntax.ChildNodes(syntax.LineString)
	out := make([]LineString, len(nodes))
	for i, n := range nodes {
		out[i] = LineString{syntax: n}
	}
	return out
}

// BlockStringHeader is the `| `/`>-`/... line introducing a block
// string.
type BlockStringHeader struct {
	syntax *cst.Node
}

func (h BlockStringHeader) Syntax() *cst.Node { return h.syntax }

// Style reports whether the header used `|` (Literal) or `>` (Folded).
func (h BlockStringHeader) Style() (BlockStringStyle, bool) {
	if tok := h.syntax.ChildToken(syntax.Pipe); tok != nil {
		return Literal, true
	}
	if tok := h.syntax.ChildToken(syntax.Greater); tok != nil {
		return Folded, true
	}
	return 0, false
}

// ChompIndicator returns the header's explicit `+`/`-` chomp token, if
// present.
func (h BlockStringHeader) ChompIndicator() (*cst.Token, bool) {
	if tok := h.syntax.ChildToken(syntax.Plus); tok != nil {
		return tok, true
	}
	if tok := h.syntax.ChildToken(syntax.Minus); tok != nil {
		return tok, true
	}
	return nil, false
}
