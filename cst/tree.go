// Package cst implements the lossless concrete syntax tree the parser
// builds from its event stream. Spec treats a green tree as an external
// black box offering start-node/finish-node/push-token; no library in
// the retrieval pack plays that role (rowan is Rust-only), so it is
// hand-rolled here, arena-backed in the same bump-allocator idiom as
// the teacher's parser/arena.go.
package cst

import (
	"fmt"
	"strings"

	"github.com/mical-lang/mical/syntax"
)

// TextRange is a half-open byte range [Start, End) into the original
// source.
type TextRange struct {
	Start uint32
	End   uint32
}

func (r TextRange) Len() uint32 { return r.End - r.Start }

// Element is either a Node or a Token. Both expose their syntax kind
// and their byte range in the source.
type Element interface {
	Kind() syntax.Kind
	Range() TextRange
}

// Node is a non-terminal: a SourceFile, Entry, PrefixBlock, and so on.
// Its children are tokens and further nodes, in source order.
type Node struct {
	kind     syntax.Kind
	rng      TextRange
	children []Element
}

func (n *Node) Kind() syntax.Kind  { return n.kind }
func (n *Node) Range() TextRange   { return n.rng }
func (n *Node) Children() []Element { return n.children }

// ChildNode returns the first child Node of the given kind, or nil.
func (n *Node) ChildNode(kind syntax.Kind) *Node {
	for _, c := range n.children {
		if node, ok := c.(*Node); ok && node.kind == kind {
			return node
		}
	}
	return nil
}

// ChildNodes returns every child Node of the given kind, in order.
func (n *Node) ChildNodes(kind syntax.Kind) []*Node {
	var out []*Node
	for _, c := range n.children {
		if node, ok := c.(*Node); ok && node.kind == kind {
			out = append(out, node)
		}
	}
	return out
}

// ChildToken returns the first child Token of the given kind, or nil.
func (n *Node) ChildToken(kind syntax.Kind) *Token {
	for _, c := range n.children {
		if tok, ok := c.(*Token); ok && tok.kind == kind {
			return tok
		}
	}
	return nil
}

// ChildNodeAny returns the first child Node that is not a key node
// (WordKey or QuotedKey), or nil. Used where a grammar slot is filled
// by exactly one of several alternative node kinds (e.g. an Entry's
// value, one of five shapes), which the grammar places after the key.
func (n *Node) ChildNodeAny() *Node {
	for _, c := range n.children {
		if node, ok := c.(*Node); ok && node.kind != syntax.WordKey && node.kind != syntax.QuotedKey {
			return node
		}
	}
	return nil
}

// Text concatenates the text of every token beneath n, reconstructing
// the exact source slice n spans.
func (n *Node) Text() string {
	buf := make([]byte, 0, n.rng.Len())
	var walk func(Element)
	walk = func(e Element) {
		switch v := e.(type) {
		case *Token:
			buf = append(buf, v.text...)
		case *Node:
			for _, c := range v.children {
				walk(c)
			}
		}
	}
	walk(n)
	return string(buf)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s@%d..%d", n.kind, n.rng.Start, n.rng.End)
}

// Dump renders n and its descendants as an indented multi-line tree,
// one Element per line. Used by cmd/mical's `dev` subcommand and by
// regression tests pinning a parse's exact shape.
func Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n, 0)
	return b.String()
}

func dump(b *strings.Builder, n *Node, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Fprintf(b, "%s%s\n", pad, n)
	for _, c := range n.children {
		switch v := c.(type) {
		case *Node:
			dump(b, v, indent+1)
		case *Token:
			fmt.Fprintf(b, "%s  %s\n", pad, v)
		}
	}
}

// Token is a terminal: a leaf carrying its own source text.
type Token struct {
	kind syntax.Kind
	rng  TextRange
	text string
}

func (t *Token) Kind() syntax.Kind { return t.kind }
func (t *Token) Range() TextRange { return t.rng }
func (t *Token) Text() string     { return t.text }

func (t *Token) String() string {
	return fmt.Sprintf("%s@%d..%d %q", t.kind, t.rng.Start, t.rng.End, t.text)
}

// SyntaxError is a parser diagnostic anchored to a zero-width position
// in the source (the byte offset where the parser noticed the problem).
type SyntaxError struct {
	Message string
	Range   TextRange
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d..%d", e.Message, e.Range.Start, e.Range.End)
}
