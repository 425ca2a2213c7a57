// Package ast is a thin typed wrapper over cst.Node. It exposes
// grammar-level accessors (SourceFile→Items→Entry/PrefixBlock/Directive;
// Key→Word/Quoted; Value→Boolean/Integer/LineString/QuotedString/
// BlockString; BlockString→Header/Lines) instead of making callers walk
// the CST by hand. original_source's own ast.rs was generated by a
// macro and is not part of the retrieval pack; these accessors are
// authored fresh from spec.md's AST description, cross-checked against
// the access patterns eval.rs exercises (ast::Item::Entry/PrefixBlock,
// ast::Key::Word/Quoted, ast::Value's five variants, ast::Integer::sign
// and numeral, ast::BlockString::header and lines).
package ast

import (
	"github.com/mical-lang/mical/cst"
	"github.com/mical-lang/mical/syntax"
)

// SourceFile is the root of a parsed document.
type SourceFile struct {
	Syntax *cst.Node
}

// NewSourceFile wraps a root cst.Node. Panics if n is nil or not a
// SourceFile node: callers always obtain n from parser.Parse, which
// guarantees the root is a SourceFile.
func NewSourceFile(n *cst.Node) SourceFile {
	if n == nil || n.Kind() != syntax.SourceFile {
		panic("ast: NewSourceFile given a non-SourceFile node")
	}
	return SourceFile{Syntax: n}
}

// Items returns every Entry, PrefixBlock, and Directive child, in
// source order. Comment and Error nodes carry no semantic content and
// are skipped.
func (f SourceFile) Items() []Item {
	return items(f.Syntax)
}

func items(parent *cst.Node) []Item {
	var out []Item
	for _, c := range parent.Children() {
		node, ok := c.(*cst.Node)
		if !ok {
			continue
		}
		if it := castItem(node); it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Item is one of Entry, PrefixBlock, or Directive.
type Item interface {
	isItem()
	Syntax() *cst.Node
}

func castItem(n *cst.Node) Item {
	switch n.Kind() {
	case syntax.Entry:
		return Entry{syntax: n}
	case syntax.PrefixBlock:
		return PrefixBlock{syntax: n}
	case syntax.Directive:
		return Directive{syntax: n}
	default:
		return nil
	}
}

// Entry is a single `key value` line.
type Entry struct {
	syntax *cst.Node
}

func (e Entry) isItem()          {}
func (e Entry) Syntax() *cst.Node { return e.syntax }

// Key returns the entry's key node, or false if the parser recorded no
// key (a syntax error already reported this upstream).
func (e Entry) Key() (Key, bool) {
	return keyOf(e.syntax)
}

// Value returns the entry's value node, or false if the parser recorded
// no value.
func (e Entry) Value() (Value, bool) {
	return valueOf(e.syntax)
}

// PrefixBlock is `key { ... }`: every item nested inside shares key as
// a key prefix.
type PrefixBlock struct {
	syntax *cst.Node
}

func (b PrefixBlock) isItem()          {}
func (b PrefixBlock) Syntax() *cst.Node { return b.syntax }

func (b PrefixBlock) Key() (Key, bool) {
	return keyOf(b.syntax)
}

func (b PrefixBlock) Items() []Item {
	return items(b.syntax)
}

// Directive is a `#name rest-of-line` item. The evaluator ignores
// directives entirely, and no code in this module calls Name or Rest.
type Directive struct {
	syntax *cst.Node
}

func (d Directive) isItem()          {}
func (d Directive) Syntax() *cst.Node { return d.syntax }

// Name returns the directive's name token (the WORD immediately after
// `#`), or false if absent.
func (d Directive) Name() (*cst.Token, bool) {
	tok := d.syntax.ChildToken(syntax.Word)
	return tok, tok != nil
}

// Rest returns the directive's trailing LineString value (everything
// after the name, including the separating space), or false if the
// node has none. The parser always records one, so a directive with no
// body text yields a LineString with a zero-length token.
func (d Directive) Rest() (LineString, bool) {
	n := d.syntax.ChildNode(syntax.LineString)
	if n == nil {
		return LineString{}, false
	}
	return LineString{syntax: n}, true
}
