package ast

import (
	"github.com/mical-lang/mical/cst"
	"github.com/mical-lang/mical/syntax"
)

// Key is a WordKey or a QuotedKey.
type Key interface {
	isKey()
	Syntax() *cst.Node
}

func keyOf(parent *cst.Node) (Key, bool) {
	if n := parent.ChildNode(syntax.WordKey); n != nil {
		return WordKey{syntax: n}, true
	}
	if n := parent.ChildNode(syntax.QuotedKey); n != nil {
		return QuotedKey{syntax: n}, true
	}
	return nil, false
}

// WordKey is an unquoted key: a run of tokens coalesced up to the first
// space, tab, newline, or EOF.
type WordKey struct {
	syntax *cst.Node
}

func (k WordKey) isKey()           {}
func (k WordKey) Syntax() *cst.Node { return k.syntax }

// Word returns the key's single remapped WORD token, or false if the
// parser recorded no key text.
func (k WordKey) Word() (*cst.Token, bool) {
	tok := k.syntax.ChildToken(syntax.Word)
	return tok, tok != nil
}

// QuotedKey is a `"..."` or `'...'` key.
type QuotedKey struct {
	syntax *cst.Node
}

func (k QuotedKey) isKey()           {}
func (k QuotedKey) Syntax() *cst.Node { return k.syntax }

// String returns the quoted key's raw body token (escapes not yet
// decoded), or false if the parser recorded no body.
func (k QuotedKey) String() (*cst.Token, bool) {
	tok := k.syntax.ChildToken(syntax.String)
	return tok, tok != nil
}
