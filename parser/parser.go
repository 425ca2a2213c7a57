// Package parser implements the event-driven recursive-descent grammar
// driver for Mical source text: it remaps a lexer token stream into a
// parser-friendly one, walks it with the grammar in grammar.go/item.go/
// key.go/value.go, and replays the resulting event log into a cst.Node.
package parser

import (
	"github.com/mical-lang/mical/cst"
	"github.com/mical-lang/mical/lexer"
	"github.com/mical-lang/mical/syntax"
)

// Parser holds the remapped (kind, length) arrays, a position cursor,
// and the event log the grammar functions append to. Grounded on
// original_source's Parser (crates/parser/src/parser.rs).
type Parser struct {
	kinds []syntax.Kind
	lens  []uint32
	pos   int
	events eventLog

	openMarkers int
}

// newParser remaps src's lexer tokens per §4.2: Numeral{IsEmpty} demotes
// to Word; String{IsTerminated,Quote} splits into an opening quote
// token, a STRING body token, and — if terminated — a closing quote
// token.
func newParser(src []byte) *Parser {
	toks := lexer.Tokenize(src, nil)
	kinds := make([]syntax.Kind, 0, len(toks)+2)
	lens := make([]uint32, 0, len(toks)+2)
	push := func(k syntax.Kind, l uint32) {
		kinds = append(kinds, k)
		lens = append(lens, l)
	}
	for _, t := range toks {
		switch t.Kind {
		case lexer.Word:
			push(syntax.Word, t.Len)
		case lexer.True:
			push(syntax.True, t.Len)
		case lexer.False:
			push(syntax.False, t.Len)
		case lexer.Tab:
			push(syntax.Tab, t.Len)
		case lexer.Newline:
			push(syntax.Newline, t.Len)
		case lexer.Space:
			push(syntax.Space, t.Len)
		case lexer.OpenBrace:
			push(syntax.OpenBrace, t.Len)
		case lexer.CloseBrace:
			push(syntax.CloseBrace, t.Len)
		case lexer.Greater:
			push(syntax.Greater, t.Len)
		case lexer.Minus:
			push(syntax.Minus, t.Len)
		case lexer.Plus:
			push(syntax.Plus, t.Len)
		case lexer.Pipe:
			push(syntax.Pipe, t.Len)
		case lexer.Sharp:
			push(syntax.Sharp, t.Len)
		case lexer.Numeral:
			if t.IsEmpty {
				push(syntax.Word, t.Len)
			} else {
				push(syntax.Numeral, t.Len)
			}
		case lexer.String:
			quoteKind := syntax.QuoteDouble
			if t.Quote == lexer.Single {
				quoteKind = syntax.QuoteSingle
			}
			push(quoteKind, 1)
			if t.IsTerminated {
				push(syntax.String, t.Len-2)
				push(quoteKind, 1)
			} else {
				push(syntax.String, t.Len-1)
			}
		}
	}
	return &Parser{kinds: kinds, lens: lens}
}

func (p *Parser) Current() (syntax.Kind, bool) {
	if p.pos >= len(p.kinds) {
		return 0, false
	}
	return p.kinds[p.pos], true
}

func (p *Parser) CurrentLen() (uint32, bool) {
	if p.pos >= len(p.lens) {
		return 0, false
	}
	return p.lens[p.pos], true
}

func (p *Parser) At(kind syntax.Kind) bool {
	k, ok := p.Current()
	return ok && k == kind
}

func (p *Parser) AtTS(set syntax.TokenSet) bool {
	k, ok := p.Current()
	return ok && set.Contains(k)
}

func (p *Parser) AtEOF() bool {
	return p.pos >= len(p.kinds)
}

func (p *Parser) NthAt(n int, kind syntax.Kind) bool {
	i := p.pos + n
	return i < len(p.kinds) && p.kinds[i] == kind
}

func (p *Parser) NthAtTS(n int, set syntax.TokenSet) bool {
	i := p.pos + n
	return i < len(p.kinds) && set.Contains(p.kinds[i])
}

func (p *Parser) NthAtEOF(n int) bool {
	return p.pos+n >= len(p.kinds)
}

func (p *Parser) NthLen(n int) (uint32, bool) {
	i := p.pos + n
	if i >= len(p.lens) {
		return 0, false
	}
	return p.lens[i], true
}

// Eat emits a Token event and advances if the current kind matches;
// it reports whether it fired.
func (p *Parser) Eat(kind syntax.Kind) bool {
	if !p.At(kind) {
		return false
	}
	length, _ := p.CurrentLen()
	p.events.pushToken(kind, length)
	p.pos++
	return true
}

// EatUpto splits the current token: it emits a prefix of the requested
// length and keeps the remainder as the current token. It only fires
// when the current kind matches and its length is at least len. Used
// exclusively to strip exactly base_indent leading spaces from a
// block-string content line.
func (p *Parser) EatUpto(kind syntax.Kind, length uint32) bool {
	if !p.At(kind) {
		return false
	}
	current, _ := p.CurrentLen()
	if current < length {
		return false
	}
	p.events.pushToken(kind, length)
	if current > length {
		p.lens[p.pos] -= length
	} else {
		p.pos++
	}
	return true
}

// Bump asserts Eat succeeds; a grammar function calling it has already
// checked At(kind) (or an at_ts it implies).
func (p *Parser) Bump(kind syntax.Kind) {
	if !p.Eat(kind) {
		panic("parser: bump of absent token " + kind.String())
	}
}

func (p *Parser) BumpUpto(kind syntax.Kind, length uint32) {
	if !p.EatUpto(kind, length) {
		panic("parser: bump_upto of absent or too-short token " + kind.String())
	}
}

// BumpAny emits whatever token is current, unconditionally.
func (p *Parser) BumpAny() {
	kind, ok := p.Current()
	if !ok {
		panic("parser: bump_any at EOF")
	}
	length, _ := p.CurrentLen()
	p.events.pushToken(kind, length)
	p.pos++
}

// BumpRemap coalesces the next n tokens into a single emitted token of
// the given kind, whose length is their summed length. Used to form
// WORD_KEY, LINE_STRING, and STRING runs.
func (p *Parser) BumpRemap(kind syntax.Kind, n int) {
	if p.pos+n > len(p.kinds) {
		panic("parser: bump_remap past EOF")
	}
	var total uint32
	for _, l := range p.lens[p.pos : p.pos+n] {
		total += l
	}
	p.events.pushToken(kind, total)
	p.pos += n
}

// Error appends an Error event anchored at the parser's current
// position (a zero-width range at the current byte offset, applied
// when the event log is replayed).
func (p *Parser) Error(message string) {
	p.events.pushError(message)
}

// Start reserves a tombstone event; the returned Marker must
// eventually be completed with the node's real kind.
func (p *Parser) Start() Marker {
	pos := p.events.pushTombstone()
	p.openMarkers++
	return Marker{pos: pos}
}

// Marker is a reservation for a node whose kind is decided only after
// its contents have been parsed. Go has no destructor to enforce
// "a dropped, uncompleted Marker is a programming error" at the point
// of the leak; instead Parse asserts that every Marker opened during a
// parse was completed before the event log is replayed.
type Marker struct {
	pos int
}

// Complete replaces the reserved tombstone with StartNode(kind) and
// appends a matching FinishNode.
func (m Marker) Complete(p *Parser, kind syntax.Kind) {
	p.events.replaceTombstone(m.pos, kind)
	p.events.pushFinishNode()
	p.openMarkers--
}

// Parse lexes, parses, and tree-builds src, returning the resulting
// CST root and any syntax errors collected along the way.
func Parse(src []byte) (*cst.Node, []cst.SyntaxError) {
	p := newParser(src)
	sourceFile(p)
	if p.openMarkers != 0 {
		panic("parser: a Marker was left uncompleted")
	}

	b := cst.NewBuilder(string(src))
	for _, ev := range p.events.events {
		switch ev.kind {
		case eventStartNode:
			b.StartNode(ev.sk)
		case eventFinishNode:
			b.FinishNode()
		case eventToken:
			b.Token(ev.sk, ev.len)
		case eventError:
			b.Error(ev.msg)
		case eventTombstone:
			panic("parser: tombstone survived to replay")
		}
	}
	return b.Finish()
}
