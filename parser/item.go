package parser

import "github.com/mical-lang/mical/syntax"

// item parses one Item: blank lines are skipped, then a Directive,
// Comment, Entry, or PrefixBlock is recognized from the leading
// indent and key. Grounded on original_source's grammar/item.rs.
func item(p *Parser) {
	for p.Eat(syntax.Newline) {
	}
	if p.AtEOF() {
		return
	}

	if p.At(syntax.Sharp) {
		if p.NthAt(1, syntax.Word) {
			directive(p)
		} else {
			comment(p)
		}
		return
	}

	var indentLevel uint32
	if p.At(syntax.Space) {
		indentLevel, _ = p.CurrentLen()
		p.Bump(syntax.Space)
	}
	if p.At(syntax.Tab) {
		p.Error("tab indent is not allowed, skipping this line")
		m := p.Start()
		skipToEndOfLine(p)
		m.Complete(p, syntax.Error)
		return
	}

	if p.At(syntax.Sharp) {
		comment(p)
		return
	}

	entryOrPrefixBlock(p, indentLevel)
}

func directive(p *Parser) {
	m := p.Start()
	p.Bump(syntax.Sharp)
	p.Bump(syntax.Word)
	lineString(p)
	m.Complete(p, syntax.Directive)
}

func comment(p *Parser) {
	m := p.Start()
	for {
		k, ok := p.Current()
		if !ok || k == syntax.Newline {
			break
		}
		p.BumpAny()
	}
	m.Complete(p, syntax.Comment)
}

func entryOrPrefixBlock(p *Parser, indentLevel uint32) {
	if !p.AtTS(keyFirst) {
		p.Error("expected a key")
		m := p.Start()
		skipToEndOfLine(p)
		m.Complete(p, syntax.Error)
		return
	}
	m := p.Start()
	key(p)

	if p.At(syntax.Newline) || p.AtEOF() {
		p.Error("missing value for the key")
		m.Complete(p, syntax.Entry)
		return
	}

	p.Eat(syntax.Space)
	if p.At(syntax.Tab) {
		p.Error("tab separating is not allowed")
		em := p.Start()
		p.Bump(syntax.Tab)
		em.Complete(p, syntax.Error)
	}

	if p.At(syntax.OpenBrace) && p.NthAt(1, syntax.Newline) {
		prefixBlock(p, m)
	} else {
		entry(p, m, indentLevel)
	}
}

func prefixBlock(p *Parser, m Marker) {
	p.Bump(syntax.OpenBrace)
	p.Bump(syntax.Newline)

	for {
		for p.Eat(syntax.Newline) {
		}
		if p.AtEOF() {
			p.Error("missing closing '}' for prefix block")
			break
		}
		if p.At(syntax.CloseBrace) && (p.NthAt(1, syntax.Newline) || p.NthAtEOF(1)) {
			p.Bump(syntax.CloseBrace)
			p.Eat(syntax.Newline)
			break
		}
		item(p)
	}

	m.Complete(p, syntax.PrefixBlock)
}

func entry(p *Parser, m Marker, indentLevel uint32) {
	if p.AtTS(valueFirst) {
		value(p, indentLevel)
	}

	p.Eat(syntax.Space)

	if !(p.At(syntax.Newline) || p.AtEOF()) {
		p.Error("unexpected token after value")
		em := p.Start()
		skipToEndOfLine(p)
		em.Complete(p, syntax.Error)
	}

	m.Complete(p, syntax.Entry)
}

func skipToEndOfLine(p *Parser) {
	for !(p.At(syntax.Newline) || p.AtEOF()) {
		p.BumpAny()
	}
}
