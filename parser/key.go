package parser

import "github.com/mical-lang/mical/syntax"

var keyFirst = syntax.NewTokenSet(
	syntax.Word, syntax.Numeral, syntax.True, syntax.False,
	syntax.Minus, syntax.Plus, syntax.Pipe, syntax.Greater,
	syntax.QuoteDouble, syntax.QuoteSingle, syntax.OpenBrace, syntax.CloseBrace,
)

// keyLast is { space, tab, newline }; EOF is checked separately at
// every call site since TokenSet can't represent "no token".
var keyLast = syntax.NewTokenSet(syntax.Space, syntax.Newline, syntax.Tab)

// key parses a WordKey or QuotedKey, dispatching on the leading token.
func key(p *Parser) {
	k, _ := p.Current()
	if k == syntax.QuoteDouble || k == syntax.QuoteSingle {
		quotedKey(p, k)
	} else {
		wordKey(p)
	}
}

func wordKey(p *Parser) {
	m := p.Start()
	count := 0
	for !(p.NthAtTS(count, keyLast) || p.NthAtEOF(count)) {
		count++
	}
	p.BumpRemap(syntax.Word, count)
	m.Complete(p, syntax.WordKey)
}

func quotedKey(p *Parser, quote syntax.Kind) {
	m := p.Start()

	p.Bump(quote)
	p.Bump(syntax.String)

	if !p.Eat(quote) {
		p.Error("missing closing quote")
	}

	if !(p.AtTS(keyLast) || p.AtEOF()) {
		p.Error("unexpected token after quoted key")
		em := p.Start()
		for !(p.AtTS(keyLast) || p.AtEOF()) {
			p.BumpAny()
		}
		em.Complete(p, syntax.Error)
	}

	m.Complete(p, syntax.QuotedKey)
}
