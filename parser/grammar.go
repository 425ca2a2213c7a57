package parser

import "github.com/mical-lang/mical/syntax"

// sourceFile parses SourceFile := Shebang? Item* (§4.4). No TokenKind
// in this lexer's vocabulary represents a shebang line — original_source
// never defines one either (its own lexer has no Shebang variant) — so
// the "Shebang?" production is vacuous here; a source file beginning
// with `#!` is simply parsed as a Directive, since the `!...` run lexes
// as a WORD and item treats `#` followed by a WORD as a directive.
func sourceFile(p *Parser) {
	m := p.Start()
	for !p.AtEOF() {
		item(p)
	}
	m.Complete(p, syntax.SourceFile)
}

func isRestOfLineBlank(p *Parser, n int) bool {
	if p.NthAt(n, syntax.Newline) || p.NthAtEOF(n) {
		return true
	}
	return p.NthAt(n, syntax.Space) && (p.NthAt(n+1, syntax.Newline) || p.NthAtEOF(n+1))
}
