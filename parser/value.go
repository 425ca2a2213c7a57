package parser

import "github.com/mical-lang/mical/syntax"

var valueFirst = keyFirst.Union(syntax.NewTokenSet(syntax.Sharp))

// value dispatches on the leading token to one of the five value
// shapes (§4.6): QuotedString, BlockString/LineString (for `|`/`>`),
// Boolean, Integer, or the generic LineString fallback.
func value(p *Parser, indentLevel uint32) {
	k, _ := p.Current()
	switch k {
	case syntax.QuoteDouble, syntax.QuoteSingle:
		quotedValue(p, k)
	case syntax.Pipe, syntax.Greater:
		shift := 1
		if p.NthAt(shift, syntax.Plus) || p.NthAt(shift, syntax.Minus) {
			shift++
		}
		if isRestOfLineBlank(p, shift) {
			blockString(p, indentLevel)
		} else {
			lineString(p)
		}
	case syntax.True, syntax.False:
		if isRestOfLineBlank(p, 1) {
			boolean(p)
		} else {
			lineString(p)
		}
	case syntax.Numeral:
		if isRestOfLineBlank(p, 1) {
			integerUnsigned(p)
		} else {
			lineString(p)
		}
	case syntax.Minus, syntax.Plus:
		if p.NthAt(1, syntax.Numeral) && isRestOfLineBlank(p, 2) {
			integerSigned(p)
		} else {
			lineString(p)
		}
	default:
		lineString(p)
	}
}

func boolean(p *Parser) {
	m := p.Start()
	p.BumpAny() // true or false
	m.Complete(p, syntax.Boolean)
}

func integerUnsigned(p *Parser) {
	m := p.Start()
	p.Bump(syntax.Numeral)
	m.Complete(p, syntax.Integer)
}

func integerSigned(p *Parser) {
	m := p.Start()
	p.BumpAny() // - or +
	p.Bump(syntax.Numeral)
	m.Complete(p, syntax.Integer)
}

// lineString coalesces everything up to the next newline or EOF into a
// single STRING token. Also used by item.go's directive production.
func lineString(p *Parser) {
	m := p.Start()
	count := 0
	for !(p.NthAt(count, syntax.Newline) || p.NthAtEOF(count)) {
		count++
	}
	p.BumpRemap(syntax.String, count)
	m.Complete(p, syntax.LineString)
}

func quotedValue(p *Parser, quote syntax.Kind) {
	m := p.Start()
	p.Bump(quote)
	p.Bump(syntax.String)
	if !p.Eat(quote) {
		p.Error("missing closing quote")
	}
	m.Complete(p, syntax.QuotedString)
}

// blockStringHeader parses `|`/`>`, an optional chomp indicator, an
// optional single Space token, and the newline that ends the header
// line. Unlike original_source's header (which unconditionally bumps
// the newline), the trailing newline is only eaten, not required: per
// spec.md's own "blank rest of line" definition, a block string may
// legally be introduced on the last line of a file with no trailing
// newline at all.
func blockStringHeader(p *Parser) {
	m := p.Start()
	p.BumpAny() // | or >
	if p.At(syntax.Plus) {
		p.Bump(syntax.Plus)
	} else if p.At(syntax.Minus) {
		p.Bump(syntax.Minus)
	}
	p.Eat(syntax.Space)
	p.Eat(syntax.Newline)
	m.Complete(p, syntax.BlockStringHeader)
}

// blockString parses the body of a block string (§4.7): base-indent
// discovery, a boundary check against indentLevel, then per-line
// classification until the block ends.
//
// Per §4.7, the newline between two lines belongs to the block only if
// the block continues past it; the newline ending the block's last
// line is left for the surrounding item parser to consume, the same as
// every other value shape. finishLine decides this by looking past the
// not-yet-consumed newline before eating it.
func blockString(p *Parser, indentLevel uint32) {
	m := p.Start()

	blockStringHeader(p)

	baseIndent, hasContent := scanBaseIndent(p)
	if !hasContent || baseIndent <= indentLevel {
		m.Complete(p, syntax.BlockString)
		return
	}

	for {
		if p.AtEOF() {
			break
		}

		if p.At(syntax.Newline) {
			blockStringEmptyLine(p)
			if !finishLine(p, baseIndent, indentLevel) {
				break
			}
			continue
		}

		if p.At(syntax.Space) {
			lineIndent, _ := p.CurrentLen()

			if lineIndent >= baseIndent {
				p.BumpUpto(syntax.Space, baseIndent)

				var isBlank bool
				if p.At(syntax.Space) {
					isBlank = p.NthAt(1, syntax.Newline) || p.NthAtEOF(1)
				} else {
					isBlank = p.At(syntax.Newline) || p.AtEOF()
				}

				if isBlank {
					p.Eat(syntax.Space)
					blockStringEmptyLine(p)
				} else {
					blockStringContentLine(p)
				}
				if !finishLine(p, baseIndent, indentLevel) {
					break
				}
				continue
			}

			if lineIndent <= indentLevel {
				break
			}

			// indentLevel < lineIndent < baseIndent
			if p.NthAt(1, syntax.Newline) || p.NthAtEOF(1) {
				p.Bump(syntax.Space)
				blockStringEmptyLine(p)
				if !finishLine(p, baseIndent, indentLevel) {
					break
				}
				continue
			}

			p.Error("block string line has insufficient indentation")
			em := p.Start()
			p.Bump(syntax.Space)
			for !(p.At(syntax.Newline) || p.AtEOF()) {
				p.BumpAny()
			}
			em.Complete(p, syntax.Error)
			if !finishLine(p, baseIndent, indentLevel) {
				break
			}
			continue
		}

		// Non-space content at column 0 ends the block.
		break
	}

	m.Complete(p, syntax.BlockString)
}

// finishLine is called with the cursor sitting on the newline (or EOF)
// that ends a just-parsed block-string line. It classifies the single
// line immediately beyond that newline — the same classification the
// main loop itself uses — to decide whether the block continues. If it
// does, the newline is consumed and finishLine returns true; otherwise
// the newline is left untouched for the caller and finishLine returns
// false. A chain of several blank lines is walked one line at a time by
// repeated calls (one per iteration of the main loop), not skipped
// ahead in one hop: each blank line is itself within the block for as
// long as there is any further line after it.
func finishLine(p *Parser, baseIndent, indentLevel uint32) bool {
	if !blockContinuesPast(p, baseIndent, indentLevel) {
		return false
	}
	p.Eat(syntax.Newline)
	return true
}

// blockContinuesPast reports whether there is a line immediately after
// the newline currently at the cursor (offset 0) that is still within
// the block, per the same per-line rules the main loop dispatches on.
func blockContinuesPast(p *Parser, baseIndent, indentLevel uint32) bool {
	if p.NthAtEOF(0) || p.NthAtEOF(1) {
		return false
	}
	if p.NthAt(1, syntax.Newline) {
		// A blank line is always within the block; whether the block
		// continues past *it* is decided independently, next iteration.
		return true
	}
	if p.NthAt(1, syntax.Space) {
		indent, _ := p.NthLen(1)
		if indent >= baseIndent {
			return true
		}
		if indent <= indentLevel {
			return false
		}
		// indentLevel < indent < baseIndent: whitespace-only or
		// insufficiently-indented content — both are consumed as part
		// of the block (the latter as an ERROR line).
		return true
	}
	// Non-space content at column 0 ends the block.
	return false
}

// scanBaseIndent looks ahead from the position right after the header
// to find the indent of the first line with content, skipping blank
// and whitespace-only lines. The second return is false if EOF is
// reached before any content line.
func scanBaseIndent(p *Parser) (uint32, bool) {
	offset := 0
	for {
		if p.NthAtEOF(offset) {
			return 0, false
		}
		if p.NthAt(offset, syntax.Space) {
			indent, _ := p.NthLen(offset)
			offset++
			if p.NthAt(offset, syntax.Newline) || p.NthAtEOF(offset) {
				offset++
				continue
			}
			return indent, true
		}
		if p.NthAt(offset, syntax.Newline) {
			offset++
			continue
		}
		return 0, true
	}
}

// blockStringEmptyLine and blockStringContentLine build one line's node
// and leave the cursor on its trailing newline (or EOF): whether that
// newline belongs to the block is decided afterward by finishLine, per
// §4.7.
func blockStringEmptyLine(p *Parser) {
	m := p.Start()
	m.Complete(p, syntax.LineString)
}

func blockStringContentLine(p *Parser) {
	lineString(p)
}
