package config

import (
	"strings"

	"github.com/mical-lang/mical/ast"
	"github.com/mical-lang/mical/cst"
)

// entry is one (key, value) pair in insertion order.
type entry struct {
	key   textID
	value valueRaw
}

// evalContext walks an ast.SourceFile, accumulating interned entries
// and errors. The prefix is a plain Go string rebuilt on PrefixBlock
// entry/exit rather than original_source's JoinedStr/TemporaryString
// RAII helpers: those exist in Rust only to restore a shared buffer on
// scope exit via Drop, which Go has no equivalent of — a saved byte
// length plus a slice-back on return does the same job.
type evalContext struct {
	arena   textArena
	entries []entry
	errors  []Error
	prefix  string
}

func newEvalContext() *evalContext {
	return &evalContext{}
}

func evaluate(sourceFile ast.SourceFile) *evalContext {
	ctx := newEvalContext()
	for _, item := range sourceFile.Items() {
		ctx.evalItem(item)
	}
	return ctx
}

func (ctx *evalContext) evalItem(item ast.Item) {
	switch it := item.(type) {
	case ast.Entry:
		ctx.evalEntry(it)
	case ast.PrefixBlock:
		ctx.evalPrefixBlock(it)
	case ast.Directive:
		// Directives carry no evaluation semantics.
	}
}

func (ctx *evalContext) evalEntry(e ast.Entry) {
	key, ok := e.Key()
	if !ok {
		ctx.errors = append(ctx.errors, missingSyntax(e.Syntax().Range()))
		return
	}
	val, ok := e.Value()
	if !ok {
		ctx.errors = append(ctx.errors, missingSyntax(e.Syntax().Range()))
		return
	}

	keyText, ok := ctx.evalKey(key)
	if !ok {
		return
	}
	fullKey := keyText
	if ctx.prefix != "" {
		fullKey = ctx.prefix + keyText
	}
	keyID := ctx.arena.alloc(fullKey)

	raw, ok := ctx.evalValue(val)
	if !ok {
		return
	}
	ctx.entries = append(ctx.entries, entry{key: keyID, value: raw})
}

func (ctx *evalContext) evalPrefixBlock(b ast.PrefixBlock) {
	key, ok := b.Key()
	if !ok {
		ctx.errors = append(ctx.errors, missingSyntax(b.Syntax().Range()))
		return
	}
	keyText, ok := ctx.evalKey(key)
	if !ok {
		return
	}

	prevLen := len(ctx.prefix)
	ctx.prefix += keyText

	for _, item := range b.Items() {
		ctx.evalItem(item)
	}

	ctx.prefix = ctx.prefix[:prevLen]
}

func (ctx *evalContext) evalKey(key ast.Key) (string, bool) {
	switch k := key.(type) {
	case ast.WordKey:
		tok, ok := k.Word()
		if !ok {
			ctx.errors = append(ctx.errors, missingSyntax(k.Syntax().Range()))
			return "", false
		}
		return tok.Text(), true
	case ast.QuotedKey:
		tok, ok := k.String()
		if !ok {
			ctx.errors = append(ctx.errors, missingSyntax(k.Syntax().Range()))
			return "", false
		}
		return ctx.resolveEscapes(tok), true
	default:
		return "", false
	}
}

func (ctx *evalContext) evalValue(val ast.Value) (valueRaw, bool) {
	switch v := val.(type) {
	case ast.Boolean:
		kind, ok := v.Kind()
		if !ok {
			ctx.errors = append(ctx.errors, missingSyntax(v.Syntax().Range()))
			return valueRaw{}, false
		}
		return valueRaw{kind: Bool, boolVal: kind == ast.True}, true

	case ast.Integer:
		text, ok := ctx.evalInteger(v)
		if !ok {
			return valueRaw{}, false
		}
		return valueRaw{kind: Integer, text: ctx.arena.alloc(text)}, true

	case ast.LineString:
		text := ""
		if tok, ok := v.String(); ok {
			text = tok.Text()
		}
		return valueRaw{kind: String, text: ctx.arena.alloc(text)}, true

	case ast.QuotedString:
		text := ""
		if tok, ok := v.String(); ok {
			text = ctx.resolveEscapes(tok)
		}
		return valueRaw{kind: String, text: ctx.arena.alloc(text)}, true

	case ast.BlockString:
		text := ctx.evalBlockString(v)
		return valueRaw{kind: String, text: ctx.arena.alloc(text)}, true

	default:
		return valueRaw{}, false
	}
}

func (ctx *evalContext) evalInteger(i ast.Integer) (string, bool) {
	var b strings.Builder
	if sign, ok := i.Sign(); ok {
		b.WriteString(sign.Text())
	}
	numeral, ok := i.Numeral()
	if !ok {
		ctx.errors = append(ctx.errors, missingSyntax(i.Syntax().Range()))
		return "", false
	}
	b.WriteString(numeral.Text())
	return b.String(), true
}

func (ctx *evalContext) evalBlockString(bs ast.BlockString) string {
	header, hasHeader := bs.Header()
	folded := false
	chomp := ast.ChompClip
	if hasHeader {
		if style, ok := header.Style(); ok {
			folded = style == ast.Folded
		}
		if tok, ok := header.ChompIndicator(); ok {
			if tok.Text() == "-" {
				chomp = ast.ChompStrip
			} else {
				chomp = ast.ChompKeep
			}
		}
	}

	lines := bs.Lines()
	texts := make([]*string, len(lines))
	for i, line := range lines {
		tok, ok := line.String()
		if !ok {
			texts[i] = nil
			continue
		}
		t := tok.Text()
		texts[i] = &t
	}

	if len(texts) == 0 {
		return ""
	}

	var raw string
	if folded {
		raw = foldLines(texts)
	} else {
		raw = literalLines(texts)
	}
	return applyChomp(raw, chomp)
}

// literalLines joins lines with '\n', preserving them as-is (literal
// `|` style), and appends a trailing '\n'.
func literalLines(lines []*string) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if line != nil {
			b.WriteString(*line)
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// foldLines joins adjacent content lines with a single space (folded
// `>` style); a blank line still produces a '\n' in the output.
func foldLines(lines []*string) string {
	var b strings.Builder
	prevWasContent := false
	for _, line := range lines {
		if line != nil {
			if prevWasContent {
				b.WriteByte(' ')
			}
			b.WriteString(*line)
			prevWasContent = true
		} else {
			b.WriteByte('\n')
			prevWasContent = false
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func applyChomp(raw string, chomp ast.Chomp) string {
	switch chomp {
	case ast.ChompStrip:
		return strings.TrimRight(raw, "\n")
	case ast.ChompKeep:
		return raw
	default: // Clip
		return strings.TrimRight(raw, "\n") + "\n"
	}
}

// resolveEscapes decodes `\" \' \\ \n \r \t` in text, which is the raw
// body of a quoted key or quoted string (not yet unescaped). An
// unrecognized `\X` records an InvalidEscape error but still emits X,
// so decoding continues past it rather than aborting; a trailing lone
// `\` records an error and contributes nothing. Per spec.md's scenario
// 6 (`"ab\xcd"` → `abxcd` plus one InvalidEscape), which matches
// original_source's eval/unescape.rs rather than eval.rs's own
// resolve_escapes (which aborts the whole decode on the first invalid
// escape) — see DESIGN.md.
func (ctx *evalContext) resolveEscapes(tok *cst.Token) string {
	text := tok.Text()
	if text == "" || !strings.Contains(text, "\\") {
		return text
	}

	base := tok.Range().Start
	var b strings.Builder
	b.Grow(len(text))

	runes := []rune(text)
	byteOffset := 0
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		cLen := len(string(c))
		if c != '\\' {
			b.WriteRune(c)
			byteOffset += cLen
			continue
		}
		if i+1 >= len(runes) {
			r := cst.TextRange{Start: base + uint32(byteOffset), End: base + uint32(byteOffset) + 1}
			ctx.errors = append(ctx.errors, invalidEscape(r, "\\"))
			byteOffset += cLen
			continue
		}
		escByteLen := cLen
		next := runes[i+1]
		i++
		nextLen := len(string(next))
		switch next {
		case '"', '\'', '\\':
			b.WriteRune(next)
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			seqLen := uint32(escByteLen + nextLen)
			r := cst.TextRange{Start: base + uint32(byteOffset), End: base + uint32(byteOffset) + seqLen}
			ctx.errors = append(ctx.errors, invalidEscape(r, "\\"+string(next)))
			b.WriteRune(next)
		}
		byteOffset += escByteLen + nextLen
	}

	return b.String()
}
