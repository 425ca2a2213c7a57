package lexer

import "unicode/utf8"

// Lexer scans Mical source bytes into a lazy sequence of Tokens. It holds
// a single rune of lookahead and never allocates: Next returns a Token by
// value and the caller is responsible for slicing the corresponding text
// out of the original source using the running byte offset.
type Lexer struct {
	src []byte
	pos int
}

// New creates a Lexer over src. The lexer does not copy src; it must
// outlive the Lexer.
func New(src []byte) *Lexer {
	return &Lexer{src: src}
}

// NewString creates a Lexer over a string. The string is converted to a
// byte slice, which copies it.
func NewString(src string) *Lexer {
	return &Lexer{src: []byte(src)}
}

// Reset reuses the Lexer for a new source, avoiding a fresh allocation.
func (l *Lexer) Reset(src []byte) {
	l.src = src
	l.pos = 0
}

// Done reports whether the cursor has reached the end of the source.
func (l *Lexer) Done() bool { return l.pos >= len(l.src) }

// peek returns the rune at the cursor without consuming it, and its
// width in bytes. It returns (0, 0) at EOF.
func (l *Lexer) peek() (rune, int) {
	if l.pos >= len(l.src) {
		return 0, 0
	}
	b := l.src[l.pos]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(l.src[l.pos:])
}

func isTerminator(r rune) bool {
	return r == '\t' || r == '\n' || r == ' '
}

// Next returns the next Token from the source, or false once the cursor
// has consumed every byte.
func (l *Lexer) Next() (Token, bool) {
	if l.pos >= len(l.src) {
		return Token{}, false
	}
	start := l.pos
	r, w := l.peek()
	l.pos += w

	var tok Token
	switch {
	case r == 't':
		tok = l.trueOrWord(start)
	case r == 'f':
		tok = l.falseOrWord(start)
	case r == '\t':
		l.eatWhile('\t')
		tok = Token{Kind: Tab}
	case r == '\n':
		tok = Token{Kind: Newline}
	case r == '\r':
		if next, nw := l.peek(); next == '\n' {
			l.pos += nw
		}
		tok = Token{Kind: Newline}
	case r == ' ':
		l.eatWhile(' ')
		tok = Token{Kind: Space}
	case r == '{':
		tok = Token{Kind: OpenBrace}
	case r == '}':
		tok = Token{Kind: CloseBrace}
	case r == '>':
		tok = Token{Kind: Greater}
	case r == '-':
		tok = Token{Kind: Minus}
	case r == '+':
		tok = Token{Kind: Plus}
	case r == '|':
		tok = Token{Kind: Pipe}
	case r == '#':
		tok = Token{Kind: Sharp}
	case r == '"':
		tok = l.string(Double)
	case r == '\'':
		tok = l.string(Single)
	case r >= '0' && r <= '9':
		tok = l.numeralOrWord(start, r)
	default:
		tok = l.word()
	}
	tok.Len = uint32(l.pos - start)
	return tok, true
}

// eatWhile consumes further runs of the exact byte b (tabs/spaces only —
// both are single-byte ASCII, so a byte comparison is sufficient and
// avoids a rune decode per iteration).
func (l *Lexer) eatWhile(b byte) {
	for l.pos < len(l.src) && l.src[l.pos] == b {
		l.pos++
	}
}

func (l *Lexer) trueOrWord(start int) Token {
	if l.matchAndConsume("rue") {
		if next, _ := l.peek(); l.pos >= len(l.src) || isTerminator(next) {
			return Token{Kind: True}
		}
	}
	l.pos = start + 1
	return l.word()
}

func (l *Lexer) falseOrWord(start int) Token {
	if l.matchAndConsume("alse") {
		if next, _ := l.peek(); l.pos >= len(l.src) || isTerminator(next) {
			return Token{Kind: False}
		}
	}
	l.pos = start + 1
	return l.word()
}

// matchAndConsume advances the cursor past rest if it appears verbatim
// starting at the cursor, consuming it; otherwise the cursor is left
// untouched and false is returned.
func (l *Lexer) matchAndConsume(rest string) bool {
	if l.pos+len(rest) > len(l.src) {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if l.src[l.pos+i] != rest[i] {
			return false
		}
	}
	l.pos += len(rest)
	return true
}

// string scans the body of a quoted string, given that the opening quote
// byte has already been consumed. It stops at EOF, at any newline (a
// backslash right before it does not escape it), or at the matching
// unescaped closing quote.
func (l *Lexer) string(q Quote) Token {
	delim := q.Byte()
	terminated := false
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		switch {
		case b == '\\':
			l.pos++
			if l.pos < len(l.src) && (l.src[l.pos] == delim || l.src[l.pos] == '\\') {
				l.pos++
			}
		case b == '\n' || b == '\r':
			return Token{Kind: String, IsTerminated: false, Quote: q}
		case b == delim:
			l.pos++
			terminated = true
			return Token{Kind: String, IsTerminated: terminated, Quote: q}
		default:
			_, w := l.peek()
			if w == 0 {
				w = 1
			}
			l.pos += w
		}
	}
	return Token{Kind: String, IsTerminated: terminated, Quote: q}
}

// numeralOrWord scans a numeral starting at firstDigit (already
// consumed). If the digit run is immediately followed by EOF or a
// terminator it is emitted as a Numeral; otherwise it falls through into
// word mode, folding the already-consumed digits into the surrounding
// word.
func (l *Lexer) numeralOrWord(start int, firstDigit rune) Token {
	radix := Decimal
	var hasDigits bool

	if firstDigit == '0' {
		next, w := l.peek()
		switch next {
		case 'b':
			radix = Binary
			l.pos += w
			hasDigits = l.eatDecimalDigits()
		case 'o':
			radix = Octal
			l.pos += w
			hasDigits = l.eatDecimalDigits()
		case 'x':
			radix = Hexadecimal
			l.pos += w
			hasDigits = l.eatHexDigits()
		case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '_':
			l.eatDecimalDigits()
			hasDigits = true // the leading '0' is itself a digit
		default:
			hasDigits = true // single '0'
		}
	} else {
		l.eatDecimalDigits()
		hasDigits = true // firstDigit is itself a digit
	}

	next, _ := l.peek()
	if l.pos >= len(l.src) || isTerminator(next) {
		return Token{Kind: Numeral, Radix: radix, IsEmpty: !hasDigits}
	}
	l.pos = start
	return l.word()
}

func (l *Lexer) eatDecimalDigits() bool {
	has := false
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == '_' {
			l.pos++
			continue
		}
		if b >= '0' && b <= '9' {
			has = true
			l.pos++
			continue
		}
		break
	}
	return has
}

func (l *Lexer) eatHexDigits() bool {
	has := false
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == '_' {
			l.pos++
			continue
		}
		if (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') {
			has = true
			l.pos++
			continue
		}
		break
	}
	return has
}

// word consumes everything up to the next tab/newline/space or EOF.
func (l *Lexer) word() Token {
	for l.pos < len(l.src) {
		b := l.src[l.pos]
		if b == '\t' || b == '\n' || b == ' ' {
			break
		}
		if b < utf8.RuneSelf {
			l.pos++
			continue
		}
		_, w := utf8.DecodeRune(l.src[l.pos:])
		l.pos += w
	}
	return Token{Kind: Word}
}

// Tokenize lexes every token of src into buf (reusing its backing array
// when possible) and returns the resulting slice.
func Tokenize(src []byte, buf []Token) []Token {
	buf = buf[:0]
	l := New(src)
	for {
		tok, ok := l.Next()
		if !ok {
			break
		}
		buf = append(buf, tok)
	}
	return buf
}
