package config

import (
	"fmt"

	"github.com/mical-lang/mical/cst"
)

// Error is a problem encountered while evaluating an AST into a Config.
// Grounded on original_source/crates/config/src/error.rs.
type Error struct {
	// Range is the source range the problem is anchored to.
	Range cst.TextRange

	// Sequence is the offending `\X` text, set only for InvalidEscape.
	Sequence string

	kind errorKind
}

type errorKind uint8

const (
	// MissingSyntax: a required AST slot (key, value, token) was
	// absent. The parser should already have reported a syntax error
	// for this; this variant does not distinguish which slot.
	MissingSyntax errorKind = iota
	// InvalidEscape: an unrecognized or truncated `\X` escape was
	// found in a quoted string or quoted key.
	InvalidEscape
)

func missingSyntax(r cst.TextRange) Error {
	return Error{Range: r, kind: MissingSyntax}
}

func invalidEscape(r cst.TextRange, sequence string) Error {
	return Error{Range: r, Sequence: sequence, kind: InvalidEscape}
}

// IsMissingSyntax reports whether e was raised because a required AST
// slot was empty.
func (e Error) IsMissingSyntax() bool { return e.kind == MissingSyntax }

// IsInvalidEscape reports whether e was raised by an unrecognized or
// truncated escape sequence.
func (e Error) IsInvalidEscape() bool { return e.kind == InvalidEscape }

func (e Error) Error() string {
	switch e.kind {
	case InvalidEscape:
		return fmt.Sprintf("invalid escape sequence %q at %d..%d", e.Sequence, e.Range.Start, e.Range.End)
	default:
		return fmt.Sprintf("missing syntax element at %d..%d", e.Range.Start, e.Range.End)
	}
}
