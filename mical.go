// Package mical is a small configuration-language compiler front end:
// a lexer, an event-driven recursive-descent parser, a lossless CST, a
// typed AST view, and an evaluator that produces a queryable Config
// store. This package re-exports the pieces most callers need so they
// don't have to import lexer/parser/cst/ast/config individually.
package mical

import (
	"github.com/mical-lang/mical/ast"
	"github.com/mical-lang/mical/config"
	"github.com/mical-lang/mical/cst"
	"github.com/mical-lang/mical/parser"
)

// Re-export core types so callers only import this package.
type (
	Node        = cst.Node
	Token       = cst.Token
	SyntaxError = cst.SyntaxError
	SourceFile  = ast.SourceFile
	Config      = config.Config
	ConfigError = config.Error
	Value       = config.Value
	ValueKind   = config.ValueKind
	Entry       = config.Entry
	KV          = config.KV
)

const (
	Bool    = config.Bool
	Integer = config.Integer
	String  = config.String
)

// Parse lexes and parses src, returning the resulting CST root and any
// syntax errors collected along the way.
func Parse(src []byte) (*Node, []SyntaxError) {
	return parser.Parse(src)
}

// ParseString is Parse for a string source.
func ParseString(src string) (*Node, []SyntaxError) {
	return parser.Parse([]byte(src))
}

// Load parses src and evaluates it into a Config in one step. Syntax
// errors and evaluation errors are both surfaced, in separate slices.
func Load(src []byte) (*Config, []SyntaxError, []ConfigError) {
	root, syntaxErrors := parser.Parse(src)
	sourceFile := ast.NewSourceFile(root)
	cfg, evalErrors := config.FromSourceFile(sourceFile)
	return cfg, syntaxErrors, evalErrors
}

// LoadString is Load for a string source.
func LoadString(src string) (*Config, []SyntaxError, []ConfigError) {
	return Load([]byte(src))
}

// FromKVEntries builds a Config directly from a fixed list of
// key/value pairs, without going through the parser or evaluator.
func FromKVEntries(items []KV) *Config {
	return config.FromKVEntries(items)
}
