// Package syntax defines the syntax-kind vocabulary shared by the lexer,
// parser, and CST: a single-byte Kind enum small enough to pack into a
// 64-bit TokenSet bitmask, plus the node kinds the parser's grammar
// produces on top of the promoted token kinds.
package syntax

// Kind tags every token and node in the tree. It deliberately stays
// under 64 variants so a TokenSet can address it with one bit per kind.
type Kind uint8

const (
	// Token kinds, promoted from lexer.Kind by the parser's remapping
	// step (§4.2): Numeral with IsEmpty demotes to Word, and String
	// splits into quote/body/quote.
	Word Kind = iota
	Numeral
	True
	False
	Tab
	Newline
	Space
	OpenBrace  // {
	CloseBrace // }
	Greater    // >
	Minus      // -
	Plus       // +
	Pipe       // |
	Sharp      // #
	String     // the body of a quoted string (quotes stripped), or a line string's text
	QuoteDouble
	QuoteSingle

	// Node kinds, built exclusively by the grammar in package parser.
	SourceFile
	Directive
	Comment
	Entry
	PrefixBlock
	Boolean
	Integer
	LineString
	QuotedString
	BlockString
	BlockStringHeader
	WordKey
	QuotedKey
	Error

	kindCount
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

var kindNames = [...]string{
	Word: "WORD", Numeral: "NUMERAL", True: "TRUE", False: "FALSE",
	Tab: "TAB", Newline: "NEWLINE", Space: "SPACE",
	OpenBrace: "{", CloseBrace: "}", Greater: ">", Minus: "-", Plus: "+", Pipe: "|", Sharp: "#",
	String: "STRING", QuoteDouble: `"`, QuoteSingle: "'",

	SourceFile: "SOURCE_FILE", Directive: "DIRECTIVE", Comment: "COMMENT",
	Entry: "ENTRY", PrefixBlock: "PREFIX_BLOCK",
	Boolean: "BOOLEAN", Integer: "INTEGER",
	LineString: "LINE_STRING", QuotedString: "QUOTED_STRING",
	BlockString: "BLOCK_STRING", BlockStringHeader: "BLOCK_STRING_HEADER",
	WordKey: "WORD_KEY", QuotedKey: "QUOTED_KEY", Error: "ERROR",
}

// IsNodeKind reports whether k was produced by Marker.Complete rather
// than by a lexer token passing through the remapper.
func (k Kind) IsNodeKind() bool { return k >= SourceFile }

func init() {
	if kindCount > 64 {
		panic("syntax: Kind has grown past 64 variants, TokenSet can no longer address it")
	}
}
