package cst

import "github.com/mical-lang/mical/syntax"

// Builder replays a parser's event stream into a Node tree, slicing
// token text out of source by a running byte offset. Grounded on
// original_source's NodeBuilder (crates/parser/src/lib.rs), minus the
// forward_parent indirection: the grammar never calls precede/set a
// forward parent, so every StartNode here opens directly on the stack.
type Builder struct {
	source string
	offset uint32
	arena  arena
	stack  []*Node
	root   *Node
	errors []SyntaxError
}

// NewBuilder creates a Builder over source. Source is not copied;
// every Token produced holds a slice of it.
func NewBuilder(source string) *Builder {
	return &Builder{source: source}
}

// StartNode opens a new node of the given kind and pushes it onto the
// builder's stack; a matching FinishNode closes it. The Node itself is
// carved out of the builder's arena rather than heap-allocated.
func (b *Builder) StartNode(kind syntax.Kind) {
	n := newIn[Node](&b.arena)
	n.kind = kind
	n.rng = TextRange{Start: b.offset, End: b.offset}
	b.stack = append(b.stack, n)
}

// FinishNode closes the node most recently opened by StartNode,
// attaching it as a child of its parent (or setting it as the root if
// the stack is now empty).
func (b *Builder) FinishNode() {
	n := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	n.rng.End = b.offset
	if len(b.stack) == 0 {
		b.root = n
		return
	}
	parent := b.stack[len(b.stack)-1]
	parent.children = arenaAppend(&b.arena, parent.children, Element(n))
}

// Token appends a leaf token of the given kind and length, slicing its
// text from source at the current offset, and advances the offset. The
// Token struct itself is carved out of the builder's arena.
func (b *Builder) Token(kind syntax.Kind, length uint32) {
	start := b.offset
	end := start + length
	tok := newIn[Token](&b.arena)
	tok.kind = kind
	tok.rng = TextRange{Start: start, End: end}
	tok.text = b.source[start:end]
	b.offset = end
	if len(b.stack) == 0 {
		// A bare token with no enclosing node: only possible for a
		// completely empty source file, where SOURCE_FILE still wraps
		// everything, so this path is defensive rather than expected.
		b.root = &Node{kind: syntax.SourceFile, rng: tok.rng, children: []Element{tok}}
		return
	}
	parent := b.stack[len(b.stack)-1]
	parent.children = arenaAppend(&b.arena, parent.children, Element(tok))
}

// Error records a diagnostic anchored at the builder's current offset
// (a zero-width range), matching the original's TextRange::empty(offset).
func (b *Builder) Error(message string) {
	b.errors = append(b.errors, SyntaxError{Message: message, Range: TextRange{Start: b.offset, End: b.offset}})
}

// Finish returns the completed root node and the accumulated syntax
// errors. The Builder must not be used afterward.
func (b *Builder) Finish() (*Node, []SyntaxError) {
	return b.root, b.errors
}
