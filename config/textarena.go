package config

// textArena is an append-only buffer every evaluated string is interned
// into; a textID addresses a byte range within it. Grounded on
// original_source/crates/config/src/text_arena.rs, which is a plain
// contiguous growable string, not the slab/bump-allocator idiom used
// for CST node allocation (see cst/arena.go) — TextID addressing
// depends on the buffer staying one contiguous slice.
type textArena struct {
	buf []byte
}

// textID addresses a [offset, offset+length) byte range within a
// textArena.
type textID struct {
	offset uint32
	length uint32
}

func (a *textArena) alloc(s string) textID {
	id := textID{offset: uint32(len(a.buf)), length: uint32(len(s))}
	a.buf = append(a.buf, s...)
	return id
}

func (a *textArena) get(id textID) string {
	return string(a.buf[id.offset : id.offset+id.length])
}
