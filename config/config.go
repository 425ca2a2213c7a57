// Package config evaluates a Mical ast.SourceFile into a queryable
// key/value store: an insertion-ordered entry list plus a key-sorted
// index for binary-search exact and prefix lookups. Grounded on
// original_source/crates/config/src/lib.rs.
package config

import (
	"sort"
	"strings"

	"github.com/mical-lang/mical/ast"
)

// group is one run of sortedIndices sharing the same key: [start,
// start+count) indexes into sortedIndices, ordered by first occurrence
// across the whole config.
type group struct {
	start uint32
	count uint32
}

// Config is a parsed-and-evaluated Mical document.
type Config struct {
	arena textArena
	// entries holds every (key, value) pair in insertion order.
	entries []entry
	// sortedIndices indexes into entries, sorted by key text.
	sortedIndices []uint32
	// groupOrder is sortedIndices's runs of equal keys, in first-
	// occurrence order.
	groupOrder []group
}

// FromSourceFile evaluates a parsed source file into a Config,
// returning any evaluation-time errors alongside it.
func FromSourceFile(sourceFile ast.SourceFile) (*Config, []Error) {
	ctx := evaluate(sourceFile)
	c := &Config{arena: ctx.arena, entries: ctx.entries}
	c.buildIndices()
	return c, ctx.errors
}

// FromKVEntries builds a Config directly from a fixed list of
// key/value pairs, without going through the parser or evaluator.
// Useful for tests and for callers assembling configuration
// programmatically.
func FromKVEntries(items []KV) *Config {
	c := &Config{}
	for _, item := range items {
		keyID := c.arena.alloc(item.Key)
		var raw valueRaw
		switch item.Value.Kind {
		case Bool:
			raw = valueRaw{kind: Bool, boolVal: item.Value.Bool}
		default:
			raw = valueRaw{kind: item.Value.Kind, text: c.arena.alloc(item.Value.Text)}
		}
		c.entries = append(c.entries, entry{key: keyID, value: raw})
	}
	c.buildIndices()
	return c
}

// KV is one key/value pair as accepted by FromKVEntries. It is the same
// type as Entry, so the result of Entries or QueryPrefix can be passed
// back to FromKVEntries directly.
type KV = Entry

func (c *Config) buildIndices() {
	n := len(c.entries)
	indices := make([]uint32, n)
	for i := range indices {
		indices[i] = uint32(i)
	}
	sort.Slice(indices, func(a, b int) bool {
		return c.keyOf(indices[a]) < c.keyOf(indices[b])
	})
	c.sortedIndices = indices

	type rawGroup struct {
		start, count, firstEntry uint32
	}
	var groups []rawGroup
	i := 0
	for i < len(c.sortedIndices) {
		start := i
		curKey := c.keyOf(c.sortedIndices[i])
		minIdx := c.sortedIndices[i]
		i++
		for i < len(c.sortedIndices) && c.keyOf(c.sortedIndices[i]) == curKey {
			if c.sortedIndices[i] < minIdx {
				minIdx = c.sortedIndices[i]
			}
			i++
		}
		groups = append(groups, rawGroup{start: uint32(start), count: uint32(i - start), firstEntry: minIdx})
	}
	sort.Slice(groups, func(a, b int) bool { return groups[a].firstEntry < groups[b].firstEntry })

	c.groupOrder = make([]group, len(groups))
	for i, g := range groups {
		c.groupOrder[i] = group{start: g.start, count: g.count}
	}
}

func (c *Config) keyOf(entryIdx uint32) string {
	return c.arena.get(c.entries[entryIdx].key)
}

// Query returns the values of every entry whose key exactly matches
// key, in insertion order.
func (c *Config) Query(key string) []Value {
	lo := sort.Search(len(c.sortedIndices), func(i int) bool {
		return c.keyOf(c.sortedIndices[i]) >= key
	})
	hi := lo + sort.Search(len(c.sortedIndices)-lo, func(i int) bool {
		return c.keyOf(c.sortedIndices[lo+i]) > key
	})

	idxs := append([]uint32(nil), c.sortedIndices[lo:hi]...)
	sort.Slice(idxs, func(a, b int) bool { return idxs[a] < idxs[b] })

	out := make([]Value, len(idxs))
	for i, idx := range idxs {
		out[i] = c.entries[idx].value.resolve(&c.arena)
	}
	return out
}

// Entry is one (key, value) pair as returned by QueryPrefix and
// Entries.
type Entry struct {
	Key   string
	Value Value
}

// QueryPrefix returns every (key, value) pair whose key starts with
// prefix, in insertion order (grouped by first occurrence).
func (c *Config) QueryPrefix(prefix string) []Entry {
	lo := sort.Search(len(c.sortedIndices), func(i int) bool {
		return c.keyOf(c.sortedIndices[i]) >= prefix
	})
	hi := sort.Search(len(c.sortedIndices), func(i int) bool {
		k := c.keyOf(c.sortedIndices[i])
		return !(strings.HasPrefix(k, prefix) || k < prefix)
	})
	return c.iterRange(lo, hi)
}

// Entries returns every (key, value) pair in the order they were
// inserted (grouped by first occurrence).
func (c *Config) Entries() []Entry {
	return c.iterRange(0, len(c.sortedIndices))
}

func (c *Config) iterRange(lo, hi int) []Entry {
	var out []Entry
	for _, g := range c.groupOrder {
		start := int(g.start)
		if start < lo || start >= hi {
			continue
		}
		count := int(g.count)
		idxs := append([]uint32(nil), c.sortedIndices[start:start+count]...)
		sort.Slice(idxs, func(a, b int) bool { return idxs[a] < idxs[b] })
		for _, idx := range idxs {
			e := c.entries[idx]
			out = append(out, Entry{Key: c.keyOf(idx), Value: e.value.resolve(&c.arena)})
		}
	}
	return out
}
