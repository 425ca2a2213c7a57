package config

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// kvFixtures returns a handful of KV lists covering the shapes the
// round-trip invariant (spec §8 invariant 7: "from_kv_entries(entries())
// == original Config for all invariant fields") needs to hold over:
// empty, single-key, distinct keys, and duplicate keys both grouped and
// interleaved.
func kvFixtures() [][]KV {
	return [][]KV{
		nil,
		{{Key: "a", Value: Value{Kind: String, Text: "1"}}},
		{
			{Key: "a", Value: Value{Kind: String, Text: "1"}},
			{Key: "b", Value: Value{Kind: Integer, Text: "2"}},
			{Key: "c", Value: Value{Kind: Bool, Bool: true}},
		},
		{
			// already grouped by first occurrence: no interleaving.
			{Key: "server.port", Value: Value{Kind: Integer, Text: "8080"}},
			{Key: "server.port", Value: Value{Kind: Integer, Text: "9090"}},
			{Key: "server.log", Value: Value{Kind: String, Text: "info"}},
		},
		{
			// interleaved duplicates: Entries() regroups these.
			{Key: "server.port", Value: Value{Kind: Integer, Text: "8080"}},
			{Key: "server.log", Value: Value{Kind: String, Text: "info"}},
			{Key: "server.port", Value: Value{Kind: Integer, Text: "9090"}},
			{Key: "server.log", Value: Value{Kind: String, Text: "debug"}},
		},
	}
}

// TestRoundTripQueryBehaviorIsPreserved pins spec §8 invariant 7 at the
// level the invariant actually promises: every key's Query result,
// every prefix's QueryPrefix result, and the full Entries() listing
// survive feeding a Config's own Entries() back through FromKVEntries.
// Entries() groups by first occurrence (invariant 5), so this holds
// even when the original KV list interleaves duplicate keys.
func TestRoundTripQueryBehaviorIsPreserved(t *testing.T) {
	for _, kvs := range kvFixtures() {
		original := FromKVEntries(kvs)
		roundTripped := FromKVEntries(original.Entries())

		if diff := deep.Equal(original.Entries(), roundTripped.Entries()); diff != nil {
			t.Errorf("Entries() not preserved across round trip: %v", diff)
		}
		if diff := deep.Equal(original.QueryPrefix(""), roundTripped.QueryPrefix("")); diff != nil {
			t.Errorf("QueryPrefix(\"\") not preserved across round trip: %v", diff)
		}
		for _, e := range original.Entries() {
			require.Equalf(t, original.Query(e.Key), roundTripped.Query(e.Key),
				"Query(%q) diverged after round trip", e.Key)
		}
	}
}

// TestRoundTripStructuralEquivalenceWhenAlreadyGrouped checks the
// stronger, purely structural form of invariant 7: when a Config's own
// entries already appear in first-occurrence-grouped order (so
// Entries() is an identity reshuffle of entries), FromKVEntries(Entries())
// reproduces a byte-for-byte equivalent Config, including its derived
// indices and text arena — not just equivalent query results. This
// doesn't hold for interleaved input (Entries() regroups, so the
// rebuilt arena and entries slice are permuted relative to the
// original), which is why the weaker, universally-true form above
// carries the full invariant-7 fixture set.
func TestRoundTripStructuralEquivalenceWhenAlreadyGrouped(t *testing.T) {
	grouped := [][]KV{
		nil,
		{{Key: "a", Value: Value{Kind: String, Text: "1"}}},
		{
			{Key: "server.port", Value: Value{Kind: Integer, Text: "8080"}},
			{Key: "server.port", Value: Value{Kind: Integer, Text: "9090"}},
			{Key: "server.log", Value: Value{Kind: String, Text: "info"}},
		},
	}

	opts := cmp.AllowUnexported(Config{}, group{}, entry{}, valueRaw{}, textArena{}, textID{})
	for _, kvs := range grouped {
		original := FromKVEntries(kvs)
		roundTripped := FromKVEntries(original.Entries())
		if diff := cmp.Diff(original, roundTripped, opts); diff != "" {
			t.Errorf("FromKVEntries(Entries()) != original (-original +round-tripped):\n%s", diff)
		}
	}
}
