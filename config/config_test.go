package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mical-lang/mical/config"
)

func kv(key string, v config.Value) config.KV { return config.KV{Key: key, Value: v} }
func str(s string) config.Value                { return config.Value{Kind: config.String, Text: s} }
func integer(s string) config.Value            { return config.Value{Kind: config.Integer, Text: s} }
func boolean(b bool) config.Value              { return config.Value{Kind: config.Bool, Bool: b} }

func TestQueryEmptyConfigReturnsNothing(t *testing.T) {
	c := config.FromKVEntries(nil)
	require.Empty(t, c.Query("any"))
	require.Empty(t, c.Query(""))
}

func TestQuerySingleEntryExactMatch(t *testing.T) {
	c := config.FromKVEntries([]config.KV{kv("key", str("val"))})
	require.Equal(t, []config.Value{str("val")}, c.Query("key"))
}

func TestQuerySingleEntryNoMatch(t *testing.T) {
	c := config.FromKVEntries([]config.KV{kv("key", str("val"))})
	require.Empty(t, c.Query("other"))
	require.Empty(t, c.Query("ke"))
	require.Empty(t, c.Query("keys"))
}

func TestQueryMultipleDistinctKeys(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("a", str("1")),
		kv("b", integer("2")),
		kv("c", boolean(true)),
	})
	require.Equal(t, []config.Value{str("1")}, c.Query("a"))
	require.Equal(t, []config.Value{integer("2")}, c.Query("b"))
	require.Equal(t, []config.Value{boolean(true)}, c.Query("c"))
}

func TestQueryDuplicateKeysReturnInInsertionOrder(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("k", str("first")),
		kv("other", boolean(false)),
		kv("k", str("second")),
		kv("k", str("third")),
	})
	require.Equal(t, []config.Value{str("first"), str("second"), str("third")}, c.Query("k"))
	require.Equal(t, []config.Value{boolean(false)}, c.Query("other"))
}

func TestQueryInterleavedDuplicatesPreservePerKeyOrder(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("x", str("x1")),
		kv("y", str("y1")),
		kv("x", str("x2")),
		kv("y", str("y2")),
		kv("x", str("x3")),
	})
	require.Equal(t, []config.Value{str("x1"), str("x2"), str("x3")}, c.Query("x"))
	require.Equal(t, []config.Value{str("y1"), str("y2")}, c.Query("y"))
}

func TestQueryEmptyStringKey(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("", str("empty_key")),
		kv("a", str("a")),
		kv("", integer("42")),
	})
	require.Equal(t, []config.Value{str("empty_key"), integer("42")}, c.Query(""))
}

func TestQueryPrefixOfKeyDoesNotMatch(t *testing.T) {
	c := config.FromKVEntries([]config.KV{kv("abc", str("1")), kv("ab", str("2"))})
	require.Empty(t, c.Query("a"))
	require.Equal(t, []config.Value{str("2")}, c.Query("ab"))
	require.Equal(t, []config.Value{str("1")}, c.Query("abc"))
}

func TestQueryManyDuplicatesPreserveInsertionOrder(t *testing.T) {
	items := make([]config.KV, 100)
	for i := range items {
		v := "odd"
		if i%2 == 0 {
			v = "even"
		}
		items[i] = kv("key", integer(v))
	}
	c := config.FromKVEntries(items)
	result := c.Query("key")
	require.Len(t, result, 100)
	for i, v := range result {
		expected := "odd"
		if i%2 == 0 {
			expected = "even"
		}
		require.Equalf(t, integer(expected), v, "mismatch at index %d", i)
	}
}

func TestQueryPrefixEmptyConfigReturnsNothing(t *testing.T) {
	c := config.FromKVEntries(nil)
	require.Empty(t, c.QueryPrefix("any"))
	require.Empty(t, c.QueryPrefix(""))
}

func TestQueryPrefixSingleEntry(t *testing.T) {
	c := config.FromKVEntries([]config.KV{kv("key", str("v"))})
	require.Equal(t, []config.Entry{{Key: "key", Value: str("v")}}, c.QueryPrefix("k"))
	require.Equal(t, []config.Entry{{Key: "key", Value: str("v")}}, c.QueryPrefix("key"))
}

func TestQueryPrefixNoMatch(t *testing.T) {
	c := config.FromKVEntries([]config.KV{kv("apple", str("a")), kv("banana", str("b"))})
	require.Empty(t, c.QueryPrefix("cherry"))
	require.Empty(t, c.QueryPrefix("c"))
	require.Empty(t, c.QueryPrefix("apples"))
}

func TestQueryPrefixEmptyPrefixReturnsAllInFirstOccurrenceOrder(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("b", str("1")),
		kv("a", str("2")),
		kv("c", str("3")),
	})
	require.Equal(t, []config.Entry{
		{Key: "b", Value: str("1")},
		{Key: "a", Value: str("2")},
		{Key: "c", Value: str("3")},
	}, c.QueryPrefix(""))
}

func TestQueryPrefixGroupsOrderedByFirstOccurrence(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("x", str("x1")),
		kv("y", str("y1")),
		kv("x", str("x2")),
	})
	require.Equal(t, []config.Entry{
		{Key: "x", Value: str("x1")},
		{Key: "x", Value: str("x2")},
		{Key: "y", Value: str("y1")},
	}, c.QueryPrefix(""))
}

func TestQueryPrefixHierarchicalKeysWithSharedPrefix(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("app.name", str("MyApp")),
		kv("app.version", str("1.0")),
		kv("db.host", str("localhost")),
		kv("app.name", str("Renamed")),
	})
	require.Equal(t, []config.Entry{
		{Key: "app.name", Value: str("MyApp")},
		{Key: "app.name", Value: str("Renamed")},
		{Key: "app.version", Value: str("1.0")},
	}, c.QueryPrefix("app."))
	require.Equal(t, []config.Entry{{Key: "db.host", Value: str("localhost")}}, c.QueryPrefix("db."))
}

func TestQueryPrefixLongerThanAnyKey(t *testing.T) {
	c := config.FromKVEntries([]config.KV{kv("a", str("1")), kv("ab", str("2"))})
	require.Empty(t, c.QueryPrefix("abc"))
}

func TestQueryPrefixComplexInterleaving(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("b.x", str("b.x-1")),
		kv("a.x", str("a.x-1")),
		kv("b.y", str("b.y-1")),
		kv("a.y", str("a.y-1")),
		kv("b.x", str("b.x-2")),
	})
	require.Equal(t, []config.Entry{
		{Key: "a.x", Value: str("a.x-1")},
		{Key: "a.y", Value: str("a.y-1")},
	}, c.QueryPrefix("a."))
	require.Equal(t, []config.Entry{
		{Key: "b.x", Value: str("b.x-1")},
		{Key: "b.x", Value: str("b.x-2")},
		{Key: "b.y", Value: str("b.y-1")},
	}, c.QueryPrefix("b."))
	require.Equal(t, []config.Entry{
		{Key: "b.x", Value: str("b.x-1")},
		{Key: "b.x", Value: str("b.x-2")},
		{Key: "a.x", Value: str("a.x-1")},
		{Key: "b.y", Value: str("b.y-1")},
		{Key: "a.y", Value: str("a.y-1")},
	}, c.QueryPrefix(""))
}

func TestQueryPrefixDistinguishesSimilarKeys(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("a", str("1")),
		kv("ab", str("2")),
		kv("abc", str("3")),
		kv("b", str("4")),
	})
	require.Equal(t, []config.Entry{
		{Key: "ab", Value: str("2")},
		{Key: "abc", Value: str("3")},
	}, c.QueryPrefix("ab"))
}

func TestQueryPrefixEqualsEntriesWhenPrefixEmpty(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("b", str("1")),
		kv("a", str("2")),
		kv("a", str("3")),
	})
	require.Equal(t, c.Entries(), c.QueryPrefix(""))
}

func TestEntriesPreservesFirstOccurrenceGrouping(t *testing.T) {
	c := config.FromKVEntries([]config.KV{
		kv("server.port", integer("8080")),
		kv("server.log", str("info")),
		kv("server.port", integer("9090")),
		kv("server.log", str("debug")),
	})
	require.Equal(t, []config.Entry{
		{Key: "server.port", Value: integer("8080")},
		{Key: "server.port", Value: integer("9090")},
		{Key: "server.log", Value: str("info")},
		{Key: "server.log", Value: str("debug")},
	}, c.Entries())
}
