package transfer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func candidates(ids ...string) []Candidate {
	out := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, Candidate{ID: id, DisplayFields: map[string]string{"name": "User " + id}})
	}
	return out
}

func TestPartition_UnionAndDisjoint(t *testing.T) {
	items := candidates("a", "b", "c", "d", "e")
	membership := NewMembershipSet("b", "e", "zz")

	available, assigned := Partition(items, membership)

	require.Equal(t, []string{"a", "c", "d"}, available)
	require.Equal(t, []string{"b", "e"}, assigned)

	seen := map[string]int{}
	for _, id := range append(append([]string{}, available...), assigned...) {
		seen[id]++
	}
	require.Len(t, seen, len(items))
	for id, n := range seen {
		require.Equal(t, 1, n, "id %s appears in both lists", id)
	}
}

func TestPartition_Idempotent(t *testing.T) {
	items := candidates("a", "b", "c")
	membership := NewMembershipSet("c", "a")

	a1, s1 := Partition(items, membership)
	a2, s2 := Partition(items, membership)

	require.Equal(t, a1, a2)
	require.Equal(t, s1, s2)
	require.Equal(t, []string{"a", "c"}, s1, "assigned keeps candidate store order")
}

func TestArrayMove(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}

	require.Equal(t, []string{"b", "c", "a", "d"}, ArrayMove(ids, 0, 2))
	require.Equal(t, []string{"d", "a", "b", "c"}, ArrayMove(ids, 3, 0))
	require.Equal(t, ids, ArrayMove(ids, 1, 1))
	require.Equal(t, ids, ArrayMove(ids, -1, 2))
	require.Equal(t, ids, ArrayMove(ids, 0, 9))
	require.Equal(t, []string{"a", "b", "c", "d"}, ids, "input is not mutated")
}

func TestMembershipSet(t *testing.T) {
	m := NewMembershipSet("a", "b", "a", "")
	require.Equal(t, []string{"a", "b"}, m.IDs())

	require.False(t, m.Add("a"))
	require.True(t, m.Add("c"))
	require.True(t, m.Remove("a"))
	require.False(t, m.Remove("a"))
	require.Equal(t, []string{"b", "c"}, m.IDs())

	require.Equal(t, []string{"d"}, m.AddAll([]string{"b", "d"}))
	require.Equal(t, []string{"b", "d"}, m.RemoveAll([]string{"b", "x", "d", "b"}))
	require.Equal(t, []string{"c"}, m.IDs())

	clone := m.Clone()
	clone.Add("z")
	require.False(t, m.Has("z"))
}

func TestCandidateStore_SequenceGuard(t *testing.T) {
	store := NewCandidateStore(candidates("a", "a", "b"))
	require.Equal(t, []string{"a", "b"}, store.IDs(), "duplicates are dropped")

	first := store.Begin()
	second := store.Begin()

	require.False(t, store.Apply(first, candidates("x")), "stale response is discarded")
	require.Equal(t, []string{"a", "b"}, store.IDs())

	require.True(t, store.Apply(second, candidates("y", "z")))
	require.Equal(t, []string{"y", "z"}, store.IDs())
	require.False(t, store.Apply(Ticket(0), candidates("q")))
}

func TestFilter(t *testing.T) {
	store := NewCandidateStore([]Candidate{
		{ID: "1", DisplayFields: map[string]string{"name": "Alice Smith", "email": "alice@example.com"}},
		{ID: "2", DisplayFields: map[string]string{"name": "Bob", "email": "bob@SMITH.io"}},
		{ID: "3", DisplayFields: map[string]string{"name": "Carol", "email": "carol@example.com"}},
	})
	ids := store.IDs()

	require.Equal(t, []string{"1", "2"}, Filter{Query: "smith"}.Apply(ids, store))
	require.Equal(t, []string{"1"}, Filter{Query: "SMITH", Fields: []string{"name"}}.Apply(ids, store))
	require.Equal(t, ids, Filter{Query: "  "}.Apply(ids, store))
	require.Empty(t, Filter{Query: "nobody"}.Apply(ids, store))
	require.Empty(t, Filter{Query: "a"}.Apply([]string{"missing"}, store))
}

func TestPaginate(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}

	p := Paginate(ids, 2, 2)
	require.Equal(t, 2, p.Number)
	require.Equal(t, 3, p.Pages)
	require.Equal(t, []string{"c", "d"}, p.Keys)

	require.Equal(t, 3, Paginate(ids, 10, 2).Number)
	require.Equal(t, []string{"e"}, Paginate(ids, 10, 2).Keys)
	require.Equal(t, 1, Paginate(ids, 0, 2).Number)

	empty := Paginate(nil, 3, 10)
	require.Equal(t, 1, empty.Number)
	require.Equal(t, 1, empty.Pages)
	require.Empty(t, empty.Keys)
}

func TestSelection(t *testing.T) {
	s := NewSelection()
	s.SelectAll([]string{"a", "b"})
	s.Invert([]string{"b", "c"})
	require.Equal(t, []string{"a", "c"}, s.Keys([]string{"a", "b", "c"}))

	s.Retain([]string{"c"})
	require.Equal(t, 1, s.Len())
	s.Clear()
	require.Zero(t, s.Len())
}
