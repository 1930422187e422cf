package store

import (
	"context"
	"reflect"
	"testing"
)

func TestInsertEdge_DepthZeroRowIsSelfJustified(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")

	entries, err := s.EntriesFor(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("EntriesFor failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.Depth != 0 {
		t.Errorf("depth = %d, want 0", e.Depth)
	}
	if e.EntryEdge != e.ID || e.DirectEdge != e.ID || e.ExitEdge != e.ID {
		t.Errorf("depth-0 row not self-justified: id=%d entry=%d direct=%d exit=%d",
			e.ID, e.EntryEdge, e.DirectEdge, e.ExitEdge)
	}
}

func TestInsertEdge_ComposesPaths(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")
	mustLink(t, s, "b", "c")

	// Two depth-0 rows plus the composed (a, c) row.
	if got := closureCount(t, s); got != 3 {
		t.Fatalf("closure rows = %d, want 3", got)
	}
	if got := pairDepths(t, s, "a", "c"); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("depths for (a, c) = %v, want [1]", got)
	}
}

func TestInsertEdge_ChainClosure(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")
	mustLink(t, s, "b", "c")
	mustLink(t, s, "c", "d")

	want := [][3]string{
		{"a", "b", "0"},
		{"a", "c", "1"},
		{"a", "d", "2"},
		{"b", "c", "0"},
		{"b", "d", "1"},
		{"c", "d", "0"},
	}
	got := snapshotPairs(t, s)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("closure = %v, want %v", got, want)
	}
}

func TestInsertEdge_BridgesIncomingAndOutgoing(t *testing.T) {
	s := createTestStore(t)
	// Build the two halves first, then connect them: the bridging edge must
	// produce the full cross product in one insertion event.
	mustLink(t, s, "a", "b")
	mustLink(t, s, "c", "d")
	mustLink(t, s, "b", "c")

	want := [][3]string{
		{"a", "b", "0"},
		{"a", "c", "1"},
		{"a", "d", "2"},
		{"b", "c", "0"},
		{"b", "d", "1"},
		{"c", "d", "0"},
	}
	got := snapshotPairs(t, s)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("closure = %v, want %v", got, want)
	}
}

func TestInsertEdge_DerivedRowsShareDirectEdge(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")
	mustLink(t, s, "c", "d")
	mustLink(t, s, "b", "c")

	// Every row created by the b -> c insertion must carry its depth-0 row
	// as direct_edge.
	direct, err := s.EntriesFor(context.Background(), "b", "c")
	if err != nil {
		t.Fatalf("EntriesFor failed: %v", err)
	}
	if len(direct) != 1 {
		t.Fatalf("got %d (b, c) entries, want 1", len(direct))
	}
	rootID := direct[0].ID

	entries, err := s.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries failed: %v", err)
	}
	owned := 0
	for _, e := range entries {
		if e.DirectEdge == rootID {
			owned++
		}
	}
	// The depth-0 row itself plus (a,c), (b,d), (a,d).
	if owned != 4 {
		t.Errorf("rows owned by the bridging insert = %d, want 4", owned)
	}
}

func TestInsertEdge_KeepsMultipleJustifiedPaths(t *testing.T) {
	s := createTestStore(t)
	// Diamond: a -> b -> d and a -> c -> d.
	mustLink(t, s, "a", "b")
	mustLink(t, s, "b", "d")
	mustLink(t, s, "a", "c")
	mustLink(t, s, "c", "d")

	// The closure is a multiset of justified paths: (a, d) has one row per
	// path, not one deduplicated row.
	if got := pairDepths(t, s, "a", "d"); !reflect.DeepEqual(got, []int{1, 1}) {
		t.Errorf("depths for (a, d) = %v, want [1 1]", got)
	}
}

func TestInsertEdge_NoSelfAmplification(t *testing.T) {
	s := createTestStore(t)
	// A single insertion must never feed its own derived rows back into the
	// derivation. For a -> b into an empty table exactly one row may appear.
	mustLink(t, s, "a", "b")
	if got := closureCount(t, s); got != 1 {
		t.Fatalf("closure rows = %d, want 1", got)
	}

	// And a second, denser insertion produces exactly the expected count:
	// depth-0 + |E| + |F| + |E|*|F| with E = {(a,b)}, F = {(c,d)}.
	mustLink(t, s, "c", "d")
	mustLink(t, s, "b", "c")
	if got := closureCount(t, s); got != 6 {
		t.Errorf("closure rows = %d, want 6", got)
	}
}

func TestInsertEdge_NormalizesNodeIDs(t *testing.T) {
	s := createTestStore(t)

	id := mustLink(t, s, "  a ", "b\n")
	if id == 0 {
		t.Fatal("edge id not assigned")
	}

	ok, err := s.Reaches(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("Reaches failed: %v", err)
	}
	if !ok {
		t.Error("normalized edge not reachable under canonical ids")
	}
}

func TestInsertEdge_AssignsSequentialEdgeIDs(t *testing.T) {
	s := createTestStore(t)

	first := mustLink(t, s, "a", "b")
	second := mustLink(t, s, "b", "c")
	if second <= first {
		t.Errorf("edge ids not increasing: %d then %d", first, second)
	}
}

func TestInsertEdge_ContextCancelled(t *testing.T) {
	s := createTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.InsertEdge(ctx, "a", "b"); err == nil {
		t.Error("expected error with cancelled context, got nil")
	}
	if got := closureCount(t, s); got != 0 {
		t.Errorf("closure rows after cancelled insert = %d, want 0", got)
	}
}
