package store

import (
	"context"
	"testing"

	"github.com/roach88/lineage/internal/graph"
)

func TestInsertEdge_RejectsSelfLoop(t *testing.T) {
	s := createTestStore(t)

	_, err := s.InsertEdge(context.Background(), "x", "x")
	if !graph.IsSelfLoop(err) {
		t.Fatalf("InsertEdge(x, x) = %v, want SELF_LOOP", err)
	}
	if got := closureCount(t, s); got != 0 {
		t.Errorf("closure rows after rejection = %d, want 0", got)
	}
}

func TestInsertEdge_RejectsDuplicateLink(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")

	before := closureCount(t, s)
	_, err := s.InsertEdge(context.Background(), "a", "b")
	if !graph.IsAlreadyLinked(err) {
		t.Fatalf("duplicate InsertEdge(a, b) = %v, want ALREADY_LINKED", err)
	}
	if got := closureCount(t, s); got != before {
		t.Errorf("closure rows changed on rejection: %d -> %d", before, got)
	}
}

func TestInsertEdge_RejectsCycle(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")
	mustLink(t, s, "b", "c")

	before := snapshotPairs(t, s)

	// a -> b -> c already holds, so c -> a would close a cycle.
	_, err := s.InsertEdge(context.Background(), "c", "a")
	if !graph.IsCycleError(err) {
		t.Fatalf("InsertEdge(c, a) = %v, want WOULD_CREATE_CYCLE", err)
	}

	// The table must be byte-for-byte unchanged after the rejection.
	after := snapshotPairs(t, s)
	if len(before) != len(after) {
		t.Fatalf("closure changed on rejection: %d rows -> %d rows", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("closure row %d changed on rejection: %v -> %v", i, before[i], after[i])
		}
	}

	// The edge must not have been created either.
	if _, ok, _ := s.LookupEdge(context.Background(), "c", "a"); ok {
		t.Error("rejected edge was persisted")
	}
}

func TestInsertEdge_RejectsTwoNodeCycle(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")

	_, err := s.InsertEdge(context.Background(), "b", "a")
	if !graph.IsCycleError(err) {
		t.Fatalf("InsertEdge(b, a) = %v, want WOULD_CREATE_CYCLE", err)
	}
}

func TestCheckLink_ReadOnly(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")

	// An accepted probe writes nothing.
	if err := s.CheckLink(context.Background(), "b", "c"); err != nil {
		t.Fatalf("CheckLink(b, c) = %v, want nil", err)
	}
	if got := closureCount(t, s); got != 1 {
		t.Errorf("closure rows after CheckLink = %d, want 1", got)
	}
	if _, ok, _ := s.LookupEdge(context.Background(), "b", "c"); ok {
		t.Error("CheckLink created an edge")
	}
}

func TestCheckLink_ReportsAllReasons(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "a", "b")
	mustLink(t, s, "b", "c")

	ctx := context.Background()
	if err := s.CheckLink(ctx, "n", "n"); !graph.IsSelfLoop(err) {
		t.Errorf("CheckLink(n, n) = %v, want SELF_LOOP", err)
	}
	if err := s.CheckLink(ctx, "a", "b"); !graph.IsAlreadyLinked(err) {
		t.Errorf("CheckLink(a, b) = %v, want ALREADY_LINKED", err)
	}
	if err := s.CheckLink(ctx, "c", "a"); !graph.IsCycleError(err) {
		t.Errorf("CheckLink(c, a) = %v, want WOULD_CREATE_CYCLE", err)
	}
}

func TestCheckLink_NormalizesNodeIDs(t *testing.T) {
	s := createTestStore(t)
	mustLink(t, s, "caf\u00e9", "b") // precomposed é

	// Decomposed form of the same id must hit the ALREADY_LINKED guard.
	err := s.CheckLink(context.Background(), "café", "b")
	if !graph.IsAlreadyLinked(err) {
		t.Errorf("CheckLink with decomposed id = %v, want ALREADY_LINKED", err)
	}
}
