package store

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/roach88/lineage/internal/graph"
)

// createTestStore creates a fresh on-disk store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustLink inserts an edge and fails the test on any error.
func mustLink(t *testing.T, s *Store, input, output graph.NodeID) graph.EdgeID {
	t.Helper()
	id, err := s.InsertEdge(context.Background(), input, output)
	if err != nil {
		t.Fatalf("InsertEdge(%s, %s) failed: %v", input, output, err)
	}
	return id
}

// closureCount returns the total number of closure rows.
func closureCount(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM closure").Scan(&n); err != nil {
		t.Fatalf("count closure rows: %v", err)
	}
	return n
}

// pairDepths returns the depths of all rows certifying (parent, child),
// shortest first.
func pairDepths(t *testing.T, s *Store, parent, child graph.NodeID) []int {
	t.Helper()
	entries, err := s.EntriesFor(context.Background(), parent, child)
	if err != nil {
		t.Fatalf("EntriesFor(%s, %s) failed: %v", parent, child, err)
	}
	depths := make([]int, len(entries))
	for i, e := range entries {
		depths[i] = e.Depth
	}
	return depths
}

// snapshotPairs returns every (parent, child, depth) triple in the closure,
// in the deterministic Entries order.
func snapshotPairs(t *testing.T, s *Store) [][3]string {
	t.Helper()
	entries, err := s.Entries(context.Background())
	if err != nil {
		t.Fatalf("Entries() failed: %v", err)
	}
	pairs := make([][3]string, len(entries))
	for i, e := range entries {
		pairs[i] = [3]string{string(e.Parent), string(e.Child), strconv.Itoa(e.Depth)}
	}
	return pairs
}
