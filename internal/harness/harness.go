package harness

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lineage/internal/graph"
	"github.com/roach88/lineage/internal/store"
)

// Run executes a scenario against a fresh store and evaluates its
// assertions. The store is returned for further inspection (snapshots,
// extra checks) and closed automatically when the test finishes.
func Run(t *testing.T, sc *Scenario) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), sc.Name+".db"))
	require.NoError(t, err, "open scenario store")
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	for i, st := range sc.Steps {
		runStep(t, ctx, s, i, st)
	}
	for i, a := range sc.Assertions {
		assertState(t, ctx, s, i, a)
	}
	return s
}

func runStep(t *testing.T, ctx context.Context, s *store.Store, i int, st Step) {
	t.Helper()

	from := graph.NodeID(st.From)
	to := graph.NodeID(st.To)

	switch st.Op {
	case "link":
		_, err := s.InsertEdge(ctx, from, to)
		if st.Expect == "" {
			require.NoError(t, err, "step %d: link %s -> %s", i, st.From, st.To)
			return
		}
		require.Error(t, err, "step %d: link %s -> %s must be rejected", i, st.From, st.To)
		requireRejection(t, err, st.Expect, i)
	case "unlink":
		err := s.Unlink(ctx, from, to)
		require.NoError(t, err, "step %d: unlink %s -> %s", i, st.From, st.To)
	}
}

func requireRejection(t *testing.T, err error, expect string, i int) {
	t.Helper()

	var got graph.LinkErrorCode
	switch {
	case graph.IsSelfLoop(err):
		got = graph.ErrCodeSelfLoop
	case graph.IsAlreadyLinked(err):
		got = graph.ErrCodeAlreadyLinked
	case graph.IsCycleError(err):
		got = graph.ErrCodeWouldCreateCycle
	default:
		t.Fatalf("step %d: rejection is not a link error: %v", i, err)
	}
	require.Equal(t, graph.LinkErrorCode(expect), got, "step %d: rejection code", i)
}
