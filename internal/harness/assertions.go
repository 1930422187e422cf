package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lineage/internal/graph"
	"github.com/roach88/lineage/internal/store"
)

// assertState evaluates one assertion against the final closure.
func assertState(t *testing.T, ctx context.Context, s *store.Store, i int, a Assertion) {
	t.Helper()

	switch a.Type {
	case "reaches", "not_reaches":
		ok, err := s.Reaches(ctx, graph.NodeID(a.From), graph.NodeID(a.To))
		require.NoError(t, err, "assertion %d: reaches query", i)
		want := a.Type == "reaches"
		require.Equal(t, want, ok, "assertion %d: reaches(%s, %s)", i, a.From, a.To)

	case "ancestors":
		got, err := s.Ancestors(ctx, graph.NodeID(a.Node))
		require.NoError(t, err, "assertion %d: ancestors query", i)
		require.Equal(t, toNodeIDs(a.Nodes), got, "assertion %d: ancestors of %s", i, a.Node)

	case "descendants":
		got, err := s.Descendants(ctx, graph.NodeID(a.Node))
		require.NoError(t, err, "assertion %d: descendants query", i)
		require.Equal(t, toNodeIDs(a.Nodes), got, "assertion %d: descendants of %s", i, a.Node)

	case "entry_count":
		entries, err := s.Entries(ctx)
		require.NoError(t, err, "assertion %d: entries query", i)
		require.Len(t, entries, a.Count, "assertion %d: closure row count", i)
	}
}

func toNodeIDs(ss []string) []graph.NodeID {
	ids := make([]graph.NodeID, len(ss))
	for i, s := range ss {
		ids[i] = graph.NodeID(s)
	}
	return ids
}
