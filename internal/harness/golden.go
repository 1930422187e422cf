package harness

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lineage/internal/store"
)

// Snapshot captures the closure table after a scenario ran.
// Entries use the store's deterministic ordering, so identical mutation
// sequences always produce byte-identical snapshots. Row ids are omitted:
// they depend on autoincrement history, and the justified-path content is
// what the fixtures certify.
type Snapshot struct {
	ScenarioName string          `json:"scenario_name"`
	Entries      []SnapshotEntry `json:"entries"`
}

// SnapshotEntry is one justified path: the pair it certifies and the number
// of edges its path traverses.
type SnapshotEntry struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
	Depth  int    `json:"depth"`
}

// TakeSnapshot reads the full closure into a Snapshot.
func TakeSnapshot(ctx context.Context, s *store.Store, name string) (*Snapshot, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ScenarioName: name,
		Entries:      make([]SnapshotEntry, len(entries)),
	}
	for i, e := range entries {
		snap.Entries[i] = SnapshotEntry{
			Parent: string(e.Parent),
			Child:  string(e.Child),
			Depth:  e.Depth,
		}
	}
	return snap, nil
}

// RunWithGolden executes a scenario and compares the final closure snapshot
// against testdata/golden/{scenario.Name}.golden.
func RunWithGolden(t *testing.T, sc *Scenario) {
	t.Helper()

	s := Run(t, sc)

	snap, err := TakeSnapshot(context.Background(), s, sc.Name)
	require.NoError(t, err, "snapshot closure")

	data, err := json.MarshalIndent(snap, "", "  ")
	require.NoError(t, err, "marshal snapshot")

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, sc.Name, data)
}
