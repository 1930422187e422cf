package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ExecutesStepsAndAssertions(t *testing.T) {
	sc := &Scenario{
		Name: "inline-chain",
		Steps: []Step{
			{Op: "link", From: "a", To: "b"},
			{Op: "link", From: "b", To: "c"},
		},
		Assertions: []Assertion{
			{Type: "reaches", From: "a", To: "c"},
			{Type: "entry_count", Count: 3},
		},
	}

	s := Run(t, sc)

	// The returned store is usable for extra checks.
	ok, err := s.Reaches(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRun_ExpectedRejections(t *testing.T) {
	sc := &Scenario{
		Name: "inline-rejections",
		Steps: []Step{
			{Op: "link", From: "a", To: "b"},
			{Op: "link", From: "b", To: "a", Expect: "WOULD_CREATE_CYCLE"},
			{Op: "link", From: "a", To: "a", Expect: "SELF_LOOP"},
			{Op: "link", From: "a", To: "b", Expect: "ALREADY_LINKED"},
		},
		Assertions: []Assertion{
			{Type: "entry_count", Count: 1},
		},
	}

	Run(t, sc)
}

func TestRun_UnlinkIsIdempotent(t *testing.T) {
	sc := &Scenario{
		Name: "inline-unlink-idempotent",
		Steps: []Step{
			{Op: "link", From: "a", To: "b"},
			{Op: "unlink", From: "a", To: "b"},
			{Op: "unlink", From: "a", To: "b"},
			{Op: "unlink", From: "never", To: "existed"},
		},
		Assertions: []Assertion{
			{Type: "entry_count", Count: 0},
			{Type: "not_reaches", From: "a", To: "b"},
		},
	}

	Run(t, sc)
}

func TestTakeSnapshot_DeterministicOrder(t *testing.T) {
	sc := &Scenario{
		Name: "inline-snapshot",
		Steps: []Step{
			{Op: "link", From: "b", To: "c"},
			{Op: "link", From: "a", To: "b"},
		},
	}
	s := Run(t, sc)

	snap, err := TakeSnapshot(context.Background(), s, sc.Name)
	require.NoError(t, err)

	want := []SnapshotEntry{
		{Parent: "a", Child: "b", Depth: 0},
		{Parent: "a", Child: "c", Depth: 1},
		{Parent: "b", Child: "c", Depth: 0},
	}
	assert.Equal(t, want, snap.Entries)
}
