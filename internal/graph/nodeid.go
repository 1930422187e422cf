package graph

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator mints node ids for artifacts that do not bring their own.
// Used by manifest application and the CLI's mint command.
type IDGenerator interface {
	Generate() NodeID
}

// UUIDv7Generator generates time-sortable UUIDv7 node ids.
//
// UUIDv7 embeds a timestamp in the most significant bits, so minted artifact
// ids sort by creation time, which is convenient when listing ancestors of a
// node whose inputs were registered in order.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() NodeID {
	return NodeID(uuid.Must(uuid.NewV7()).String())
}

// FixedGenerator returns predetermined node ids for testing.
//
// Tests provide a known sequence of ids and can then assert exact store
// contents and golden snapshots.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []NodeID
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
// Generate panics once all ids are consumed; running out mid-test is a test
// authoring bug and should fail loudly.
func NewFixedGenerator(ids ...NodeID) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined id.
func (g *FixedGenerator) Generate() NodeID {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("graph: FixedGenerator exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
