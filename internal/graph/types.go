package graph

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NodeID identifies an artifact in the provenance graph.
//
// Node ids are opaque to the index: callers choose them (content hashes,
// UUIDs, human-readable names). The only processing applied is Unicode NFC
// normalization at the API boundary, so that two byte sequences naming the
// same logical artifact always compare equal in storage.
type NodeID string

// EdgeID identifies a base edge in the edge store.
// Assigned by SQLite on insert; never reused within one database.
type EdgeID int64

// ClosureID identifies one row of the closure table.
type ClosureID int64

// Edge is a directed derivation link: Input produced Output.
// Edges are immutable once created and deleted as a unit.
type Edge struct {
	ID     EdgeID
	Input  NodeID
	Output NodeID
}

// ClosureEntry is one materialized, justified path from Parent to Child.
//
// The closure table is a multiset of justified paths, not a deduplicated
// reachability set: the same (Parent, Child) pair may appear in several rows,
// each proving the pair via different underlying edges. Depth counts the edges
// traversed by this row's specific path and is not guaranteed minimal.
//
// The three lineage columns record which rows this path is composed from:
//
//   - EntryEdge: the row supplying the first hop of the path
//   - DirectEdge: the depth-0 row whose edge insertion created this row
//   - ExitEdge: the row supplying the last hop of the path
//
// A depth-0 row is self-justified: all three columns equal its own ID.
// Cascading deletion follows these columns to find every row whose proof
// cites a removed edge, directly or transitively.
type ClosureEntry struct {
	ID         ClosureID
	Parent     NodeID
	Child      NodeID
	Depth      int
	EntryEdge  ClosureID
	DirectEdge ClosureID
	ExitEdge   ClosureID
}

// Direct reports whether the entry certifies a base edge rather than a
// composed path.
func (e ClosureEntry) Direct() bool {
	return e.Depth == 0
}

// NormalizeNodeID returns the canonical form of a node id: surrounding
// whitespace trimmed, then Unicode NFC applied. Every store API normalizes
// node ids on entry, so "é" (U+00E9) and "é" name the same node.
func NormalizeNodeID(id NodeID) NodeID {
	return NodeID(norm.NFC.String(strings.TrimSpace(string(id))))
}
