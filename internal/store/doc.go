// Package store provides the SQLite-backed provenance reachability index.
//
// The store owns two tables:
//   - edges: the authoritative set of direct derivation links
//   - closure: the materialized transitive closure, one row per justified path
//
// Every edge mutation runs as a single transaction that updates both tables
// together, so readers never observe them out of sync:
//
//   - InsertEdge: guard checks (self-loop, duplicate, cycle), then the edge
//     row, its depth-0 closure row, and every composed row that becomes
//     reachable through the new edge.
//   - DeleteEdge / Unlink: the edge row plus every closure row whose lineage
//     cites it, found by expanding a purge set to a fixed point over the
//     entry_edge / direct_edge / exit_edge columns.
//
// # Critical Patterns
//
// CP-1: Multiset Closure
//   - One row per justified path, never deduplicated on write
//   - Reads that want reachable pairs use SELECT DISTINCT
//
// CP-2: Self-Justified Depth-0 Rows
//   - entry_edge = direct_edge = exit_edge = own id
//   - A depth-0 row stands for its base edge in lineage references
//
// CP-3: Pre-Insertion Snapshot
//   - Derivation reads the incoming/outgoing row sets into memory before
//     writing any composed row (no self-amplification within one insert)
//
// CP-4: Deterministic Query Results
//   - Every read uses an explicit ORDER BY, so listings are stable across
//     runs and usable in golden snapshots
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//   - MaxOpenConns(1): single writer; per-mutation serializability without
//     an in-process lock
package store
