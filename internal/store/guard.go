package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/lineage/internal/graph"
)

// querier is the read surface shared by *sql.DB and *sql.Tx. The guard runs
// against whichever the caller holds: the live database for ad-hoc checks,
// the mutation transaction for the pre-insert gate.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CheckLink reports whether an edge input -> output would be accepted,
// without inserting anything.
//
// Returns nil if the edge is insertable, or a *graph.LinkError:
//   - SELF_LOOP if input == output
//   - ALREADY_LINKED if the identical direct edge exists
//   - WOULD_CREATE_CYCLE if a path already runs from output back to input
//
// Read-only; the answer can be stale by the time a subsequent InsertEdge
// runs, which re-checks inside its own transaction.
func (s *Store) CheckLink(ctx context.Context, input, output graph.NodeID) error {
	input = graph.NormalizeNodeID(input)
	output = graph.NormalizeNodeID(output)
	return checkLink(ctx, s.db, input, output)
}

// checkLink is the guard proper. Inputs must already be normalized.
func checkLink(ctx context.Context, q querier, input, output graph.NodeID) error {
	if input == output {
		return graph.NewSelfLoopError(input, output)
	}

	var exists int

	// Duplicate direct edge: a depth-0 row already certifies this pair.
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM closure
			WHERE parent = ? AND child = ? AND depth = 0
		)
	`, input, output).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check duplicate link: %w", err)
	}
	if exists != 0 {
		return graph.NewAlreadyLinkedError(input, output)
	}

	// Any path output -> ... -> input means input -> output closes a cycle.
	err = q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM closure
			WHERE parent = ? AND child = ?
		)
	`, output, input).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check cycle: %w", err)
	}
	if exists != 0 {
		return graph.NewCycleError(input, output)
	}

	return nil
}
