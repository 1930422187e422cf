package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/lineage/internal/graph"
)

// DeleteEdge removes the edge with the given id and every closure row whose
// lineage depends on it, in one transaction.
//
// Deleting an unknown id is an idempotent no-op. Deletion has no domain
// errors; any storage failure rolls back the whole purge.
func (s *Store) DeleteEdge(ctx context.Context, id graph.EdgeID) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("delete edge: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var input, output graph.NodeID
	err = tx.QueryRowContext(ctx, `
		SELECT input, output FROM edges WHERE id = ?
	`, id).Scan(&input, &output)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete edge: resolve edge: %w", err)
	}

	if err := purgeEdge(ctx, tx, id, input, output); err != nil {
		return fmt.Errorf("delete edge: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete edge: commit: %w", err)
	}
	return nil
}

// Unlink removes the edge input -> output, resolving the pair to its edge id
// inside the deletion transaction. Unknown pairs are an idempotent no-op.
func (s *Store) Unlink(ctx context.Context, input, output graph.NodeID) error {
	input = graph.NormalizeNodeID(input)
	output = graph.NormalizeNodeID(output)

	tx, err := s.begin(ctx)
	if err != nil {
		return fmt.Errorf("unlink: begin tx: %w", err)
	}
	defer tx.Rollback()

	var id graph.EdgeID
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM edges WHERE input = ? AND output = ?
	`, input, output).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unlink: resolve edge: %w", err)
	}

	if err := purgeEdge(ctx, tx, id, input, output); err != nil {
		return fmt.Errorf("unlink: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unlink: commit: %w", err)
	}
	return nil
}

// purgeEdge removes one edge row and every closure row that cites it,
// directly or through a chain of lineage references.
//
// The purge set starts at the edge's depth-0 row and expands to a fixed
// point: each pass adds rows whose entry_edge, direct_edge, or exit_edge is
// already in the set, until a pass adds nothing. The loop always terminates
// because the set only grows and the table is finite. The expansion runs in
// a TEMP table so each pass is one indexed set operation instead of a
// round-trip per row.
func purgeEdge(ctx context.Context, tx *sql.Tx, id graph.EdgeID, input, output graph.NodeID) error {
	var rootID graph.ClosureID
	err := tx.QueryRowContext(ctx, `
		SELECT id FROM closure
		WHERE parent = ? AND child = ? AND depth = 0
	`, input, output).Scan(&rootID)
	if errors.Is(err, sql.ErrNoRows) {
		// No depth-0 row means nothing derived from this edge either.
		// Drop the orphaned edge row and finish.
		if _, err := tx.ExecContext(ctx, `DELETE FROM edges WHERE id = ?`, id); err != nil {
			return fmt.Errorf("purge: drop edge row: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("purge: locate depth-0 row: %w", err)
	}

	// TEMP tables are per-connection; the store runs a single connection, so
	// clear any remnant from an earlier transaction on it.
	if _, err := tx.ExecContext(ctx, `
		CREATE TEMP TABLE IF NOT EXISTS purge_list (id INTEGER PRIMARY KEY)
	`); err != nil {
		return fmt.Errorf("purge: create purge list: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM purge_list`); err != nil {
		return fmt.Errorf("purge: reset purge list: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO purge_list (id) VALUES (?)
	`, rootID); err != nil {
		return fmt.Errorf("purge: seed purge list: %w", err)
	}

	// Fixed-point expansion. Depth-0 rows other than the seed are
	// self-justified and can never cite the purge set, hence depth > 0.
	for {
		res, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO purge_list (id)
			SELECT id FROM closure
			WHERE depth > 0
			  AND ( entry_edge  IN (SELECT id FROM purge_list)
			     OR direct_edge IN (SELECT id FROM purge_list)
			     OR exit_edge   IN (SELECT id FROM purge_list) )
			  AND id NOT IN (SELECT id FROM purge_list)
		`)
		if err != nil {
			return fmt.Errorf("purge: expand purge list: %w", err)
		}
		added, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("purge: rows affected: %w", err)
		}
		if added == 0 {
			break
		}
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM closure WHERE id IN (SELECT id FROM purge_list)
	`); err != nil {
		return fmt.Errorf("purge: delete closure rows: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM edges WHERE id = ?`, id); err != nil {
		return fmt.Errorf("purge: delete edge row: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM purge_list`); err != nil {
		return fmt.Errorf("purge: clear purge list: %w", err)
	}

	return nil
}
