package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/lineage/internal/graph"
)

// Reaches reports whether any justified path runs from a to b.
// Answered from the closure table without walking the edge graph.
func (s *Store) Reaches(ctx context.Context, a, b graph.NodeID) (bool, error) {
	a = graph.NormalizeNodeID(a)
	b = graph.NormalizeNodeID(b)

	var exists int
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM closure WHERE parent = ? AND child = ?
		)
	`, a, b).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("reaches: %w", err)
	}
	return exists != 0, nil
}

// Ancestors returns every node with a path to n, deduplicated and sorted.
// Returns an empty slice (not nil) if n has no ancestors.
func (s *Store) Ancestors(ctx context.Context, n graph.NodeID) ([]graph.NodeID, error) {
	n = graph.NormalizeNodeID(n)
	return s.nodeProjection(ctx, `
		SELECT DISTINCT parent FROM closure
		WHERE child = ?
		ORDER BY parent ASC
	`, n)
}

// Descendants returns every node reachable from n, deduplicated and sorted.
// Returns an empty slice (not nil) if n has no descendants.
func (s *Store) Descendants(ctx context.Context, n graph.NodeID) ([]graph.NodeID, error) {
	n = graph.NormalizeNodeID(n)
	return s.nodeProjection(ctx, `
		SELECT DISTINCT child FROM closure
		WHERE parent = ?
		ORDER BY child ASC
	`, n)
}

func (s *Store) nodeProjection(ctx context.Context, query string, n graph.NodeID) ([]graph.NodeID, error) {
	rows, err := s.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("query node projection: %w", err)
	}
	defer rows.Close()

	nodes := []graph.NodeID{}
	for rows.Next() {
		var node graph.NodeID
		if err := rows.Scan(&node); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

// Entries returns every closure row. Ordered by (parent, child, depth, id)
// so listings and golden snapshots are stable across runs.
func (s *Store) Entries(ctx context.Context) ([]graph.ClosureEntry, error) {
	return s.queryEntries(ctx, `
		SELECT id, parent, child, depth, entry_edge, direct_edge, exit_edge
		FROM closure
		ORDER BY parent ASC, child ASC, depth ASC, id ASC
	`)
}

// EntriesFor returns every closure row certifying the pair (parent, child),
// one per justified path, shortest first.
func (s *Store) EntriesFor(ctx context.Context, parent, child graph.NodeID) ([]graph.ClosureEntry, error) {
	parent = graph.NormalizeNodeID(parent)
	child = graph.NormalizeNodeID(child)
	return s.queryEntries(ctx, `
		SELECT id, parent, child, depth, entry_edge, direct_edge, exit_edge
		FROM closure
		WHERE parent = ? AND child = ?
		ORDER BY depth ASC, id ASC
	`, parent, child)
}

func (s *Store) queryEntries(ctx context.Context, query string, args ...any) ([]graph.ClosureEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query closure entries: %w", err)
	}
	defer rows.Close()

	entries := []graph.ClosureEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate closure entries: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (graph.ClosureEntry, error) {
	var e graph.ClosureEntry
	// The lineage columns are nullable in the schema (they are back-filled
	// right after the depth-0 insert) but never null in a committed row.
	var entry, direct, exit sql.NullInt64
	if err := rows.Scan(&e.ID, &e.Parent, &e.Child, &e.Depth, &entry, &direct, &exit); err != nil {
		return graph.ClosureEntry{}, fmt.Errorf("scan closure entry: %w", err)
	}
	e.EntryEdge = graph.ClosureID(entry.Int64)
	e.DirectEdge = graph.ClosureID(direct.Int64)
	e.ExitEdge = graph.ClosureID(exit.Int64)
	return e, nil
}

// Edges returns every base edge, ordered by id.
func (s *Store) Edges(ctx context.Context) ([]graph.Edge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input, output FROM edges ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	edges := []graph.Edge{}
	for rows.Next() {
		var e graph.Edge
		if err := rows.Scan(&e.ID, &e.Input, &e.Output); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate edges: %w", err)
	}
	return edges, nil
}

// LookupEdge resolves the edge input -> output.
// The second return value reports whether the edge exists.
func (s *Store) LookupEdge(ctx context.Context, input, output graph.NodeID) (graph.Edge, bool, error) {
	input = graph.NormalizeNodeID(input)
	output = graph.NormalizeNodeID(output)

	var e graph.Edge
	err := s.db.QueryRowContext(ctx, `
		SELECT id, input, output FROM edges WHERE input = ? AND output = ?
	`, input, output).Scan(&e.ID, &e.Input, &e.Output)
	if errors.Is(err, sql.ErrNoRows) {
		return graph.Edge{}, false, nil
	}
	if err != nil {
		return graph.Edge{}, false, fmt.Errorf("lookup edge: %w", err)
	}
	return e, true, nil
}
