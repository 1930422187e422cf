package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/lineage/internal/graph"
)

// incomingRow is one existing closure row ending at the new edge's input.
type incomingRow struct {
	id     graph.ClosureID
	parent graph.NodeID
	depth  int
}

// outgoingRow is one existing closure row starting at the new edge's output.
type outgoingRow struct {
	id    graph.ClosureID
	child graph.NodeID
	depth int
}

// InsertEdge creates the edge input -> output and derives every closure row
// that becomes reachable through it, in one transaction.
//
// Returns the new edge's id, or a *graph.LinkError if the guard refuses the
// edge (self-loop, duplicate, would-create-cycle). On rejection or storage
// failure nothing is written: the edge and all derivation steps commit
// together or not at all.
//
// Derivation, given the new depth-0 row new0:
//
//  1. every row E ending at input extends forward:
//     (E.parent, output, E.depth+1, entry=E, direct=new0, exit=new0)
//  2. every row F starting at output extends backward:
//     (input, F.child, F.depth+1, entry=new0, direct=new0, exit=F)
//  3. every pair (E, F) bridges through the new edge:
//     (E.parent, F.child, E.depth+F.depth+2, entry=E, direct=new0, exit=F)
//
// All derived rows carry direct_edge = new0, which is what lets deletion
// later find everything owned by this insertion event. The E and F sets are
// read fully into memory before the first derived insert, so the derivation
// never consumes rows it created itself.
func (s *Store) InsertEdge(ctx context.Context, input, output graph.NodeID) (graph.EdgeID, error) {
	input = graph.NormalizeNodeID(input)
	output = graph.NormalizeNodeID(output)

	tx, err := s.begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert edge: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := checkLink(ctx, tx, input, output); err != nil {
		return 0, fmt.Errorf("insert edge: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO edges (input, output) VALUES (?, ?)
	`, input, output)
	if err != nil {
		return 0, fmt.Errorf("insert edge: edge row: %w", err)
	}
	rawEdgeID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert edge: edge id: %w", err)
	}
	edgeID := graph.EdgeID(rawEdgeID)

	// Depth-0 row, then point its lineage at itself (the id is only known
	// after the insert).
	res, err = tx.ExecContext(ctx, `
		INSERT INTO closure (parent, child, depth) VALUES (?, ?, 0)
	`, input, output)
	if err != nil {
		return 0, fmt.Errorf("insert edge: depth-0 row: %w", err)
	}
	rawRootID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert edge: depth-0 id: %w", err)
	}
	rootID := graph.ClosureID(rawRootID)

	_, err = tx.ExecContext(ctx, `
		UPDATE closure
		SET entry_edge = ?, direct_edge = ?, exit_edge = ?
		WHERE id = ?
	`, rootID, rootID, rootID, rootID)
	if err != nil {
		return 0, fmt.Errorf("insert edge: self-justify depth-0 row: %w", err)
	}

	// CP-3: snapshot both derivation inputs before writing any derived row.
	// The depth-0 row just inserted cannot appear in either set: its child is
	// output (never input, no self-loops) and its parent is input (never
	// output).
	incoming, err := readIncoming(ctx, tx, input)
	if err != nil {
		return 0, fmt.Errorf("insert edge: %w", err)
	}
	outgoing, err := readOutgoing(ctx, tx, output)
	if err != nil {
		return 0, fmt.Errorf("insert edge: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO closure (parent, child, depth, entry_edge, direct_edge, exit_edge)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("insert edge: prepare derived insert: %w", err)
	}
	defer stmt.Close()

	// Paths into input, extended one hop forward through the new edge.
	for _, e := range incoming {
		_, err := stmt.ExecContext(ctx, e.parent, output, e.depth+1, e.id, rootID, rootID)
		if err != nil {
			return 0, fmt.Errorf("insert edge: extend incoming: %w", err)
		}
	}

	// Paths out of output, extended one hop backward through the new edge.
	for _, f := range outgoing {
		_, err := stmt.ExecContext(ctx, input, f.child, f.depth+1, rootID, rootID, f.id)
		if err != nil {
			return 0, fmt.Errorf("insert edge: extend outgoing: %w", err)
		}
	}

	// Cross product: every path into input bridged with every path out of
	// output.
	for _, e := range incoming {
		for _, f := range outgoing {
			_, err := stmt.ExecContext(ctx, e.parent, f.child, e.depth+f.depth+2, e.id, rootID, f.id)
			if err != nil {
				return 0, fmt.Errorf("insert edge: bridge: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("insert edge: commit: %w", err)
	}

	return edgeID, nil
}

// readIncoming returns all closure rows whose path ends at the given node.
func readIncoming(ctx context.Context, tx *sql.Tx, node graph.NodeID) ([]incomingRow, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, parent, depth FROM closure
		WHERE child = ?
		ORDER BY id ASC
	`, node)
	if err != nil {
		return nil, fmt.Errorf("query incoming rows: %w", err)
	}
	defer rows.Close()

	var result []incomingRow
	for rows.Next() {
		var r incomingRow
		if err := rows.Scan(&r.id, &r.parent, &r.depth); err != nil {
			return nil, fmt.Errorf("scan incoming row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate incoming rows: %w", err)
	}
	return result, nil
}

// readOutgoing returns all closure rows whose path starts at the given node.
func readOutgoing(ctx context.Context, tx *sql.Tx, node graph.NodeID) ([]outgoingRow, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, child, depth FROM closure
		WHERE parent = ?
		ORDER BY id ASC
	`, node)
	if err != nil {
		return nil, fmt.Errorf("query outgoing rows: %w", err)
	}
	defer rows.Close()

	var result []outgoingRow
	for rows.Next() {
		var r outgoingRow
		if err := rows.Scan(&r.id, &r.child, &r.depth); err != nil {
			return nil, fmt.Errorf("scan outgoing row: %w", err)
		}
		result = append(result, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outgoing rows: %w", err)
	}
	return result, nil
}
