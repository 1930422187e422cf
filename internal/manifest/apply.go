package manifest

import (
	"context"
	"fmt"

	"github.com/roach88/lineage/internal/graph"
	"github.com/roach88/lineage/internal/store"
)

// Result reports what an Apply created.
type Result struct {
	// NodeIDs maps each declared node ref to its store-visible id,
	// including minted ones.
	NodeIDs map[string]graph.NodeID

	// EdgeIDs are the inserted edges, in link declaration order.
	EdgeIDs []graph.EdgeID
}

// Apply inserts the manifest's links into the store, in declaration order.
//
// Link endpoints naming a declared node ref resolve through it; any other
// endpoint is taken as a literal node id. Nodes without an explicit id get
// one from gen.
//
// Each link is inserted through the store's guarded insertion path and is
// individually atomic. Apply stops at the first rejected link; links already
// applied stay applied; the closure index remains consistent, the manifest
// import is simply incomplete. Callers wanting all-or-nothing semantics
// should apply into a fresh database and swap it in.
func Apply(ctx context.Context, st *store.Store, gen graph.IDGenerator, m *Manifest) (*Result, error) {
	res := &Result{
		NodeIDs: make(map[string]graph.NodeID, len(m.Nodes)),
		EdgeIDs: make([]graph.EdgeID, 0, len(m.Links)),
	}

	for _, n := range m.Nodes {
		if n.ID != "" {
			res.NodeIDs[n.Ref] = graph.NormalizeNodeID(graph.NodeID(n.ID))
			continue
		}
		res.NodeIDs[n.Ref] = gen.Generate()
	}

	resolve := func(endpoint string) graph.NodeID {
		if id, ok := res.NodeIDs[endpoint]; ok {
			return id
		}
		return graph.NodeID(endpoint)
	}

	for i, l := range m.Links {
		id, err := st.InsertEdge(ctx, resolve(l.From), resolve(l.To))
		if err != nil {
			return res, fmt.Errorf("apply %s: link %d (%s -> %s): %w", m.Name, i, l.From, l.To, err)
		}
		res.EdgeIDs = append(res.EdgeIDs, id)
	}

	return res, nil
}
