package graph

import "github.com/minseolab/loom/internal/loom"

// EdgeParams describes a connect intent from the canvas.
type EdgeParams struct {
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
}

// isToolHookup reports whether the handle pair marks a tool-to-agent
// connection, which additionally maintains the agent's ConnectedTools list.
func isToolHookup(sourceHandle, targetHandle string) bool {
	return targetHandle == loom.HandleTools && sourceHandle == loom.HandleToolConnection
}

// AddEdge inserts a new edge and updates the denormalized connection
// summaries on both endpoints. A connect intent that duplicates an existing
// edge (same endpoints and handles) returns the existing edge unchanged, so
// duplicate summaries can never be created in the first place.
func (g Graph) AddEdge(p EdgeParams) (Graph, loom.Edge, error) {
	if p.Source == "" || p.Target == "" {
		return g, loom.Edge{}, ErrMissingField
	}
	if p.Source == p.Target {
		return g, loom.Edge{}, ErrSelfLoop
	}

	srcIdx, tgtIdx := -1, -1
	for i := range g.Nodes {
		switch g.Nodes[i].ID {
		case p.Source:
			srcIdx = i
		case p.Target:
			tgtIdx = i
		}
	}
	if srcIdx < 0 || tgtIdx < 0 {
		return g, loom.Edge{}, ErrUnknownNode
	}
	if g.Nodes[tgtIdx].Type == loom.NodeKindInput {
		return g, loom.Edge{}, ErrTriggerTarget
	}

	for _, e := range g.Edges {
		if e.Source == p.Source && e.Target == p.Target &&
			e.SourceHandle == p.SourceHandle && e.TargetHandle == p.TargetHandle {
			return g, e, nil
		}
	}

	edge := loom.Edge{
		ID:           loom.GenerateID("edge"),
		Source:       p.Source,
		Target:       p.Target,
		SourceHandle: p.SourceHandle,
		TargetHandle: p.TargetHandle,
	}

	nodes := make([]loom.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	src := &nodes[srcIdx]
	tgt := &nodes[tgtIdx]

	tgt.Data.InputConnections = appendRef(tgt.Data.InputConnections, loom.ConnectionRef{
		PeerID:    src.ID,
		PeerLabel: src.Data.Label,
		PeerKind:  string(src.Type),
		HandleID:  p.TargetHandle,
	})
	src.Data.OutputConnections = appendRef(src.Data.OutputConnections, loom.ConnectionRef{
		PeerID:    tgt.ID,
		PeerLabel: tgt.Data.Label,
		PeerKind:  string(tgt.Type),
		HandleID:  p.SourceHandle,
	})
	if isToolHookup(p.SourceHandle, p.TargetHandle) {
		tgt.Data.ConnectedTools = appendTool(tgt.Data.ConnectedTools, loom.ToolRef{
			PeerID:    src.ID,
			PeerLabel: src.Data.Label,
			ToolKind:  string(src.Type),
		})
	}

	edges := make([]loom.Edge, len(g.Edges), len(g.Edges)+1)
	copy(edges, g.Edges)
	return Graph{Nodes: nodes, Edges: append(edges, edge)}, edge, nil
}

// RemoveEdges deletes the given edges and strips the matching summary
// entries from every affected node. Unknown ids are ignored; nodes whose
// summaries are untouched keep their original slices.
func (g Graph) RemoveEdges(ids ...string) Graph {
	removing := make(map[string]bool, len(ids))
	for _, id := range ids {
		removing[id] = true
	}

	// Resolve full edge records before they are dropped: the intent only
	// carries ids, but summary filtering needs endpoints and handles.
	var removed []loom.Edge
	for _, e := range g.Edges {
		if removing[e.ID] {
			removed = append(removed, e)
		}
	}
	if len(removed) == 0 {
		return g
	}

	nodes := make([]loom.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	for i := range nodes {
		n := &nodes[i]
		n.Data.InputConnections = filterRefs(n.Data.InputConnections, removed, func(e loom.Edge) (string, string, bool) {
			return e.Source, e.TargetHandle, e.Target == n.ID
		})
		n.Data.OutputConnections = filterRefs(n.Data.OutputConnections, removed, func(e loom.Edge) (string, string, bool) {
			return e.Target, e.SourceHandle, e.Source == n.ID
		})
		if n.Type == loom.NodeKindAgent {
			n.Data.ConnectedTools = filterTools(n.Data.ConnectedTools, removed, n.ID)
		}
	}

	edges := make([]loom.Edge, 0, len(g.Edges)-len(removed))
	for _, e := range g.Edges {
		if !removing[e.ID] {
			edges = append(edges, e)
		}
	}
	return Graph{Nodes: nodes, Edges: edges}
}

// appendRef adds a ConnectionRef unless an entry with the same
// (PeerID, HandleID) pair already exists.
func appendRef(refs []loom.ConnectionRef, ref loom.ConnectionRef) []loom.ConnectionRef {
	for _, r := range refs {
		if r.PeerID == ref.PeerID && r.HandleID == ref.HandleID {
			return refs
		}
	}
	out := make([]loom.ConnectionRef, len(refs), len(refs)+1)
	copy(out, refs)
	return append(out, ref)
}

// appendTool adds a ToolRef unless the peer is already connected.
func appendTool(tools []loom.ToolRef, ref loom.ToolRef) []loom.ToolRef {
	for _, t := range tools {
		if t.PeerID == ref.PeerID {
			return tools
		}
	}
	out := make([]loom.ToolRef, len(tools), len(tools)+1)
	copy(out, tools)
	return append(out, ref)
}

// filterRefs drops entries matching any removed edge. key maps an edge to
// the (peer, handle) pair a matching entry would carry on this node, plus
// whether the edge touches this node at all. The original slice is returned
// when nothing matches.
func filterRefs(refs []loom.ConnectionRef, removed []loom.Edge, key func(loom.Edge) (string, string, bool)) []loom.ConnectionRef {
	var out []loom.ConnectionRef
	for _, r := range refs {
		drop := false
		for _, e := range removed {
			peer, handle, incident := key(e)
			if incident && r.PeerID == peer && r.HandleID == handle {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, r)
		}
	}
	if len(out) == len(refs) {
		return refs
	}
	return out
}

func filterTools(tools []loom.ToolRef, removed []loom.Edge, nodeID string) []loom.ToolRef {
	var out []loom.ToolRef
	for _, t := range tools {
		drop := false
		for _, e := range removed {
			if e.Target == nodeID && isToolHookup(e.SourceHandle, e.TargetHandle) && t.PeerID == e.Source {
				drop = true
				break
			}
		}
		if !drop {
			out = append(out, t)
		}
	}
	if len(out) == len(tools) {
		return tools
	}
	return out
}
