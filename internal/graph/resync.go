package graph

import "github.com/minseolab/loom/internal/loom"

// Resync rebuilds every node's denormalized connection summaries from the
// edge list alone. Documents arriving from outside the synchronizer (older
// clients, hand-edited JSON) may carry drifted summaries; resyncing before
// validation and save restores the projection invariant. Edges whose
// endpoints are missing are left to the validator to report.
func (g Graph) Resync() Graph {
	nodes := make([]loom.Node, len(g.Nodes))
	copy(nodes, g.Nodes)

	index := make(map[string]*loom.Node, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		n.Data.InputConnections = nil
		n.Data.OutputConnections = nil
		n.Data.ConnectedTools = nil
		index[n.ID] = n
	}

	for _, e := range g.Edges {
		src, ok := index[e.Source]
		if !ok {
			continue
		}
		tgt, ok := index[e.Target]
		if !ok {
			continue
		}
		tgt.Data.InputConnections = appendRef(tgt.Data.InputConnections, loom.ConnectionRef{
			PeerID:    src.ID,
			PeerLabel: src.Data.Label,
			PeerKind:  string(src.Type),
			HandleID:  e.TargetHandle,
		})
		src.Data.OutputConnections = appendRef(src.Data.OutputConnections, loom.ConnectionRef{
			PeerID:    tgt.ID,
			PeerLabel: tgt.Data.Label,
			PeerKind:  string(tgt.Type),
			HandleID:  e.SourceHandle,
		})
		if isToolHookup(e.SourceHandle, e.TargetHandle) {
			tgt.Data.ConnectedTools = appendTool(tgt.Data.ConnectedTools, loom.ToolRef{
				PeerID:    src.ID,
				PeerLabel: src.Data.Label,
				ToolKind:  string(src.Type),
			})
		}
	}
	return Graph{Nodes: nodes, Edges: g.Edges}
}
