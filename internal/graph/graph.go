// Package graph holds the in-memory workflow graph and the operations that
// mutate it. The edge list is the single source of truth; every operation
// returns a new snapshot whose per-node connection summaries have been
// re-synchronized with the edges.
package graph

import (
	"errors"

	"github.com/minseolab/loom/internal/loom"
)

var (
	// ErrMissingField is returned when an intent lacks a required field.
	// The graph is left unchanged.
	ErrMissingField = errors.New("missing required field")
	// ErrUnknownNode is returned when an intent references a node id that
	// does not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")
	// ErrDuplicateNode is returned when adding a node whose id is taken.
	ErrDuplicateNode = errors.New("duplicate node id")
	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = errors.New("self-loop not allowed")
	// ErrTriggerTarget is returned when an edge would point at an input
	// node. Triggers are sources only.
	ErrTriggerTarget = errors.New("input nodes cannot receive connections")
)

// Graph is a snapshot of the workflow structure. Operations never mutate
// the receiver; they return an updated copy. Slices that an operation does
// not touch keep their identity across snapshots.
type Graph struct {
	Nodes []loom.Node
	Edges []loom.Edge
}

// FromWorkflow extracts the graph from a workflow document.
func FromWorkflow(wf *loom.Workflow) Graph {
	return Graph{Nodes: wf.Nodes, Edges: wf.Edges}
}

// Node returns the node with the given id, or nil.
func (g Graph) Node(id string) *loom.Node {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// AddNode appends a node to the graph. Nodes with an empty id, and ids that
// already exist, are rejected with the graph unchanged.
func (g Graph) AddNode(n loom.Node) (Graph, error) {
	if n.ID == "" {
		return g, ErrMissingField
	}
	if g.Node(n.ID) != nil {
		return g, ErrDuplicateNode
	}
	nodes := make([]loom.Node, len(g.Nodes), len(g.Nodes)+1)
	copy(nodes, g.Nodes)
	return Graph{Nodes: append(nodes, n), Edges: g.Edges}, nil
}

// RemoveNode deletes a node and cascades to every edge incident on it,
// following the same synchronization rules as RemoveEdges. Removing an
// unknown id is a no-op.
func (g Graph) RemoveNode(id string) Graph {
	if g.Node(id) == nil {
		return g
	}
	var incident []string
	for _, e := range g.Edges {
		if e.Source == id || e.Target == id {
			incident = append(incident, e.ID)
		}
	}
	g = g.RemoveEdges(incident...)

	nodes := make([]loom.Node, 0, len(g.Nodes)-1)
	for _, n := range g.Nodes {
		if n.ID != id {
			nodes = append(nodes, n)
		}
	}
	return Graph{Nodes: nodes, Edges: g.Edges}
}

// NodePatch is a partial update to a node's data. Nil fields are left
// untouched; Config entries are merged key by key. Configuration dialogs
// (schedule, webhook, credential picker, tool selection) report their
// results through patches so they never reach into the graph directly.
type NodePatch struct {
	Label        *string
	Prompt       *string
	Trigger      *loom.TriggerConfig
	Instructions *string
	Config       map[string]any
	CredentialID *string
}

// UpdateNodeData merges a patch into a node's data. Patching an unknown
// node is a no-op.
func (g Graph) UpdateNodeData(id string, patch NodePatch) Graph {
	idx := -1
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return g
	}

	nodes := make([]loom.Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	data := &nodes[idx].Data

	if patch.Label != nil {
		data.Label = *patch.Label
	}
	if patch.Prompt != nil {
		data.Prompt = *patch.Prompt
	}
	if patch.Trigger != nil {
		data.Trigger = patch.Trigger
	}
	if patch.Instructions != nil {
		data.Instructions = *patch.Instructions
	}
	if patch.CredentialID != nil {
		data.CredentialID = *patch.CredentialID
	}
	if len(patch.Config) > 0 {
		merged := make(map[string]any, len(data.Config)+len(patch.Config))
		for k, v := range data.Config {
			merged[k] = v
		}
		for k, v := range patch.Config {
			merged[k] = v
		}
		data.Config = merged
	}
	return Graph{Nodes: nodes, Edges: g.Edges}
}
