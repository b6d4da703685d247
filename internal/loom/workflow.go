// Package loom defines the domain model for the workflow builder: typed
// nodes, handle-qualified edges, and the trigger configuration unions.
package loom

// NodeKind identifies the role a node plays in a workflow graph.
type NodeKind string

const (
	NodeKindInput       NodeKind = "input"
	NodeKindAgent       NodeKind = "agent"
	NodeKindTool        NodeKind = "tool"
	NodeKindIntegration NodeKind = "integration"
)

// Handle names used on the canvas. An edge records which handle it attaches
// to on each endpoint; the tools/tool-connection pair marks a tool hookup.
const (
	HandleInput          = "input"
	HandleOutput         = "output"
	HandleTools          = "tools"
	HandleToolConnection = "tool-connection"
)

// Workflow is the persisted document the builder produces.
type Workflow struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Nodes       []Node         `json:"nodes"`
	Edges       []Edge         `json:"edges"`
	Variables   map[string]any `json:"variables"`
}

// Position is the node's canvas placement. The backend carries it through
// persistence untouched.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Node struct {
	ID       string   `json:"id"`
	Type     NodeKind `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// NodeData holds the per-kind payload. Which fields are meaningful depends
// on Node.Type: input nodes carry Prompt and Trigger, agent nodes carry
// ConnectedTools, tool and integration nodes carry Instructions, Config and
// CredentialID. The connection lists are denormalized summaries of the edge
// list and are maintained exclusively by the graph package.
type NodeData struct {
	Label string `json:"label"`

	// Input nodes.
	Prompt  string         `json:"prompt,omitempty"`
	Trigger *TriggerConfig `json:"trigger,omitempty"`

	// Denormalized edge summaries for display.
	InputConnections  []ConnectionRef `json:"input_connections,omitempty"`
	OutputConnections []ConnectionRef `json:"output_connections,omitempty"`
	ConnectedTools    []ToolRef       `json:"connected_tools,omitempty"`

	// Tool and integration connectors.
	Instructions string         `json:"instructions,omitempty"`
	Config       map[string]any `json:"config,omitempty"`
	CredentialID string         `json:"credential_id,omitempty"`
}

// ConnectionRef is a human-readable summary of one edge endpoint, stored on
// both endpoints' node data. Entries are unique per (PeerID, HandleID).
type ConnectionRef struct {
	PeerID    string `json:"peer_id"`
	PeerLabel string `json:"peer_label"`
	PeerKind  string `json:"peer_kind"`
	HandleID  string `json:"handle_id"`
}

// ToolRef summarizes a tool hookup on an agent node. Entries are unique per
// PeerID: a tool is either connected to the agent or it is not.
type ToolRef struct {
	PeerID    string `json:"peer_id"`
	PeerLabel string `json:"peer_label"`
	ToolKind  string `json:"tool_kind"`
}

// Edge is the sole authoritative connectivity record. Condition optionally
// holds a boolean expression gating traversal at execution time; the builder
// only checks its syntax.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle"`
	TargetHandle string `json:"targetHandle"`
	Condition    string `json:"condition,omitempty"`
}

// Node returns the node with the given id, or nil.
func (w *Workflow) Node(id string) *Node {
	for i := range w.Nodes {
		if w.Nodes[i].ID == id {
			return &w.Nodes[i]
		}
	}
	return nil
}
