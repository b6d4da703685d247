package graph

import (
	"errors"
	"testing"

	"github.com/minseolab/loom/internal/loom"
)

func TestAddNodeRejections(t *testing.T) {
	g := mustGraph(t, agentNode("ag"))

	if _, err := g.AddNode(loom.Node{Type: loom.NodeKindAgent}); !errors.Is(err, ErrMissingField) {
		t.Errorf("empty id: err = %v, want ErrMissingField", err)
	}
	if _, err := g.AddNode(agentNode("ag")); !errors.Is(err, ErrDuplicateNode) {
		t.Errorf("duplicate id: err = %v, want ErrDuplicateNode", err)
	}
}

func TestRemoveNodeCascades(t *testing.T) {
	g := mustGraph(t, inputNode("in"), agentNode("ag"), toolNode("tl"))
	g, _, _ = g.AddEdge(EdgeParams{Source: "in", Target: "ag", SourceHandle: loom.HandleOutput, TargetHandle: loom.HandleInput})
	g, _, _ = g.AddEdge(EdgeParams{Source: "tl", Target: "ag", SourceHandle: loom.HandleToolConnection, TargetHandle: loom.HandleTools})

	g = g.RemoveNode("ag")

	if g.Node("ag") != nil {
		t.Fatal("node still present")
	}
	if len(g.Edges) != 0 {
		t.Fatalf("edges = %d, want 0 after cascade", len(g.Edges))
	}
	if in := g.Node("in"); len(in.Data.OutputConnections) != 0 {
		t.Errorf("input node still references removed agent: %+v", in.Data.OutputConnections)
	}
	if tl := g.Node("tl"); len(tl.Data.OutputConnections) != 0 {
		t.Errorf("tool node still references removed agent: %+v", tl.Data.OutputConnections)
	}
}

func TestRemoveNodeUnknownIsNoop(t *testing.T) {
	g := mustGraph(t, agentNode("ag"))
	got := g.RemoveNode("ghost")
	if len(got.Nodes) != 1 {
		t.Errorf("nodes = %d, want 1", len(got.Nodes))
	}
}

func TestUpdateNodeData(t *testing.T) {
	g := mustGraph(t, inputNode("in"))
	prompt := "summarize news"
	trigger := &loom.TriggerConfig{
		Type:     loom.TriggerSchedule,
		Schedule: &loom.ScheduleConfig{Mode: loom.ScheduleSimple, IntervalType: "hours", IntervalValue: 1},
	}

	g = g.UpdateNodeData("in", NodePatch{Prompt: &prompt, Trigger: trigger})

	n := g.Node("in")
	if n.Data.Prompt != prompt {
		t.Errorf("prompt = %q, want %q", n.Data.Prompt, prompt)
	}
	if n.Data.Trigger == nil || n.Data.Trigger.Type != loom.TriggerSchedule {
		t.Errorf("trigger not applied: %+v", n.Data.Trigger)
	}
	// Untouched fields survive.
	if n.Data.Label != "When triggered" {
		t.Errorf("label = %q, want unchanged", n.Data.Label)
	}
}

func TestUpdateNodeDataMergesConfig(t *testing.T) {
	g := mustGraph(t, toolNode("tl"))
	g = g.UpdateNodeData("tl", NodePatch{Config: map[string]any{"url": "https://example.com", "method": "GET"}})
	g = g.UpdateNodeData("tl", NodePatch{Config: map[string]any{"method": "POST"}})

	cfg := g.Node("tl").Data.Config
	if cfg["url"] != "https://example.com" {
		t.Errorf("url = %v, want preserved", cfg["url"])
	}
	if cfg["method"] != "POST" {
		t.Errorf("method = %v, want overridden", cfg["method"])
	}
}

func TestUpdateNodeDataUnknownIsNoop(t *testing.T) {
	g := mustGraph(t, agentNode("ag"))
	label := "renamed"
	got := g.UpdateNodeData("ghost", NodePatch{Label: &label})
	if got.Node("ag").Data.Label != "Agent" {
		t.Error("unrelated node changed")
	}
}

func TestResyncRepairsDrift(t *testing.T) {
	// A document with correct edges but stale summaries: the agent lists a
	// connection that no longer exists and misses the one that does.
	wf := &loom.Workflow{
		Nodes: []loom.Node{
			inputNode("in"),
			{ID: "ag", Type: loom.NodeKindAgent, Data: loom.NodeData{
				Label: "Agent",
				InputConnections: []loom.ConnectionRef{
					{PeerID: "ghost", PeerKind: "tool", HandleID: loom.HandleTools},
				},
			}},
		},
		Edges: []loom.Edge{
			{ID: "e1", Source: "in", Target: "ag", SourceHandle: loom.HandleOutput, TargetHandle: loom.HandleInput},
		},
	}

	g := FromWorkflow(wf).Resync()

	ag := g.Node("ag")
	if len(ag.Data.InputConnections) != 1 {
		t.Fatalf("input connections = %d, want 1", len(ag.Data.InputConnections))
	}
	if ref := ag.Data.InputConnections[0]; ref.PeerID != "in" || ref.HandleID != loom.HandleInput {
		t.Errorf("unexpected ref after resync: %+v", ref)
	}
	if in := g.Node("in"); len(in.Data.OutputConnections) != 1 {
		t.Errorf("source summaries not rebuilt: %+v", in.Data)
	}
}

func TestCanConnect(t *testing.T) {
	in := inputNode("in")
	ag := agentNode("ag")
	tl := toolNode("tl")

	tests := []struct {
		name   string
		source *loom.Node
		target *loom.Node
		want   bool
	}{
		{"input to agent", &in, &ag, true},
		{"agent to tool", &ag, &tl, true},
		{"anything into input", &ag, &in, false},
		{"input into input", &in, &in, false},
		{"nil source", nil, &ag, false},
		{"nil target", &ag, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanConnect(tt.source, tt.target); got != tt.want {
				t.Errorf("CanConnect = %v, want %v", got, tt.want)
			}
		})
	}
}
