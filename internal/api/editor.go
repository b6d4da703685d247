package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minseolab/loom/internal/graph"
	"github.com/minseolab/loom/internal/loom"
	"github.com/minseolab/loom/internal/validate"
)

// The editor endpoints apply single canvas intents (drop a node, draw or
// delete a connection, attach dialog results) to a stored workflow. Each
// mutation is applied to a fresh snapshot, stored, and returned together
// with the re-run validation so the canvas can show findings immediately.
// Findings never block these incremental edits; the document-level save is
// where errors become blocking.

func (s *Server) addNode(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var node loom.Node
	if err := json.NewDecoder(r.Body).Decode(&node); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if node.ID == "" {
		node.ID = loom.GenerateID("node")
	}

	g, err := graph.FromWorkflow(wf).AddNode(node)
	if err != nil {
		writeGraphError(w, err)
		return
	}
	s.storeEdit(w, r, wf, g)
}

func (s *Server) patchNode(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if g := graph.FromWorkflow(wf); g.Node(id) == nil {
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}

	var body struct {
		Label        *string             `json:"label"`
		Prompt       *string             `json:"prompt"`
		Trigger      *loom.TriggerConfig `json:"trigger"`
		Instructions *string             `json:"instructions"`
		Config       map[string]any      `json:"config"`
		CredentialID *string             `json:"credential_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g := graph.FromWorkflow(wf).UpdateNodeData(id, graph.NodePatch{
		Label:        body.Label,
		Prompt:       body.Prompt,
		Trigger:      body.Trigger,
		Instructions: body.Instructions,
		Config:       body.Config,
		CredentialID: body.CredentialID,
	})
	s.storeEdit(w, r, wf, g)
}

func (s *Server) removeNode(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.lookup(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	g := graph.FromWorkflow(wf)
	if g.Node(id) == nil {
		http.Error(w, "node not found", http.StatusNotFound)
		return
	}
	s.storeEdit(w, r, wf, g.RemoveNode(id))
}

func (s *Server) connect(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var params graph.EdgeParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	g := graph.FromWorkflow(wf)
	if !graph.CanConnect(g.Node(params.Source), g.Node(params.Target)) {
		http.Error(w, "connection not allowed", http.StatusConflict)
		return
	}
	g, _, err := g.AddEdge(params)
	if err != nil {
		writeGraphError(w, err)
		return
	}
	s.storeEdit(w, r, wf, g)
}

func (s *Server) disconnect(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var body struct {
		EdgeIDs []string `json:"edge_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	s.storeEdit(w, r, wf, graph.FromWorkflow(wf).RemoveEdges(body.EdgeIDs...))
}

// storeEdit writes the edited graph back into the workflow document,
// persists it, and responds with the document plus fresh validation.
func (s *Server) storeEdit(w http.ResponseWriter, r *http.Request, wf *loom.Workflow, g graph.Graph) {
	updated := *wf
	updated.Nodes = g.Nodes
	updated.Edges = g.Edges

	if err := s.workflows.Update(r.Context(), wf.Name, &updated); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, workflowResponse{
		Workflow:   &updated,
		Validation: validate.Workflow(&updated),
	})
}

func writeGraphError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, graph.ErrMissingField):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, graph.ErrUnknownNode):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusConflict)
	}
}
