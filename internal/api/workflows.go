package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minseolab/loom/internal/graph"
	"github.com/minseolab/loom/internal/loom"
	"github.com/minseolab/loom/internal/repository"
	"github.com/minseolab/loom/internal/validate"
)

// workflowResponse pairs a workflow document with its validation result so
// the canvas can render inline findings after every save.
type workflowResponse struct {
	Workflow   *loom.Workflow  `json:"workflow"`
	Validation validate.Result `json:"validation"`
}

// normalize resynchronizes the denormalized connection summaries with the
// edge list before the document is validated or stored.
func normalize(wf *loom.Workflow) {
	g := graph.FromWorkflow(wf).Resync()
	wf.Nodes = g.Nodes
	wf.Edges = g.Edges
	if wf.Variables == nil {
		wf.Variables = map[string]any{}
	}
}

// createWorkflow validates and stores a new workflow document.
// POST /api/workflows
func (s *Server) createWorkflow(w http.ResponseWriter, r *http.Request) {
	var wf loom.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if wf.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	normalize(&wf)

	result := validate.Workflow(&wf)
	if !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, workflowResponse{Workflow: &wf, Validation: result})
		return
	}

	if err := s.workflows.Create(r.Context(), &wf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, workflowResponse{Workflow: &wf, Validation: result})
}

// listWorkflows returns all stored workflows.
// GET /api/workflows
func (s *Server) listWorkflows(w http.ResponseWriter, r *http.Request) {
	wfs, err := s.workflows.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if wfs == nil {
		wfs = []*loom.Workflow{}
	}
	writeJSON(w, http.StatusOK, wfs)
}

// getWorkflow returns a single workflow by name.
// GET /api/workflows/{name}
func (s *Server) getWorkflow(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, wf)
}

// updateWorkflow replaces a stored workflow. Error findings block the save.
// PUT /api/workflows/{name}
func (s *Server) updateWorkflow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var wf loom.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if wf.Name == "" {
		wf.Name = name
	}
	normalize(&wf)

	result := validate.Workflow(&wf)
	if !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, workflowResponse{Workflow: &wf, Validation: result})
		return
	}

	if err := s.workflows.Update(r.Context(), name, &wf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, workflowResponse{Workflow: &wf, Validation: result})
}

// deleteWorkflow removes a workflow.
// DELETE /api/workflows/{name}
func (s *Server) deleteWorkflow(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.workflows.Delete(r.Context(), name); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateWorkflow runs validation over a document without storing it.
// POST /api/workflows/validate
func (s *Server) validateWorkflow(w http.ResponseWriter, r *http.Request) {
	var wf loom.Workflow
	if err := json.NewDecoder(r.Body).Decode(&wf); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	normalize(&wf)
	writeJSON(w, http.StatusOK, validate.Workflow(&wf))
}

// getWorkflowValidation re-validates a stored workflow.
// GET /api/workflows/{name}/validation
func (s *Server) getWorkflowValidation(w http.ResponseWriter, r *http.Request) {
	wf, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, validate.Workflow(wf))
}

// lookup resolves the {name} path parameter to a stored workflow, writing
// the error response itself when the workflow is missing.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*loom.Workflow, bool) {
	name := chi.URLParam(r, "name")
	wf, err := s.workflows.Get(r.Context(), name)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "workflow not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return wf, true
}
