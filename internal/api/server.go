// Package api exposes the workflow builder over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/minseolab/loom/internal/catalog"
	"github.com/minseolab/loom/internal/repository"
	"github.com/minseolab/loom/internal/services"
)

type Server struct {
	workflows   repository.WorkflowRepository
	credentials *services.CredentialService
	catalog     *catalog.Registry
}

func NewServer(workflows repository.WorkflowRepository, credentials *services.CredentialService, cat *catalog.Registry) *Server {
	return &Server{
		workflows:   workflows,
		credentials: credentials,
		catalog:     cat,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))
	r.Route("/api", func(r chi.Router) {
		r.Route("/workflows", func(r chi.Router) {
			r.Post("/", s.createWorkflow)
			r.Get("/", s.listWorkflows)
			r.Post("/validate", s.validateWorkflow)
			r.Get("/{name}", s.getWorkflow)
			r.Put("/{name}", s.updateWorkflow)
			r.Delete("/{name}", s.deleteWorkflow)
			r.Get("/{name}/validation", s.getWorkflowValidation)
			r.Post("/{name}/nodes", s.addNode)
			r.Patch("/{name}/nodes/{id}", s.patchNode)
			r.Delete("/{name}/nodes/{id}", s.removeNode)
			r.Post("/{name}/edges", s.connect)
			r.Delete("/{name}/edges", s.disconnect)
		})
		r.Route("/credentials", func(r chi.Router) {
			r.Post("/", s.createCredential)
			r.Get("/", s.listCredentials)
			r.Get("/{id}", s.getCredential)
			r.Put("/{id}", s.updateCredential)
			r.Delete("/{id}", s.deleteCredential)
		})
		r.Get("/tools", s.listTools)
	})
	return r
}

// listTools returns the catalog of tool and integration definitions the
// canvas offers in its node palette.
func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.List())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
