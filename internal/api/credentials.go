package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minseolab/loom/internal/loom"
	"github.com/minseolab/loom/internal/repository"
)

// Credential endpoints back the credential-profile selector dialog. Secrets
// are encrypted before storage and never appear in responses.

func (s *Server) createCredential(w http.ResponseWriter, r *http.Request) {
	var cred loom.Credential
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if cred.Name == "" || cred.Provider == "" {
		http.Error(w, "name and provider are required", http.StatusBadRequest)
		return
	}
	if err := s.credentials.Create(r.Context(), &cred); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, cred.Safe())
}

func (s *Server) listCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := s.credentials.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if creds == nil {
		creds = []loom.CredentialSafe{}
	}
	writeJSON(w, http.StatusOK, creds)
}

func (s *Server) getCredential(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cred, err := s.credentials.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "credential not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cred.Safe())
}

func (s *Server) updateCredential(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var cred loom.Credential
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	cred.ID = id
	err := s.credentials.Update(r.Context(), &cred)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "credential not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, cred.Safe())
}

func (s *Server) deleteCredential(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.credentials.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "credential not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
