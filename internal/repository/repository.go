// Package repository defines storage interfaces for domain entities.
package repository

import (
	"context"
	"errors"

	"github.com/minseolab/loom/internal/loom"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// WorkflowRepository abstracts workflow persistence so callers don't need
// to know whether storage is in-memory, PostgreSQL, or a mix.
type WorkflowRepository interface {
	Create(ctx context.Context, wf *loom.Workflow) error
	Get(ctx context.Context, name string) (*loom.Workflow, error)
	List(ctx context.Context) ([]*loom.Workflow, error)
	Update(ctx context.Context, name string, wf *loom.Workflow) error
	Delete(ctx context.Context, name string) error
}

// CredentialRepository stores credential profiles keyed by id.
type CredentialRepository interface {
	Create(ctx context.Context, c *loom.Credential) error
	Get(ctx context.Context, id string) (*loom.Credential, error)
	List(ctx context.Context) ([]*loom.Credential, error)
	Update(ctx context.Context, c *loom.Credential) error
	Delete(ctx context.Context, id string) error
}
