package repository

import (
	"context"
	"errors"
	"fmt"

	memstore "github.com/minseolab/loom/internal/repository/memory"
	"github.com/minseolab/loom/internal/loom"
)

// MemoryWorkflowRepository is a thread-safe in-memory WorkflowRepository.
type MemoryWorkflowRepository struct {
	store *memstore.Store[*loom.Workflow]
}

// NewMemoryWorkflows creates an empty in-memory workflow repository.
func NewMemoryWorkflows() *MemoryWorkflowRepository {
	return &MemoryWorkflowRepository{
		store: memstore.New(func(w *loom.Workflow) string { return w.Name }),
	}
}

func (r *MemoryWorkflowRepository) Create(ctx context.Context, wf *loom.Workflow) error {
	return r.store.Put(ctx, wf)
}

func (r *MemoryWorkflowRepository) Get(ctx context.Context, name string) (*loom.Workflow, error) {
	wf, err := r.store.Get(ctx, name)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: workflow %s", ErrNotFound, name)
	}
	return wf, err
}

func (r *MemoryWorkflowRepository) List(ctx context.Context) ([]*loom.Workflow, error) {
	return r.store.All(ctx)
}

func (r *MemoryWorkflowRepository) Update(ctx context.Context, name string, wf *loom.Workflow) error {
	// A rename moves the entry to the new key.
	if name != wf.Name {
		return r.store.Rename(ctx, name, wf)
	}
	return r.store.Put(ctx, wf)
}

func (r *MemoryWorkflowRepository) Delete(ctx context.Context, name string) error {
	// Deleting a missing workflow is a no-op.
	_ = r.store.Delete(ctx, name)
	return nil
}
