package repository

import (
	"context"
	"log/slog"

	"github.com/minseolab/loom/internal/db"
	"github.com/minseolab/loom/internal/loom"
)

// PersistentWorkflowRepository wraps a MemoryWorkflowRepository with a
// PostgreSQL backend. Writes go to both stores (DB failure is logged but
// non-fatal). Reads try memory first, falling back to the database.
type PersistentWorkflowRepository struct {
	mem *MemoryWorkflowRepository
	db  *db.DB
}

// NewPersistentWorkflows creates a repository backed by both memory and
// PostgreSQL.
func NewPersistentWorkflows(mem *MemoryWorkflowRepository, database *db.DB) *PersistentWorkflowRepository {
	return &PersistentWorkflowRepository{mem: mem, db: database}
}

func (r *PersistentWorkflowRepository) Create(ctx context.Context, wf *loom.Workflow) error {
	_ = r.mem.Create(ctx, wf)
	if err := r.db.UpsertWorkflow(ctx, wf); err != nil {
		slog.Warn("db create workflow failed, in-memory only", "workflow", wf.Name, "err", err)
	}
	return nil
}

func (r *PersistentWorkflowRepository) Get(ctx context.Context, name string) (*loom.Workflow, error) {
	// Fast path: in-memory.
	wf, err := r.mem.Get(ctx, name)
	if err == nil {
		return wf, nil
	}

	// Fallback: database.
	row, dbErr := r.db.GetWorkflow(ctx, name)
	if dbErr != nil {
		return nil, err // keep the original ErrNotFound
	}

	// Cache in memory for future lookups.
	_ = r.mem.Create(ctx, &row.Definition)
	return &row.Definition, nil
}

func (r *PersistentWorkflowRepository) List(ctx context.Context) ([]*loom.Workflow, error) {
	// Prefer DB for durable listing.
	rows, err := r.db.ListWorkflows(ctx)
	if err == nil {
		result := make([]*loom.Workflow, len(rows))
		for i := range rows {
			result[i] = &rows[i].Definition
		}
		return result, nil
	}
	slog.Warn("db list workflows failed, falling back to in-memory", "err", err)
	return r.mem.List(ctx)
}

func (r *PersistentWorkflowRepository) Update(ctx context.Context, name string, wf *loom.Workflow) error {
	_ = r.mem.Update(ctx, name, wf)
	var err error
	if name != wf.Name {
		err = r.db.RenameWorkflow(ctx, name, wf)
	} else {
		err = r.db.UpsertWorkflow(ctx, wf)
	}
	if err != nil {
		slog.Warn("db update workflow failed, in-memory only", "workflow", wf.Name, "err", err)
	}
	return nil
}

func (r *PersistentWorkflowRepository) Delete(ctx context.Context, name string) error {
	_ = r.mem.Delete(ctx, name)
	if err := r.db.DeleteWorkflow(ctx, name); err != nil {
		slog.Warn("db delete workflow failed", "workflow", name, "err", err)
	}
	return nil
}

// PersistentCredentialRepository mirrors the workflow dual-write layout for
// credential profiles.
type PersistentCredentialRepository struct {
	mem *MemoryCredentialRepository
	db  *db.DB
}

// NewPersistentCredentials creates a credential repository backed by both
// memory and PostgreSQL.
func NewPersistentCredentials(mem *MemoryCredentialRepository, database *db.DB) *PersistentCredentialRepository {
	return &PersistentCredentialRepository{mem: mem, db: database}
}

func (r *PersistentCredentialRepository) Create(ctx context.Context, c *loom.Credential) error {
	_ = r.mem.Create(ctx, c)
	if err := r.db.UpsertCredential(ctx, c); err != nil {
		slog.Warn("db create credential failed, in-memory only", "credential", c.ID, "err", err)
	}
	return nil
}

func (r *PersistentCredentialRepository) Get(ctx context.Context, id string) (*loom.Credential, error) {
	c, err := r.mem.Get(ctx, id)
	if err == nil {
		return c, nil
	}
	row, dbErr := r.db.GetCredential(ctx, id)
	if dbErr != nil {
		return nil, err
	}
	_ = r.mem.Create(ctx, row)
	return row, nil
}

func (r *PersistentCredentialRepository) List(ctx context.Context) ([]*loom.Credential, error) {
	rows, err := r.db.ListCredentials(ctx)
	if err == nil {
		return rows, nil
	}
	slog.Warn("db list credentials failed, falling back to in-memory", "err", err)
	return r.mem.List(ctx)
}

func (r *PersistentCredentialRepository) Update(ctx context.Context, c *loom.Credential) error {
	if err := r.mem.Update(ctx, c); err != nil {
		return err
	}
	if err := r.db.UpsertCredential(ctx, c); err != nil {
		slog.Warn("db update credential failed, in-memory only", "credential", c.ID, "err", err)
	}
	return nil
}

func (r *PersistentCredentialRepository) Delete(ctx context.Context, id string) error {
	if err := r.mem.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.db.DeleteCredential(ctx, id); err != nil {
		slog.Warn("db delete credential failed", "credential", id, "err", err)
	}
	return nil
}
