package repository

import (
	"context"
	"errors"
	"fmt"

	memstore "github.com/minseolab/loom/internal/repository/memory"
	"github.com/minseolab/loom/internal/loom"
)

// MemoryCredentialRepository is a thread-safe in-memory CredentialRepository.
type MemoryCredentialRepository struct {
	store *memstore.Store[*loom.Credential]
}

// NewMemoryCredentials creates an empty in-memory credential repository.
func NewMemoryCredentials() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{
		store: memstore.New(func(c *loom.Credential) string { return c.ID }),
	}
}

func (r *MemoryCredentialRepository) Create(ctx context.Context, c *loom.Credential) error {
	return r.store.Put(ctx, c)
}

func (r *MemoryCredentialRepository) Get(ctx context.Context, id string) (*loom.Credential, error) {
	c, err := r.store.Get(ctx, id)
	if errors.Is(err, memstore.ErrNotFound) {
		return nil, fmt.Errorf("%w: credential %s", ErrNotFound, id)
	}
	return c, err
}

func (r *MemoryCredentialRepository) List(ctx context.Context) ([]*loom.Credential, error) {
	return r.store.All(ctx)
}

func (r *MemoryCredentialRepository) Update(ctx context.Context, c *loom.Credential) error {
	if !r.store.Has(ctx, c.ID) {
		return fmt.Errorf("%w: credential %s", ErrNotFound, c.ID)
	}
	return r.store.Put(ctx, c)
}

func (r *MemoryCredentialRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); errors.Is(err, memstore.ErrNotFound) {
		return fmt.Errorf("%w: credential %s", ErrNotFound, id)
	}
	return nil
}
