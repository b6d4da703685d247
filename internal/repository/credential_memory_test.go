package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/minseolab/loom/internal/loom"
)

func TestMemoryCredentials_CRUD(t *testing.T) {
	repo := NewMemoryCredentials()
	ctx := context.Background()

	cred := &loom.Credential{
		ID:       "cred-001",
		Name:     "team slack",
		Provider: "slack",
		Secret:   "xoxb-secret",
	}

	if err := repo.Create(ctx, cred); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(ctx, "cred-001")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Provider != "slack" {
		t.Errorf("Provider = %q, want slack", got.Provider)
	}

	got.Name = "renamed"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "renamed" {
		t.Errorf("List = %+v, want single renamed entry", list)
	}

	if err := repo.Delete(ctx, "cred-001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, "cred-001"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryCredentials_UpdateMissing(t *testing.T) {
	repo := NewMemoryCredentials()
	err := repo.Update(context.Background(), &loom.Credential{ID: "ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryCredentials_DeleteMissing(t *testing.T) {
	repo := NewMemoryCredentials()
	err := repo.Delete(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
