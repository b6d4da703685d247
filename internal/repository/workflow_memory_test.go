package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/minseolab/loom/internal/loom"
)

func TestMemoryWorkflows_CreateAndGet(t *testing.T) {
	repo := NewMemoryWorkflows()
	ctx := context.Background()

	wf := &loom.Workflow{
		Name:        "daily-digest",
		Description: "summarize the morning feeds",
		Nodes: []loom.Node{
			{ID: "in", Type: loom.NodeKindInput, Data: loom.NodeData{Label: "Input", Prompt: "summarize"}},
		},
		Variables: map[string]any{},
	}

	if err := repo.Create(ctx, wf); err != nil {
		t.Fatalf("Create returned unexpected error: %v", err)
	}

	got, err := repo.Get(ctx, "daily-digest")
	if err != nil {
		t.Fatalf("Get returned unexpected error: %v", err)
	}
	if got.Name != wf.Name {
		t.Errorf("Name = %q, want %q", got.Name, wf.Name)
	}
	if len(got.Nodes) != 1 {
		t.Errorf("Nodes = %d, want 1", len(got.Nodes))
	}
}

func TestMemoryWorkflows_GetMissing(t *testing.T) {
	repo := NewMemoryWorkflows()
	_, err := repo.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryWorkflows_UpdateRename(t *testing.T) {
	repo := NewMemoryWorkflows()
	ctx := context.Background()

	wf := &loom.Workflow{Name: "old-name"}
	if err := repo.Create(ctx, wf); err != nil {
		t.Fatalf("Create: %v", err)
	}

	renamed := &loom.Workflow{Name: "new-name"}
	if err := repo.Update(ctx, "old-name", renamed); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if _, err := repo.Get(ctx, "old-name"); !errors.Is(err, ErrNotFound) {
		t.Errorf("old name still resolves: err = %v", err)
	}
	if _, err := repo.Get(ctx, "new-name"); err != nil {
		t.Errorf("new name missing: %v", err)
	}
}

func TestMemoryWorkflows_DeleteIsIdempotent(t *testing.T) {
	repo := NewMemoryWorkflows()
	ctx := context.Background()

	if err := repo.Delete(ctx, "never-existed"); err != nil {
		t.Fatalf("Delete on missing workflow: %v", err)
	}

	_ = repo.Create(ctx, &loom.Workflow{Name: "wf"})
	if err := repo.Delete(ctx, "wf"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, "wf"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List = %d entries, want 0", len(list))
	}
}
