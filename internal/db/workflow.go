package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/minseolab/loom/internal/loom"
)

// ErrNoRow is returned when a queried row does not exist.
var ErrNoRow = errors.New("row not found")

// WorkflowRow represents a workflow stored in the database.
type WorkflowRow struct {
	ID         string
	Name       string
	Definition loom.Workflow
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpsertWorkflow stores a workflow, replacing any existing definition with
// the same name.
func (d *DB) UpsertWorkflow(ctx context.Context, wf *loom.Workflow) error {
	defJSON, err := json.Marshal(wf)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}

	now := time.Now()
	_, err = d.Pool.ExecContext(ctx,
		`INSERT INTO workflows (id, name, definition, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 ON CONFLICT (name) DO UPDATE SET definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at`,
		loom.GenerateID("wf"), wf.Name, defJSON, now,
	)
	if err != nil {
		return fmt.Errorf("upsert workflow: %w", err)
	}
	return nil
}

// GetWorkflow retrieves a workflow by name.
func (d *DB) GetWorkflow(ctx context.Context, name string) (*WorkflowRow, error) {
	var row WorkflowRow
	var defJSON []byte

	err := d.Pool.QueryRowContext(ctx,
		`SELECT id, name, definition, created_at, updated_at
		 FROM workflows WHERE name = $1`, name,
	).Scan(&row.ID, &row.Name, &defJSON, &row.CreatedAt, &row.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: workflow %s", ErrNoRow, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get workflow: %w", err)
	}

	if err := json.Unmarshal(defJSON, &row.Definition); err != nil {
		return nil, fmt.Errorf("unmarshal definition: %w", err)
	}
	return &row, nil
}

// ListWorkflows returns all workflows ordered by name.
func (d *DB) ListWorkflows(ctx context.Context) ([]WorkflowRow, error) {
	rows, err := d.Pool.QueryContext(ctx,
		`SELECT id, name, definition, created_at, updated_at
		 FROM workflows ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer rows.Close()

	var out []WorkflowRow
	for rows.Next() {
		var row WorkflowRow
		var defJSON []byte
		if err := rows.Scan(&row.ID, &row.Name, &defJSON, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workflow: %w", err)
		}
		if err := json.Unmarshal(defJSON, &row.Definition); err != nil {
			return nil, fmt.Errorf("unmarshal definition: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// RenameWorkflow updates the stored name and definition in one statement.
func (d *DB) RenameWorkflow(ctx context.Context, oldName string, wf *loom.Workflow) error {
	defJSON, err := json.Marshal(wf)
	if err != nil {
		return fmt.Errorf("marshal definition: %w", err)
	}
	_, err = d.Pool.ExecContext(ctx,
		`UPDATE workflows SET name = $2, definition = $3, updated_at = NOW() WHERE name = $1`,
		oldName, wf.Name, defJSON,
	)
	if err != nil {
		return fmt.Errorf("rename workflow: %w", err)
	}
	return nil
}

// DeleteWorkflow removes a workflow by name.
func (d *DB) DeleteWorkflow(ctx context.Context, name string) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM workflows WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete workflow: %w", err)
	}
	return nil
}
