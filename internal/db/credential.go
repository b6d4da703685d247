package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minseolab/loom/internal/loom"
)

// UpsertCredential stores a credential profile.
func (d *DB) UpsertCredential(ctx context.Context, c *loom.Credential) error {
	record, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	_, err = d.Pool.ExecContext(ctx,
		`INSERT INTO credentials (id, name, provider, record)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, provider = EXCLUDED.provider,
		 record = EXCLUDED.record, updated_at = NOW()`,
		c.ID, c.Name, c.Provider, record,
	)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}

// GetCredential retrieves a credential profile by id.
func (d *DB) GetCredential(ctx context.Context, id string) (*loom.Credential, error) {
	var record []byte
	err := d.Pool.QueryRowContext(ctx,
		`SELECT record FROM credentials WHERE id = $1`, id,
	).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: credential %s", ErrNoRow, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}

	var c loom.Credential
	if err := json.Unmarshal(record, &c); err != nil {
		return nil, fmt.Errorf("unmarshal credential: %w", err)
	}
	return &c, nil
}

// ListCredentials returns all credential profiles ordered by name.
func (d *DB) ListCredentials(ctx context.Context) ([]*loom.Credential, error) {
	rows, err := d.Pool.QueryContext(ctx, `SELECT record FROM credentials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	var out []*loom.Credential
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		var c loom.Credential
		if err := json.Unmarshal(record, &c); err != nil {
			return nil, fmt.Errorf("unmarshal credential: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteCredential removes a credential profile by id.
func (d *DB) DeleteCredential(ctx context.Context, id string) error {
	_, err := d.Pool.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
