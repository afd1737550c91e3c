package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresSnapshotRepository stores collection snapshots as JSONB blobs in a
// single key/value table.
type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

// NewPostgresSnapshotRepository constructs the repository.
func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot table when missing.
func (r *PostgresSnapshotRepository) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS collection_snapshots (
        key TEXT PRIMARY KEY,
        payload JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL
    )`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// Load fetches the snapshot payload stored under key.
func (r *PostgresSnapshotRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	const query = `SELECT payload FROM collection_snapshots WHERE key = $1`
	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return payload, true, nil
}

// Save upserts the snapshot payload under key.
func (r *PostgresSnapshotRepository) Save(ctx context.Context, key string, payload []byte) error {
	const query = `INSERT INTO collection_snapshots (key, payload, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, key, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
