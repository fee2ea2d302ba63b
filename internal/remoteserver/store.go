// Package remoteserver is the reference implementation of the remote
// durable store: the REST CRUD surface the sync layer talks to, backed
// by PostgreSQL. It stores whole entities as JSONB, mirroring the
// client's whole-value write semantics — the remote tier never
// interprets entity internals beyond (kind, id, project scope).
package remoteserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell/internal/domain"
)

// Entity kinds. Brand voices use the owning project id as their row id.
const (
	KindProject    = "project"
	KindDocument   = "document"
	KindFolder     = "folder"
	KindPersona    = "persona"
	KindBrandVoice = "brand_voice"
)

// EntityStore persists entities in a single JSONB table.
type EntityStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// CreateConnectionPool creates a pgx connection pool and verifies it.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// NewEntityStore creates the store and ensures the schema exists.
func NewEntityStore(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) (*EntityStore, error) {
	s := &EntityStore{pool: pool, logger: logger}
	if _, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS entities (
			kind       TEXT NOT NULL,
			id         TEXT NOT NULL,
			project_id TEXT NOT NULL DEFAULT '',
			data       JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (kind, id)
		)
	`); err != nil {
		return nil, fmt.Errorf("create entities table: %w", err)
	}
	if _, err := pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_entities_scope ON entities (kind, project_id)
	`); err != nil {
		return nil, fmt.Errorf("create scope index: %w", err)
	}
	return s, nil
}

// List returns all entities of a kind, optionally scoped to a project.
func (s *EntityStore) List(ctx context.Context, kind, projectID string) ([]json.RawMessage, error) {
	query := `SELECT data FROM entities WHERE kind = $1 ORDER BY created_at`
	args := []any{kind}
	if projectID != "" {
		query = `SELECT data FROM entities WHERE kind = $1 AND project_id = $2 ORDER BY created_at`
		args = append(args, projectID)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	items := []json.RawMessage{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s: %w", kind, err)
		}
		items = append(items, json.RawMessage(data))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", kind, err)
	}
	return items, nil
}

// Get returns one entity by id.
func (s *EntityStore) Get(ctx context.Context, kind, id string) (json.RawMessage, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM entities WHERE kind = $1 AND id = $2`,
		kind, id,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", kind, id)}
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", kind, err)
	}
	return json.RawMessage(data), nil
}

// Put upserts one entity. Updates replace the stored document
// wholesale, matching the client's whole-entity write semantics.
func (s *EntityStore) Put(ctx context.Context, kind, id, projectID string, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO entities (kind, id, project_id, data)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, id) DO UPDATE
		SET project_id = excluded.project_id,
		    data = excluded.data,
		    updated_at = NOW()
	`, kind, id, projectID, data)
	if err != nil {
		return fmt.Errorf("put %s: %w", kind, err)
	}
	return nil
}

// Delete removes one entity.
func (s *EntityStore) Delete(ctx context.Context, kind, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM entities WHERE kind = $1 AND id = $2`,
		kind, id,
	)
	if err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("%s %s not found", kind, id)}
	}
	return nil
}
