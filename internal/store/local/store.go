// Package local implements the device-resident durable store: a single
// SQLite table of JSON values, one row per logical key. It is the
// always-available storage tier; the sync layer mirrors remote data
// into it and falls back to it whenever the remote store is
// unreachable.
package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"inkwell/internal/domain"
)

// Logical keys. Each key holds one whole collection; writes replace the
// entire value atomically, which is the unit of consistency here.
const (
	KeyProjects    = "projects"
	KeyDocuments   = "documents"
	KeyFolders     = "folders"
	KeyPersonas    = "personas"
	KeyBrandVoices = "brand_voices"
	KeyAppState    = "app-state"
)

// Store is a durable key-value store over SQLite. Safe for use from
// multiple goroutines; each Get/Put is a single statement.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

// Open opens (creating if needed) the local store at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get unmarshals the value stored at key into dest. A missing key
// leaves dest untouched and returns false. A value that fails to
// unmarshal is treated as corruption: the key is reset to empty, the
// incident is logged, and Get reports the key as missing. Corruption
// self-heals instead of wedging the caller.
func (s *Store) Get(ctx context.Context, key string, dest any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		corrupt := &domain.LocalCorruptError{Key: key, Err: err}
		s.logger.Warn("local store value corrupt, resetting key",
			"key", key,
			"error", corrupt,
		)
		if _, delErr := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); delErr != nil {
			return false, fmt.Errorf("reset corrupt key %q: %w", key, delErr)
		}
		return false, nil
	}

	return true, nil
}

// Put marshals value and stores it at key, replacing any previous
// value. The whole value is written in one statement.
func (s *Store) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, raw,
	)
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// GetCollection loads the slice stored at key. A missing or corrupt key
// yields an empty slice, never an error: readers always get a valid
// collection to work with.
func GetCollection[T any](ctx context.Context, s *Store, key string) ([]T, error) {
	var items []T
	if _, err := s.Get(ctx, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
