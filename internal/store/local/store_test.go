package local

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"inkwell/internal/domain/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.Default())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []models.Project{
		{ID: "p1", Name: "Acme"},
		{ID: "p2", Name: "Initech"},
	}
	if err := s.Put(ctx, KeyProjects, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out []models.Project
	found, err := s.Get(ctx, KeyProjects, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found {
		t.Fatal("Get reported key missing after Put")
	}
	if len(out) != 2 || out[0].ID != "p1" || out[1].Name != "Initech" {
		t.Errorf("roundtrip mismatch: %+v", out)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)

	var out []models.Project
	found, err := s.Get(context.Background(), "never-written", &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("Get reported a never-written key as present")
	}
	if out != nil {
		t.Errorf("Get mutated dest for missing key: %v", out)
	}
}

func TestPutReplacesWholeValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, KeyFolders, []models.Folder{{ID: "f1"}, {ID: "f2"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, KeyFolders, []models.Folder{{ID: "f3"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out []models.Folder
	if _, err := s.Get(ctx, KeyFolders, &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(out) != 1 || out[0].ID != "f3" {
		t.Errorf("Put did not replace whole value: %+v", out)
	}
}

func TestCorruptValueSelfHeals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Write garbage straight into the table, bypassing Put.
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)`,
		KeyDocuments, []byte(`{not json at all`),
	); err != nil {
		t.Fatalf("inject corrupt value: %v", err)
	}

	var out []models.Document
	found, err := s.Get(ctx, KeyDocuments, &out)
	if err != nil {
		t.Fatalf("Get on corrupt key returned error: %v", err)
	}
	if found {
		t.Error("Get reported corrupt key as present")
	}

	// The key must have been reset; a fresh Put/Get cycle works.
	if err := s.Put(ctx, KeyDocuments, []models.Document{{ID: "d1", BaseTitle: "Brief", Version: 1}}); err != nil {
		t.Fatalf("Put after heal: %v", err)
	}
	out = nil
	if _, err := s.Get(ctx, KeyDocuments, &out); err != nil {
		t.Fatalf("Get after heal: %v", err)
	}
	if len(out) != 1 || out[0].ID != "d1" {
		t.Errorf("store did not recover after corruption: %+v", out)
	}
}

func TestTypeMismatchSelfHeals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Valid JSON, wrong shape: an object where an array is expected.
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)`,
		KeyPersonas, []byte(`{"unexpected":"object"}`),
	); err != nil {
		t.Fatalf("inject mismatched value: %v", err)
	}

	out, err := GetCollection[models.Persona](ctx, s, KeyPersonas)
	if err != nil {
		t.Fatalf("GetCollection on mismatched key: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("GetCollection = %+v, want empty after reset", out)
	}
}

func TestGetCollectionDefaultsEmpty(t *testing.T) {
	s := newTestStore(t)

	out, err := GetCollection[models.Project](context.Background(), s, KeyProjects)
	if err != nil {
		t.Fatalf("GetCollection: %v", err)
	}
	if out == nil {
		t.Fatal("GetCollection returned nil, want empty slice")
	}
	if len(out) != 0 {
		t.Errorf("GetCollection = %+v, want empty", out)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, KeyAppState, models.PersistedState{ActiveProjectID: "p1"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Delete(ctx, KeyAppState); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var out models.PersistedState
	found, err := s.Get(ctx, KeyAppState, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("key still present after Delete")
	}

	// Deleting a missing key is not an error.
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}
