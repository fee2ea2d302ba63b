package tools

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"inkwell/internal/appstate"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/store/local"
)

type stubResolver struct {
	docs map[string]models.Document
}

func (s *stubResolver) Get(_ context.Context, _ string, id string) (*models.Document, error) {
	d, ok := s.docs[id]
	if !ok {
		return nil, &domain.NotFoundError{Message: "document " + id + " not found"}
	}
	return &d, nil
}

func newTestController(t *testing.T, resolver *stubResolver) (*Controller, *appstate.Store) {
	t.Helper()
	db, err := local.Open(filepath.Join(t.TempDir(), "state.db"), slog.Default())
	if err != nil {
		t.Fatalf("open local store: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if resolver == nil {
		resolver = &stubResolver{docs: map[string]models.Document{}}
	}
	state := appstate.NewStore(db, resolver, slog.Default())
	state.Hydrate(context.Background())

	registry := NewRegistryFrom([]Tool{
		{ID: "improve", Label: "Improve", RequiresDocument: true},
		{ID: "tone", Label: "Tone", RequiresDocument: true},
		{ID: "headlines", Label: "Headlines", RequiresDocument: false},
	})
	return NewController(registry, state, slog.Default()), state
}

func TestActivateToolIsExclusive(t *testing.T) {
	c, state := newTestController(t, nil)
	ctx := context.Background()

	if err := c.ActivateTool(ctx, "improve"); err != nil {
		t.Fatalf("activate improve: %v", err)
	}
	state.SetToolState("improve", models.ToolState{Result: "first result"})

	if err := c.ActivateTool(ctx, "tone"); err != nil {
		t.Fatalf("activate tone: %v", err)
	}

	if id, _ := state.ActiveTool(); id != "tone" {
		t.Errorf("active tool = %q, want tone", id)
	}
	// Switching clears the transients of every tool, the previously
	// active one included.
	if got := state.ToolState("improve"); got != (models.ToolState{}) {
		t.Errorf("improve transient survived switch: %+v", got)
	}
	if got := state.ToolState("tone"); got != (models.ToolState{}) {
		t.Errorf("tone starts with non-zero transient: %+v", got)
	}
}

func TestActivateToolPairwise(t *testing.T) {
	c, state := newTestController(t, nil)
	ctx := context.Background()
	ids := []string{"improve", "tone", "headlines"}

	for _, from := range ids {
		for _, to := range ids {
			if from == to {
				continue
			}
			if err := c.ActivateTool(ctx, from); err != nil {
				t.Fatalf("activate %s: %v", from, err)
			}
			state.SetToolState(from, models.ToolState{Result: "stale", Loading: true})
			if err := c.ActivateTool(ctx, to); err != nil {
				t.Fatalf("activate %s: %v", to, err)
			}
			if id, _ := state.ActiveTool(); id != to {
				t.Errorf("after %s -> %s: active = %q", from, to, id)
			}
			if got := state.ToolState(from); got != (models.ToolState{}) {
				t.Errorf("after %s -> %s: %s transient = %+v, want zero", from, to, from, got)
			}
		}
	}
}

func TestActivateToolIdempotent(t *testing.T) {
	c, state := newTestController(t, nil)
	ctx := context.Background()

	if err := c.ActivateTool(ctx, "improve"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	state.SetToolState("improve", models.ToolState{Result: "kept"})

	// Re-activating the already-active tool must not clear anything.
	if err := c.ActivateTool(ctx, "improve"); err != nil {
		t.Fatalf("re-activate: %v", err)
	}
	if got := state.ToolState("improve"); got.Result != "kept" {
		t.Errorf("idempotent activation cleared transient: %+v", got)
	}
}

func TestActivateUnknownTool(t *testing.T) {
	c, state := newTestController(t, nil)

	err := c.ActivateTool(context.Background(), "nonexistent")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("unknown tool error = %v, want validation error", err)
	}
	if _, ok := state.ActiveTool(); ok {
		t.Error("failed activation still selected a tool")
	}
}

func TestDeactivateTool(t *testing.T) {
	c, state := newTestController(t, nil)
	ctx := context.Background()

	if err := c.ActivateTool(ctx, "tone"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	state.SetToolState("tone", models.ToolState{Loading: true})

	c.DeactivateTool(ctx)
	if _, ok := state.ActiveTool(); ok {
		t.Error("tool still active after deactivate")
	}
	if got := state.ToolState("tone"); got != (models.ToolState{}) {
		t.Errorf("transient survived deactivate: %+v", got)
	}
}

func TestViewSeparatesSelectionFromOperability(t *testing.T) {
	resolver := &stubResolver{docs: map[string]models.Document{
		"d1": {ID: "d1", ProjectID: "p1", BaseTitle: "Brief", Version: 1},
	}}
	c, state := newTestController(t, resolver)
	ctx := context.Background()

	// Nothing selected.
	view := c.View()
	if view.Selected != nil || view.Operable {
		t.Errorf("empty view = %+v", view)
	}

	// Document-bound tool selected with no open document: still
	// selected, just not operable. Collapsing these two is the bug.
	if err := c.ActivateTool(ctx, "improve"); err != nil {
		t.Fatalf("activate: %v", err)
	}
	view = c.View()
	if view.Selected == nil || view.Selected.ID != "improve" {
		t.Fatalf("view.Selected = %+v, want improve", view.Selected)
	}
	if view.Operable {
		t.Error("document-bound tool operable with no document open")
	}

	// Opening a document makes it operable without touching selection.
	state.SetActiveProject(ctx, "p1")
	if err := c.ActivateTool(ctx, "improve"); err != nil {
		t.Fatalf("re-activate after project switch: %v", err)
	}
	if err := state.SetActiveDocument(ctx, "d1"); err != nil {
		t.Fatalf("open document: %v", err)
	}
	view = c.View()
	if view.Selected == nil || !view.Operable {
		t.Errorf("view with open document = %+v", view)
	}

	// A document-free tool is operable regardless.
	if err := state.SetActiveDocument(ctx, ""); err != nil {
		t.Fatalf("close document: %v", err)
	}
	if err := c.ActivateTool(ctx, "headlines"); err != nil {
		t.Fatalf("activate headlines: %v", err)
	}
	view = c.View()
	if view.Selected == nil || view.Selected.ID != "headlines" || !view.Operable {
		t.Errorf("document-free view = %+v", view)
	}
}

func TestEmbeddedRegistryLoads(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if len(r.List()) == 0 {
		t.Fatal("embedded registry is empty")
	}
	improve, ok := r.Get("improve")
	if !ok {
		t.Fatal("embedded registry is missing the improve tool")
	}
	if !improve.RequiresDocument {
		t.Error("improve should require a document")
	}
	headlines, ok := r.Get("headlines")
	if !ok {
		t.Fatal("embedded registry is missing the headlines tool")
	}
	if headlines.RequiresDocument {
		t.Error("headlines should not require a document")
	}
}
