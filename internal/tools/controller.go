package tools

import (
	"context"
	"fmt"
	"log/slog"

	"inkwell/internal/appstate"
	"inkwell/internal/domain"
)

// Controller enforces "at most one tool active" over the registry. The
// active selection lives in the application state store as a single
// value, never as per-tool booleans, so the flags cannot drift apart.
type Controller struct {
	registry *Registry
	state    *appstate.Store
	logger   *slog.Logger
}

func NewController(registry *Registry, state *appstate.Store, logger *slog.Logger) *Controller {
	return &Controller{registry: registry, state: state, logger: logger}
}

// ActivateTool selects a tool. Idempotent when the tool is already
// active. Otherwise it clears the transient result/error/loading for
// EVERY registered tool — not just the previously active one, since a
// background tool may still hold stale loaded state — then selects the
// new tool.
func (c *Controller) ActivateTool(ctx context.Context, toolID string) error {
	if _, ok := c.registry.Get(toolID); !ok {
		return &domain.ValidationError{Message: fmt.Sprintf("unknown tool %q", toolID)}
	}

	if active, ok := c.state.ActiveTool(); ok && active == toolID {
		return nil
	}

	for _, t := range c.registry.List() {
		c.state.ClearToolState(t.ID)
	}
	c.state.SetActiveTool(ctx, toolID)

	c.logger.Debug("tool activated", "tool_id", toolID)
	return nil
}

// DeactivateTool clears the selection and every transient.
func (c *Controller) DeactivateTool(ctx context.Context) {
	for _, t := range c.registry.List() {
		c.state.ClearToolState(t.ID)
	}
	c.state.SetActiveTool(ctx, "")
}

// PanelView is what the tool panel renders from. Selected and Operable
// are deliberately separate fields: collapsing them into one
// conditional is how a selected tool ends up rendering as "nothing
// selected" whenever no document is open.
type PanelView struct {
	Selected *Tool // nil = no tool selected
	Operable bool  // the selected tool can run right now
}

// View derives the panel view from the current application state.
func (c *Controller) View() PanelView {
	var view PanelView

	id, ok := c.state.ActiveTool()
	if !ok {
		return view
	}
	tool, ok := c.registry.Get(id)
	if !ok {
		// Persisted selection from an older release; treat as none.
		return view
	}
	view.Selected = &tool

	snap := c.state.Snapshot()
	if tool.RequiresDocument {
		view.Operable = snap.ActiveDocumentID != ""
	} else {
		view.Operable = true
	}
	return view
}
