// Package appstate is the single reactive container for "what is
// currently active": project, document, tool, panel visibility, and
// per-tool transient state. A documented subset persists to the local
// store; everything else is session-scoped.
//
// The store has an explicit lifecycle: NotHydrated -> Hydrating ->
// Hydrated, reached exactly once per process, even when the persisted
// snapshot is corrupt (fail open). Any logic that creates a default
// entity because "nothing is active" must gate on Hydrated: during
// Hydrating the persisted active pointer has not loaded yet, so
// "nothing active" is a false observation that becomes false
// milliseconds later, and acting on it duplicates entities on every
// restart.
package appstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/store/local"
)

// Status is the hydration lifecycle state.
type Status int

const (
	NotHydrated Status = iota
	Hydrating
	Hydrated
)

func (s Status) String() string {
	switch s {
	case NotHydrated:
		return "not-hydrated"
	case Hydrating:
		return "hydrating"
	case Hydrated:
		return "hydrated"
	}
	return "unknown"
}

// DocumentResolver looks up a document so the store can verify that an
// activated document belongs to the active project. Satisfied by the
// document sync adapter.
type DocumentResolver interface {
	Get(ctx context.Context, projectID, id string) (*models.Document, error)
}

// ProjectProvider is what default-project creation needs. Satisfied by
// the project sync adapter.
type ProjectProvider interface {
	List(ctx context.Context) ([]models.Project, error)
	Create(ctx context.Context, name string) (*models.Project, error)
}

// Snapshot is an immutable copy of the observable state, handed to
// subscribers.
type Snapshot struct {
	Status           Status
	ActiveProjectID  string
	ActiveDocumentID string
	ActiveToolID     string
	SidebarVisible   bool
	ToolPanelVisible bool
}

// Store is the application state container. All methods are safe for
// concurrent use; mutations persist the documented subset and notify
// subscribers outside the lock.
type Store struct {
	mu         sync.Mutex
	status     Status
	persisted  models.PersistedState
	toolStates map[string]models.ToolState
	subs       []func(Snapshot)

	local  *local.Store
	docs   DocumentResolver
	logger *slog.Logger
}

// NewStore creates a state store in the NotHydrated status. Defaults
// match first-run UX: sidebar open, tool panel closed.
func NewStore(localStore *local.Store, docs DocumentResolver, logger *slog.Logger) *Store {
	return &Store{
		status: NotHydrated,
		persisted: models.PersistedState{
			SidebarVisible: true,
		},
		toolStates: make(map[string]models.ToolState),
		local:      localStore,
		docs:       docs,
		logger:     logger,
	}
}

// Subscribe registers a callback invoked after every state change.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Status returns the current lifecycle status.
func (s *Store) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// HasHydrated reports whether startup loading finished.
func (s *Store) HasHydrated() bool {
	return s.Status() == Hydrated
}

// Snapshot returns a copy of the observable state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Status:           s.status,
		ActiveProjectID:  s.persisted.ActiveProjectID,
		ActiveDocumentID: s.persisted.ActiveDocumentID,
		ActiveToolID:     s.persisted.ActiveToolID,
		SidebarVisible:   s.persisted.SidebarVisible,
		ToolPanelVisible: s.persisted.ToolPanelVisible,
	}
}

// Hydrate loads the persisted subset from the local store. It runs at
// most once; later calls are no-ops. The store always ends Hydrated:
// a missing or corrupt snapshot just means starting from defaults.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	if s.status != NotHydrated {
		s.mu.Unlock()
		return
	}
	s.status = Hydrating
	s.mu.Unlock()

	var loaded models.PersistedState
	found, err := s.local.Get(ctx, local.KeyAppState, &loaded)
	if err != nil {
		s.logger.Warn("failed to load persisted state, starting from defaults", "error", err)
	}

	s.mu.Lock()
	if found && err == nil {
		s.persisted = loaded
	}
	s.status = Hydrated
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info("application state hydrated",
		"active_project_id", snap.ActiveProjectID,
		"active_document_id", snap.ActiveDocumentID,
	)
	s.notify(snap)
}

// EnsureDefaultProject creates a first project when none exists and
// none is active. Refuses to run before hydration: evaluating "nothing
// is active" mid-hydration is the startup race that used to create a
// duplicate project on every launch.
func (s *Store) EnsureDefaultProject(ctx context.Context, projects ProjectProvider) (*models.Project, error) {
	s.mu.Lock()
	if s.status != Hydrated {
		s.mu.Unlock()
		return nil, fmt.Errorf("ensure default project: state not hydrated yet")
	}
	activeID := s.persisted.ActiveProjectID
	s.mu.Unlock()

	existing, err := projects.List(ctx)
	if err != nil {
		return nil, err
	}

	if activeID != "" {
		for i := range existing {
			if existing[i].ID == activeID {
				return &existing[i], nil
			}
		}
		// Persisted pointer refers to a project that no longer exists;
		// fall through and repoint.
	}
	if len(existing) > 0 {
		s.SetActiveProject(ctx, existing[0].ID)
		return &existing[0], nil
	}

	created, err := projects.Create(ctx, "My Project")
	if err != nil {
		return nil, err
	}
	s.SetActiveProject(ctx, created.ID)
	return created, nil
}

// SetActiveProject switches the active project. As a side effect the
// active document pointer and every per-tool transient are cleared, so
// the next project never sees another project's in-flight tool output.
func (s *Store) SetActiveProject(ctx context.Context, id string) {
	s.mu.Lock()
	if s.persisted.ActiveProjectID == id {
		s.mu.Unlock()
		return
	}
	s.persisted.ActiveProjectID = id
	s.persisted.ActiveDocumentID = ""
	s.toolStates = make(map[string]models.ToolState)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx)
	s.notify(snap)
}

// SetActiveDocument points at a document. The document must belong to
// the active project; an empty id clears the pointer.
func (s *Store) SetActiveDocument(ctx context.Context, id string) error {
	if id == "" {
		s.mu.Lock()
		s.persisted.ActiveDocumentID = ""
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.persist(ctx)
		s.notify(snap)
		return nil
	}

	s.mu.Lock()
	projectID := s.persisted.ActiveProjectID
	s.mu.Unlock()

	if projectID == "" {
		return &domain.ValidationError{Message: "no active project"}
	}

	doc, err := s.docs.Get(ctx, projectID, id)
	if err != nil {
		return err
	}
	if doc.ProjectID != projectID {
		return &domain.ValidationError{
			Message: fmt.Sprintf("document %s does not belong to the active project", id),
		}
	}

	s.mu.Lock()
	s.persisted.ActiveDocumentID = id
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx)
	s.notify(snap)
	return nil
}

// SetActiveTool selects a tool (empty id deselects). Activating a tool
// while its result panel is hidden shows the panel.
func (s *Store) SetActiveTool(ctx context.Context, toolID string) {
	s.mu.Lock()
	s.persisted.ActiveToolID = toolID
	if toolID != "" && !s.persisted.ToolPanelVisible {
		s.persisted.ToolPanelVisible = true
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx)
	s.notify(snap)
}

// ActiveTool returns the selected tool id, if any. Selection is a
// single value, not a flag per tool: there is no way for two tools to
// be active at once.
func (s *Store) ActiveTool() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persisted.ActiveToolID == "" {
		return "", false
	}
	return s.persisted.ActiveToolID, true
}

// SetSidebarVisible toggles the sidebar.
func (s *Store) SetSidebarVisible(ctx context.Context, visible bool) {
	s.mu.Lock()
	s.persisted.SidebarVisible = visible
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx)
	s.notify(snap)
}

// SetToolPanelVisible toggles the tool result panel.
func (s *Store) SetToolPanelVisible(ctx context.Context, visible bool) {
	s.mu.Lock()
	s.persisted.ToolPanelVisible = visible
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx)
	s.notify(snap)
}

// ToolState returns the transient triple for a tool. The zero value is
// the initial state.
func (s *Store) ToolState(toolID string) models.ToolState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.toolStates[toolID]
}

// SetToolState replaces a tool's transient triple. Never persisted.
func (s *Store) SetToolState(toolID string, state models.ToolState) {
	s.mu.Lock()
	s.toolStates[toolID] = state
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// ClearToolState resets one tool's transient triple.
func (s *Store) ClearToolState(toolID string) {
	s.mu.Lock()
	delete(s.toolStates, toolID)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// ClearAllToolStates resets every tool's transient triple.
func (s *Store) ClearAllToolStates() {
	s.mu.Lock()
	s.toolStates = make(map[string]models.ToolState)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// persist flushes the documented subset. Transient tool state is never
// written.
func (s *Store) persist(ctx context.Context) {
	s.mu.Lock()
	subset := s.persisted
	s.mu.Unlock()

	if err := s.local.Put(ctx, local.KeyAppState, subset); err != nil {
		s.logger.Warn("failed to persist application state", "error", err)
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.Lock()
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
