// Package sync implements the read-through/write-through adapters
// between callers, the remote store and the local store, one adapter
// per entity type.
//
// Read path: try remote; on success overwrite the local mirror and
// return the remote data; on any failure log and serve local data,
// defaulting to empty.
//
// Write path: read the existing entity from the local store, issue the
// remote write, then persist the merge of local entity and patch back
// to the local store. The remote response is never used to refresh the
// mirror after a write: read-after-write consistency against the remote
// is not guaranteed, and trusting the echo is how renames used to come
// back stale. local-read, remote-write, local-merge-write — in that
// order, always.
//
// The adapters assume a single logical writer: one UI session issuing
// one operation at a time per entity id. Each CRUD call exclusively
// owns its in-memory collection copy for its full duration. Multi-tab
// or multi-device editing would need a version token on update, which
// does not exist today.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/docsystem"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/store/local"
)

// ProjectRemote is the slice of the remote store the project adapter
// needs. Cascade deletes touch every owned entity type.
type ProjectRemote interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, p *models.Project) error
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id string) error

	DeleteDocument(ctx context.Context, id string) error
	DeleteFolder(ctx context.Context, id string) error
	DeletePersona(ctx context.Context, id string) error
	DeleteBrandVoice(ctx context.Context, projectID string) error
}

// ProjectSync is the sync adapter for projects. It also owns cascade
// deletion, since the project is the ownership root.
type ProjectSync struct {
	remote ProjectRemote
	local  *local.Store
	logger *slog.Logger
}

func NewProjectSync(remote ProjectRemote, localStore *local.Store, logger *slog.Logger) *ProjectSync {
	return &ProjectSync{remote: remote, local: localStore, logger: logger}
}

// ProjectPatch is a partial project update.
type ProjectPatch struct {
	Name *string
}

// List returns all projects, remote-first with local fallback.
func (s *ProjectSync) List(ctx context.Context) ([]models.Project, error) {
	remoteProjects, err := s.remote.ListProjects(ctx)
	if err != nil {
		s.logger.Warn("remote unavailable, serving local projects", "error", err)
		return local.GetCollection[models.Project](ctx, s.local, local.KeyProjects)
	}

	if err := s.local.Put(ctx, local.KeyProjects, remoteProjects); err != nil {
		s.logger.Warn("failed to mirror projects locally", "error", err)
	}
	if remoteProjects == nil {
		remoteProjects = []models.Project{}
	}
	return remoteProjects, nil
}

// Get returns one project by id, remote-first with local fallback.
func (s *ProjectSync) Get(ctx context.Context, id string) (*models.Project, error) {
	remoteProject, err := s.remote.GetProject(ctx, id)
	if err == nil {
		s.mirrorOne(ctx, remoteProject)
		return remoteProject, nil
	}
	s.logger.Warn("remote unavailable, serving local project", "id", id, "error", err)

	projects, lerr := local.GetCollection[models.Project](ctx, s.local, local.KeyProjects)
	if lerr != nil {
		return nil, lerr
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
}

// Create creates a new project locally and best-effort remotely.
func (s *ProjectSync) Create(ctx context.Context, rawName string) (*models.Project, error) {
	name, err := docsystem.SanitizeName(rawName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := models.Project{
		ID:         uuid.NewString(),
		Name:       name,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.remote.CreateProject(ctx, &project); err != nil {
		s.logger.Warn("remote create failed, keeping local-only project", "id", project.ID, "error", err)
	}

	projects, err := local.GetCollection[models.Project](ctx, s.local, local.KeyProjects)
	if err != nil {
		return nil, err
	}
	projects = append(projects, project)
	if err := s.local.Put(ctx, local.KeyProjects, projects); err != nil {
		return nil, err
	}

	s.logger.Info("project created", "id", project.ID, "name", project.Name)
	return &project, nil
}

// Update applies a partial update. Local-read, remote-write,
// local-merge-write.
func (s *ProjectSync) Update(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	projects, err := local.GetCollection[models.Project](ctx, s.local, local.KeyProjects)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range projects {
		if projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
	}

	merged := projects[idx]
	if patch.Name != nil {
		name, err := docsystem.SanitizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		merged.Name = name
	}
	merged.ModifiedAt = time.Now().UTC()

	if err := s.remote.UpdateProject(ctx, &merged); err != nil {
		s.logger.Warn("remote update failed, keeping local-only change", "id", id, "error", err)
	}

	projects[idx] = merged
	if err := s.local.Put(ctx, local.KeyProjects, projects); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Remove deletes a project and everything it owns. Deleting the last
// remaining project is refused with no state change. The cascade set is
// planned up front from local snapshots, then executed item by item;
// remote failures are logged per item and never abort the rest.
func (s *ProjectSync) Remove(ctx context.Context, id string) error {
	projects, err := local.GetCollection[models.Project](ctx, s.local, local.KeyProjects)
	if err != nil {
		return err
	}

	idx := -1
	for i := range projects {
		if projects[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("project %s not found", id)}
	}
	if len(projects) <= 1 {
		return &domain.InvariantViolation{Message: "cannot delete the last remaining project"}
	}

	folders, err := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
	if err != nil {
		return err
	}
	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return err
	}
	personas, err := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
	if err != nil {
		return err
	}
	voices, err := local.GetCollection[models.BrandVoice](ctx, s.local, local.KeyBrandVoices)
	if err != nil {
		return err
	}

	plan := docsystem.PlanCascadeDelete(id, folders, docs, personas, voices)

	// Remote side, per item. Best effort.
	for _, docID := range plan.DocumentIDs {
		if err := s.remote.DeleteDocument(ctx, docID); err != nil {
			s.logger.Warn("cascade: remote document delete failed", "id", docID, "error", err)
		}
	}
	for _, folderID := range plan.FolderIDs {
		if err := s.remote.DeleteFolder(ctx, folderID); err != nil {
			s.logger.Warn("cascade: remote folder delete failed", "id", folderID, "error", err)
		}
	}
	for _, personaID := range plan.PersonaIDs {
		if err := s.remote.DeletePersona(ctx, personaID); err != nil {
			s.logger.Warn("cascade: remote persona delete failed", "id", personaID, "error", err)
		}
	}
	if plan.HasBrandVoice {
		if err := s.remote.DeleteBrandVoice(ctx, id); err != nil {
			s.logger.Warn("cascade: remote brand voice delete failed", "project_id", id, "error", err)
		}
	}
	if err := s.remote.DeleteProject(ctx, id); err != nil {
		s.logger.Warn("remote project delete failed, deleting locally anyway", "id", id, "error", err)
	}

	// Local side, whole collections rewritten without the project's
	// entities.
	if err := s.local.Put(ctx, local.KeyFolders, withoutProject(folders, id)); err != nil {
		return err
	}
	if err := s.local.Put(ctx, local.KeyDocuments, withoutProject(docs, id)); err != nil {
		return err
	}
	if err := s.local.Put(ctx, local.KeyPersonas, withoutProject(personas, id)); err != nil {
		return err
	}
	if err := s.local.Put(ctx, local.KeyBrandVoices, withoutProject(voices, id)); err != nil {
		return err
	}

	projects = append(projects[:idx], projects[idx+1:]...)
	if err := s.local.Put(ctx, local.KeyProjects, projects); err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", id,
		"documents", len(plan.DocumentIDs),
		"folders", len(plan.FolderIDs),
		"personas", len(plan.PersonaIDs),
	)
	return nil
}

func (s *ProjectSync) mirrorOne(ctx context.Context, p *models.Project) {
	projects, err := local.GetCollection[models.Project](ctx, s.local, local.KeyProjects)
	if err != nil {
		s.logger.Warn("failed to read local projects for mirror", "error", err)
		return
	}
	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append(projects, *p)
	}
	if err := s.local.Put(ctx, local.KeyProjects, projects); err != nil {
		s.logger.Warn("failed to mirror project locally", "id", p.ID, "error", err)
	}
}

// projectScoped is satisfied by every entity owned by a project.
type projectScoped interface {
	models.Folder | models.Document | models.Persona | models.BrandVoice
}

func withoutProject[T projectScoped](items []T, projectID string) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if ownerProject(item) != projectID {
			kept = append(kept, item)
		}
	}
	return kept
}

func ownerProject[T projectScoped](item T) string {
	switch v := any(item).(type) {
	case models.Folder:
		return v.ProjectID
	case models.Document:
		return v.ProjectID
	case models.Persona:
		return v.ProjectID
	case models.BrandVoice:
		return v.ProjectID
	}
	return ""
}
