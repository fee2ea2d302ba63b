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

// FolderRemote is the slice of the remote store the folder adapter
// needs.
type FolderRemote interface {
	ListFolders(ctx context.Context, projectID string) ([]models.Folder, error)
	GetFolder(ctx context.Context, id string) (*models.Folder, error)
	CreateFolder(ctx context.Context, f *models.Folder) error
	UpdateFolder(ctx context.Context, f *models.Folder) error
	DeleteFolder(ctx context.Context, id string) error
}

// FolderSync is the sync adapter for folders.
type FolderSync struct {
	remote FolderRemote
	local  *local.Store
	logger *slog.Logger
}

func NewFolderSync(remote FolderRemote, localStore *local.Store, logger *slog.Logger) *FolderSync {
	return &FolderSync{remote: remote, local: localStore, logger: logger}
}

// FolderPatch is a partial folder update.
type FolderPatch struct {
	Name           *string
	ParentFolderID Optional[string]
}

// List returns a project's folders, remote-first with local fallback.
func (s *FolderSync) List(ctx context.Context, projectID string) ([]models.Folder, error) {
	remoteFolders, err := s.remote.ListFolders(ctx, projectID)
	if err != nil {
		s.logger.Warn("remote unavailable, serving local folders", "project_id", projectID, "error", err)
		all, lerr := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
		if lerr != nil {
			return nil, lerr
		}
		scoped := make([]models.Folder, 0, len(all))
		for _, f := range all {
			if f.ProjectID == projectID {
				scoped = append(scoped, f)
			}
		}
		return scoped, nil
	}

	all, lerr := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
	if lerr != nil {
		return nil, lerr
	}
	kept := withoutProject(all, projectID)
	kept = append(kept, remoteFolders...)
	if err := s.local.Put(ctx, local.KeyFolders, kept); err != nil {
		s.logger.Warn("failed to mirror folders locally", "project_id", projectID, "error", err)
	}

	if remoteFolders == nil {
		remoteFolders = []models.Folder{}
	}
	return remoteFolders, nil
}

// Get returns one folder by id, remote-first with local fallback.
func (s *FolderSync) Get(ctx context.Context, id string) (*models.Folder, error) {
	remoteFolder, err := s.remote.GetFolder(ctx, id)
	if err == nil {
		s.mirrorOne(ctx, remoteFolder)
		return remoteFolder, nil
	}
	s.logger.Warn("remote unavailable, serving local folder", "id", id, "error", err)

	folders, lerr := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
	if lerr != nil {
		return nil, lerr
	}
	for i := range folders {
		if folders[i].ID == id {
			return &folders[i], nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
}

// Create creates a folder under an optional parent.
func (s *FolderSync) Create(ctx context.Context, projectID, rawName string, parentFolderID *string) (*models.Folder, error) {
	name, err := docsystem.SanitizeName(rawName)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	folder := models.Folder{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		Name:           name,
		ParentFolderID: parentFolderID,
		CreatedAt:      now,
		ModifiedAt:     now,
	}

	if err := s.remote.CreateFolder(ctx, &folder); err != nil {
		s.logger.Warn("remote create failed, keeping local-only folder", "id", folder.ID, "error", err)
	}

	folders, err := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
	if err != nil {
		return nil, err
	}
	folders = append(folders, folder)
	if err := s.local.Put(ctx, local.KeyFolders, folders); err != nil {
		return nil, err
	}

	s.logger.Info("folder created", "id", folder.ID, "name", folder.Name)
	return &folder, nil
}

// Update renames or reparents a folder. Reparenting that would create
// a cycle is refused before any I/O.
func (s *FolderSync) Update(ctx context.Context, id string, patch FolderPatch) (*models.Folder, error) {
	folders, err := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range folders {
		if folders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}

	merged := folders[idx]
	if patch.Name != nil {
		name, err := docsystem.SanitizeName(*patch.Name)
		if err != nil {
			return nil, err
		}
		merged.Name = name
	}
	if patch.ParentFolderID.Present {
		if docsystem.WouldCycle(folders, id, patch.ParentFolderID.Value) {
			return nil, &domain.ValidationError{Message: "move would create a folder cycle"}
		}
		merged.ParentFolderID = patch.ParentFolderID.Value
	}
	merged.ModifiedAt = time.Now().UTC()

	if err := s.remote.UpdateFolder(ctx, &merged); err != nil {
		s.logger.Warn("remote update failed, keeping local-only change", "id", id, "error", err)
	}

	folders[idx] = merged
	if err := s.local.Put(ctx, local.KeyFolders, folders); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Remove deletes an empty folder. Folders that still hold documents or
// subfolders are blocked until emptied.
func (s *FolderSync) Remove(ctx context.Context, id string) error {
	folders, err := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
	if err != nil {
		return err
	}

	idx := -1
	for i := range folders {
		if folders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("folder %s not found", id)}
	}

	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return err
	}
	if err := docsystem.CheckFolderDeletable(id, folders, docs); err != nil {
		return err
	}

	if err := s.remote.DeleteFolder(ctx, id); err != nil {
		s.logger.Warn("remote delete failed, deleting locally anyway", "id", id, "error", err)
	}

	folders = append(folders[:idx], folders[idx+1:]...)
	return s.local.Put(ctx, local.KeyFolders, folders)
}

func (s *FolderSync) mirrorOne(ctx context.Context, f *models.Folder) {
	folders, err := local.GetCollection[models.Folder](ctx, s.local, local.KeyFolders)
	if err != nil {
		s.logger.Warn("failed to read local folders for mirror", "error", err)
		return
	}
	replaced := false
	for i := range folders {
		if folders[i].ID == f.ID {
			folders[i] = *f
			replaced = true
			break
		}
	}
	if !replaced {
		folders = append(folders, *f)
	}
	if err := s.local.Put(ctx, local.KeyFolders, folders); err != nil {
		s.logger.Warn("failed to mirror folder locally", "id", f.ID, "error", err)
	}
}
