package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell/internal/docsystem"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/store/local"
)

// DocumentRemote is the slice of the remote store the document adapter
// needs.
type DocumentRemote interface {
	ListDocuments(ctx context.Context, projectID string) ([]models.Document, error)
	GetDocument(ctx context.Context, id string) (*models.Document, error)
	CreateDocument(ctx context.Context, d *models.Document) error
	UpdateDocument(ctx context.Context, d *models.Document) error
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentSync is the sync adapter for documents and their version
// chains.
type DocumentSync struct {
	remote DocumentRemote
	local  *local.Store
	logger *slog.Logger
}

func NewDocumentSync(remote DocumentRemote, localStore *local.Store, logger *slog.Logger) *DocumentSync {
	return &DocumentSync{remote: remote, local: localStore, logger: logger}
}

// CreateDocumentRequest carries the fields for a new document: blank,
// from a template, or imported — the adapter does not care which.
type CreateDocumentRequest struct {
	ProjectID  string
	FolderID   *string
	BaseTitle  string
	Content    string
	TemplateID *string
	Tags       []string
}

func (r CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProjectID, validation.Required),
		validation.Field(&r.BaseTitle, validation.Required),
	)
}

// DocumentPatch is a partial document update. Content updates arrive
// from debounced autosave; the payload is opaque and only counted,
// never parsed.
type DocumentPatch struct {
	Content  *string
	FolderID Optional[string]
	Tags     *[]string
}

// List returns a project's documents, remote-first with local fallback.
// On remote success the local mirror entries for this project are
// replaced wholesale; other projects' documents are untouched.
func (s *DocumentSync) List(ctx context.Context, projectID string) ([]models.Document, error) {
	remoteDocs, err := s.remote.ListDocuments(ctx, projectID)
	if err != nil {
		s.logger.Warn("remote unavailable, serving local documents", "project_id", projectID, "error", err)
		return s.listLocal(ctx, projectID)
	}

	all, lerr := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if lerr != nil {
		return nil, lerr
	}
	kept := withoutProject(all, projectID)
	kept = append(kept, remoteDocs...)
	if err := s.local.Put(ctx, local.KeyDocuments, kept); err != nil {
		s.logger.Warn("failed to mirror documents locally", "project_id", projectID, "error", err)
	}

	if remoteDocs == nil {
		remoteDocs = []models.Document{}
	}
	return remoteDocs, nil
}

// Get returns one document by id, remote-first with local fallback.
func (s *DocumentSync) Get(ctx context.Context, projectID, id string) (*models.Document, error) {
	remoteDoc, err := s.remote.GetDocument(ctx, id)
	if err == nil {
		s.mirrorOne(ctx, remoteDoc)
		return remoteDoc, nil
	}
	s.logger.Warn("remote unavailable, serving local document", "id", id, "error", err)

	docs, lerr := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if lerr != nil {
		return nil, lerr
	}
	for i := range docs {
		if docs[i].ID == id && (projectID == "" || docs[i].ProjectID == projectID) {
			return &docs[i], nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
}

// Create starts a new version chain (or extends nothing: the base
// title is sanitized and versioned against the local snapshot).
func (s *DocumentSync) Create(ctx context.Context, req CreateDocumentRequest) (*models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	baseTitle, err := docsystem.SanitizeName(req.BaseTitle)
	if err != nil {
		return nil, err
	}

	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := models.Document{
		ID:         uuid.NewString(),
		ProjectID:  req.ProjectID,
		FolderID:   req.FolderID,
		BaseTitle:  baseTitle,
		Version:    docsystem.NextVersion(docs, req.ProjectID, baseTitle),
		Content:    req.Content,
		CreatedAt:  now,
		ModifiedAt: now,
		Metadata: models.DocumentMetadata{
			WordCount:  docsystem.CountWords(req.Content),
			CharCount:  docsystem.CountChars(req.Content),
			TemplateID: req.TemplateID,
			Tags:       req.Tags,
		},
	}

	if err := s.remote.CreateDocument(ctx, &doc); err != nil {
		s.logger.Warn("remote create failed, keeping local-only document", "id", doc.ID, "error", err)
	}

	docs = append(docs, doc)
	if err := s.local.Put(ctx, local.KeyDocuments, docs); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"base_title", doc.BaseTitle,
		"version", doc.Version,
	)
	return &doc, nil
}

// Update applies a partial update. Local-read, remote-write,
// local-merge-write; the remote echo is never written back.
func (s *DocumentSync) Update(ctx context.Context, id string, patch DocumentPatch) (*models.Document, error) {
	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return nil, err
	}

	idx := s.indexOf(docs, id)
	if idx < 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	merged := docs[idx]
	if patch.Content != nil {
		merged.Content = *patch.Content
		merged.Metadata.WordCount = docsystem.CountWords(merged.Content)
		merged.Metadata.CharCount = docsystem.CountChars(merged.Content)
	}
	if patch.FolderID.Present {
		merged.FolderID = patch.FolderID.Value
	}
	if patch.Tags != nil {
		merged.Metadata.Tags = *patch.Tags
	}
	merged.ModifiedAt = time.Now().UTC()

	if err := s.remote.UpdateDocument(ctx, &merged); err != nil {
		s.logger.Warn("remote update failed, keeping local-only change", "id", id, "error", err)
	}

	docs[idx] = merged
	if err := s.local.Put(ctx, local.KeyDocuments, docs); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Rename moves a document to a new base title, forking a fresh chain
// at version 1. The old chain's other versions keep the old base title;
// they are intentionally left behind, not renamed along.
func (s *DocumentSync) Rename(ctx context.Context, id, rawBaseTitle string) (*models.Document, error) {
	baseTitle, err := docsystem.SanitizeName(rawBaseTitle)
	if err != nil {
		return nil, err
	}

	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return nil, err
	}

	idx := s.indexOf(docs, id)
	if idx < 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	merged := docs[idx]
	if merged.BaseTitle == baseTitle {
		return &merged, nil
	}
	merged.BaseTitle = baseTitle
	merged.Version = docsystem.ForkVersion()
	merged.ModifiedAt = time.Now().UTC()

	if err := s.remote.UpdateDocument(ctx, &merged); err != nil {
		s.logger.Warn("remote rename failed, keeping local-only change", "id", id, "error", err)
	}

	docs[idx] = merged
	if err := s.local.Put(ctx, local.KeyDocuments, docs); err != nil {
		return nil, err
	}

	s.logger.Info("document renamed", "id", id, "base_title", baseTitle)
	return &merged, nil
}

// SaveAsNewVersion copies a document into the next version of its
// chain. The source version is left untouched.
func (s *DocumentSync) SaveAsNewVersion(ctx context.Context, id string) (*models.Document, error) {
	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return nil, err
	}

	idx := s.indexOf(docs, id)
	if idx < 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}
	source := docs[idx]

	now := time.Now().UTC()
	next := source
	next.ID = uuid.NewString()
	next.Version = docsystem.NextVersion(docs, source.ProjectID, source.BaseTitle)
	next.CreatedAt = now
	next.ModifiedAt = now

	if err := s.remote.CreateDocument(ctx, &next); err != nil {
		s.logger.Warn("remote create failed, keeping local-only version", "id", next.ID, "error", err)
	}

	docs = append(docs, next)
	if err := s.local.Put(ctx, local.KeyDocuments, docs); err != nil {
		return nil, err
	}

	s.logger.Info("document versioned",
		"id", next.ID,
		"base_title", next.BaseTitle,
		"version", next.Version,
	)
	return &next, nil
}

// Versions returns a document's version chain from the freshest data
// the read path can provide.
func (s *DocumentSync) Versions(ctx context.Context, projectID, baseTitle string) ([]models.Document, error) {
	docs, err := s.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return docsystem.ChainVersions(docs, projectID, baseTitle), nil
}

// Remove deletes a single document version.
func (s *DocumentSync) Remove(ctx context.Context, id string) error {
	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return err
	}

	idx := s.indexOf(docs, id)
	if idx < 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("document %s not found", id)}
	}

	if err := s.remote.DeleteDocument(ctx, id); err != nil {
		s.logger.Warn("remote delete failed, deleting locally anyway", "id", id, "error", err)
	}

	docs = append(docs[:idx], docs[idx+1:]...)
	return s.local.Put(ctx, local.KeyDocuments, docs)
}

func (s *DocumentSync) listLocal(ctx context.Context, projectID string) ([]models.Document, error) {
	all, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		return nil, err
	}
	scoped := make([]models.Document, 0, len(all))
	for _, d := range all {
		if d.ProjectID == projectID {
			scoped = append(scoped, d)
		}
	}
	return scoped, nil
}

func (s *DocumentSync) indexOf(docs []models.Document, id string) int {
	for i := range docs {
		if docs[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *DocumentSync) mirrorOne(ctx context.Context, d *models.Document) {
	docs, err := local.GetCollection[models.Document](ctx, s.local, local.KeyDocuments)
	if err != nil {
		s.logger.Warn("failed to read local documents for mirror", "error", err)
		return
	}
	idx := s.indexOf(docs, d.ID)
	if idx >= 0 {
		docs[idx] = *d
	} else {
		docs = append(docs, *d)
	}
	if err := s.local.Put(ctx, local.KeyDocuments, docs); err != nil {
		s.logger.Warn("failed to mirror document locally", "id", d.ID, "error", err)
	}
}
