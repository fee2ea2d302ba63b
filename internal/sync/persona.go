package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/imageutil"
	"inkwell/internal/store/local"
)

// PersonaRemote is the slice of the remote store the persona adapter
// needs.
type PersonaRemote interface {
	ListPersonas(ctx context.Context, projectID string) ([]models.Persona, error)
	GetPersona(ctx context.Context, id string) (*models.Persona, error)
	CreatePersona(ctx context.Context, p *models.Persona) error
	UpdatePersona(ctx context.Context, p *models.Persona) error
	DeletePersona(ctx context.Context, id string) error
}

// PersonaSync is the sync adapter for audience personas.
type PersonaSync struct {
	remote PersonaRemote
	local  *local.Store
	logger *slog.Logger
}

func NewPersonaSync(remote PersonaRemote, localStore *local.Store, logger *slog.Logger) *PersonaSync {
	return &PersonaSync{remote: remote, local: localStore, logger: logger}
}

// CreatePersonaRequest carries the fields for a new persona. Photo, if
// set, must already be the normalized encoding produced by the image
// utility; the adapter only enforces the size ceiling.
type CreatePersonaRequest struct {
	ProjectID        string
	Name             string
	Demographics     string
	Psychographics   string
	PainPoints       []string
	LanguagePatterns []string
	Goals            []string
	Photo            string
}

func (r CreatePersonaRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ProjectID, validation.Required),
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, config.MaxPersonaNameLength),
		),
	)
}

// PersonaPatch is a partial persona update.
type PersonaPatch struct {
	Name             *string
	Demographics     *string
	Psychographics   *string
	PainPoints       *[]string
	LanguagePatterns *[]string
	Goals            *[]string
	Photo            *string
}

// List returns a project's personas, remote-first with local fallback.
func (s *PersonaSync) List(ctx context.Context, projectID string) ([]models.Persona, error) {
	remotePersonas, err := s.remote.ListPersonas(ctx, projectID)
	if err != nil {
		s.logger.Warn("remote unavailable, serving local personas", "project_id", projectID, "error", err)
		all, lerr := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
		if lerr != nil {
			return nil, lerr
		}
		scoped := make([]models.Persona, 0, len(all))
		for _, p := range all {
			if p.ProjectID == projectID {
				scoped = append(scoped, p)
			}
		}
		return scoped, nil
	}

	all, lerr := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
	if lerr != nil {
		return nil, lerr
	}
	kept := withoutProject(all, projectID)
	kept = append(kept, remotePersonas...)
	if err := s.local.Put(ctx, local.KeyPersonas, kept); err != nil {
		s.logger.Warn("failed to mirror personas locally", "project_id", projectID, "error", err)
	}

	if remotePersonas == nil {
		remotePersonas = []models.Persona{}
	}
	return remotePersonas, nil
}

// Get returns one persona by id, remote-first with local fallback.
func (s *PersonaSync) Get(ctx context.Context, id string) (*models.Persona, error) {
	remotePersona, err := s.remote.GetPersona(ctx, id)
	if err == nil {
		s.mirrorOne(ctx, remotePersona)
		return remotePersona, nil
	}
	s.logger.Warn("remote unavailable, serving local persona", "id", id, "error", err)

	personas, lerr := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
	if lerr != nil {
		return nil, lerr
	}
	for i := range personas {
		if personas[i].ID == id {
			return &personas[i], nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("persona %s not found", id)}
}

// Create creates a persona.
func (s *PersonaSync) Create(ctx context.Context, req CreatePersonaRequest) (*models.Persona, error) {
	if err := req.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}
	if req.Photo != "" {
		if err := imageutil.CheckNormalizedPhoto(req.Photo); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	persona := models.Persona{
		ID:               uuid.NewString(),
		ProjectID:        req.ProjectID,
		Name:             req.Name,
		Demographics:     req.Demographics,
		Psychographics:   req.Psychographics,
		PainPoints:       req.PainPoints,
		LanguagePatterns: req.LanguagePatterns,
		Goals:            req.Goals,
		Photo:            req.Photo,
		CreatedAt:        now,
		ModifiedAt:       now,
	}

	if err := s.remote.CreatePersona(ctx, &persona); err != nil {
		s.logger.Warn("remote create failed, keeping local-only persona", "id", persona.ID, "error", err)
	}

	personas, err := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
	if err != nil {
		return nil, err
	}
	personas = append(personas, persona)
	if err := s.local.Put(ctx, local.KeyPersonas, personas); err != nil {
		return nil, err
	}

	s.logger.Info("persona created", "id", persona.ID, "name", persona.Name)
	return &persona, nil
}

// Update applies a partial update. Local-read, remote-write,
// local-merge-write.
func (s *PersonaSync) Update(ctx context.Context, id string, patch PersonaPatch) (*models.Persona, error) {
	personas, err := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range personas {
		if personas[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("persona %s not found", id)}
	}

	merged := personas[idx]
	if patch.Name != nil {
		if *patch.Name == "" || len([]rune(*patch.Name)) > config.MaxPersonaNameLength {
			return nil, &domain.ValidationError{Message: "persona name must be 1-100 characters"}
		}
		merged.Name = *patch.Name
	}
	if patch.Demographics != nil {
		merged.Demographics = *patch.Demographics
	}
	if patch.Psychographics != nil {
		merged.Psychographics = *patch.Psychographics
	}
	if patch.PainPoints != nil {
		merged.PainPoints = *patch.PainPoints
	}
	if patch.LanguagePatterns != nil {
		merged.LanguagePatterns = *patch.LanguagePatterns
	}
	if patch.Goals != nil {
		merged.Goals = *patch.Goals
	}
	if patch.Photo != nil {
		if *patch.Photo != "" {
			if err := imageutil.CheckNormalizedPhoto(*patch.Photo); err != nil {
				return nil, err
			}
		}
		merged.Photo = *patch.Photo
	}
	merged.ModifiedAt = time.Now().UTC()

	if err := s.remote.UpdatePersona(ctx, &merged); err != nil {
		s.logger.Warn("remote update failed, keeping local-only change", "id", id, "error", err)
	}

	personas[idx] = merged
	if err := s.local.Put(ctx, local.KeyPersonas, personas); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Remove deletes a persona.
func (s *PersonaSync) Remove(ctx context.Context, id string) error {
	personas, err := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
	if err != nil {
		return err
	}

	idx := -1
	for i := range personas {
		if personas[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("persona %s not found", id)}
	}

	if err := s.remote.DeletePersona(ctx, id); err != nil {
		s.logger.Warn("remote delete failed, deleting locally anyway", "id", id, "error", err)
	}

	personas = append(personas[:idx], personas[idx+1:]...)
	return s.local.Put(ctx, local.KeyPersonas, personas)
}

func (s *PersonaSync) mirrorOne(ctx context.Context, p *models.Persona) {
	personas, err := local.GetCollection[models.Persona](ctx, s.local, local.KeyPersonas)
	if err != nil {
		s.logger.Warn("failed to read local personas for mirror", "error", err)
		return
	}
	replaced := false
	for i := range personas {
		if personas[i].ID == p.ID {
			personas[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		personas = append(personas, *p)
	}
	if err := s.local.Put(ctx, local.KeyPersonas, personas); err != nil {
		s.logger.Warn("failed to mirror persona locally", "id", p.ID, "error", err)
	}
}
