package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/store/local"
)

// BrandVoiceRemote is the slice of the remote store the brand voice
// adapter needs. The brand voice is a per-project singleton, so the
// surface is get/put/delete rather than full CRUD.
type BrandVoiceRemote interface {
	GetBrandVoice(ctx context.Context, projectID string) (*models.BrandVoice, error)
	PutBrandVoice(ctx context.Context, v *models.BrandVoice) error
	DeleteBrandVoice(ctx context.Context, projectID string) error
}

// BrandVoiceSync is the sync adapter for the per-project brand voice.
type BrandVoiceSync struct {
	remote BrandVoiceRemote
	local  *local.Store
	logger *slog.Logger
}

func NewBrandVoiceSync(remote BrandVoiceRemote, localStore *local.Store, logger *slog.Logger) *BrandVoiceSync {
	return &BrandVoiceSync{remote: remote, local: localStore, logger: logger}
}

// BrandVoicePatch is a partial brand voice update. Saving against a
// project with no brand voice yet creates it (upsert semantics).
type BrandVoicePatch struct {
	BrandName       *string
	Tone            *string
	ApprovedPhrases *[]string
	ForbiddenWords  *[]string
	Values          *[]string
	Mission         *string
}

func (p BrandVoicePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.BrandName, validation.NilOrNotEmpty),
	)
}

// Get returns a project's brand voice, remote-first with local
// fallback. A project without one yields NotFound.
func (s *BrandVoiceSync) Get(ctx context.Context, projectID string) (*models.BrandVoice, error) {
	remoteVoice, err := s.remote.GetBrandVoice(ctx, projectID)
	if err == nil {
		s.mirrorOne(ctx, remoteVoice)
		return remoteVoice, nil
	}
	s.logger.Warn("remote unavailable, serving local brand voice", "project_id", projectID, "error", err)

	voices, lerr := local.GetCollection[models.BrandVoice](ctx, s.local, local.KeyBrandVoices)
	if lerr != nil {
		return nil, lerr
	}
	for i := range voices {
		if voices[i].ProjectID == projectID {
			return &voices[i], nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %s has no brand voice", projectID)}
}

// Save upserts a project's brand voice. Local-read, remote-write,
// local-merge-write.
func (s *BrandVoiceSync) Save(ctx context.Context, projectID string, patch BrandVoicePatch) (*models.BrandVoice, error) {
	if err := patch.Validate(); err != nil {
		return nil, &domain.ValidationError{Message: err.Error()}
	}

	voices, err := local.GetCollection[models.BrandVoice](ctx, s.local, local.KeyBrandVoices)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range voices {
		if voices[i].ProjectID == projectID {
			idx = i
			break
		}
	}

	var merged models.BrandVoice
	if idx >= 0 {
		merged = voices[idx]
	} else {
		merged = models.BrandVoice{ProjectID: projectID}
	}

	if patch.BrandName != nil {
		merged.BrandName = *patch.BrandName
	}
	if patch.Tone != nil {
		merged.Tone = *patch.Tone
	}
	if patch.ApprovedPhrases != nil {
		merged.ApprovedPhrases = *patch.ApprovedPhrases
	}
	if patch.ForbiddenWords != nil {
		merged.ForbiddenWords = *patch.ForbiddenWords
	}
	if patch.Values != nil {
		merged.Values = *patch.Values
	}
	if patch.Mission != nil {
		merged.Mission = *patch.Mission
	}
	merged.ModifiedAt = time.Now().UTC()

	if err := s.remote.PutBrandVoice(ctx, &merged); err != nil {
		s.logger.Warn("remote save failed, keeping local-only brand voice", "project_id", projectID, "error", err)
	}

	if idx >= 0 {
		voices[idx] = merged
	} else {
		voices = append(voices, merged)
	}
	if err := s.local.Put(ctx, local.KeyBrandVoices, voices); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Remove deletes a project's brand voice.
func (s *BrandVoiceSync) Remove(ctx context.Context, projectID string) error {
	voices, err := local.GetCollection[models.BrandVoice](ctx, s.local, local.KeyBrandVoices)
	if err != nil {
		return err
	}

	idx := -1
	for i := range voices {
		if voices[i].ProjectID == projectID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &domain.NotFoundError{Message: fmt.Sprintf("project %s has no brand voice", projectID)}
	}

	if err := s.remote.DeleteBrandVoice(ctx, projectID); err != nil {
		s.logger.Warn("remote delete failed, deleting locally anyway", "project_id", projectID, "error", err)
	}

	voices = append(voices[:idx], voices[idx+1:]...)
	return s.local.Put(ctx, local.KeyBrandVoices, voices)
}

func (s *BrandVoiceSync) mirrorOne(ctx context.Context, v *models.BrandVoice) {
	voices, err := local.GetCollection[models.BrandVoice](ctx, s.local, local.KeyBrandVoices)
	if err != nil {
		s.logger.Warn("failed to read local brand voices for mirror", "error", err)
		return
	}
	replaced := false
	for i := range voices {
		if voices[i].ProjectID == v.ProjectID {
			voices[i] = *v
			replaced = true
			break
		}
	}
	if !replaced {
		voices = append(voices, *v)
	}
	if err := s.local.Put(ctx, local.KeyBrandVoices, voices); err != nil {
		s.logger.Warn("failed to mirror brand voice locally", "project_id", v.ProjectID, "error", err)
	}
}
