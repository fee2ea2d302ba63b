package models

import (
	"time"
)

// BrandVoice is a per-project singleton. It has no ID of its own; the
// ProjectID is its identity.
type BrandVoice struct {
	ProjectID       string    `json:"project_id"`
	BrandName       string    `json:"brand_name"`
	Tone            string    `json:"tone"`
	ApprovedPhrases []string  `json:"approved_phrases,omitempty"`
	ForbiddenWords  []string  `json:"forbidden_words,omitempty"`
	Values          []string  `json:"values,omitempty"`
	Mission         string    `json:"mission"`
	ModifiedAt      time.Time `json:"modified_at"`
}
