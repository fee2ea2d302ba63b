package models

import (
	"time"
)

// Persona is an audience profile owned by a project. Generation
// requests reference personas but never own them.
type Persona struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"project_id"`
	Name             string    `json:"name"`
	Demographics     string    `json:"demographics"`
	Psychographics   string    `json:"psychographics"`
	PainPoints       []string  `json:"pain_points,omitempty"`
	LanguagePatterns []string  `json:"language_patterns,omitempty"`
	Goals            []string  `json:"goals,omitempty"`
	Photo            string    `json:"photo,omitempty"` // normalized encoded image, bounded by imageutil
	CreatedAt        time.Time `json:"created_at"`
	ModifiedAt       time.Time `json:"modified_at"`
}
