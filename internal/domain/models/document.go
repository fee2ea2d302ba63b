package models

import (
	"fmt"
	"time"
)

// Document is one version in a version chain. The chain itself is not a
// stored structure: it is the set of documents sharing (ProjectID,
// BaseTitle), ordered by Version.
type Document struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	FolderID   *string   `json:"folder_id"` // nil = root level
	BaseTitle  string    `json:"base_title"`
	Version    int       `json:"version"`
	Content    string    `json:"content"` // opaque editor payload, never interpreted here
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`

	Metadata DocumentMetadata `json:"metadata"`
}

type DocumentMetadata struct {
	WordCount  int      `json:"word_count"`
	CharCount  int      `json:"char_count"`
	TemplateID *string  `json:"template_id,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// Title derives the display title from the chain identity. Version 1
// shows the bare base title; later versions are suffixed.
func (d *Document) Title() string {
	if d.Version <= 1 {
		return d.BaseTitle
	}
	return fmt.Sprintf("%s (v%d)", d.BaseTitle, d.Version)
}
