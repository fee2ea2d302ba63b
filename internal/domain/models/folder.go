package models

import (
	"time"
)

type Folder struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	Name           string    `json:"name"`
	ParentFolderID *string   `json:"parent_folder_id"` // nil = root level
	CreatedAt      time.Time `json:"created_at"`
	ModifiedAt     time.Time `json:"modified_at"`
}
