package docsystem

import (
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// WouldCycle reports whether reparenting folderID under newParentID
// creates a cycle. Walks the parent chain from newParentID; if it
// reaches folderID the move is illegal. A missing parent link ends the
// walk (treated as root).
func WouldCycle(folders []models.Folder, folderID string, newParentID *string) bool {
	if newParentID == nil {
		return false
	}
	byID := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		byID[folders[i].ID] = &folders[i]
	}

	seen := make(map[string]bool)
	cur := *newParentID
	for cur != "" {
		if cur == folderID {
			return true
		}
		if seen[cur] {
			// Pre-existing cycle in stored data; refuse the move.
			return true
		}
		seen[cur] = true
		parent, ok := byID[cur]
		if !ok || parent.ParentFolderID == nil {
			return false
		}
		cur = *parent.ParentFolderID
	}
	return false
}

// CheckFolderDeletable refuses to delete a folder that still contains
// documents or child folders. Cascade vs. reparent semantics for
// non-empty folders were never settled upstream, so the conservative
// policy is to block until the folder is empty.
func CheckFolderDeletable(folderID string, folders []models.Folder, docs []models.Document) error {
	for i := range docs {
		if docs[i].FolderID != nil && *docs[i].FolderID == folderID {
			return &domain.ValidationError{
				Message: "folder contains documents; move or delete them first",
			}
		}
	}
	for i := range folders {
		if folders[i].ParentFolderID != nil && *folders[i].ParentFolderID == folderID {
			return &domain.ValidationError{
				Message: "folder contains subfolders; move or delete them first",
			}
		}
	}
	return nil
}
