package docsystem

import (
	"inkwell/internal/domain/models"
)

// NextVersion returns the version number a new document in the
// (projectID, baseTitle) chain should take: 1 for a fresh chain,
// otherwise max existing version + 1. Gaps in the chain (deleted
// versions) are never reused.
func NextVersion(docs []models.Document, projectID, baseTitle string) int {
	max := 0
	for i := range docs {
		d := &docs[i]
		if d.ProjectID != projectID || d.BaseTitle != baseTitle {
			continue
		}
		if d.Version > max {
			max = d.Version
		}
	}
	return max + 1
}

// ChainVersions returns the documents forming the (projectID,
// baseTitle) chain, in no particular order.
func ChainVersions(docs []models.Document, projectID, baseTitle string) []models.Document {
	var chain []models.Document
	for i := range docs {
		d := docs[i]
		if d.ProjectID == projectID && d.BaseTitle == baseTitle {
			chain = append(chain, d)
		}
	}
	return chain
}

// LatestVersion returns the highest-versioned document of a chain, or
// nil when the chain does not exist.
func LatestVersion(docs []models.Document, projectID, baseTitle string) *models.Document {
	var latest *models.Document
	for i := range docs {
		d := &docs[i]
		if d.ProjectID != projectID || d.BaseTitle != baseTitle {
			continue
		}
		if latest == nil || d.Version > latest.Version {
			latest = d
		}
	}
	return latest
}

// ForkVersion is the version a renamed document takes. Renaming always
// starts (or restarts) at version 1 under the new base title, even when
// a chain with that title already exists: the
// rename forks a new chain and leaves the old chain's later versions
// untouched under the old base title. That orphaning is intended, not
// an error.
func ForkVersion() int {
	return 1
}
