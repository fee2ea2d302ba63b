package docsystem

import (
	"inkwell/internal/domain/models"
)

// CascadePlan is the full set of entities a project delete removes.
// Planning is pure and happens before anything is deleted; the executor
// then walks the plan item by item, logging failures instead of leaving
// an undefined partial state behind. There is no transaction spanning
// the remote store, so plan-then-execute is the best available shape.
type CascadePlan struct {
	ProjectID     string
	FolderIDs     []string
	DocumentIDs   []string
	PersonaIDs    []string
	HasBrandVoice bool
}

// PlanCascadeDelete computes the cascade set for deleting a project
// from in-memory snapshots. Side-effect free.
func PlanCascadeDelete(projectID string, folders []models.Folder, docs []models.Document, personas []models.Persona, voices []models.BrandVoice) CascadePlan {
	plan := CascadePlan{ProjectID: projectID}

	for i := range folders {
		if folders[i].ProjectID == projectID {
			plan.FolderIDs = append(plan.FolderIDs, folders[i].ID)
		}
	}
	for i := range docs {
		if docs[i].ProjectID == projectID {
			plan.DocumentIDs = append(plan.DocumentIDs, docs[i].ID)
		}
	}
	for i := range personas {
		if personas[i].ProjectID == projectID {
			plan.PersonaIDs = append(plan.PersonaIDs, personas[i].ID)
		}
	}
	for i := range voices {
		if voices[i].ProjectID == projectID {
			plan.HasBrandVoice = true
			break
		}
	}

	return plan
}

// IsEmpty reports whether the plan removes nothing beyond the project
// itself.
func (p CascadePlan) IsEmpty() bool {
	return len(p.FolderIDs) == 0 && len(p.DocumentIDs) == 0 && len(p.PersonaIDs) == 0 && !p.HasBrandVoice
}
