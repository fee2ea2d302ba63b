package docsystem

import (
	"testing"

	"inkwell/internal/domain/models"
)

func doc(id, projectID, baseTitle string, version int) models.Document {
	return models.Document{ID: id, ProjectID: projectID, BaseTitle: baseTitle, Version: version}
}

func TestNextVersion(t *testing.T) {
	docs := []models.Document{
		doc("d1", "p1", "Brief", 1),
		doc("d2", "p1", "Brief", 2),
		doc("d3", "p1", "Brief", 5), // gap after deletion
		doc("d4", "p1", "Landing", 1),
		doc("d5", "p2", "Brief", 3), // other project, same title
	}

	tests := []struct {
		name      string
		projectID string
		baseTitle string
		want      int
	}{
		{"no chain", "p1", "Unknown", 1},
		{"empty project", "p3", "Brief", 1},
		{"chain with gap continues past max", "p1", "Brief", 6},
		{"single version chain", "p1", "Landing", 2},
		{"chains are project scoped", "p2", "Brief", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextVersion(docs, tt.projectID, tt.baseTitle); got != tt.want {
				t.Errorf("NextVersion(%s, %s) = %d, want %d", tt.projectID, tt.baseTitle, got, tt.want)
			}
		})
	}

	if got := NextVersion(nil, "p1", "Brief"); got != 1 {
		t.Errorf("NextVersion on nil slice = %d, want 1", got)
	}
}

func TestChainVersions(t *testing.T) {
	docs := []models.Document{
		doc("d1", "p1", "Brief", 1),
		doc("d2", "p1", "Brief", 2),
		doc("d3", "p1", "Landing", 1),
		doc("d4", "p2", "Brief", 1),
	}

	chain := ChainVersions(docs, "p1", "Brief")
	if len(chain) != 2 {
		t.Fatalf("ChainVersions returned %d documents, want 2", len(chain))
	}
	for _, d := range chain {
		if d.ProjectID != "p1" || d.BaseTitle != "Brief" {
			t.Errorf("chain contains foreign document %+v", d)
		}
	}

	if got := ChainVersions(docs, "p1", "Missing"); len(got) != 0 {
		t.Errorf("ChainVersions for missing chain = %v, want empty", got)
	}
}

func TestLatestVersion(t *testing.T) {
	docs := []models.Document{
		doc("d1", "p1", "Brief", 1),
		doc("d2", "p1", "Brief", 3),
		doc("d3", "p1", "Brief", 2),
	}

	latest := LatestVersion(docs, "p1", "Brief")
	if latest == nil {
		t.Fatal("LatestVersion returned nil for existing chain")
	}
	if latest.ID != "d2" {
		t.Errorf("LatestVersion = %s, want d2", latest.ID)
	}

	if got := LatestVersion(docs, "p1", "Missing"); got != nil {
		t.Errorf("LatestVersion for missing chain = %+v, want nil", got)
	}
}

func TestDocumentTitle(t *testing.T) {
	d := doc("d1", "p1", "Brief", 1)
	if got := d.Title(); got != "Brief" {
		t.Errorf("version 1 title = %q, want %q", got, "Brief")
	}

	d.Version = 3
	if got := d.Title(); got != "Brief (v3)" {
		t.Errorf("version 3 title = %q, want %q", got, "Brief (v3)")
	}
}
