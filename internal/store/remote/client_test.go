package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

func TestClientRoutesAndDecodes(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/projects":
			_ = json.NewEncoder(w).Encode([]models.Project{{ID: "p1", Name: "Acme"}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/documents":
			_ = json.NewEncoder(w).Encode([]models.Document{{ID: "d1", ProjectID: "p1"}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/projects/p1/brand-voice":
			_ = json.NewEncoder(w).Encode(models.BrandVoice{ProjectID: "p1", BrandName: "Acme"})
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	ctx := context.Background()

	projects, err := c.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Acme" {
		t.Errorf("projects = %+v", projects)
	}

	if _, err := c.ListDocuments(ctx, "p 1"); err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if gotQuery != "project_id=p+1" {
		t.Errorf("list query = %q, want escaped project scope", gotQuery)
	}

	voice, err := c.GetBrandVoice(ctx, "p1")
	if err != nil {
		t.Fatalf("GetBrandVoice: %v", err)
	}
	if voice.BrandName != "Acme" {
		t.Errorf("voice = %+v", voice)
	}

	if err := c.UpdateDocument(ctx, &models.Document{ID: "d1"}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if gotMethod != http.MethodPatch || gotPath != "/api/documents/d1" {
		t.Errorf("update went to %s %s", gotMethod, gotPath)
	}

	if err := c.DeleteBrandVoice(ctx, "p1"); err != nil {
		t.Fatalf("DeleteBrandVoice: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/projects/p1/brand-voice" {
		t.Errorf("delete went to %s %s", gotMethod, gotPath)
	}
}

func TestClientWrapsAllFailuresAsUnavailable(t *testing.T) {
	t.Run("connection refused", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // nothing listening anymore

		c := NewClient(srv.URL, time.Second)
		_, err := c.ListProjects(context.Background())
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Errorf("network failure = %v, want remote unavailable", err)
		}
	})

	t.Run("non-2xx status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second)
		_, err := c.GetProject(context.Background(), "p1")
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Errorf("500 response = %v, want remote unavailable", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, time.Second)
		_, err := c.ListProjects(context.Background())
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Errorf("malformed body = %v, want remote unavailable", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			<-block
		}))
		defer func() {
			close(block)
			srv.Close()
		}()

		c := NewClient(srv.URL, 50*time.Millisecond)
		_, err := c.ListProjects(context.Background())
		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Errorf("timeout = %v, want remote unavailable", err)
		}
	})
}
