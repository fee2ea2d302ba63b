// Package remote is the HTTP client for the remote durable store. The
// remote tier is an external collaborator reached only through this
// CRUD surface; every failure — network, timeout, non-2xx, malformed
// body — comes back as a RemoteUnavailableError so the sync layer can
// degrade to the local store uniformly.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

// Client talks to the remote store's REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a remote store client. The timeout bounds every
// call; on expiry the caller takes the local fallback path.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// do executes one request and decodes the response body into dest
// (when dest is non-nil). Any failure is wrapped as RemoteUnavailable.
func (c *Client) do(ctx context.Context, op, method, path string, body any, dest any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &domain.RemoteUnavailableError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.RemoteUnavailableError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.RemoteUnavailableError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.RemoteUnavailableError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RemoteUnavailableError{
			Op:  op,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(raw)),
		}
	}

	if dest != nil {
		if err := json.Unmarshal(raw, dest); err != nil {
			return &domain.RemoteUnavailableError{Op: op, Err: fmt.Errorf("parse response: %w", err)}
		}
	}
	return nil
}

func scoped(path, projectID string) string {
	return path + "?project_id=" + url.QueryEscape(projectID)
}

// Projects

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.do(ctx, "list projects", http.MethodGet, "/api/projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var out models.Project
	if err := c.do(ctx, "get project", http.MethodGet, "/api/projects/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, p *models.Project) error {
	return c.do(ctx, "create project", http.MethodPost, "/api/projects", p, nil)
}

func (c *Client) UpdateProject(ctx context.Context, p *models.Project) error {
	return c.do(ctx, "update project", http.MethodPatch, "/api/projects/"+url.PathEscape(p.ID), p, nil)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, "delete project", http.MethodDelete, "/api/projects/"+url.PathEscape(id), nil, nil)
}

// Documents

func (c *Client) ListDocuments(ctx context.Context, projectID string) ([]models.Document, error) {
	var out []models.Document
	if err := c.do(ctx, "list documents", http.MethodGet, scoped("/api/documents", projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var out models.Document
	if err := c.do(ctx, "get document", http.MethodGet, "/api/documents/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateDocument(ctx context.Context, d *models.Document) error {
	return c.do(ctx, "create document", http.MethodPost, "/api/documents", d, nil)
}

func (c *Client) UpdateDocument(ctx context.Context, d *models.Document) error {
	return c.do(ctx, "update document", http.MethodPatch, "/api/documents/"+url.PathEscape(d.ID), d, nil)
}

func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, "delete document", http.MethodDelete, "/api/documents/"+url.PathEscape(id), nil, nil)
}

// Folders

func (c *Client) ListFolders(ctx context.Context, projectID string) ([]models.Folder, error) {
	var out []models.Folder
	if err := c.do(ctx, "list folders", http.MethodGet, scoped("/api/folders", projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	var out models.Folder
	if err := c.do(ctx, "get folder", http.MethodGet, "/api/folders/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFolder(ctx context.Context, f *models.Folder) error {
	return c.do(ctx, "create folder", http.MethodPost, "/api/folders", f, nil)
}

func (c *Client) UpdateFolder(ctx context.Context, f *models.Folder) error {
	return c.do(ctx, "update folder", http.MethodPatch, "/api/folders/"+url.PathEscape(f.ID), f, nil)
}

func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	return c.do(ctx, "delete folder", http.MethodDelete, "/api/folders/"+url.PathEscape(id), nil, nil)
}

// Personas

func (c *Client) ListPersonas(ctx context.Context, projectID string) ([]models.Persona, error) {
	var out []models.Persona
	if err := c.do(ctx, "list personas", http.MethodGet, scoped("/api/personas", projectID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPersona(ctx context.Context, id string) (*models.Persona, error) {
	var out models.Persona
	if err := c.do(ctx, "get persona", http.MethodGet, "/api/personas/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePersona(ctx context.Context, p *models.Persona) error {
	return c.do(ctx, "create persona", http.MethodPost, "/api/personas", p, nil)
}

func (c *Client) UpdatePersona(ctx context.Context, p *models.Persona) error {
	return c.do(ctx, "update persona", http.MethodPatch, "/api/personas/"+url.PathEscape(p.ID), p, nil)
}

func (c *Client) DeletePersona(ctx context.Context, id string) error {
	return c.do(ctx, "delete persona", http.MethodDelete, "/api/personas/"+url.PathEscape(id), nil, nil)
}

// Brand voice (per-project singleton)

func (c *Client) GetBrandVoice(ctx context.Context, projectID string) (*models.BrandVoice, error) {
	var out models.BrandVoice
	path := "/api/projects/" + url.PathEscape(projectID) + "/brand-voice"
	if err := c.do(ctx, "get brand voice", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PutBrandVoice(ctx context.Context, v *models.BrandVoice) error {
	path := "/api/projects/" + url.PathEscape(v.ProjectID) + "/brand-voice"
	return c.do(ctx, "put brand voice", http.MethodPut, path, v, nil)
}

func (c *Client) DeleteBrandVoice(ctx context.Context, projectID string) error {
	path := "/api/projects/" + url.PathEscape(projectID) + "/brand-voice"
	return c.do(ctx, "delete brand voice", http.MethodDelete, path, nil, nil)
}
