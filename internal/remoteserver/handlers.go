package remoteserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/domain"
	"inkwell/internal/httputil"
)

// EntityHandler serves the generic CRUD surface for one entity kind.
// Bodies are passed through as-is: the server validates only identity
// and scope fields, never entity internals.
type EntityHandler struct {
	kind   string
	store  *EntityStore
	logger *slog.Logger
}

func NewEntityHandler(kind string, store *EntityStore, logger *slog.Logger) *EntityHandler {
	return &EntityHandler{kind: kind, store: store, logger: logger}
}

// entityEnvelope is the slice of any entity body the server needs.
type entityEnvelope struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
}

func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID := r.URL.Query().Get("project_id")
	if h.kind != KindProject && projectID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "project_id query parameter is required")
		return
	}

	items, err := h.store.List(r.Context(), h.kind, projectID)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, items)
}

func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	data, err := h.store.Get(r.Context(), h.kind, id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, data)
}

func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, env, ok := h.readEntity(w, r)
	if !ok {
		return
	}
	if env.ID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "entity id is required")
		return
	}

	if err := h.store.Put(r.Context(), h.kind, env.ID, h.scope(env), body); err != nil {
		h.respondStoreError(w, err)
		return
	}

	h.logger.Info("entity created", "kind", h.kind, "id", env.ID)
	httputil.RespondJSON(w, http.StatusCreated, json.RawMessage(body))
}

func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, env, ok := h.readEntity(w, r)
	if !ok {
		return
	}
	if env.ID != "" && env.ID != id {
		httputil.RespondError(w, http.StatusBadRequest, "entity id does not match URL")
		return
	}

	// Update requires the entity to exist; the client creates via POST.
	if _, err := h.store.Get(r.Context(), h.kind, id); err != nil {
		h.respondStoreError(w, err)
		return
	}

	if err := h.store.Put(r.Context(), h.kind, id, h.scope(env), body); err != nil {
		h.respondStoreError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, json.RawMessage(body))
}

func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Delete(r.Context(), h.kind, id); err != nil {
		h.respondStoreError(w, err)
		return
	}
	h.logger.Info("entity deleted", "kind", h.kind, "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *EntityHandler) readEntity(w http.ResponseWriter, r *http.Request) ([]byte, entityEnvelope, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return nil, entityEnvelope{}, false
	}

	var env entityEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return nil, entityEnvelope{}, false
	}
	return body, env, true
}

// scope returns the project_id column value. Projects are top-level
// and scope to themselves being absent.
func (h *EntityHandler) scope(env entityEnvelope) string {
	if h.kind == KindProject {
		return ""
	}
	return env.ProjectID
}

func (h *EntityHandler) respondStoreError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}
	h.logger.Error("store error", "kind", h.kind, "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}

// BrandVoiceHandler serves the per-project singleton at
// /api/projects/{id}/brand-voice. The project id doubles as the row id.
type BrandVoiceHandler struct {
	store  *EntityStore
	logger *slog.Logger
}

func NewBrandVoiceHandler(store *EntityStore, logger *slog.Logger) *BrandVoiceHandler {
	return &BrandVoiceHandler{store: store, logger: logger}
}

func (h *BrandVoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	data, err := h.store.Get(r.Context(), KindBrandVoice, projectID)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, data)
}

func (h *BrandVoiceHandler) Put(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if !json.Valid(body) {
		httputil.RespondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}

	if err := h.store.Put(r.Context(), KindBrandVoice, projectID, projectID, body); err != nil {
		h.respondStoreError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, json.RawMessage(body))
}

func (h *BrandVoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if err := h.store.Delete(r.Context(), KindBrandVoice, projectID); err != nil {
		h.respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BrandVoiceHandler) respondStoreError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}
	h.logger.Error("store error", "kind", KindBrandVoice, "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
