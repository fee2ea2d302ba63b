package models

// PersistedState is the documented subset of application state written
// to the local store. Per-tool transient results are excluded on
// purpose: they are request-scoped and stale on reload.
type PersistedState struct {
	ActiveProjectID  string `json:"active_project_id"`
	ActiveDocumentID string `json:"active_document_id"`
	ActiveToolID     string `json:"active_tool_id"`
	SidebarVisible   bool   `json:"sidebar_visible"`
	ToolPanelVisible bool   `json:"tool_panel_visible"`
}

// ToolState is the transient per-tool triple. The zero value is the
// initial state.
type ToolState struct {
	Result  string
	Error   string
	Loading bool
}
