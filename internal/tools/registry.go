// Package tools owns the user-selectable tool surface: the registry of
// tools, the mutual-exclusion switch controller, and the accordion
// group used by the template panel.
package tools

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed config/tools.yaml
var configFiles embed.FS

// Tool describes one registered tool. RequiresDocument marks tools
// that only operate on an open document; whether a tool is selected
// and whether it is operable are independent questions.
type Tool struct {
	ID               string `yaml:"id"`
	Label            string `yaml:"label"`
	RequiresDocument bool   `yaml:"requires_document"`
}

type toolsFile struct {
	Tools []Tool `yaml:"tools"`
}

// Registry is the fixed set of tools, loaded from the embedded YAML.
type Registry struct {
	tools []Tool
	byID  map[string]Tool
}

// NewRegistry loads the embedded tool definitions.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/tools.yaml")
	if err != nil {
		return nil, fmt.Errorf("read tools config: %w", err)
	}

	var file toolsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal tools config: %w", err)
	}
	if len(file.Tools) == 0 {
		return nil, fmt.Errorf("tools config defines no tools")
	}

	r := &Registry{
		tools: file.Tools,
		byID:  make(map[string]Tool, len(file.Tools)),
	}
	for _, t := range file.Tools {
		if t.ID == "" {
			return nil, fmt.Errorf("tools config contains a tool with no id")
		}
		if _, dup := r.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id %q", t.ID)
		}
		r.byID[t.ID] = t
	}
	return r, nil
}

// NewRegistryFrom builds a registry from explicit definitions. Used by
// tests.
func NewRegistryFrom(defs []Tool) *Registry {
	r := &Registry{tools: defs, byID: make(map[string]Tool, len(defs))}
	for _, t := range defs {
		r.byID[t.ID] = t
	}
	return r
}

// Get returns a tool by id.
func (r *Registry) Get(id string) (Tool, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// List returns all tools in definition order.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}
