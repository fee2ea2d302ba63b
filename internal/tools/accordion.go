package tools

import (
	"sync"
)

// Accordion is a single-open-group controller: at most one group is
// expanded. The open group is one value ("" = all closed), set
// atomically, for the same reason tool selection is: independent
// per-group booleans drift.
type Accordion struct {
	mu   sync.Mutex
	open string
}

// NewAccordion starts fully closed.
func NewAccordion() *Accordion {
	return &Accordion{}
}

// ToggleGroup opens exactly groupID, implicitly closing all others.
// Toggling the sole open group closes everything.
func (a *Accordion) ToggleGroup(groupID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.open == groupID {
		a.open = ""
		return
	}
	a.open = groupID
}

// Reset closes every group. Called whenever the containing panel is
// freshly opened or navigated to: expansion state never survives
// navigation, so the panel always comes up the same way.
func (a *Accordion) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open = ""
}

// OpenGroup returns the expanded group, if any.
func (a *Accordion) OpenGroup() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.open == "" {
		return "", false
	}
	return a.open, true
}

// IsOpen reports whether groupID is the expanded group.
func (a *Accordion) IsOpen(groupID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open == groupID
}
