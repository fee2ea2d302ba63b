package tools

import "testing"

func TestAccordionSingleOpenGroup(t *testing.T) {
	a := NewAccordion()

	if _, ok := a.OpenGroup(); ok {
		t.Fatal("fresh accordion has an open group")
	}

	a.ToggleGroup("g1")
	if !a.IsOpen("g1") {
		t.Error("g1 not open after toggle")
	}

	// Opening another group implicitly closes the first.
	a.ToggleGroup("g2")
	if a.IsOpen("g1") {
		t.Error("g1 still open after g2 toggled")
	}
	if open, ok := a.OpenGroup(); !ok || open != "g2" {
		t.Errorf("OpenGroup() = %q, %v, want g2", open, ok)
	}
}

func TestAccordionToggleClosesSoleOpenGroup(t *testing.T) {
	a := NewAccordion()

	a.ToggleGroup("g1")
	a.ToggleGroup("g1")
	if _, ok := a.OpenGroup(); ok {
		t.Error("toggling the open group did not close it")
	}
}

func TestAccordionReset(t *testing.T) {
	a := NewAccordion()

	a.ToggleGroup("g3")
	a.Reset()
	if _, ok := a.OpenGroup(); ok {
		t.Error("group still open after Reset")
	}
	if a.IsOpen("g3") {
		t.Error("IsOpen(g3) after Reset")
	}
}
