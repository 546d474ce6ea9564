package cleanup

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/slugline/slugline/internal/model"
)

func TestStripNotes(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		removed int
	}{
		{"note with keyword", "A BARISTA PULLS A SHOT [NOTE TO SELF: shoot wide?]", "A BARISTA PULLS A SHOT", 1},
		{"todo mid-sentence", "He runs [TODO pick a direction] down the alley.", "He runs down the alley.", 1},
		{"vfx bracket kept", "The car flips. [EXPLOSION]", "The car flips. [EXPLOSION]", 0},
		{"two notes", "[FIXME start] Rain falls. [TBD: how hard?]", "Rain falls.", 2},
		{"lower case keyword", "She waits. [note: too slow?]", "She waits.", 1},
		{"no brackets", "Nothing here.", "Nothing here.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := StripNotes(tt.in)
			if got != tt.want {
				t.Errorf("StripNotes(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if len(removed) != tt.removed {
				t.Errorf("removed %d spans, want %d", len(removed), tt.removed)
			}
		})
	}
}

func TestApplyDropsEmptiedElements(t *testing.T) {
	elements := []model.ScreenplayElement{
		{Type: model.SceneHeading, Text: "INT. CAFE - DAY", LineStart: 1, LineEnd: 2},
		{Type: model.Action, Text: "[NOTE: rewrite this beat]", LineStart: 3, LineEnd: 4},
		{Type: model.Action, Text: "Rain falls.", LineStart: 5, LineEnd: 5},
	}
	out, removals := Apply(elements)
	if len(removals) != 1 {
		t.Fatalf("got %d removals, want 1", len(removals))
	}
	if len(out) != 2 {
		t.Fatalf("got %d elements, want 2 (emptied element dropped)", len(out))
	}
	// The dropped element's range folds into its predecessor so the
	// sequence still covers lines 1..5.
	if out[0].LineEnd != 4 {
		t.Errorf("predecessor LineEnd = %d, want 4", out[0].LineEnd)
	}
	if out[1].LineStart != 5 || out[1].LineEnd != 5 {
		t.Errorf("survivor range = [%d,%d], want [5,5]", out[1].LineStart, out[1].LineEnd)
	}
}

func TestApplyDropsEmptiedHead(t *testing.T) {
	elements := []model.ScreenplayElement{
		{Type: model.Action, Text: "[DECIDE: opening image]", LineStart: 1, LineEnd: 2},
		{Type: model.SceneHeading, Text: "INT. CAFE - DAY", LineStart: 3, LineEnd: 3},
	}
	out, _ := Apply(elements)
	if len(out) != 1 {
		t.Fatalf("got %d elements, want 1", len(out))
	}
	if out[0].LineStart != 1 || out[0].LineEnd != 3 {
		t.Errorf("range = [%d,%d], want [1,3]", out[0].LineStart, out[0].LineEnd)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	elements := []model.ScreenplayElement{
		{Type: model.Dialogue, Text: "Fine. [MAYBE cut this]", LineStart: 1, LineEnd: 1},
	}
	snapshot := make([]model.ScreenplayElement, len(elements))
	copy(snapshot, elements)

	out, _ := Apply(elements)
	if out[0].Text != "Fine." {
		t.Errorf("cleaned text = %q, want %q", out[0].Text, "Fine.")
	}
	if diff := cmp.Diff(snapshot, elements); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}
