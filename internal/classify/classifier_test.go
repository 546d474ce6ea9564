package classify

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/slugline/slugline/internal/model"
	"github.com/slugline/slugline/internal/render"
)

func types(elements []model.ScreenplayElement) []model.ElementType {
	out := make([]model.ElementType, len(elements))
	for i, el := range elements {
		out[i] = el.Type
	}
	return out
}

func TestClassifyEmptyInput(t *testing.T) {
	if got := New(nil).Classify(nil, Options{}); len(got) != 0 {
		t.Errorf("Classify(nil) = %d elements, want 0", len(got))
	}
}

func TestSceneNumbering(t *testing.T) {
	lines := []string{
		"INT. COFFEE SHOP - DAY",
		"",
		"A quiet morning.",
		"",
		"EXT. STREET - NIGHT",
		"",
		"Rain.",
	}
	elements := New(nil).Classify(lines, Options{EnableSceneNumbers: true})

	var numbers []int
	for _, el := range elements {
		if el.Type == model.SceneHeading {
			numbers = append(numbers, el.SceneNumber)
		}
	}
	if diff := cmp.Diff([]int{1, 2}, numbers); diff != "" {
		t.Errorf("scene numbers (-want +got):\n%s", diff)
	}

	// Numbering off leaves the field zero.
	for _, el := range New(nil).Classify(lines, Options{}) {
		if el.SceneNumber != 0 {
			t.Errorf("scene number assigned without opt-in: %+v", el)
		}
	}
}

func TestDualDialoguePairing(t *testing.T) {
	lines := strings.Split("SARAH\nI love you.\n\n^JAKE\nI love you too.", "\n")
	elements := New(nil).Classify(lines, Options{})

	want := []model.ElementType{
		model.DualDialogueLeft, model.Dialogue,
		model.DualDialogueRight, model.Dialogue,
	}
	if diff := cmp.Diff(want, types(elements)); diff != "" {
		t.Fatalf("types (-want +got):\n%s", diff)
	}
	if elements[0].DualGroupID == 0 || elements[0].DualGroupID != elements[2].DualGroupID {
		t.Errorf("group ids %d and %d, want one shared non-zero id",
			elements[0].DualGroupID, elements[2].DualGroupID)
	}
}

func TestDualCueWithoutPartnerDegrades(t *testing.T) {
	lines := []string{"^JAKE", "Talking to myself."}
	elements := New(nil).Classify(lines, Options{})
	if elements[0].Type != model.Character {
		t.Errorf("unpaired dual cue = %v, want Character", elements[0].Type)
	}
	if elements[0].DualGroupID != 0 {
		t.Errorf("unpaired cue got group id %d", elements[0].DualGroupID)
	}
}

func TestDualGroupsNeverSpanSceneHeadings(t *testing.T) {
	lines := []string{
		"SARAH",
		"Bye.",
		"",
		"INT. HALL - DAY",
		"",
		"^JAKE",
		"Hello?",
	}
	elements := New(nil).Classify(lines, Options{})
	if elements[0].Type != model.Character {
		t.Errorf("cue before heading retagged to %v", elements[0].Type)
	}
	for _, el := range elements {
		if el.Type == model.DualDialogueLeft || el.Type == model.DualDialogueRight {
			t.Errorf("dual pairing crossed a scene heading: %+v", el)
		}
	}
}

func TestShotBeatsCharacterCue(t *testing.T) {
	lines := []string{
		"WIDE SHOT",
		"",
		"The valley below.",
		"",
		"CLOSE ON JAKE",
		"",
		"His hands shake.",
	}
	elements := New(nil).Classify(lines, Options{})
	if elements[0].Type != model.Shot {
		t.Errorf("WIDE SHOT = %v, want Shot", elements[0].Type)
	}
	if elements[2].Type != model.Shot {
		t.Errorf("CLOSE ON JAKE = %v, want Shot", elements[2].Type)
	}
}

func TestCharacterGateLookAhead(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  model.ElementType
	}{
		{"cue before dialogue", []string{"JAKE", "Hello."}, model.Character},
		{"caps before heading", []string{"JAKE", "", "INT. CAFE - DAY"}, model.Action},
		{"caps at end of input", []string{"Some action.", "", "JAKE"}, model.Action},
		{"extension at end of input", []string{"Some action.", "", "JAKE (V.O.)"}, model.Character},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elements := New(nil).Classify(tt.lines, Options{})
			var got model.ElementType
			found := false
			for _, el := range elements {
				if strings.HasPrefix(el.Text, "JAKE") {
					got, found = el.Type, true
				}
			}
			if !found {
				t.Fatal("JAKE line not classified")
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtensionNormalization(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"SARAH (VO)", "(V.O.)"},
		{"SARAH (V.O.)", "(V.O.)"},
		{"SARAH (OS)", "(O.S.)"},
		{"SARAH (CONTD)", "(CONT'D)"},
		{"SARAH (CONT'D)", "(CONT'D)"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			elements := New(nil).Classify([]string{tt.line, "Right."}, Options{})
			if elements[0].Type != model.Character {
				t.Fatalf("type = %v, want Character", elements[0].Type)
			}
			if elements[0].CharacterExtension != tt.want {
				t.Errorf("extension = %q, want %q", elements[0].CharacterExtension, tt.want)
			}
		})
	}
}

func TestParentheticalNeedsDialogueContext(t *testing.T) {
	inBlock := New(nil).Classify([]string{"JAKE", "(quietly)", "We should go."}, Options{})
	want := []model.ElementType{model.Character, model.Parenthetical, model.Dialogue}
	if diff := cmp.Diff(want, types(inBlock)); diff != "" {
		t.Errorf("in dialogue block (-want +got):\n%s", diff)
	}

	stray := New(nil).Classify([]string{"The door opens.", "", "(quietly)"}, Options{})
	if stray[1].Type != model.Action {
		t.Errorf("stray parenthetical = %v, want Action", stray[1].Type)
	}
}

func TestTitlePageMode(t *testing.T) {
	lines := []string{
		"TITLE: COLD BREW",
		"written by",
		"AUTHOR: R. Ortiz",
		"",
		"INT. CAFE - DAY",
		"",
		"TITLE: NOT A TITLE ANYMORE",
	}
	elements := New(nil).Classify(lines, Options{})
	want := []model.ElementType{
		model.TitlePageTitle, model.TitlePageCredit, model.TitlePageAuthor,
		model.SceneHeading, model.Action,
	}
	if diff := cmp.Diff(want, types(elements)); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}

func TestMarkerElements(t *testing.T) {
	tests := []struct {
		line string
		want model.ElementType
	}{
		{"FADE IN:", model.Transition},
		{"SMASH CUT TO:", model.Transition},
		{"[GLASS SHATTERS]", model.VfxSfx},
		{"SUPER: Five years later", model.OnScreenText},
		{"BEGIN MONTAGE", model.MontageMarker},
		{"===", model.PageBreak},
		{"PAGE BREAK", model.PageBreak},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			elements := New(nil).Classify([]string{tt.line}, Options{})
			if len(elements) != 1 || elements[0].Type != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, types(elements), tt.want)
			}
		})
	}
}

func TestMontageBlockStaysOutOfDialogue(t *testing.T) {
	lines := []string{
		"BEGIN MONTAGE",
		"",
		"- Jake runs in the park.",
		"",
		"END MONTAGE",
	}
	elements := New(nil).Classify(lines, Options{})

	want := []model.ElementType{
		model.MontageMarker, model.Action, model.MontageMarker,
	}
	if diff := cmp.Diff(want, types(elements)); diff != "" {
		t.Errorf("types (-want +got):\n%s", diff)
	}
}

func TestUnrecognizedShapesDegradeToAction(t *testing.T) {
	lines := []string{"%%% not a screenplay line &&&", "0123 ?!"}
	elements := New(nil).Classify(lines, Options{})
	for i, el := range elements {
		if el.Type != model.Action {
			t.Errorf("line %d = %v, want Action", i, el.Type)
		}
		if el.Text != lines[i] {
			t.Errorf("text %q, want input preserved", el.Text)
		}
	}
}

func TestLineCoverage(t *testing.T) {
	lines := []string{
		"",
		"INT. CAFE - DAY",
		"",
		"",
		"JAKE",
		"Morning.",
		"",
		"He sits.",
		"",
	}
	elements := New(nil).Classify(lines, Options{})
	if elements[0].LineStart != 1 {
		t.Errorf("first element starts at %d, want 1 (leading blank absorbed)", elements[0].LineStart)
	}
	for i := 1; i < len(elements); i++ {
		if elements[i].LineStart != elements[i-1].LineEnd+1 {
			t.Errorf("gap between element %d (ends %d) and %d (starts %d)",
				i-1, elements[i-1].LineEnd, i, elements[i].LineStart)
		}
	}
	if last := elements[len(elements)-1]; last.LineEnd != len(lines) {
		t.Errorf("last element ends at %d, want %d", last.LineEnd, len(lines))
	}
}

func TestRenderRoundTripPreservesTypes(t *testing.T) {
	lines := []string{
		"TITLE: COLD BREW",
		"",
		"FADE IN:",
		"",
		"INT. COFFEE SHOP - DAY",
		"",
		"A BARISTA works the machine.",
		"",
		"SARAH",
		"(tired)",
		"Double shot, please.",
		"",
		"^JAKE",
		"Make it two.",
		"",
		"CUT TO:",
		"",
		"EXT. STREET - NIGHT",
		"",
		"They walk home.",
		"",
		"FADE OUT.",
	}
	c := New(nil)
	first := c.Classify(lines, Options{})

	rendered := render.NewText().Render(first)
	second := c.Classify(strings.Split(strings.TrimRight(rendered, "\n"), "\n"), Options{})

	if diff := cmp.Diff(types(first), types(second)); diff != "" {
		t.Errorf("re-classified types differ (-first +second):\n%s", diff)
	}
}
