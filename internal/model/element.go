package model

// ElementType classifies one structural unit of screenplay text.
type ElementType int

const (
	Action ElementType = iota // fallback: anything that matches nothing else
	SceneHeading
	Character
	Dialogue
	Parenthetical
	Transition
	Shot
	DualDialogueLeft
	DualDialogueRight
	VfxSfx
	PageBreak
	TitlePageTitle
	TitlePageCredit
	TitlePageAuthor
	TitlePageContact
	OnScreenText
	MontageMarker
	More
)

// elementNames must cover every ElementType; consumers switch
// exhaustively on the variant set and reporting uses these names.
var elementNames = map[ElementType]string{
	Action:            "action",
	SceneHeading:      "scene_heading",
	Character:         "character",
	Dialogue:          "dialogue",
	Parenthetical:     "parenthetical",
	Transition:        "transition",
	Shot:              "shot",
	DualDialogueLeft:  "dual_dialogue_left",
	DualDialogueRight: "dual_dialogue_right",
	VfxSfx:            "vfx_sfx",
	PageBreak:         "page_break",
	TitlePageTitle:    "title_page_title",
	TitlePageCredit:   "title_page_credit",
	TitlePageAuthor:   "title_page_author",
	TitlePageContact:  "title_page_contact",
	OnScreenText:      "on_screen_text",
	MontageMarker:     "montage_marker",
	More:              "more",
}

func (t ElementType) String() string {
	if name, ok := elementNames[t]; ok {
		return name
	}
	return "unknown"
}

// ScreenplayElement is one classified unit of the input text. Elements
// are created only by the classifier and never mutated afterwards;
// collaborators that rewrite content produce new sequences.
type ScreenplayElement struct {
	Type ElementType `json:"type"`

	// Text preserves the original casing except where a rule mandates
	// normalization. Dual-dialogue cues store the name without the
	// leading ^ marker.
	Text string `json:"text"`

	// LineStart/LineEnd is the inclusive source line range (1-based).
	// Ranges are contiguous across the sequence and cover every input
	// line; blank lines are absorbed into an adjacent element.
	LineStart int `json:"line_start"`
	LineEnd   int `json:"line_end"`

	// SceneNumber is assigned only to SceneHeading elements and only
	// when numbering is enabled. Zero means unset.
	SceneNumber int `json:"scene_number,omitempty"`

	// CharacterExtension holds the normalized trailing extension of a
	// character cue, e.g. "(V.O.)". Empty when absent.
	CharacterExtension string `json:"character_extension,omitempty"`

	// DualGroupID pairs a DualDialogueRight with exactly one preceding
	// DualDialogueLeft. Zero means unpaired.
	DualGroupID int `json:"dual_dialogue_group_id,omitempty"`
}

// IsCue reports whether the element introduces a speech block.
func (e ScreenplayElement) IsCue() bool {
	switch e.Type {
	case Character, DualDialogueLeft, DualDialogueRight:
		return true
	}
	return false
}
