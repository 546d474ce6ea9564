// Package render turns an element sequence back into screenplay text.
// Output is logical, not physical: headings, cues, and transitions are
// normalized to upper case and blocks are separated by blank lines, but
// no column layout or pagination is applied. Rendering then
// re-classifying yields the same element type sequence.
package render

import (
	"strings"

	"github.com/slugline/slugline/internal/model"
)

// TextRenderer renders plain screenplay text.
type TextRenderer struct{}

// NewText creates a plain-text renderer.
func NewText() *TextRenderer {
	return &TextRenderer{}
}

// Render produces the text for a classified sequence. Scene numbers are
// a reporting concern and are not written into the text.
func (r *TextRenderer) Render(elements []model.ScreenplayElement) string {
	var b strings.Builder
	for i, el := range elements {
		if i > 0 && blankBefore(elements[i-1].Type, el.Type) {
			b.WriteString("\n")
		}
		b.WriteString(r.renderElement(el))
		b.WriteString("\n")
	}
	return b.String()
}

func (r *TextRenderer) renderElement(el model.ScreenplayElement) string {
	text := strings.TrimSpace(el.Text)
	switch el.Type {
	case model.SceneHeading, model.Transition, model.Shot,
		model.Character, model.DualDialogueLeft:
		return strings.ToUpper(text)
	case model.DualDialogueRight:
		return "^" + strings.ToUpper(text)
	default:
		return text
	}
}

// blankBefore reports whether a blank line separates prev from cur.
// Dialogue blocks stay packed; title-page lines stay packed; everything
// else gets a separating blank.
func blankBefore(prev, cur model.ElementType) bool {
	if isTitleType(prev) && isTitleType(cur) {
		return false
	}
	switch cur {
	case model.Dialogue, model.Parenthetical:
		switch prev {
		case model.Character, model.DualDialogueLeft, model.DualDialogueRight,
			model.Dialogue, model.Parenthetical:
			return false
		}
	}
	return true
}

func isTitleType(t model.ElementType) bool {
	switch t {
	case model.TitlePageTitle, model.TitlePageCredit,
		model.TitlePageAuthor, model.TitlePageContact:
		return true
	}
	return false
}
