// Package cleanup strips bracketed production notes from element text.
// It never mutates its input; callers re-validate the returned sequence
// if they need fresh diagnostics.
package cleanup

import (
	"regexp"
	"strings"

	"github.com/slugline/slugline/internal/model"
)

// bracketSpanRe matches one bracketed span. Whether the span is a
// production note is decided by its keyword, not by the brackets alone,
// so VFX cues like [EXPLOSION] survive untouched.
var bracketSpanRe = regexp.MustCompile(`\[[^\[\]]*\]`)

// noteKeywordRe matches the keywords that mark a span as a production
// note, at the start of the span's inner text.
var noteKeywordRe = regexp.MustCompile(`(?i)^\s*(NOTE|TODO|FIXME|DECIDE|MAYBE|TBD)\b`)

var spacesRe = regexp.MustCompile(`\s+`)

// Removal records one note stripped from an element.
type Removal struct {
	Element int    // index into the original sequence
	Line    int    // first source line of the element
	Note    string // the bracketed span as written
}

// IsNote reports whether a bracketed span (brackets included) is a
// production note.
func IsNote(span string) bool {
	inner := strings.TrimSuffix(strings.TrimPrefix(span, "["), "]")
	return noteKeywordRe.MatchString(inner)
}

// StripNotes removes production-note spans from text and collapses the
// leftover whitespace. The removed spans come back in source order.
func StripNotes(text string) (string, []string) {
	var removed []string
	clean := bracketSpanRe.ReplaceAllStringFunc(text, func(span string) string {
		if !IsNote(span) {
			return span
		}
		removed = append(removed, span)
		return " "
	})
	if len(removed) == 0 {
		return text, nil
	}
	return strings.TrimSpace(spacesRe.ReplaceAllString(clean, " ")), removed
}

// noteCarrier reports whether an element's type may carry inline notes.
func noteCarrier(t model.ElementType) bool {
	switch t {
	case model.Action, model.Dialogue, model.SceneHeading, model.Parenthetical:
		return true
	}
	return false
}

// Apply returns a new element sequence with production notes removed.
// Elements left empty by the removal are dropped, with their line range
// absorbed by the previous element (or the next one at the head) so the
// sequence still covers every source line.
func Apply(elements []model.ScreenplayElement) ([]model.ScreenplayElement, []Removal) {
	var removals []Removal
	out := make([]model.ScreenplayElement, 0, len(elements))
	pendingStart := 0 // line range of dropped head elements, 0 when none

	for i, el := range elements {
		keep := true
		if noteCarrier(el.Type) {
			clean, removed := StripNotes(el.Text)
			for _, note := range removed {
				removals = append(removals, Removal{Element: i, Line: el.LineStart, Note: note})
			}
			if clean == "" && len(removed) > 0 {
				keep = false
			} else {
				el.Text = clean
			}
		}

		if !keep {
			if len(out) > 0 {
				out[len(out)-1].LineEnd = el.LineEnd
			} else if pendingStart == 0 {
				pendingStart = el.LineStart
			}
			continue
		}
		if pendingStart != 0 {
			el.LineStart = pendingStart
			pendingStart = 0
		}
		out = append(out, el)
	}

	return out, removals
}
