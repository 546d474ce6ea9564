// Package classify turns raw screenplay lines into a typed element
// sequence. Classification is total: any line that matches nothing in
// the pattern registry degrades to an Action element, so malformed
// input never fails.
package classify

import (
	"strings"

	"github.com/slugline/slugline/internal/model"
	"github.com/slugline/slugline/internal/registry"
)

// Options controls optional classifier behavior.
type Options struct {
	// EnableSceneNumbers assigns 1-based, strictly increasing numbers
	// to scene headings.
	EnableSceneNumbers bool
}

// Classifier parses lines against a pattern registry. It is stateless
// between calls; parse state lives only inside Classify, so concurrent
// calls on different documents are safe.
type Classifier struct {
	reg *registry.Registry
}

// New creates a classifier over the given registry. A nil registry
// selects the default rule table.
func New(reg *registry.Registry) *Classifier {
	if reg == nil {
		reg = registry.Default()
	}
	return &Classifier{reg: reg}
}

// parseState is the transient look-back state threaded through one
// Classify call and discarded at end of input.
type parseState struct {
	prevType       model.ElementType
	hasPrev        bool
	lastCueIdx     int // index of the most recent plain Character cue, -1 when none
	inDialogue     bool
	expectDialogue bool
	sceneCounter   int
	titlePage      bool
	titleSeen      bool
	nextGroupID    int
}

// Classify converts lines into an ordered element sequence. Element
// line ranges are contiguous, non-overlapping, and cover every input
// line; blank lines are absorbed into the nearest element.
func (c *Classifier) Classify(lines []string, opts Options) []model.ScreenplayElement {
	elements := make([]model.ScreenplayElement, 0, len(lines))
	state := parseState{
		lastCueIdx:  -1,
		titlePage:   true,
		nextGroupID: 1,
	}
	pendingStart := 1 // first source line not yet covered by an element

	for i, raw := range lines {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		if line == "" {
			if len(elements) > 0 {
				// Absorb into the preceding element's range.
				elements[len(elements)-1].LineEnd = lineNo
				pendingStart = lineNo + 1
			}
			if state.titlePage && state.titleSeen {
				// The first blank-terminated title block ends the mode.
				state.titlePage = false
			}
			if state.hasPrev && state.prevType == model.Dialogue {
				state.inDialogue = false
				state.expectDialogue = false
			}
			continue
		}

		el := c.classifyLine(line, lines, i, &state, elements)

		if el.Type == model.SceneHeading && opts.EnableSceneNumbers {
			state.sceneCounter++
			el.SceneNumber = state.sceneCounter
		}

		el.LineStart = pendingStart
		el.LineEnd = lineNo
		elements = append(elements, el)
		pendingStart = lineNo + 1

		c.updateState(&state, el, len(elements)-1)
	}

	return elements
}

// classifyLine resolves one non-blank line against the registry in
// priority order, applying the context gates the rule table cannot
// express on its own.
func (c *Classifier) classifyLine(line string, lines []string, idx int, state *parseState, elements []model.ScreenplayElement) model.ScreenplayElement {
	for _, entry := range c.reg.Entries() {
		if !entry.Match(line) {
			continue
		}

		switch entry.Type {
		case model.TitlePageTitle, model.TitlePageAuthor, model.TitlePageContact, model.TitlePageCredit:
			// Title-page markers bind only while the mode is active;
			// it never re-enters.
			if !state.titlePage {
				continue
			}
			state.titleSeen = true
			return model.ScreenplayElement{Type: entry.Type, Text: line}

		case model.Character:
			if !c.characterGate(lines, idx, line) {
				continue
			}
			_, ext := splitExtension(line)
			return model.ScreenplayElement{Type: model.Character, Text: line, CharacterExtension: ext}

		case model.Parenthetical:
			if !state.inDialogue && !state.expectDialogue {
				continue
			}
			return model.ScreenplayElement{Type: model.Parenthetical, Text: line}

		case model.DualDialogueRight:
			return c.classifyDualCue(line, state, elements)

		default:
			return model.ScreenplayElement{Type: entry.Type, Text: line}
		}
	}

	// Dialogue continuation: a plain line inside an open speech block.
	if (state.expectDialogue || state.inDialogue) && !isAllUpper(line) {
		_, ext := splitExtension(line)
		return model.ScreenplayElement{Type: model.Dialogue, Text: line, CharacterExtension: ext}
	}

	// Total classification: the fallback always matches.
	return model.ScreenplayElement{Type: model.Action, Text: line}
}

// characterGate resolves the short-ALL-CAPS ambiguity class (character
// cue vs. stray emphasis): the line is a cue only when the next
// non-blank line exists and is not itself a scene heading, transition,
// or shot header. Cues carrying an extension are accepted even at end
// of input, since the extension is unambiguous.
func (c *Classifier) characterGate(lines []string, idx int, line string) bool {
	// Whole-line markers share the short ALL-CAPS cue shape; their own
	// entries claim them.
	if c.reg.MatchesType(line, model.MontageMarker, model.PageBreak) {
		return false
	}

	_, ext := splitExtension(line)

	next, ok := nextNonBlank(lines, idx)
	if !ok {
		return ext != ""
	}
	return !c.reg.MatchesAnyOf(next, model.SceneHeading, model.Transition, model.Shot)
}

// classifyDualCue handles a ^-prefixed character cue. It pairs with the
// most recent Character cue by retagging it DualDialogueLeft under a
// shared group id. Without a pairable cue (none yet, or a scene heading
// intervened) the line degrades to an ordinary Character element.
func (c *Classifier) classifyDualCue(line string, state *parseState, elements []model.ScreenplayElement) model.ScreenplayElement {
	name := strings.TrimSpace(strings.TrimPrefix(line, "^"))
	_, ext := splitExtension(name)

	if state.lastCueIdx >= 0 && state.lastCueIdx < len(elements) && elements[state.lastCueIdx].Type == model.Character {
		group := state.nextGroupID
		state.nextGroupID++
		elements[state.lastCueIdx].Type = model.DualDialogueLeft
		elements[state.lastCueIdx].DualGroupID = group
		return model.ScreenplayElement{Type: model.DualDialogueRight, Text: name, CharacterExtension: ext, DualGroupID: group}
	}

	// Recoverable: no left side to pair with.
	return model.ScreenplayElement{Type: model.Character, Text: name, CharacterExtension: ext}
}

// updateState advances the look-back state after emitting an element.
func (c *Classifier) updateState(state *parseState, el model.ScreenplayElement, idx int) {
	switch el.Type {
	case model.Character:
		state.lastCueIdx = idx
		state.inDialogue = true
		state.expectDialogue = true
	case model.DualDialogueRight:
		state.inDialogue = true
		state.expectDialogue = true
	case model.Dialogue:
		state.inDialogue = true
		state.expectDialogue = false
	case model.Parenthetical:
		state.expectDialogue = true
	case model.SceneHeading:
		// Dual groups never span a scene heading.
		state.lastCueIdx = -1
		state.inDialogue = false
		state.expectDialogue = false
	case model.Action, model.Transition, model.Shot, model.PageBreak, model.MontageMarker, model.VfxSfx, model.OnScreenText:
		state.inDialogue = false
		state.expectDialogue = false
	}

	if state.titlePage {
		switch el.Type {
		case model.TitlePageTitle, model.TitlePageAuthor, model.TitlePageContact, model.TitlePageCredit:
		default:
			// First non-title element exits the mode for good.
			state.titlePage = false
		}
	}

	state.prevType = el.Type
	state.hasPrev = true
}

// splitExtension separates a trailing character extension from a line,
// returning the bare text and the normalized extension ("" if absent).
func splitExtension(line string) (string, string) {
	open := strings.LastIndex(line, "(")
	if open < 0 || !strings.HasSuffix(line, ")") {
		return line, ""
	}
	inner := line[open+1 : len(line)-1]
	norm := registry.NormalizeExtension(inner)
	if norm == "" {
		return line, ""
	}
	return strings.TrimSpace(line[:open]), norm
}

// nextNonBlank returns the first non-blank line after index idx.
func nextNonBlank(lines []string, idx int) (string, bool) {
	for i := idx + 1; i < len(lines); i++ {
		if s := strings.TrimSpace(lines[i]); s != "" {
			return s, true
		}
	}
	return "", false
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

// CueName returns the character name of a cue element with any
// extension and trailing colon stripped, preserving original casing.
func CueName(el model.ScreenplayElement) string {
	name := registry.StripExtension(strings.TrimSpace(el.Text))
	name = strings.TrimSuffix(strings.TrimSpace(name), ":")
	return strings.TrimSpace(name)
}
