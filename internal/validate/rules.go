package validate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/slugline/slugline/internal/cleanup"
	"github.com/slugline/slugline/internal/model"
	"github.com/slugline/slugline/internal/registry"
	"github.com/slugline/slugline/internal/unify"
)

// DefaultRules returns the full rule catalogue in code order.
func DefaultRules() []Rule {
	return []Rule{
		{Code: model.E1InvalidSceneHeading, Name: "scene-heading-format", Check: checkSceneHeadings},
		{Code: model.E2CharacterFormat, Name: "cue-uppercase", Check: checkCueCase},
		{Code: model.E3DialogueFormat, Name: "uppercase-dialogue", Check: checkUppercaseDialogue},
		{Code: model.E4IncorrectParenthetical, Name: "parenthetical-wrapping", Check: checkParentheticalWrapping},
		{Code: model.E5NonStandardTransition, Name: "transition-format", Check: checkTransitions},
		{Code: model.E6InvalidBlockSequence, Name: "block-sequence", Check: checkBlockSequence},
		{Code: model.E7MissingSeparation, Name: "cue-separation", Check: checkCueSeparation},
		{Code: model.E8MissingSceneHeading, Name: "scene-heading-presence", Check: checkSceneHeadingPresence},
		{Code: model.E9ProductionNote, Name: "production-notes", Check: checkProductionNotes},
		{Code: model.E10CasualLanguage, Name: "casual-language", Check: checkCasualLanguage},
		{Code: model.E11CharacterVariants, Name: "character-variants", Check: checkCharacterVariants},
		{Code: model.E12RedundantContent, Name: "redundant-content", Check: checkRedundantContent},
		{Code: model.E13OverloadedParen, Name: "parenthetical-overload", Check: checkParentheticalOverload},
	}
}

// E1: scene-heading malformation.

var headingPrefixRe = regexp.MustCompile(`(?i)^(INT\./EXT\.|EXT\./INT\.|INT\.|EXT\.|I/E\.|INT|EXT)\s*`)

func checkSceneHeadings(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		if el.Type != model.SceneHeading {
			continue
		}
		text := strings.TrimSpace(el.Text)
		fixed, changed := normalizeHeading(text)
		switch {
		case changed:
			diags = append(diags, model.Diagnostic{
				Code:          model.E1InvalidSceneHeading,
				Message:       fmt.Sprintf("scene heading %q is not in standard form", text),
				Confidence:    0.8,
				Elements:      []int{i},
				Line:          el.LineStart,
				SuggestedText: fixed,
			})
		case !strings.Contains(text, " - "):
			// Missing time-of-day separator; the time itself cannot be
			// guessed, so this stays review-only.
			diags = append(diags, model.Diagnostic{
				Code:       model.E1InvalidSceneHeading,
				Message:    fmt.Sprintf("scene heading %q has no time-of-day marker", text),
				Confidence: 0.3,
				Elements:   []int{i},
				Line:       el.LineStart,
			})
		}
	}
	return diags
}

// normalizeHeading uppercases a heading and restores the period after
// the INT/EXT prefix. It reports whether anything changed.
func normalizeHeading(text string) (string, bool) {
	upper := strings.ToUpper(text)
	m := headingPrefixRe.FindString(upper)
	fixed := upper
	if m != "" {
		prefix := strings.TrimSpace(m)
		if !strings.HasSuffix(prefix, ".") {
			prefix += "."
		}
		rest := strings.TrimSpace(upper[len(m):])
		fixed = prefix + " " + rest
	}
	return fixed, fixed != text
}

// E2: character cue not all caps.

func checkCueCase(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		if !el.IsCue() {
			continue
		}
		name := unify.BaseName(el)
		if name == "" || name == strings.ToUpper(name) {
			continue
		}
		suggested := strings.ToUpper(name)
		if el.CharacterExtension != "" {
			suggested += " " + el.CharacterExtension
		}
		diags = append(diags, model.Diagnostic{
			Code:          model.E2CharacterFormat,
			Message:       fmt.Sprintf("character cue %q should be upper case", name),
			Confidence:    0.95,
			Elements:      []int{i},
			Line:          el.LineStart,
			SuggestedText: suggested,
		})
	}
	return diags
}

// E3: dialogue line entirely upper case.

func checkUppercaseDialogue(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		if el.Type != model.Dialogue {
			continue
		}
		if !isAllUpper(el.Text) {
			continue
		}
		diags = append(diags, model.Diagnostic{
			Code:       model.E3DialogueFormat,
			Message:    "dialogue is entirely upper case; possible misclassified cue",
			Confidence: 0.5,
			Elements:   []int{i},
			Line:       el.LineStart,
		})
	}
	return diags
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// E4: parenthetical not wrapped.

func checkParentheticalWrapping(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		if el.Type != model.Parenthetical {
			continue
		}
		text := strings.TrimSpace(el.Text)
		if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
			continue
		}
		diags = append(diags, model.Diagnostic{
			Code:          model.E4IncorrectParenthetical,
			Message:       "parenthetical is not wrapped in parentheses",
			Confidence:    0.9,
			Elements:      []int{i},
			Line:          el.LineStart,
			SuggestedText: "(" + strings.Trim(text, "()") + ")",
		})
	}
	return diags
}

// E5: non-standard transition.

func checkTransitions(elements []model.ScreenplayElement) []model.Diagnostic {
	standard := registry.StandardTransitions()
	var diags []model.Diagnostic
	for i, el := range elements {
		text := strings.TrimSpace(el.Text)
		upper := strings.ToUpper(text)

		switch el.Type {
		case model.Transition:
			// The classifier matches case-insensitively; flag the ones
			// not written in canonical form.
			if containsString(standard, text) {
				continue
			}
			diags = append(diags, model.Diagnostic{
				Code:          model.E5NonStandardTransition,
				Message:       fmt.Sprintf("transition %q is not in canonical form", text),
				Confidence:    0.7,
				Elements:      []int{i},
				Line:          el.LineStart,
				SuggestedText: upper,
			})
		case model.Action:
			// An upper-case line ending in a colon is usually a
			// transition the registry did not recognize.
			if !strings.HasSuffix(upper, ":") || !isAllUpper(text) || strings.Count(text, " ") > 4 {
				continue
			}
			closest, ok := closestTransition(upper, standard)
			if !ok && !strings.HasSuffix(upper, "TO:") {
				continue
			}
			d := model.Diagnostic{
				Code:       model.E5NonStandardTransition,
				Message:    fmt.Sprintf("%q looks like a non-standard transition", text),
				Confidence: 0.4,
				Elements:   []int{i},
				Line:       el.LineStart,
			}
			if ok {
				d.Confidence = 0.7
				d.SuggestedText = closest
			}
			diags = append(diags, d)
		}
	}
	return diags
}

// closestTransition finds a standard transition within edit distance 3.
func closestTransition(upper string, standard []string) (string, bool) {
	best, bestDist := "", 4
	for _, t := range standard {
		if d := editDistance(upper, t); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, best != ""
}

func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// E6: invalid block sequence.

func checkBlockSequence(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		switch el.Type {
		case model.Dialogue:
			if i > 0 && inDialogueBlock(elements[i-1].Type) {
				continue
			}
			diags = append(diags, model.Diagnostic{
				Code:       model.E6InvalidBlockSequence,
				Message:    "dialogue without a preceding character cue",
				Confidence: 0.9,
				Elements:   []int{i},
				Line:       el.LineStart,
			})
		case model.Parenthetical:
			if i > 0 && inDialogueBlock(elements[i-1].Type) {
				continue
			}
			diags = append(diags, model.Diagnostic{
				Code:       model.E6InvalidBlockSequence,
				Message:    "parenthetical outside a dialogue block",
				Confidence: 0.85,
				Elements:   []int{i},
				Line:       el.LineStart,
			})
		}
	}
	return diags
}

// inDialogueBlock reports whether t can legally precede dialogue text.
func inDialogueBlock(t model.ElementType) bool {
	switch t {
	case model.Character, model.DualDialogueLeft, model.DualDialogueRight,
		model.Dialogue, model.Parenthetical:
		return true
	}
	return false
}

// E7: missing blank-line separation before a cue. Blank lines extend
// the previous element's LineEnd past its single text line, so a cue
// starting right after a one-line range had no blank before it.

func checkCueSeparation(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i := 1; i < len(elements); i++ {
		el := elements[i]
		if !el.IsCue() {
			continue
		}
		prev := elements[i-1]
		if prev.LineEnd > prev.LineStart || el.LineStart != prev.LineEnd+1 {
			continue
		}
		diags = append(diags, model.Diagnostic{
			Code:       model.E7MissingSeparation,
			Message:    fmt.Sprintf("character cue %q has no blank line before it", unify.BaseName(el)),
			Confidence: 0.65,
			Elements:   []int{i - 1, i},
			Line:       el.LineStart,
		})
	}
	return diags
}

// E8: dialogue before any scene heading.

func checkSceneHeadingPresence(elements []model.ScreenplayElement) []model.Diagnostic {
	for i, el := range elements {
		switch el.Type {
		case model.SceneHeading:
			return nil
		case model.Dialogue:
			return []model.Diagnostic{{
				Code:       model.E8MissingSceneHeading,
				Message:    "dialogue appears before any scene heading",
				Confidence: 0.6,
				Elements:   []int{i},
				Line:       el.LineStart,
			}}
		}
	}
	return nil
}

// E9: bracketed production notes.

func checkProductionNotes(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		if el.Type != model.Action && el.Type != model.Dialogue {
			continue
		}
		clean, removed := cleanup.StripNotes(el.Text)
		if len(removed) == 0 {
			continue
		}
		diags = append(diags, model.Diagnostic{
			Code:          model.E9ProductionNote,
			Message:       fmt.Sprintf("production note %s should be removed", strings.Join(removed, ", ")),
			Confidence:    0.95,
			Elements:      []int{i},
			Line:          el.LineStart,
			SuggestedText: clean,
		})
	}
	return diags
}

// E10: casual language in dialogue.

var casualExpansions = map[string]string{
	"idk":  "I don't know",
	"lol":  "laughing",
	"btw":  "by the way",
	"omg":  "oh my god",
	"wtf":  "what the hell",
	"brb":  "be right back",
	"fyi":  "for your information",
	"imo":  "in my opinion",
	"imho": "in my honest opinion",
}

var wordRe = regexp.MustCompile(`[A-Za-z']+`)

func checkCasualLanguage(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		if el.Type != model.Dialogue {
			continue
		}
		var found []string
		suggested := wordRe.ReplaceAllStringFunc(el.Text, func(w string) string {
			expansion, ok := casualExpansions[strings.ToLower(w)]
			if !ok {
				return w
			}
			found = append(found, strings.ToLower(w))
			return expansion
		})
		if len(found) == 0 {
			continue
		}
		diags = append(diags, model.Diagnostic{
			Code:          model.E10CasualLanguage,
			Message:       fmt.Sprintf("casual language in dialogue: %s", strings.Join(found, ", ")),
			Confidence:    0.85,
			Elements:      []int{i},
			Line:          el.LineStart,
			SuggestedText: suggested,
		})
	}
	return diags
}

// E11: character-name variant clusters.

func checkCharacterVariants(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for _, c := range unify.Inconsistent(elements) {
		indices := make([]int, len(c.Occurrences))
		for j, occ := range c.Occurrences {
			indices[j] = occ.Element
		}
		confidence := 0.60
		if c.CaseOnly {
			confidence = 0.90
		}
		diags = append(diags, model.Diagnostic{
			Code: model.E11CharacterVariants,
			Message: fmt.Sprintf("character written as %s; unify to %s",
				strings.Join(c.Variants, ", "), c.Canonical),
			Confidence:    confidence,
			Elements:      indices,
			Line:          c.Occurrences[0].Line,
			SuggestedText: c.Canonical,
		})
	}
	return diags
}

// E12: redundant content. Each repeat of a long-enough normalized text
// is flagged; the first occurrence is not.

func checkRedundantContent(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	firstSeen := make(map[string]int)
	for i, el := range elements {
		var minLen int
		switch el.Type {
		case model.Dialogue:
			minLen = 20
		case model.Action:
			minLen = 30
		default:
			continue
		}
		norm := normalizeText(el.Text)
		if len(norm) < minLen {
			continue
		}
		key := fmt.Sprintf("%d:%s", el.Type, norm)
		first, seen := firstSeen[key]
		if !seen {
			firstSeen[key] = i
			continue
		}
		diags = append(diags, model.Diagnostic{
			Code: model.E12RedundantContent,
			Message: fmt.Sprintf("%s repeats line %d verbatim",
				strings.ToLower(el.Type.String()), elements[first].LineStart),
			Confidence: 0.70,
			Elements:   []int{i},
			Line:       el.LineStart,
		})
	}
	return diags
}

var normSpaceRe = regexp.MustCompile(`\s+`)

func normalizeText(s string) string {
	return normSpaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), " ")
}

// E13: overloaded parenthetical.

var actionVerbs = map[string]bool{
	"walks": true, "runs": true, "sits": true, "enters": true,
	"stares": true, "exits": true, "grabs": true, "turns": true,
	"looks": true, "stands": true, "leaves": true, "points": true,
	"nods": true,
}

func checkParentheticalOverload(elements []model.ScreenplayElement) []model.Diagnostic {
	var diags []model.Diagnostic
	for i, el := range elements {
		if el.Type != model.Parenthetical {
			continue
		}
		text := strings.TrimSpace(el.Text)
		inner := strings.TrimSpace(strings.Trim(text, "()"))

		verb := ""
		for _, w := range wordRe.FindAllString(strings.ToLower(inner), -1) {
			if actionVerbs[w] {
				verb = w
				break
			}
		}

		switch {
		case verb != "":
			diags = append(diags, model.Diagnostic{
				Code:          model.E13OverloadedParen,
				Message:       fmt.Sprintf("parenthetical contains action (%q); move it to an action line", verb),
				Confidence:    0.80,
				Elements:      []int{i},
				Line:          el.LineStart,
				SuggestedText: inner,
			})
		case len(text) > 50:
			diags = append(diags, model.Diagnostic{
				Code:          model.E13OverloadedParen,
				Message:       "parenthetical is too long; move the content to an action line",
				Confidence:    0.75,
				Elements:      []int{i},
				Line:          el.LineStart,
				SuggestedText: inner,
			})
		}
	}
	return diags
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
