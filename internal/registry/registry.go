// Package registry holds the ordered table of element-detection rules.
// Entries are pure data: the classifier walks them in priority order and
// applies its own context gates, so house styles can add transitions or
// shot headers without touching classifier logic.
package registry

import (
	"regexp"
	"strings"

	"github.com/slugline/slugline/internal/model"
)

// Entry is one detection rule: a line-shape predicate plus the element
// type it produces. Higher priority wins; the Action fallback sits at
// priority zero and always matches.
type Entry struct {
	Name     string
	Type     model.ElementType
	Priority int
	Match    func(line string) bool
}

// Registry is an immutable, priority-ordered rule table.
type Registry struct {
	entries []Entry
}

var (
	sceneHeadingRe = regexp.MustCompile(`(?i)^(INT\./EXT\.|EXT\./INT\.|INT\.|EXT\.|I/E\.|INT |EXT )\s*\S.*$`)
	pageBreakRe    = regexp.MustCompile(`(?i)^(={3,}|PAGE BREAK|---PAGE---|NEW PAGE)$`)
	parentheticalRe = regexp.MustCompile(`^\(.+\)$`)
	vfxSfxRe        = regexp.MustCompile(`^\[[^\[\]]+\]$`)
	onScreenRe      = regexp.MustCompile(`(?i)^(SUPER|CHYRON|SUBTITLE|CARD):`)
	montageRe       = regexp.MustCompile(`(?i)^(BEGIN MONTAGE|MONTAGE BEGINS|MONTAGE:|END MONTAGE|MONTAGE ENDS|END OF MONTAGE)$`)
	creditRe        = regexp.MustCompile(`(?i)^(by|written by)$`)
	moreRe          = regexp.MustCompile(`(?i)^\(?MORE\)?$`)
)

// transitions are matched whole-line, case-insensitive.
var transitions = []string{
	"FADE IN:", "FADE OUT.", "FADE TO:", "FADE TO BLACK.",
	"CUT TO:", "DISSOLVE TO:", "MATCH CUT TO:", "JUMP CUT TO:",
	"SMASH CUT TO:", "TIME CUT:", "WIPE TO:", "PUSH TO:",
	"IRIS IN.", "IRIS OUT.", "WHIP PAN TO:", "SPLIT SCREEN",
	"L-CUT", "J-CUT", "THE END",
}

// shotHeaders are matched as a prefix followed by end of line, space,
// colon, or period.
var shotHeaders = []string{
	"CLOSE ON", "CLOSEUP ON", "CLOSE UP ON", "ANGLE ON",
	"NEW ANGLE", "ANOTHER ANGLE", "REVERSE ANGLE",
	"WIDE SHOT", "WIDER SHOT", "WIDEST SHOT",
	"P.O.V.", "POV", "INSERT", "AERIAL SHOT", "ESTABLISHING SHOT",
	"MOVING SHOT", "TRACKING SHOT", "CRANE SHOT", "HANDHELD SHOT",
}

// characterExtensions in their accepted input spellings; normalization
// happens in the classifier.
var characterExtensions = []string{
	"V.O.", "VO", "O.S.", "OS", "O.C.", "OC", "CONT'D", "CONTD", "CONT",
}

// StandardTransitions returns a copy of the canonical transition forms.
func StandardTransitions() []string {
	out := make([]string, len(transitions))
	copy(out, transitions)
	return out
}

// MatchTransition reports whether line is a recognized transition.
func matchTransition(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	for _, t := range transitions {
		if upper == t {
			return true
		}
	}
	return false
}

// matchShot reports whether line starts with a recognized shot header.
func matchShot(line string) bool {
	upper := strings.ToUpper(strings.TrimSpace(line))
	for _, s := range shotHeaders {
		if upper == s {
			return true
		}
		if strings.HasPrefix(upper, s) {
			rest := upper[len(s):]
			switch rest[0] {
			case ' ', ':', '.', '-':
				return true
			}
		}
	}
	return false
}

// MatchCharacterShape reports whether line has the shape of a character
// cue: short, ALL CAPS once a trailing extension and optional colon are
// stripped. Context gating (look-ahead, dual pairing) belongs to the
// classifier.
func MatchCharacterShape(line string) bool {
	name := StripExtension(strings.TrimSpace(line))
	name = strings.TrimSuffix(name, ":")
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 40 {
		return false
	}
	if len(strings.Fields(name)) > 4 {
		return false
	}
	hasLetter := false
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
		case r == ' ' || r == '.' || r == '\'' || r == '-' || r == '#' || r == '&':
		default:
			return false
		}
	}
	return hasLetter
}

// StripExtension removes a trailing parenthesized character extension
// such as (V.O.) or (CONT'D) when present, returning the bare name.
func StripExtension(line string) string {
	open := strings.LastIndex(line, "(")
	if open < 0 || !strings.HasSuffix(line, ")") {
		return line
	}
	inner := strings.TrimSpace(line[open+1 : len(line)-1])
	if IsExtension(inner) {
		return strings.TrimSpace(line[:open])
	}
	return line
}

// IsExtension reports whether the parenthesized text is a recognized
// character extension, accepted with or without periods.
func IsExtension(inner string) bool {
	upper := strings.ToUpper(strings.TrimSpace(inner))
	for _, ext := range characterExtensions {
		if upper == ext {
			return true
		}
	}
	return false
}

// NormalizeExtension maps an accepted extension spelling to its
// canonical stored form: uppercase with periods, e.g. "(V.O.)".
// Returns "" when inner is not a recognized extension.
func NormalizeExtension(inner string) string {
	switch strings.ToUpper(strings.TrimSpace(inner)) {
	case "V.O.", "VO":
		return "(V.O.)"
	case "O.S.", "OS":
		return "(O.S.)"
	case "O.C.", "OC":
		return "(O.C.)"
	case "CONT'D", "CONTD", "CONT":
		return "(CONT'D)"
	}
	return ""
}

// Default builds the standard registry in precedence order: title
// page → page break → scene heading → transition → shot → character cue
// → parenthetical → dual marker → VFX/SFX → on-screen text → montage.
// Dialogue continuation and the Action fallback are state-driven and
// live in the classifier.
func Default() *Registry {
	prefix := func(p string) func(string) bool {
		return func(line string) bool {
			return len(line) >= len(p) && strings.EqualFold(line[:len(p)], p)
		}
	}

	entries := []Entry{
		{Name: "title-page-title", Type: model.TitlePageTitle, Priority: 130, Match: prefix("TITLE:")},
		{Name: "title-page-author", Type: model.TitlePageAuthor, Priority: 129, Match: prefix("AUTHOR:")},
		{Name: "title-page-contact", Type: model.TitlePageContact, Priority: 128, Match: prefix("CONTACT:")},
		{Name: "title-page-credit", Type: model.TitlePageCredit, Priority: 127, Match: creditRe.MatchString},
		{Name: "page-break", Type: model.PageBreak, Priority: 120, Match: pageBreakRe.MatchString},
		{Name: "scene-heading", Type: model.SceneHeading, Priority: 110, Match: sceneHeadingRe.MatchString},
		{Name: "transition", Type: model.Transition, Priority: 100, Match: matchTransition},
		{Name: "shot", Type: model.Shot, Priority: 90, Match: matchShot},
		{Name: "character", Type: model.Character, Priority: 80, Match: MatchCharacterShape},
		{Name: "parenthetical", Type: model.Parenthetical, Priority: 70, Match: parentheticalRe.MatchString},
		{Name: "dual-dialogue", Type: model.DualDialogueRight, Priority: 60, Match: func(line string) bool {
			return strings.HasPrefix(line, "^") && MatchCharacterShape(strings.TrimPrefix(line, "^"))
		}},
		{Name: "vfx-sfx", Type: model.VfxSfx, Priority: 50, Match: vfxSfxRe.MatchString},
		{Name: "on-screen-text", Type: model.OnScreenText, Priority: 40, Match: onScreenRe.MatchString},
		{Name: "montage", Type: model.MontageMarker, Priority: 30, Match: montageRe.MatchString},
		{Name: "more", Type: model.More, Priority: 20, Match: moreRe.MatchString},
	}
	return &Registry{entries: entries}
}

// With returns a new registry with extra entries merged in priority
// order. The receiver is unchanged.
func (r *Registry) With(extra ...Entry) *Registry {
	merged := make([]Entry, 0, len(r.entries)+len(extra))
	merged = append(merged, r.entries...)
	merged = append(merged, extra...)
	for i := 1; i < len(merged); i++ {
		for j := i; j > 0 && merged[j].Priority > merged[j-1].Priority; j-- {
			merged[j], merged[j-1] = merged[j-1], merged[j]
		}
	}
	return &Registry{entries: merged}
}

// Entries returns the rule table in priority order.
func (r *Registry) Entries() []Entry {
	return r.entries
}

// FirstMatch returns the highest-priority entry matching line, or nil.
func (r *Registry) FirstMatch(line string) *Entry {
	for i := range r.entries {
		if r.entries[i].Match(line) {
			return &r.entries[i]
		}
	}
	return nil
}

// MatchesType reports whether any entry of one of the given types
// matches line, ignoring priority. Gates use this for whole-line marker
// shapes that a higher-priority shape also happens to match.
func (r *Registry) MatchesType(line string, types ...model.ElementType) bool {
	for i := range r.entries {
		if !r.entries[i].Match(line) {
			continue
		}
		for _, t := range types {
			if r.entries[i].Type == t {
				return true
			}
		}
	}
	return false
}

// MatchesAnyOf reports whether the highest-priority match for line is
// one of the given element types. Used for classifier look-ahead gates.
func (r *Registry) MatchesAnyOf(line string, types ...model.ElementType) bool {
	e := r.FirstMatch(line)
	if e == nil {
		return false
	}
	for _, t := range types {
		if e.Type == t {
			return true
		}
	}
	return false
}
