// Package unify clusters character-name variants found in a classified
// element sequence and can rewrite cues to a single canonical spelling.
// It never mutates its input; Apply returns a new sequence.
package unify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slugline/slugline/internal/model"
	"github.com/slugline/slugline/internal/registry"
)

// Occurrence is one appearance of a cue name in the element sequence.
type Occurrence struct {
	Element int    // index into the element sequence
	Line    int    // first source line of the cue
	Form    string // surface form as written, extension stripped
}

// Cluster is a group of related cue-name variants.
type Cluster struct {
	// Canonical is the chosen spelling: longest variant, ties broken by
	// occurrence count, rendered uppercase.
	Canonical string

	// Variants are the distinct surface forms in first-appearance order.
	Variants []string

	// Occurrences cover every cue in the cluster, in element order.
	Occurrences []Occurrence

	// CaseOnly is true when all variants are equal case-insensitively;
	// substring or nickname merging makes the relation weaker.
	CaseOnly bool
}

// BaseName extracts the bare cue name from a cue element: extension and
// trailing colon stripped, original casing preserved.
func BaseName(el model.ScreenplayElement) string {
	name := registry.StripExtension(strings.TrimSpace(el.Text))
	name = strings.TrimSuffix(strings.TrimSpace(name), ":")
	return strings.TrimSpace(name)
}

// Clusters groups cue names by case-insensitive equality, substring
// relation, and nickname mapping. The relation is transitive within one
// call; every call clusters from scratch over the given sequence.
func Clusters(elements []model.ScreenplayElement) []Cluster {
	occByKey := make(map[string][]Occurrence)
	var order []string
	for i, el := range elements {
		if !el.IsCue() {
			continue
		}
		form := BaseName(el)
		if form == "" {
			continue
		}
		key := strings.ToUpper(form)
		if _, ok := occByKey[key]; !ok {
			order = append(order, key)
		}
		occByKey[key] = append(occByKey[key], Occurrence{Element: i, Line: el.LineStart, Form: form})
	}

	// Union-find over distinct case-folded names.
	parent := make(map[string]string, len(order))
	for _, k := range order {
		parent[k] = k
	}
	var find func(string) string
	find = func(k string) string {
		if parent[k] != k {
			parent[k] = find(parent[k])
		}
		return parent[k]
	}

	for i := 0; i < len(order); i++ {
		for j := i + 1; j < len(order); j++ {
			if related(order[i], order[j]) {
				ra, rb := find(order[i]), find(order[j])
				if ra != rb {
					parent[rb] = ra
				}
			}
		}
	}

	grouped := make(map[string][]string)
	for _, k := range order {
		root := find(k)
		grouped[root] = append(grouped[root], k)
	}

	clusters := make([]Cluster, 0, len(grouped))
	for _, root := range order {
		members, ok := grouped[root]
		if !ok {
			continue
		}
		delete(grouped, root)
		clusters = append(clusters, buildCluster(members, occByKey))
	}

	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i].Occurrences[0].Element < clusters[j].Occurrences[0].Element
	})
	return clusters
}

// Inconsistent returns only the clusters with two or more distinct
// surface forms, i.e. the ones worth flagging or unifying.
func Inconsistent(elements []model.ScreenplayElement) []Cluster {
	var out []Cluster
	for _, c := range Clusters(elements) {
		if len(c.Variants) >= 2 {
			out = append(out, c)
		}
	}
	return out
}

// Apply returns a new element sequence with every cue in an
// inconsistent cluster rewritten to its canonical form, extensions
// preserved. The input is never modified.
func Apply(elements []model.ScreenplayElement) []model.ScreenplayElement {
	canonical := make(map[int]string) // element index -> canonical form
	for _, c := range Inconsistent(elements) {
		for _, occ := range c.Occurrences {
			canonical[occ.Element] = c.Canonical
		}
	}

	out := make([]model.ScreenplayElement, len(elements))
	copy(out, elements)
	for i := range out {
		name, ok := canonical[i]
		if !ok {
			continue
		}
		text := name
		if out[i].CharacterExtension != "" {
			text += " " + out[i].CharacterExtension
		}
		out[i].Text = text
	}
	return out
}

// Report renders a human-readable unification summary, busiest
// characters first.
func Report(elements []model.ScreenplayElement) string {
	clusters := Clusters(elements)
	if len(clusters) == 0 {
		return "No character cues found."
	}

	sort.Slice(clusters, func(i, j int) bool {
		if len(clusters[i].Occurrences) == len(clusters[j].Occurrences) {
			return clusters[i].Canonical < clusters[j].Canonical
		}
		return len(clusters[i].Occurrences) > len(clusters[j].Occurrences)
	})

	var b strings.Builder
	b.WriteString("Character Name Unification Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")
	for _, c := range clusters {
		fmt.Fprintf(&b, "Character: %s\n", c.Canonical)
		fmt.Fprintf(&b, "  Occurrences: %d\n", len(c.Occurrences))
		if len(c.Variants) > 1 {
			fmt.Fprintf(&b, "  Variants found: %s\n", strings.Join(c.Variants, ", "))
			fmt.Fprintf(&b, "  Will unify to: %s\n", c.Canonical)
		} else {
			b.WriteString("  No variants (consistent naming)\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// related reports whether two distinct case-folded names belong to the
// same character: substring containment sharing at least three distinct
// characters, or a nickname link.
func related(a, b string) bool {
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return sharedChars(a, b) >= 3
	}
	return nicknameRelated(a, b)
}

func sharedChars(a, b string) int {
	seen := make(map[rune]bool)
	for _, r := range a {
		seen[r] = true
	}
	n := 0
	for _, r := range b {
		if seen[r] {
			seen[r] = false
			n++
		}
	}
	return n
}

func buildCluster(members []string, occByKey map[string][]Occurrence) Cluster {
	var occurrences []Occurrence
	variantCount := make(map[string]int)
	var variants []string
	for _, key := range members {
		for _, occ := range occByKey[key] {
			occurrences = append(occurrences, occ)
			if variantCount[occ.Form] == 0 {
				variants = append(variants, occ.Form)
			}
			variantCount[occ.Form]++
		}
	}
	sort.Slice(occurrences, func(i, j int) bool {
		return occurrences[i].Element < occurrences[j].Element
	})

	return Cluster{
		Canonical:   canonicalForm(variants, variantCount),
		Variants:    variants,
		Occurrences: occurrences,
		CaseOnly:    len(members) == 1,
	}
}

// canonicalForm picks the longest variant, breaking length ties by
// occurrence count, and renders it uppercase.
func canonicalForm(variants []string, counts map[string]int) string {
	best := ""
	for _, v := range variants {
		switch {
		case best == "":
			best = v
		case len(v) > len(best):
			best = v
		case len(v) == len(best) && counts[v] > counts[best]:
			best = v
		}
	}
	return strings.ToUpper(best)
}
