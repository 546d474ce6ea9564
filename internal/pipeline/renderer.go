package pipeline

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/slugline/slugline/internal/model"
)

// Renderer formats check results for humans and machines.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a report renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderText produces the terminal report.
func (r *Renderer) RenderText(result *CheckResult) string {
	var b strings.Builder
	rep := result.Report

	fmt.Fprintf(&b, "Elements: %d   Issues: %d\n", rep.TotalElements, rep.TotalIssues)
	if rep.Passed {
		b.WriteString("PASS\n")
	} else {
		b.WriteString("FAIL\n")
	}

	for _, d := range rep.Diagnostics {
		fmt.Fprintf(&b, "  line %d  %-4s %.2f  %s\n", d.Line, d.Code, d.Confidence, d.Message)
		if d.SuggestedText != "" {
			fmt.Fprintf(&b, "       suggestion: %s\n", d.SuggestedText)
		}
	}

	if r.includeFooter && len(rep.ByCode) > 0 {
		b.WriteString("\nBy code:")
		for _, code := range sortedCodes(rep.ByCode) {
			fmt.Fprintf(&b, " %s=%d", code, rep.ByCode[code])
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderMarkdown produces a Markdown report table.
func (r *Renderer) RenderMarkdown(result *CheckResult) string {
	var b strings.Builder
	rep := result.Report

	b.WriteString("# Screenplay Check Report\n\n")
	status := "✅ Passed"
	if !rep.Passed {
		status = "❌ Failed"
	}
	fmt.Fprintf(&b, "**Status:** %s  \n**Elements:** %d  \n**Issues:** %d\n\n",
		status, rep.TotalElements, rep.TotalIssues)

	if len(rep.Diagnostics) > 0 {
		b.WriteString("| Line | Code | Confidence | Message | Suggestion |\n")
		b.WriteString("|------|------|------------|---------|------------|\n")
		for _, d := range rep.Diagnostics {
			fmt.Fprintf(&b, "| %d | %s | %.2f | %s | %s |\n",
				d.Line, d.Code, d.Confidence,
				escapeCell(d.Message), escapeCell(d.SuggestedText))
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\nGenerated by slugline\n")
	}
	return b.String()
}

// RenderJSON serializes the full result.
func (r *Renderer) RenderJSON(result *CheckResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}

func sortedCodes(byCode map[model.ErrorCode]int) []model.ErrorCode {
	codes := make([]model.ErrorCode, 0, len(byCode))
	for c := range byCode {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool {
		// Numeric order: E2 before E10.
		return codeNum(codes[i]) < codeNum(codes[j])
	})
	return codes
}

func codeNum(c model.ErrorCode) int {
	n := 0
	for _, r := range c[1:] {
		n = n*10 + int(r-'0')
	}
	return n
}
