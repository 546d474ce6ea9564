// Package fix applies LLM-proposed corrections to a screenplay,
// guarded so an over-eager model cannot rewrite content. Findings are
// grouped into small text chunks so each request carries just enough
// context to fix the lines it names.
package fix

import (
	"strings"

	"github.com/slugline/slugline/internal/model"
	"github.com/slugline/slugline/internal/registry"
)

// Chunk is one correction request: a line span with the findings
// inside it.
type Chunk struct {
	StartLine   int // 1-based, inclusive
	EndLine     int
	Text        string
	Diagnostics []model.Diagnostic
}

// Chunker groups findings into request chunks.
type Chunker struct {
	// Proximity merges findings within this many lines of each other.
	Proximity int

	// Context is how many unaffected lines surround each chunk.
	Context int

	// MaxLines caps chunk size; oversized groups are split.
	MaxLines int
}

// NewChunker returns a chunker with the default grouping parameters.
func NewChunker() Chunker {
	return Chunker{Proximity: 8, Context: 3, MaxLines: 60}
}

// Chunks groups sorted diagnostics over the document lines. Context
// expansion stops before scene headings and transitions, keeping those
// structural lines out of the span handed to the model.
func (c Chunker) Chunks(lines []string, diags []model.Diagnostic) []Chunk {
	if len(diags) == 0 || len(lines) == 0 {
		return nil
	}

	var groups [][]model.Diagnostic
	var cur []model.Diagnostic
	lastLine := -1
	for _, d := range diags {
		if d.Line < 1 || d.Line > len(lines) {
			continue
		}
		switch {
		case cur == nil:
			cur = []model.Diagnostic{d}
		case d.Line-lastLine <= c.Proximity && d.Line-cur[0].Line < c.MaxLines:
			cur = append(cur, d)
		default:
			groups = append(groups, cur)
			cur = []model.Diagnostic{d}
		}
		lastLine = d.Line
	}
	if cur != nil {
		groups = append(groups, cur)
	}

	chunks := make([]Chunk, 0, len(groups))
	for _, g := range groups {
		start := c.expandUp(lines, g[0].Line)
		end := c.expandDown(lines, g[len(g)-1].Line)
		if end-start+1 > c.MaxLines {
			end = start + c.MaxLines - 1
		}
		chunks = append(chunks, Chunk{
			StartLine:   start,
			EndLine:     end,
			Text:        strings.Join(lines[start-1:end], "\n"),
			Diagnostics: g,
		})
	}
	return chunks
}

func (c Chunker) expandUp(lines []string, from int) int {
	start := from
	for i := 0; i < c.Context && start > 1; i++ {
		if isBoundary(lines[start-2]) {
			break
		}
		start--
	}
	return start
}

func (c Chunker) expandDown(lines []string, from int) int {
	end := from
	for i := 0; i < c.Context && end < len(lines); i++ {
		if isBoundary(lines[end]) {
			break
		}
		end++
	}
	return end
}

var boundaryRegistry = registry.Default()

// isBoundary reports whether a line starts a new structural block.
func isBoundary(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	return boundaryRegistry.MatchesAnyOf(line, model.SceneHeading, model.Transition)
}
