package fix

import (
	"fmt"
	"strings"
	"testing"

	"github.com/slugline/slugline/internal/model"
)

func numberedLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("Action beat %d.", i+1)
	}
	return lines
}

func diagAt(line int) model.Diagnostic {
	return model.Diagnostic{Code: model.E9ProductionNote, Line: line, Confidence: 0.95}
}

func TestChunksGroupByProximity(t *testing.T) {
	lines := numberedLines(40)
	diags := []model.Diagnostic{diagAt(10), diagAt(14), diagAt(30)}

	chunks := NewChunker().Chunks(lines, diags)
	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if len(chunks[0].Diagnostics) != 2 || len(chunks[1].Diagnostics) != 1 {
		t.Errorf("grouping = %d + %d findings", len(chunks[0].Diagnostics), len(chunks[1].Diagnostics))
	}
	// Three context lines on each side.
	if chunks[0].StartLine != 7 || chunks[0].EndLine != 17 {
		t.Errorf("first chunk spans %d-%d", chunks[0].StartLine, chunks[0].EndLine)
	}
	if want := strings.Join(lines[6:17], "\n"); chunks[0].Text != want {
		t.Errorf("chunk text does not match its span")
	}
}

func TestChunksStopBeforeBoundaries(t *testing.T) {
	lines := numberedLines(20)
	lines[7] = "INT. CAFE - DAY" // line 8
	lines[11] = "CUT TO:"        // line 12

	chunks := NewChunker().Chunks(lines, []model.Diagnostic{diagAt(10)})
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d", len(chunks))
	}
	// Expansion stops before the heading and the transition, so
	// neither structural line enters the editable span.
	if chunks[0].StartLine != 9 {
		t.Errorf("StartLine = %d, want 9", chunks[0].StartLine)
	}
	if chunks[0].EndLine != 11 {
		t.Errorf("EndLine = %d, want 11", chunks[0].EndLine)
	}
	if strings.Contains(chunks[0].Text, "INT. CAFE") || strings.Contains(chunks[0].Text, "CUT TO:") {
		t.Errorf("boundary line leaked into chunk:\n%s", chunks[0].Text)
	}
}

func TestChunksCapSpan(t *testing.T) {
	lines := numberedLines(100)
	c := Chunker{Proximity: 50, Context: 3, MaxLines: 10}

	chunks := c.Chunks(lines, []model.Diagnostic{diagAt(20), diagAt(60)})
	for _, chunk := range chunks {
		if span := chunk.EndLine - chunk.StartLine + 1; span > 10 {
			t.Errorf("chunk %d-%d exceeds cap", chunk.StartLine, chunk.EndLine)
		}
	}
}

func TestChunksSkipOutOfRangeLines(t *testing.T) {
	lines := numberedLines(5)
	diags := []model.Diagnostic{diagAt(0), diagAt(3), diagAt(99)}

	chunks := NewChunker().Chunks(lines, diags)
	if len(chunks) != 1 || len(chunks[0].Diagnostics) != 1 {
		t.Fatalf("chunks = %+v", chunks)
	}
	if chunks[0].Diagnostics[0].Line != 3 {
		t.Errorf("kept line %d", chunks[0].Diagnostics[0].Line)
	}
}

func TestChunksEmpty(t *testing.T) {
	if got := NewChunker().Chunks(nil, []model.Diagnostic{diagAt(1)}); got != nil {
		t.Errorf("no lines: %+v", got)
	}
	if got := NewChunker().Chunks(numberedLines(3), nil); got != nil {
		t.Errorf("no diagnostics: %+v", got)
	}
}
