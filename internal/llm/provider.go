// Package llm adapts chat-completion providers into screenplay
// correction backends. Providers return proposed text plus a
// self-reported confidence; the guardrails decide whether a proposal
// may be applied.
package llm

import (
	"context"
	"fmt"

	"github.com/slugline/slugline/internal/model"
)

// Provider defines the interface for correction backends.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Correct proposes a corrected version of one text chunk.
	Correct(ctx context.Context, req CorrectionRequest) (*CorrectionResponse, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// CorrectionRequest contains one chunk of screenplay text with the
// diagnostics it should resolve.
type CorrectionRequest struct {
	// Text is the chunk, including unaffected context lines.
	Text string

	// StartLine is the source line number of the chunk's first line.
	StartLine int

	// Diagnostics are the findings inside the chunk, in report order.
	Diagnostics []model.Diagnostic

	// Model overrides the configured model when non-empty.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// CorrectionResponse is the provider's proposal for one chunk.
type CorrectionResponse struct {
	// Text is the corrected chunk; same line structure as the input.
	Text string

	// Confidence is the provider's self-reported confidence in [0,1].
	Confidence float64

	// Model is the model that generated the response.
	Model string

	// TokensUsed tracks token consumption.
	TokensUsed int
}

// BuildPrompt constructs the correction prompt for one chunk. The
// provider is confined to the listed issues; everything else in the
// chunk must come back verbatim.
func BuildPrompt(req CorrectionRequest) string {
	prompt := fmt.Sprintf(`You are a screenplay formatting assistant. Fix ONLY the issues listed below in the given text. Preserve every other line exactly as written, including blank lines.

RULES:
1. Do not add, remove, or reorder lines except where an issue requires it.
2. Do not rewrite dialogue content; fix formatting only.
3. Keep character names, locations, and story content unchanged unless an issue names them.
4. Respond with JSON: {"corrected_text": "...", "confidence": 0.0-1.0}

Issues (absolute source line numbers; the text below starts at line %d):
`, req.StartLine)

	for _, d := range req.Diagnostics {
		prompt += fmt.Sprintf("- line %d [%s] %s", d.Line, d.Code, d.Message)
		if d.SuggestedText != "" {
			prompt += fmt.Sprintf(" (suggested: %q)", d.SuggestedText)
		}
		prompt += "\n"
	}

	prompt += "\nText:\n" + req.Text
	return prompt
}
