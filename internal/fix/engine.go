package fix

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/slugline/slugline/internal/llm"
	"github.com/slugline/slugline/internal/model"
	"github.com/slugline/slugline/internal/pipeline"
)

// Engine runs the full correction loop: check, chunk, propose, guard,
// apply, re-check.
type Engine struct {
	pipe     *pipeline.Pipeline
	provider llm.Provider
	guards   llm.Guardrails
	chunker  Chunker
	logger   *zap.Logger
}

// Options controls one fix run.
type Options struct {
	// DryRun proposes corrections without applying them.
	DryRun bool

	// Model overrides the configured model when non-empty.
	Model string
}

// Outcome records what happened to one chunk.
type Outcome struct {
	Chunk    Chunk
	Proposed string
	Applied  bool
	Reason   string // why the proposal was not applied
}

// Result is the output of one fix run.
type Result struct {
	Original string
	Fixed    string
	Before   model.ValidationReport
	After    model.ValidationReport
	Outcomes []Outcome
}

// New creates a fix engine. The provider must be non-nil; callers
// handle the disabled case before constructing an engine.
func New(pipe *pipeline.Pipeline, provider llm.Provider, cfg model.LLMConfig, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		pipe:     pipe,
		provider: provider,
		guards:   llm.NewGuardrails(cfg.MinConfidence, cfg.MaxEditDistance),
		chunker:  NewChunker(),
		logger:   logger,
	}
}

// Fix corrects one document. Chunks are applied bottom-up so earlier
// spans keep their line numbers while later ones are rewritten. The
// fixed text is re-checked; corrections never bypass validation.
func (e *Engine) Fix(ctx context.Context, document string, opts Options) (*Result, error) {
	document = pipeline.NormalizeNewlines(document)

	before, err := e.pipe.Check(document)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Original: document,
		Fixed:    document,
		Before:   before.Report,
		After:    before.Report,
	}
	if before.Report.TotalIssues == 0 {
		return result, nil
	}

	lines := pipeline.SplitLines(document)
	chunks := e.chunker.Chunks(lines, before.Report.Diagnostics)

	// Bottom-up keeps line offsets of pending chunks stable.
	for i := len(chunks) - 1; i >= 0; i-- {
		chunk := chunks[i]
		outcome := e.correctChunk(ctx, chunk, opts)
		if outcome.Applied && !opts.DryRun {
			lines = spliceLines(lines, chunk, outcome.Proposed)
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	if !opts.DryRun {
		result.Fixed = strings.Join(lines, "\n") + "\n"
		after, err := e.pipe.Check(result.Fixed)
		if err != nil {
			return nil, err
		}
		result.After = after.Report
	}
	return result, nil
}

func (e *Engine) correctChunk(ctx context.Context, chunk Chunk, opts Options) Outcome {
	outcome := Outcome{Chunk: chunk}

	resp, err := e.provider.Correct(ctx, llm.CorrectionRequest{
		Text:        chunk.Text,
		StartLine:   chunk.StartLine,
		Diagnostics: chunk.Diagnostics,
		Model:       opts.Model,
	})
	if err != nil {
		outcome.Reason = fmt.Sprintf("provider error: %v", err)
		e.logger.Warn("correction request failed",
			zap.Int("start_line", chunk.StartLine), zap.Error(err))
		return outcome
	}

	outcome.Proposed = resp.Text
	if err := e.guards.Check(chunk.Text, resp.Text, resp.Confidence); err != nil {
		outcome.Reason = err.Error()
		e.logger.Info("proposal rejected",
			zap.Int("start_line", chunk.StartLine), zap.String("reason", err.Error()))
		return outcome
	}

	outcome.Applied = true
	return outcome
}

// spliceLines replaces the chunk's span with the proposed text.
func spliceLines(lines []string, chunk Chunk, proposed string) []string {
	replacement := strings.Split(strings.TrimRight(proposed, "\n"), "\n")
	out := make([]string, 0, len(lines)-(chunk.EndLine-chunk.StartLine+1)+len(replacement))
	out = append(out, lines[:chunk.StartLine-1]...)
	out = append(out, replacement...)
	out = append(out, lines[chunk.EndLine:]...)
	return out
}
