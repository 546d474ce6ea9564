package worker

import (
	"context"

	"github.com/slugline/slugline/internal/pipeline"
)

// Checker runs one document through the check pipeline.
type Checker interface {
	CheckFile(path string) (*pipeline.CheckResult, error)
}

// FileJob checks a single screenplay file.
type FileJob struct {
	Path    string
	Checker Checker
}

// Execute runs the check, honoring cancellation before starting.
func (j *FileJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &FileResult{Path: j.Path, Error: err}
	}
	result, err := j.Checker.CheckFile(j.Path)
	return &FileResult{Path: j.Path, Result: result, Error: err}
}

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path   string
	Result *pipeline.CheckResult
	Error  error
}

// Err returns the job error, nil on success.
func (r *FileResult) Err() error {
	return r.Error
}

// BatchProcessor checks multiple files concurrently.
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{checker: checker, concurrency: concurrency}
}

// ProcessFiles checks every path, results in input order.
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*FileResult {
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &FileJob{Path: path, Checker: b.checker}
	}

	raw := NewPool(b.concurrency).Run(ctx, jobs)

	results := make([]*FileResult, len(raw))
	for i, r := range raw {
		if r == nil {
			results[i] = &FileResult{Path: paths[i], Error: ctx.Err()}
			continue
		}
		results[i] = r.(*FileResult)
	}
	return results
}
