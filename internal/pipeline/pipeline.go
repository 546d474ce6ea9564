// Package pipeline wires the classifier, rule engine, and cache into
// the check flow the CLI and batch workers run per document.
package pipeline

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/slugline/slugline/internal/cache"
	"github.com/slugline/slugline/internal/classify"
	"github.com/slugline/slugline/internal/model"
	"github.com/slugline/slugline/internal/validate"
)

// Pipeline orchestrates one classify→validate pass per document. It is
// safe for concurrent use: each call works on its own state.
type Pipeline struct {
	classifier *classify.Classifier
	engine     *validate.Engine
	store      cache.Cache // nil when caching is disabled
	logger     *zap.Logger
	config     *model.Config
}

// New creates a pipeline from configuration. A nil logger disables
// engine logging.
func New(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
	}

	return &Pipeline{
		classifier: classify.New(nil),
		engine:     validate.NewEngine(logger),
		store:      store,
		logger:     logger,
		config:     cfg,
	}
}

// CheckResult is the output of one document pass.
type CheckResult struct {
	Elements []model.ScreenplayElement `json:"elements"`
	Report   model.ValidationReport    `json:"report"`
	CacheHit bool                      `json:"-"`
}

// Check classifies and validates one document. In strict mode any
// finding fails the report; otherwise only findings at or above the
// review threshold count against Passed.
func (p *Pipeline) Check(document string) (*CheckResult, error) {
	document = NormalizeNewlines(document)
	key := cache.Key(document, p.config.Parser.EnableSceneNumbers)

	if p.store != nil {
		if data, ok := p.store.Get(key); ok {
			var cached CheckResult
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.CacheHit = true
				return &cached, nil
			}
			// Unreadable entry; drop it and recompute.
			_ = p.store.Delete(key)
		}
	}

	elements := p.classifier.Classify(SplitLines(document), classify.Options{
		EnableSceneNumbers: p.config.Parser.EnableSceneNumbers,
	})
	report := p.engine.Validate(elements)
	report.Passed = p.passed(report)

	result := &CheckResult{Elements: elements, Report: report}

	if p.store != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = p.store.Set(key, data, p.config.Cache.TTL)
		}
	}
	return result, nil
}

// CheckFile loads and checks one file.
func (p *Pipeline) CheckFile(path string) (*CheckResult, error) {
	document, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	result, err := p.Check(document)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", path, err)
	}
	return result, nil
}

// Actionable counts the findings that demand attention under the
// configured review threshold.
func (p *Pipeline) Actionable(report model.ValidationReport) int {
	if p.config.Validation.Strict {
		return report.TotalIssues
	}
	n := 0
	for _, d := range report.Diagnostics {
		if d.Confidence >= p.config.Validation.ReviewThreshold {
			n++
		}
	}
	return n
}

func (p *Pipeline) passed(report model.ValidationReport) bool {
	return p.Actionable(report) == 0
}
