package model

import "time"

// Config holds the complete slugline configuration, assembled by the
// CLI from defaults, config file, environment, and flags.
type Config struct {
	Parser      ParserConfig      `yaml:"parser"`
	Validation  ValidationConfig  `yaml:"validation"`
	Cache       CacheConfig       `yaml:"cache"`
	LLM         LLMConfig         `yaml:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// ParserConfig controls the line classifier.
type ParserConfig struct {
	// EnableSceneNumbers assigns monotonically increasing numbers to
	// scene headings. Off by default.
	EnableSceneNumbers bool `yaml:"enable_scene_numbers"`
}

// ValidationConfig controls the rule engine.
type ValidationConfig struct {
	// Strict fails the report on any diagnostic regardless of
	// confidence; otherwise only findings at or above ReviewThreshold
	// count against Passed.
	Strict bool `yaml:"strict"`

	// ReviewThreshold is the confidence at or above which a finding is
	// considered actionable in non-strict mode.
	ReviewThreshold float64 `yaml:"review_threshold"`
}

// CacheConfig controls the in-memory pipeline result cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// LLMConfig configures the optional correction provider.
type LLMConfig struct {
	// Provider name: "openai" or "" (disabled).
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"-"` // environment only, never serialized
	BaseURL  string `yaml:"base_url,omitempty"`

	Timeout time.Duration `yaml:"timeout"`

	// MinConfidence is the threshold below which a proposed fix is
	// surfaced for review instead of applied.
	MinConfidence float64 `yaml:"min_confidence"`

	// MaxEditDistance caps the token-level change a single fix span may
	// introduce.
	MaxEditDistance int `yaml:"max_edit_distance"`

	MaxTokens int `yaml:"max_tokens"`

	// RequestsPerSecond rate-limits correction calls.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// ConcurrencyConfig sizes the batch worker pool. Each document runs its
// own classify and validate pipeline; there is no cross-document ordering.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			EnableSceneNumbers: false,
		},
		Validation: ValidationConfig{
			Strict:          false,
			ReviewThreshold: 0.7,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     15 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:          "", // disabled by default
			Model:             "",
			Timeout:           30 * time.Second,
			MinConfidence:     0.8,
			MaxEditDistance:   8,
			MaxTokens:         2000,
			RequestsPerSecond: 2,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
