package llm

import (
	"fmt"
	"strings"

	"github.com/slugline/slugline/internal/model"
)

// NewProvider creates an LLM provider from configuration. An empty
// provider name means corrections are disabled; callers get nil, nil.
func NewProvider(config model.LLMConfig) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "", "none":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
	}
}
