package llm

import (
	"fmt"
	"strings"

	"github.com/voxpense/vocal/internal/service"
)

// NewClient creates a completion client based on the provided configuration.
func NewClient(cfg Config) (service.CompletionClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
