// Package ai wraps the external language-model providers and composes the
// journaling prompts on top of them. Every composer degrades to deterministic
// fallback text; provider errors never leave this package.
package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/yourname/dreamcatcher/internal/config"
)

var ErrUnavailable = errors.New("ai: text generation is not configured")

// Request is a single system+user prompt exchange.
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Generator is the text-generation collaborator. Available reports whether a
// credential was configured; it never dials the provider.
type Generator interface {
	Available() bool
	Generate(ctx context.Context, req Request) (string, error)
}

// NewGenerator builds the provider named by AI_PROVIDER. An empty key yields a
// generator that reports itself unavailable.
func NewGenerator(cfg *config.Config) (Generator, error) {
	switch cfg.AIProvider {
	case "openai":
		return NewOpenAIClient(cfg.AIAPIKey, cfg.AIModel, cfg.AIBaseURL), nil
	case "gemini":
		return NewGeminiClient(cfg.AIAPIKey, cfg.AIModel), nil
	default:
		return nil, fmt.Errorf("ai: unsupported provider %q", cfg.AIProvider)
	}
}
