package planner

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Generator sends one prompt to a text-generation model and returns its reply.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator picks the client for provider. An empty model selects the provider default.
func NewGenerator(ctx context.Context, provider, apiKey, model string) (Generator, error) {
	switch strings.ToLower(provider) {
	case ProviderGemini:
		client, err := NewGeminiClient(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		client, err := NewOpenAIClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, NewError(ConfigError, fmt.Sprintf("unsupported provider %q, use %q or %q", provider, ProviderGemini, ProviderOpenAI), nil)
	}
}
