package pitchdeck

import (
	"context"
	"fmt"
	"strings"
)

// Generation providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// BackendConfig selects and configures a Backend.
type BackendConfig struct {
	Provider string // "gemini" (default) or "openai"
	APIKey   string
	Model    string
	BaseURL  string
}

// NewBackend creates the backend named by cfg.Provider.
// Returns ErrUnknownBackend for any other provider.
func NewBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		return NewGeminiBackend(ctx, GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case ProviderOpenAI:
		return NewOpenAIBackend(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	default:
		return nil, fmt.Errorf("%w: %q (supported: gemini, openai)", ErrUnknownBackend, cfg.Provider)
	}
}
