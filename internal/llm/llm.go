// Package llm talks to chat-completion endpoints. Each client turns a
// system instruction and a user message into the model's reply text.
package llm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// DefaultGeminiModel is used when the gemini provider is selected without
// a model.
const DefaultGeminiModel = "gemini-2.5-flash"

// Config holds the settings shared by every provider.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// Client is a chat-completion backend.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// New returns the client for cfg.Provider.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Client, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAI(cfg, logger), nil
	case ProviderGemini:
		return NewGemini(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q (want %s or %s)", cfg.Provider, ProviderOpenAI, ProviderGemini)
	}
}
