package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/suykerbuyk/persona-gen/internal/errs"
	"github.com/suykerbuyk/persona-gen/internal/logging"
)

// Gemini generates through Google's Gemini API.
type Gemini struct {
	client *genai.Client
	cfg    Config
	logger *zap.Logger
}

// NewGemini creates the genai client. cfg.BaseURL overrides the API root
// when set.
func NewGemini(ctx context.Context, cfg Config, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w: API key is empty", errs.ErrAuthentication)
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		cfg:    cfg,
		logger: logging.OrNop(logger).Named("llm"),
	}, nil
}

// Complete sends the system instruction and user message and returns the
// first candidate's text, trimmed.
func (g *Gemini) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(float32(g.cfg.Temperature)),
		MaxOutputTokens:   int32(g.cfg.MaxTokens),
	}

	g.logger.Debug("gemini request", zap.String("model", g.cfg.Model), zap.Int("chars", len(userPrompt)))

	result, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(userPrompt), config)
	if err != nil {
		return "", classifyGemini(err)
	}

	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("gemini: %w: no candidates", errs.ErrEmptyResponse)
	}

	return strings.TrimSpace(result.Text()), nil
}

func classifyGemini(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return errs.FromStatus("gemini", apiErr.Code, []byte(apiErr.Message))
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return errs.FromStatus("gemini", apiErrPtr.Code, []byte(apiErrPtr.Message))
	}
	return errs.FromTransport("gemini", err)
}
