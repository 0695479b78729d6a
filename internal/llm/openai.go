package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/suykerbuyk/persona-gen/internal/errs"
	"github.com/suykerbuyk/persona-gen/internal/logging"
)

// OpenAI speaks the OpenAI-compatible /chat/completions API (Groq, OpenAI,
// xAI, OpenRouter, ...).
type OpenAI struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

// NewOpenAI returns a client for cfg.BaseURL.
func NewOpenAI(cfg Config, logger *zap.Logger) *OpenAI {
	return &OpenAI{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logging.OrNop(logger).Named("llm"),
	}
}

// Complete sends a system + user exchange and returns the first choice's
// text, trimmed.
func (c *OpenAI) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	c.logger.Debug("chat completion request",
		zap.String("url", url),
		zap.String("model", c.cfg.Model),
		zap.Int("bytes", len(body)))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.FromTransport(service, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.FromTransport(service, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errs.FromStatus(service, resp.StatusCode, respBody)
	}

	return parseResponse(respBody)
}

const service = "llm"

func parseResponse(body []byte) (string, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w: no choices", service, errs.ErrEmptyResponse)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
