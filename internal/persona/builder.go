// Package persona turns a user's activity into a generated persona.
package persona

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/suykerbuyk/persona-gen/internal/activity"
	"github.com/suykerbuyk/persona-gen/internal/errs"
	"github.com/suykerbuyk/persona-gen/internal/logging"
)

// Completer is a chat-completion backend.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Builder generates persona text from activity.
type Builder struct {
	completer Completer
	logger    *zap.Logger
}

// NewBuilder returns a Builder that generates through c.
func NewBuilder(c Completer, logger *zap.Logger) *Builder {
	return &Builder{completer: c, logger: logging.OrNop(logger).Named("persona")}
}

// Build asks the model for a persona of username. An empty collection is
// still sent; the model decides what to say about an inactive account.
func (b *Builder) Build(ctx context.Context, coll activity.Collection, username string) (string, error) {
	user := UserPrompt(username, coll)

	b.logger.Debug("requesting persona",
		zap.String("user", username),
		zap.Int("records", len(coll)),
		zap.Int("prompt_chars", len(SystemPrompt)+len(user)))

	text, err := b.completer.Complete(ctx, SystemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("generate persona: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("generate persona: %w: model returned no text", errs.ErrEmptyResponse)
	}
	return text, nil
}
