package persona

import (
	"fmt"
	"strings"

	"github.com/suykerbuyk/persona-gen/internal/activity"
)

// Placeholder tokens the instruction asks the model to emit verbatim. The
// writer replaces them with the real counts.
const (
	PostsPlaceholder    = "X posts"
	CommentsPlaceholder = "Y comments"
)

// SystemPrompt is the fixed instruction describing the persona layout.
const SystemPrompt = "You are a persona-building assistant. Given Reddit activity, craft a one-page qualitative persona in this exact structure:\n\n" +
	"Persona: <Username>\n“Tagline or short quote”\n\n" +
	"**Demographics**\n- bullets with [type:id:url]\n\n" +
	"**Goals & Motivations**\n- ...\n\n" +
	"**Challenges & Pain Points**\n- ...\n\n" +
	"**Behavior Patterns & Interests**\n- ...\n\n" +
	"**Communication Style**\n- ...\n\n" +
	"**User Voice Quote**\n> “...” — [comment:id:url]\n\n" +
	"*Persona built from analysis of " + PostsPlaceholder + " and " + CommentsPlaceholder + ".*"

// BuildContext renders one "[kind:id:url] body" entry per record, separated
// by a blank line, in collection order.
func BuildContext(coll activity.Collection) string {
	entries := make([]string, len(coll))
	for i, r := range coll {
		entries[i] = fmt.Sprintf("[%s] %s", r.CitationKey(), r.Body)
	}
	return strings.Join(entries, "\n\n")
}

// UserPrompt is the user message: the username followed by the context block.
func UserPrompt(username string, coll activity.Collection) string {
	return fmt.Sprintf("Username: %s\n\nActivity:\n%s", username, BuildContext(coll))
}
