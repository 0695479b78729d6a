package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/suykerbuyk/persona-gen/internal/activity"
)

func sampleCollection() activity.Collection {
	return activity.Collection{
		{Kind: activity.KindPost, ID: "p1", URL: "https://example.com/a", Body: "First post\nwith self text"},
		{Kind: activity.KindPost, ID: "p2", URL: "https://example.com/b", Body: "Second post\n"},
		{Kind: activity.KindComment, ID: "c1", URL: "https://reddit.com/r/go/comments/x/y/c1/", Body: "a comment"},
	}
}

func TestBuildContext(t *testing.T) {
	got := BuildContext(sampleCollection())
	want := "[post:p1:https://example.com/a] First post\nwith self text\n\n" +
		"[post:p2:https://example.com/b] Second post\n\n\n" +
		"[comment:c1:https://reddit.com/r/go/comments/x/y/c1/] a comment"
	assert.Equal(t, want, got)
}

func TestBuildContext_OneEntryPerRecord(t *testing.T) {
	coll := activity.Collection{
		{Kind: activity.KindPost, ID: "p1", URL: "u1", Body: "single line"},
		{Kind: activity.KindComment, ID: "c1", URL: "u2", Body: "another"},
		{Kind: activity.KindComment, ID: "c1", URL: "u2", Body: "another"},
	}
	entries := strings.Split(BuildContext(coll), "\n\n")
	assert.Len(t, entries, len(coll))
	for i, e := range entries {
		assert.True(t, strings.HasPrefix(e, "["+coll[i].CitationKey()+"]"), "entry %d = %q", i, e)
	}
}

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
	assert.Equal(t, "Username: ghost\n\nActivity:\n", UserPrompt("ghost", nil))
}

func TestUserPrompt(t *testing.T) {
	got := UserPrompt("alice", sampleCollection())
	assert.True(t, strings.HasPrefix(got, "Username: alice\n\nActivity:\n[post:p1:"))
}

func TestSystemPrompt_Structure(t *testing.T) {
	for _, s := range []string{
		"Persona: <Username>",
		"**Demographics**",
		"**Goals & Motivations**",
		"**Challenges & Pain Points**",
		"**Behavior Patterns & Interests**",
		"**Communication Style**",
		"**User Voice Quote**",
		"[comment:id:url]",
		"*Persona built from analysis of X posts and Y comments.*",
	} {
		assert.Contains(t, SystemPrompt, s)
	}
}
