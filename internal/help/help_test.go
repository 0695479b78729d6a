package help

import (
	"strings"
	"testing"
)

func TestFormatExamples(t *testing.T) {
	c := Command{Examples: []string{"persona a", "persona b"}}
	if got := c.FormatExamples(); got != "  persona a\n  persona b" {
		t.Errorf("FormatExamples = %q", got)
	}
}

func TestLong(t *testing.T) {
	c := Command{Description: "Does things."}
	if got := c.Long(); got != "Does things." {
		t.Errorf("Long without env = %q", got)
	}

	c.Environment = []string{"A  first", "B  second"}
	want := "Does things.\n\nEnvironment:\n  A  first\n  B  second"
	if got := c.Long(); got != want {
		t.Errorf("Long = %q, want %q", got, want)
	}
}

func TestPersonaDocumentsCredentials(t *testing.T) {
	long := Persona.Long()
	for _, name := range []string{"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "GROQ_API_KEY"} {
		if !strings.Contains(long, name) {
			t.Errorf("help text missing %s", name)
		}
	}
	if !strings.HasPrefix(Persona.Usage, Persona.Name+" ") {
		t.Errorf("Usage should start with the binary name: %q", Persona.Usage)
	}
}

func TestManTitle(t *testing.T) {
	if got := Persona.ManTitle(); got != "PERSONA" {
		t.Errorf("ManTitle = %q", got)
	}
}
