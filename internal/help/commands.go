package help

import "strings"

// Version is the persona release version, set at build time via -ldflags.
// Defaults to "dev" when built without version injection (e.g. `go run`).
var Version = "dev"

// Command describes the persona command for --help output and man pages.
type Command struct {
	Name        string   // binary name
	Synopsis    string   // one-line description (lowercase)
	Usage       string   // full usage line
	Description string   // multi-line prose (stored verbatim)
	Examples    []string // one per line, without leading 2-space indent
	Environment []string // "NAME  meaning" lines
}

// FormatExamples indents examples the way cobra prints its Example field.
func (c Command) FormatExamples() string {
	lines := make([]string, len(c.Examples))
	for i, e := range c.Examples {
		lines[i] = "  " + e
	}
	return strings.Join(lines, "\n")
}

// ManTitle is the man page title, the upper-cased binary name.
func (c Command) ManTitle() string {
	return strings.ToUpper(c.Name)
}

// Long returns the description followed by the environment section.
func (c Command) Long() string {
	if len(c.Environment) == 0 {
		return c.Description
	}
	var b strings.Builder
	b.WriteString(c.Description)
	b.WriteString("\n\nEnvironment:\n")
	for _, e := range c.Environment {
		b.WriteString("  " + e + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

var Persona = Command{
	Name:     "persona",
	Synopsis: "generate a qualitative user persona from a Reddit profile",
	Usage:    "persona <profile-url> [--limit N] [--model NAME] [--provider openai|gemini]",
	Description: `Fetches the newest posts and comments of a Reddit user, sends them to a
chat-completion model with a fixed persona template, and writes the result
to <output>/<username>_persona.txt. Each bullet in the persona cites the
post or comment it was drawn from as [type:id:url].

The username is the last path segment of the profile URL. The model is
asked to end with "X posts and Y comments"; those tokens are replaced with
the real counts before the file is written.

Settings are read from ~/.config/persona-gen/config.toml (see
--write-config) and a .env file in the working directory.`,
	Examples: []string{
		"persona https://www.reddit.com/user/kojied/",
		"persona https://www.reddit.com/user/Hungry-Move-6603/ --limit 50",
		"persona u/spez --provider gemini --model gemini-2.5-flash",
		"persona --history https://www.reddit.com/user/kojied/",
	},
	Environment: []string{
		"REDDIT_CLIENT_ID       Reddit app client id",
		"REDDIT_CLIENT_SECRET   Reddit app client secret",
		"GROQ_API_KEY           chat-completion API key (name set by llm.api_key_env)",
	},
}
