package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ConfigDir returns the persona-gen config directory path.
// Uses $XDG_CONFIG_HOME/persona-gen if set, otherwise ~/.config/persona-gen.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "persona-gen")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "persona-gen")
}

// WriteDefault writes a default config.toml with outputDir.
// Returns the config file path. Skips if config.toml already exists.
func WriteDefault(outputDir string) (string, error) {
	dir := ConfigDir()
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); err == nil {
		return path, nil // already exists
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}

	d := DefaultConfig()
	content := fmt.Sprintf(`output_dir = %q
limit = %d

[reddit]
client_id_env = %q
client_secret_env = %q
base_url = %q
token_url = %q
site_url = %q
user_agent = ""
timeout_seconds = %d

[llm]
provider = %q
model = %q
api_key_env = %q
base_url = %q
temperature = %.1f
max_tokens = %d
timeout_seconds = %d

[archive]
enabled = false

[history]
enabled = false
`, CompressHome(outputDir), d.Limit,
		d.Reddit.ClientIDEnv, d.Reddit.ClientSecretEnv, d.Reddit.BaseURL, d.Reddit.TokenURL, d.Reddit.SiteURL, d.Reddit.TimeoutSeconds,
		d.LLM.Provider, d.LLM.Model, d.LLM.APIKeyEnv, d.LLM.BaseURL, d.LLM.Temperature, d.LLM.MaxTokens, d.LLM.TimeoutSeconds)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}

	return path, nil
}

// CompressHome replaces $HOME prefix with ~/ for portable config values.
func CompressHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	if path == home {
		return "~"
	}
	return path
}
