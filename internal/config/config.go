package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all persona-gen configuration.
type Config struct {
	OutputDir string `toml:"output_dir"`
	Limit     int    `toml:"limit"`

	Reddit  RedditConfig  `toml:"reddit"`
	LLM     LLMConfig     `toml:"llm"`
	Archive ArchiveConfig `toml:"archive"`
	History HistoryConfig `toml:"history"`
}

type RedditConfig struct {
	ClientIDEnv     string `toml:"client_id_env"`
	ClientSecretEnv string `toml:"client_secret_env"`
	BaseURL         string `toml:"base_url"`
	TokenURL        string `toml:"token_url"`
	SiteURL         string `toml:"site_url"`
	UserAgent       string `toml:"user_agent"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
}

type LLMConfig struct {
	Provider       string  `toml:"provider"`
	Model          string  `toml:"model"`
	APIKeyEnv      string  `toml:"api_key_env"`
	BaseURL        string  `toml:"base_url"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

type ArchiveConfig struct {
	Enabled bool `toml:"enabled"`
}

type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		OutputDir: "output",
		Limit:     100,
		Reddit: RedditConfig{
			ClientIDEnv:     "REDDIT_CLIENT_ID",
			ClientSecretEnv: "REDDIT_CLIENT_SECRET",
			BaseURL:         "https://oauth.reddit.com",
			TokenURL:        "https://www.reddit.com/api/v1/access_token",
			SiteURL:         "https://reddit.com",
			TimeoutSeconds:  30,
		},
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "llama3-8b-8192",
			APIKeyEnv:      "GROQ_API_KEY",
			BaseURL:        "https://api.groq.com/openai/v1",
			Temperature:    0.7,
			MaxTokens:      800,
			TimeoutSeconds: 120,
		},
	}
}

// Load reads config from the standard path, falling back to defaults.
func Load() (Config, error) {
	for _, p := range configPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	cfg := DefaultConfig()
	cfg.OutputDir = expandHome(cfg.OutputDir)
	return cfg, nil
}

// LoadFile reads config from path over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.OutputDir = expandHome(cfg.OutputDir)
	return cfg, nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "persona-gen", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "persona-gen", "config.toml"))
	}

	return paths
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// Timeout converts a seconds setting; zero or negative means no timeout.
func Timeout(seconds int) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// ArchiveDir returns where activity snapshots are written.
func (c Config) ArchiveDir() string {
	return filepath.Join(c.OutputDir, "archive")
}

// StateDir returns the .persona state directory inside the output dir.
func (c Config) StateDir() string {
	return filepath.Join(c.OutputDir, ".persona")
}
