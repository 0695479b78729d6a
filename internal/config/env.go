package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/suykerbuyk/persona-gen/internal/errs"
)

// Credentials are the secrets resolved from the environment. They are
// passed explicitly into the fetcher and chat client constructors.
type Credentials struct {
	RedditClientID     string
	RedditClientSecret string
	LLMAPIKey          string
}

// LoadDotEnv loads KEY=value pairs from path into the environment.
// Variables already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// Credentials reads the three required secrets, reporting every missing
// variable at once.
func (c Config) Credentials() (Credentials, error) {
	creds := Credentials{
		RedditClientID:     os.Getenv(c.Reddit.ClientIDEnv),
		RedditClientSecret: os.Getenv(c.Reddit.ClientSecretEnv),
		LLMAPIKey:          os.Getenv(c.LLM.APIKeyEnv),
	}

	var missing []string
	if creds.RedditClientID == "" {
		missing = append(missing, c.Reddit.ClientIDEnv)
	}
	if creds.RedditClientSecret == "" {
		missing = append(missing, c.Reddit.ClientSecretEnv)
	}
	if creds.LLMAPIKey == "" {
		missing = append(missing, c.LLM.APIKeyEnv)
	}
	if len(missing) > 0 {
		return creds, fmt.Errorf("%w: set %s", errs.ErrMissingCredential, strings.Join(missing, ", "))
	}
	return creds, nil
}
