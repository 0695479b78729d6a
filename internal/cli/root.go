// Package cli wires configuration, clients and the pipeline behind the
// persona command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suykerbuyk/persona-gen/internal/config"
	"github.com/suykerbuyk/persona-gen/internal/help"
	"github.com/suykerbuyk/persona-gen/internal/index"
	"github.com/suykerbuyk/persona-gen/internal/llm"
	"github.com/suykerbuyk/persona-gen/internal/logging"
	"github.com/suykerbuyk/persona-gen/internal/pipeline"
	"github.com/suykerbuyk/persona-gen/internal/reddit"
)

type options struct {
	configPath  string
	limit       int
	model       string
	provider    string
	outputDir   string
	archive     bool
	history     bool
	writeConfig bool
	verbose     bool
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "persona: %v\n", err)
		return 1
	}
	return 0
}

// NewRootCommand builds the persona command.
func NewRootCommand() *cobra.Command {
	var opts options
	var logger *zap.Logger
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:           help.Persona.Usage,
		Short:         help.Persona.Synopsis,
		Long:          help.Persona.Long(),
		Example:       help.Persona.FormatExamples(),
		Version:       help.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = logging.New(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.writeConfig {
				return writeConfig(cmd, opts)
			}
			if len(args) != 1 {
				return errors.New("a Reddit profile URL is required (see --help)")
			}
			return run(cmd, opts, args[0], logger)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.config/persona-gen/config.toml)")
	f.IntVar(&opts.limit, "limit", defaults.Limit, "items to fetch per type (posts and comments)")
	f.StringVar(&opts.model, "model", defaults.LLM.Model, "chat model name")
	f.StringVar(&opts.provider, "provider", defaults.LLM.Provider, "chat provider: openai (any OpenAI-compatible endpoint) or gemini")
	f.StringVar(&opts.outputDir, "output", defaults.OutputDir, "directory for <username>_persona.txt")
	f.BoolVar(&opts.archive, "archive", false, "also save a zstd snapshot of the fetched activity")
	f.BoolVar(&opts.history, "history", false, "list earlier runs for the user instead of generating")
	f.BoolVar(&opts.writeConfig, "write-config", false, "write a default config file and exit")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	var cfg config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("limit") {
		cfg.Limit = opts.limit
	}
	if flags.Changed("model") {
		cfg.LLM.Model = opts.model
	}
	if flags.Changed("provider") {
		cfg.LLM.Provider = opts.provider
	}
	if flags.Changed("output") {
		cfg.OutputDir = opts.outputDir
	}
	if opts.archive {
		cfg.Archive.Enabled = true
	}

	// The configured default model is a Groq model; gemini needs its own.
	if cfg.LLM.Provider == llm.ProviderGemini && !flags.Changed("model") &&
		cfg.LLM.Model == config.DefaultConfig().LLM.Model {
		cfg.LLM.Model = llm.DefaultGeminiModel
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts options, profileURL string, logger *zap.Logger) error {
	ctx := cmd.Context()

	username, err := UsernameFromURL(profileURL)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Limit < 1 {
		return fmt.Errorf("--limit must be at least 1, got %d", cfg.Limit)
	}

	if opts.history {
		return printHistory(ctx, cmd.OutOrStdout(), cfg, username)
	}

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	creds, err := cfg.Credentials()
	if err != nil {
		return err
	}

	userAgent := cfg.Reddit.UserAgent
	if userAgent == "" {
		userAgent = fmt.Sprintf("persona_generator/%s by %s", help.Version, username)
	}
	fetcher := reddit.NewClient(reddit.Config{
		ClientID:     creds.RedditClientID,
		ClientSecret: creds.RedditClientSecret,
		UserAgent:    userAgent,
		BaseURL:      cfg.Reddit.BaseURL,
		TokenURL:     cfg.Reddit.TokenURL,
		SiteURL:      cfg.Reddit.SiteURL,
		Timeout:      config.Timeout(cfg.Reddit.TimeoutSeconds),
	}, logger)

	completer, err := llm.New(ctx, llm.Config{
		Provider:    cfg.LLM.Provider,
		Model:       cfg.LLM.Model,
		APIKey:      creds.LLMAPIKey,
		BaseURL:     llmBaseURL(cfg),
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     config.Timeout(cfg.LLM.TimeoutSeconds),
	}, logger)
	if err != nil {
		return err
	}

	deps := pipeline.Deps{Fetcher: fetcher, Completer: completer, Logger: logger}
	if cfg.History.Enabled {
		idx, err := index.Open(index.Path(cfg.StateDir()))
		if err != nil {
			logger.Warn("run history unavailable", zap.Error(err))
		} else {
			defer idx.Close()
			deps.Index = idx
		}
	}

	popts := pipeline.Options{
		Username:  username,
		Limit:     cfg.Limit,
		OutputDir: cfg.OutputDir,
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
	}
	if cfg.Archive.Enabled {
		popts.ArchiveDir = cfg.ArchiveDir()
	}

	res, err := pipeline.Run(ctx, deps, popts)
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Persona saved to: %s\n", res.Path)
	if res.ArchivePath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Activity archived to: %s\n", res.ArchivePath)
	}
	return nil
}

// llmBaseURL drops the Groq default when the provider is gemini, so the
// genai client uses its own endpoint.
func llmBaseURL(cfg config.Config) string {
	if cfg.LLM.Provider == llm.ProviderGemini && cfg.LLM.BaseURL == config.DefaultConfig().LLM.BaseURL {
		return ""
	}
	return cfg.LLM.BaseURL
}

func printHistory(ctx context.Context, w io.Writer, cfg config.Config, username string) error {
	path := index.Path(cfg.StateDir())
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(w, "no runs recorded for %s\n", username)
		return nil
	}

	idx, err := index.Open(path)
	if err != nil {
		return err
	}
	defer idx.Close()

	runs, err := idx.History(ctx, username)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(w, "no runs recorded for %s\n", username)
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s/%s  %d posts, %d comments  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Provider, r.Model, r.Posts, r.Comments, r.OutputPath)
	}
	return nil
}

func writeConfig(cmd *cobra.Command, opts options) error {
	path, err := config.WriteDefault(opts.outputDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "config: %s\n", path)
	return nil
}
