// Package pipeline runs one persona generation end to end.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suykerbuyk/persona-gen/internal/activity"
	"github.com/suykerbuyk/persona-gen/internal/archive"
	"github.com/suykerbuyk/persona-gen/internal/index"
	"github.com/suykerbuyk/persona-gen/internal/logging"
	"github.com/suykerbuyk/persona-gen/internal/persona"
	"github.com/suykerbuyk/persona-gen/internal/render"
)

// Options select what to generate and where to put it.
type Options struct {
	Username   string
	Limit      int
	OutputDir  string
	ArchiveDir string // empty disables the activity snapshot
	Provider   string // recorded in the ledger
	Model      string // recorded in the ledger
}

// Deps are the collaborators for a run. Index and Logger are optional.
type Deps struct {
	Fetcher   activity.Fetcher
	Completer persona.Completer
	Index     *index.Index
	Logger    *zap.Logger
}

// Result describes a completed run.
type Result struct {
	Path        string
	ArchivePath string
	Counts      activity.Counts
	RunID       string
}

// Run fetches activity, generates the persona and writes it. Nothing is
// written unless fetch and generation both succeed.
func Run(ctx context.Context, deps Deps, opts Options) (*Result, error) {
	logger := logging.OrNop(deps.Logger)

	if opts.Limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", opts.Limit)
	}

	coll, err := deps.Fetcher.Fetch(ctx, opts.Username, opts.Limit)
	if err != nil {
		return nil, err
	}
	counts := coll.Counts()
	logger.Info("fetched activity",
		zap.String("user", opts.Username),
		zap.Int("posts", counts.Posts),
		zap.Int("comments", counts.Comments))

	text, err := persona.NewBuilder(deps.Completer, logger).Build(ctx, coll, opts.Username)
	if err != nil {
		return nil, err
	}
	if !render.HasPlaceholders(text) {
		logger.Warn("generated persona is missing the count placeholders; counts not inserted",
			zap.String("posts_token", persona.PostsPlaceholder),
			zap.String("comments_token", persona.CommentsPlaceholder))
	}

	path, err := render.Write(opts.OutputDir, opts.Username, text, counts)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path, Counts: counts}

	if opts.ArchiveDir != "" {
		archPath, err := archive.Write(opts.ArchiveDir, opts.Username, coll)
		if err != nil {
			logger.Warn("could not archive activity", zap.Error(err))
		} else {
			result.ArchivePath = archPath
			logger.Debug("archived activity", zap.String("path", archPath))
		}
	}

	if deps.Index != nil {
		e, err := deps.Index.Record(ctx, index.Entry{
			Username:   opts.Username,
			Provider:   opts.Provider,
			Model:      opts.Model,
			Posts:      counts.Posts,
			Comments:   counts.Comments,
			OutputPath: path,
		})
		if err != nil {
			logger.Warn("could not record run", zap.Error(err))
		} else {
			result.RunID = e.ID
		}
	}

	return result, nil
}
