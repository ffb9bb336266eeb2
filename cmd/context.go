package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlog2arrow/config"
	"github.com/masmgr/gitlog2arrow/internal/export"
	"github.com/masmgr/gitlog2arrow/internal/filter"
	"github.com/masmgr/gitlog2arrow/internal/git"
)

// ExportContext holds the state for one export.
// It encapsulates configuration loading, flag parsing and repository opening.
type ExportContext struct {
	Config     *config.Config
	RepoPath   string
	Backend    git.Backend
	Source     git.CommitSource
	Options    export.Options
	OutputPath string
	Verbose    bool
}

// NewExportContext creates a context from CLI flags.
func NewExportContext(c *cli.Context) (*ExportContext, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	if cfg.Export.MaxCount <= 0 {
		return nil, fmt.Errorf("invalid max count %d: %w", cfg.Export.MaxCount, export.ErrInvalidMaxCount)
	}

	order, err := git.ParseLogOrder(cfg.Repository.Order)
	if err != nil {
		return nil, err
	}
	backend, err := git.ParseBackend(cfg.Repository.Backend)
	if err != nil {
		return nil, err
	}

	repoPath := c.String("repo")
	src, err := git.Open(backend, git.ReadOptions{
		RepoPath: repoPath,
		Rev:      cfg.Repository.Rev,
		Order:    order,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &ExportContext{
		Config:   cfg,
		RepoPath: repoPath,
		Backend:  backend,
		Source:   src,
		Options: export.Options{
			Filter:      filter.New(cfg.Filters.Author, cfg.Filters.Since, cfg.Filters.Until),
			MaxCount:    cfg.Export.MaxCount,
			TrimMessage: cfg.Export.TrimMessage,
		},
		OutputPath: c.String("output"),
		Verbose:    c.Bool("verbose"),
	}, nil
}
