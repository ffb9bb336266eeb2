package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlog2arrow/config"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "gitlog2arrow",
		Usage:   "Write Git commit history to stdout as an Apache Arrow IPC stream",
		Version: "1.0.0",
		Commands: []*cli.Command{
			SchemaCmd(),
			InitCmd(),
		},
		Flags:  append(exportFlags(), configFlag()),
		Action: exportAction,
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file (default: " + config.DefaultFileName + ")",
	}
}

// exportFlags are the flags of the default export action.
func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "trim-message",
			Usage: "Trim trailing newlines from commit messages",
		},
		&cli.IntFlag{
			Name:  "max-count",
			Usage: "Maximum number of commits to write (counted after filtering)",
			Value: 1024,
		},
		&cli.StringFlag{
			Name:  "author",
			Usage: "Only commits whose author name matches exactly (an empty value matches empty names)",
		},
		&cli.StringFlag{
			Name:  "since",
			Usage: "Only commits authored at or after this RFC 3339 time (ignored if unparsable)",
		},
		&cli.StringFlag{
			Name:  "until",
			Usage: "Only commits authored at or before this RFC 3339 time (ignored if unparsable)",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path inside the Git repository",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:  "rev",
			Usage: "Revision to start from (default: HEAD)",
		},
		&cli.StringFlag{
			Name:  "order",
			Usage: "Traversal order (bfs, dfs, ctime)",
		},
		&cli.StringFlag{
			Name:  "backend",
			Usage: "Repository backend (go-git, git-cli)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file path (default: stdout)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Print a summary to stderr",
		},
	}
}

// loadConfig loads configuration from file or defaults and applies CLI overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if c.IsSet("max-count") {
		cfg.Export.MaxCount = c.Int("max-count")
	}
	if c.IsSet("trim-message") {
		cfg.Export.TrimMessage = c.Bool("trim-message")
	}
	if c.IsSet("author") {
		author := c.String("author")
		cfg.Filters.Author = &author
	}
	if c.IsSet("since") {
		cfg.Filters.Since = c.String("since")
	}
	if c.IsSet("until") {
		cfg.Filters.Until = c.String("until")
	}
	if c.IsSet("rev") {
		cfg.Repository.Rev = c.String("rev")
	}
	if c.IsSet("order") {
		cfg.Repository.Order = c.String("order")
	}
	if c.IsSet("backend") {
		cfg.Repository.Backend = c.String("backend")
	}

	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
