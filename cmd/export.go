package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlog2arrow/internal/export"
	"github.com/masmgr/gitlog2arrow/internal/output"
)

func exportAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s (use --repo to select a repository)", strings.Join(c.Args().Slice(), " "))
	}

	start := time.Now()

	ctx, err := NewExportContext(c)
	if err != nil {
		return err
	}

	w := c.App.Writer
	var file *output.FileOutput
	if ctx.OutputPath != "" {
		file = output.NewFileOutput(ctx.OutputPath)
		w = file
	}

	stats, runErr := export.Run(c.Context, ctx.Source, ctx.Options, w)
	if file != nil {
		if err := file.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	if ctx.Verbose {
		return output.WriteSummary(c.App.ErrWriter, output.ExportSummary{
			RepoPath: ctx.RepoPath,
			Backend:  string(ctx.Backend),
			Head:     stats.Head,
			Visited:  stats.Visited,
			Accepted: stats.Accepted,
			Merges:   stats.Merges,
			Roots:    stats.Roots,
			MaxCount: ctx.Options.MaxCount,
			Filter:   ctx.Options.Filter.String(),
			Output:   ctx.OutputPath,
			Elapsed:  time.Since(start),
		})
	}
	return nil
}
