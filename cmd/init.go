package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlog2arrow/config"
)

// InitCmd returns the init command, which writes a default configuration file.
func InitCmd() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "Write a default configuration file",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing file",
			},
		},
		Action: initAction,
	}
}

func initAction(c *cli.Context) error {
	path := config.DefaultFileName
	if c.NArg() > 0 {
		path = c.Args().Get(0)
	}

	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	color.New(color.FgGreen).Fprintf(c.App.ErrWriter, "Wrote %s\n", path)
	return nil
}
