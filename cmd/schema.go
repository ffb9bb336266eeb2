package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/masmgr/gitlog2arrow/internal/schema"
)

// SchemaCmd returns the schema command.
func SchemaCmd() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Print the schema of the exported stream",
		Action: func(c *cli.Context) error {
			_, err := fmt.Fprint(c.App.Writer, schema.Describe(schema.Commits()))
			return err
		},
	}
}
