package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/pencil/internal/tui/components/inline"
)

type TypesCmd struct {
	flags *Flags
}

// NewTypesCmd creates a new types command.
func NewTypesCmd(flags *Flags) *TypesCmd {
	return &TypesCmd{flags: flags}
}

// Register adds the types command to the application.
func (cmd *TypesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "types",
		Usage:     "List supported field types",
		UsageText: "pencil types",
		Action:    cmd.run,
	})
	return app
}

func (cmd *TypesCmd) run(_ context.Context, c *cli.Command) error {
	w := c.Root().Writer
	for _, t := range inline.DefaultRegistry.Types() {
		if _, err := fmt.Fprintln(w, t); err != nil {
			return err
		}
	}
	return nil
}
