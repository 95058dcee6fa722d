package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	initcmd "github.com/colonyops/pencil/internal/commands/init"
)

type InitCmd struct {
	flags  *Flags
	yes    bool
	force  bool
	fields string
}

func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a starter configuration with an interactive wizard",
		UsageText: "pencil init [options]",
		Description: `Writes a starter config file describing a few fields.

The wizard asks for a theme and a list of name:type pairs, then writes
~/.config/pencil/config.yaml (or --config) and validates the result.

Use --yes to accept all defaults without prompts.
Use --force to overwrite existing configuration.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "accept defaults without prompting",
				Destination: &cmd.yes,
			},
			&cli.BoolFlag{
				Name:        "force",
				Aliases:     []string{"f"},
				Usage:       "overwrite existing configuration",
				Destination: &cmd.force,
			},
			&cli.StringFlag{
				Name:        "fields",
				Usage:       "comma-separated name:type pairs",
				Destination: &cmd.fields,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(ctx context.Context, c *cli.Command) error {
	wizard := initcmd.NewWizard(initcmd.WizardOptions{
		ConfigPath: cmd.flags.ConfigPath,
		Yes:        cmd.yes,
		Force:      cmd.force,
		Fields:     cmd.fields,
	})
	return wizard.Run(ctx)
}
