package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/pencil/internal/core/config"
	"github.com/colonyops/pencil/internal/tui"
)

var ErrNoTerminal = errors.New("pencil needs an interactive terminal")

type RunCmd struct {
	flags *Flags

	values string
	output string
}

// NewRunCmd creates a new run command
func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

// Flags returns the run flags for registration on the root command.
func (cmd *RunCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "values",
			Usage:       "YAML file of field values applied over the config",
			Sources:     cli.EnvVars("PENCIL_VALUES"),
			Destination: &cmd.values,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "write committed values to this file instead of stdout",
			Destination: &cmd.output,
		},
	}
}

// Register adds the run command to the application
func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Edit the configured fields",
		UsageText: "pencil run [options]",
		Description: `Opens the configured fields in a full screen editor.

Fields show their value until clicked or focused with enter. On exit the
committed values of all visible fields are printed as YAML. The output can
be fed back with --values on the next run.`,
		Flags:  cmd.Flags(),
		Action: cmd.run,
	})
	return app
}

// Run executes the editor. Exported for use as default command.
func (cmd *RunCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNoTerminal
	}

	cfg, err := cmd.flags.LoadConfig()
	if err != nil {
		return err
	}
	if cmd.values != "" {
		values, err := config.LoadValues(cmd.values)
		if err != nil {
			return fmt.Errorf("load values %q: %w", cmd.values, err)
		}
		cfg.ApplyValues(values)
	}

	m, err := tui.New(tui.Opts{
		Config:     cfg,
		ConfigPath: cmd.flags.ConfigPath,
	})
	if err != nil {
		return fmt.Errorf("build fields: %w", err)
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		// stdout is piped, so draw on stderr and keep stdout for the values
		opts = append(opts, tea.WithOutput(os.Stderr))
	}

	finalModel, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	values := finalModel.(tui.Model).Values()
	log.Info().Int("fields", len(values)).Msg("editor closed")

	w := c.Root().Writer
	if cmd.output != "" {
		f, err := os.Create(cmd.output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return WriteValues(w, values)
}

// WriteValues writes values as a YAML mapping in field order.
func WriteValues(w io.Writer, values []tui.NamedValue) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, v := range values {
		var val yaml.Node
		if err := val.Encode(v.Value); err != nil {
			return fmt.Errorf("encode %q: %w", v.Name, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Name},
			&val,
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
