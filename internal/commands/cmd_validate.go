package commands

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/pencil/internal/core/config"
	"github.com/colonyops/pencil/internal/printer"
)

type ValidateCmd struct {
	flags  *Flags
	format string
}

// NewValidateCmd creates a new validate command.
func NewValidateCmd(flags *Flags) *ValidateCmd {
	return &ValidateCmd{flags: flags}
}

// Register adds the validate command to the application.
func (cmd *ValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "validate",
		Usage:       "Validate configuration file",
		UsageText:   "pencil validate [options]",
		Description: "Validates the configuration file, checking field types, regex rules, colors, readonly patterns, initial values and values files.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})

	return app
}

// ValidationError is a single config problem.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResult collects the outcome of validating a config file.
type ValidationResult struct {
	Errors   []ValidationError          `json:"errors,omitempty"`
	Warnings []config.ValidationWarning `json:"warnings,omitempty"`
}

// IsValid reports whether no errors were found.
func (r ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate loads and deeply validates the config at path.
func Validate(path string) ValidationResult {
	var result ValidationResult

	cfg, err := config.Load(path)
	if err == nil {
		err = cfg.ValidateDeep(path)
		result.Warnings = cfg.Warnings()
	}
	if err == nil {
		return result
	}

	var fieldErrs criterio.FieldErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			result.Errors = append(result.Errors, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
		}
		return result
	}

	result.Errors = append(result.Errors, ValidationError{Message: err.Error()})
	return result
}

func (cmd *ValidateCmd) run(ctx context.Context, c *cli.Command) error {
	result := Validate(cmd.flags.ConfigPath)

	if cmd.format == "json" {
		return outputJSON(c.Root().Writer, result)
	}

	return cmd.outputText(printer.Ctx(ctx), result)
}

func outputJSON(w io.Writer, result ValidationResult) error {
	out := struct {
		Valid bool `json:"valid"`
		ValidationResult
	}{
		Valid:            result.IsValid(),
		ValidationResult: result,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (cmd *ValidateCmd) outputText(p *printer.Printer, result ValidationResult) error {
	for _, warn := range result.Warnings {
		p.Warnf("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, err := range result.Errors {
		if err.Field != "" {
			p.Errorf("%s: %s", err.Field, err.Message)
			continue
		}
		p.Errorf("%s", err.Message)
	}

	p.Printf("")
	if result.IsValid() {
		p.Successf("Configuration is valid: %s", cmd.flags.ConfigPath)
		return nil
	}

	p.Errorf("%d error(s) found", len(result.Errors))
	return cli.Exit("", 1)
}
