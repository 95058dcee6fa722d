// Package initcmd implements the interactive `pencil init` wizard.
package initcmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/colonyops/pencil/internal/core/config"
	"github.com/colonyops/pencil/internal/core/styles"
	"github.com/colonyops/pencil/internal/printer"
)

// WizardOptions configures the wizard behavior.
type WizardOptions struct {
	ConfigPath string
	Yes        bool   // skip prompts, use defaults
	Force      bool   // overwrite existing config
	Fields     string // pre-specified fields (empty = prompt)
}

// Wizard orchestrates the init process.
type Wizard struct {
	opts WizardOptions
}

// NewWizard creates a new init wizard.
func NewWizard(opts WizardOptions) *Wizard {
	return &Wizard{opts: opts}
}

// Run executes the wizard.
func (w *Wizard) Run(ctx context.Context) error {
	p := printer.Ctx(ctx)

	if ConfigExists(w.opts.ConfigPath) && !w.opts.Force {
		if w.opts.Yes {
			return fmt.Errorf("config exists at %s; use --force to overwrite", w.opts.ConfigPath)
		}

		var overwrite bool
		err := huh.NewConfirm().
			Title("Config file already exists").
			Description(w.opts.ConfigPath + "\nOverwrite? (a backup will be created)").
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			p.Infof("Init cancelled")
			return nil
		}
	}

	opts := ConfigOptions{Theme: styles.DefaultTheme, ShowHelp: true}
	fields := w.opts.Fields
	if fields == "" {
		fields = DefaultFields
	}

	if !w.opts.Yes {
		if err := w.promptUser(&opts, &fields); err != nil {
			return err
		}
	}

	parsed, err := ParseFields(fields)
	if err != nil {
		return err
	}
	opts.Fields = parsed

	data, err := GenerateConfig(opts)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	backup, err := BackupConfig(w.opts.ConfigPath)
	if err != nil {
		return err
	}
	if backup != "" {
		p.Successf("Backed up config to: %s", backup)
	}

	if err := WriteConfig(data, w.opts.ConfigPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	p.Successf("Created config: %s", w.opts.ConfigPath)

	cfg, err := config.Load(w.opts.ConfigPath)
	if err == nil {
		err = cfg.ValidateDeep(w.opts.ConfigPath)
	}
	if err != nil {
		p.Warnf("Generated config does not validate: %v", err)
	}

	p.Printf("")
	p.Section("Next Steps")
	p.Printf("  1. Edit %s to describe your fields", w.opts.ConfigPath)
	p.Printf("  2. Run 'pencil validate' to check it")
	p.Printf("  3. Run 'pencil' to start editing")

	return nil
}

func (w *Wizard) promptUser(opts *ConfigOptions, fields *string) error {
	themes := make([]huh.Option[string], 0)
	for _, name := range styles.ThemeNames() {
		themes = append(themes, huh.NewOption(name, name))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(themes...).
			Value(&opts.Theme),
		huh.NewInput().
			Title("Fields").
			Description("Comma-separated name:type pairs (text, password, textarea, number, checkbox)").
			Validate(func(s string) error {
				_, err := ParseFields(s)
				return err
			}).
			Value(fields),
		huh.NewConfirm().
			Title("Show key help under fields?").
			Value(&opts.ShowHelp),
	))

	return form.Run()
}
