package tui

import (
	"context"
	"fmt"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/colonyops/pencil/internal/core/config"
	"github.com/colonyops/pencil/internal/core/field"
	"github.com/colonyops/pencil/internal/core/logging"
	"github.com/colonyops/pencil/internal/core/notify"
	"github.com/colonyops/pencil/internal/core/styles"
	"github.com/colonyops/pencil/internal/tui/components/inline"
)

// entry pairs a field with the inputs the host controls from outside.
type entry struct {
	cfg   config.FieldConfig
	field *inline.Field

	value    field.Value // externally supplied value
	override bool        // externally supplied edit mode
	last     field.Value // last committed value, for save diffs

	ctx context.Context
	log zerolog.Logger
}

func (e *entry) label() string {
	if e.cfg.Label != "" {
		return e.cfg.Label
	}
	return e.cfg.Name
}

// sync pushes the external inputs into the field.
func (e *entry) sync() tea.Cmd {
	return e.field.Sync(e.value, e.override)
}

// newEntry builds the inline field for fc. Callbacks report through toasts
// and the log.
func newEntry(ctx context.Context, cfg *config.Config, fc config.FieldConfig, toasts *ToastController) (*entry, error) {
	rules, err := fc.Rules.Compile()
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", fc.Name, err)
	}

	value := fc.InitialValue()
	e := &entry{
		cfg:      fc,
		value:    value,
		override: fc.EditMode,
		last:     value,
		ctx:      logging.WithField(ctx, fc.Name),
		log:      logging.Component("tui"),
	}

	var explain func(field.Value) string
	if fc.ValidationMessage == "" {
		explain = rules.Check
	}

	hoverClass := fc.HoverClass
	if hoverClass == "" {
		hoverClass = cfg.HoverClass
	}

	f, err := inline.New(inline.Options{
		Name:              fc.Name,
		Label:             e.label(),
		Type:              inline.Type(fc.Type),
		Value:             value,
		EditMode:          fc.EditMode,
		ReadOnly:          cfg.IsReadOnly(fc),
		Choices:           choices(fc.Choices),
		Placeholder:       fc.Placeholder,
		Instructions:      fc.Instructions,
		ValidationMessage: fc.ValidationMessage,
		Explain:           explain,
		Attributes:        inline.Attributes(fc.Attributes),
		ClassPrefix:       cfg.ClassPrefix,
		HoverClass:        hoverClass,
		ViewClass:         fc.Class,
		SaveLabel:         fc.Buttons.SaveLabel,
		CancelLabel:       fc.Buttons.CancelLabel,
		DeleteLabel:       fc.Buttons.DeleteLabel,
		HideSave:          fc.Buttons.HideSave,
		HideCancel:        fc.Buttons.HideCancel,
		ShowDelete:        fc.Buttons.ShowDelete,
		ButtonPosition:    inline.Position(fc.Buttons.Position),
		SaveOnBlur:        fc.SaveOnBlur,
		CancelOnBlur:      fc.CancelOnBlur,
		DisableAutoSubmit: fc.DisableAutoSubmit,
		DisableAutoCancel: fc.DisableAutoCancel,
		SubmitKeys:        cfg.SubmitKeys,
		ShowHelp:          cfg.ShowHelp,
		Callbacks: field.Callbacks{
			OnSave: func(v field.Value) {
				e.saved(v)
				toasts.Push(notify.Info("Saved %s", e.label()))
			},
			OnCancel: func() {
				e.log.Debug().Ctx(e.ctx).Msg("edit cancelled")
			},
			OnDelete: func() {
				e.log.Info().Ctx(e.ctx).Msg("field deleted")
				toasts.Push(notify.Warn("Deleted %s", e.label()))
			},
			OnFocus: func(v field.Value) {
				e.log.Debug().Ctx(e.ctx).Str("draft", v.String()).Msg("editor focused")
			},
			Validate: rules.Validator(),
		},
	})
	if err != nil {
		return nil, err
	}
	e.field = f

	return e, nil
}

// saved logs a character level summary of the change.
func (e *entry) saved(v field.Value) {
	added, removed := diffSummary(e.last.String(), v.String())
	e.last = v

	ev := e.log.Info().Ctx(e.ctx).Int("added", added).Int("removed", removed)
	if inline.Type(e.cfg.Type) != inline.TypePassword {
		ev = ev.Str("value", v.String())
	}
	ev.Msg("field saved")
}

// diffSummary counts inserted and deleted runes between before and after.
func diffSummary(before, after string) (added, removed int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += utf8.RuneCountInString(d.Text)
		}
	}
	return added, removed
}

func choices(in []config.Choice) []inline.Choice {
	out := make([]inline.Choice, 0, len(in))
	for _, c := range in {
		out = append(out, inline.Choice{Value: c.Value, Label: c.Label})
	}
	return out
}

// applyStyles activates the configured theme and user classes.
func applyStyles(cfg *config.Config) {
	if palette, ok := styles.GetPalette(cfg.Theme); ok {
		styles.SetTheme(palette)
	}

	styles.ResetClasses()
	for name, cls := range cfg.Classes {
		styles.RegisterClass(name, classStyle(cls))
	}
}

func classStyle(cls config.ClassStyle) lipgloss.Style {
	// Unset attributes stay unset so lower-priority classes can still apply them.
	st := lipgloss.NewStyle()
	if cls.Bold {
		st = st.Bold(true)
	}
	if cls.Italic {
		st = st.Italic(true)
	}
	if cls.Underline {
		st = st.Underline(true)
	}
	if cls.Faint {
		st = st.Faint(true)
	}
	if cls.Foreground != "" {
		st = st.Foreground(lipgloss.Color(cls.Foreground))
	}
	if cls.Background != "" {
		st = st.Background(lipgloss.Color(cls.Background))
	}
	return st
}
