// Package field implements the edit/view state machine behind an inline
// click-to-edit field. It has no terminal dependencies; the inline component
// package renders it and feeds it events.
package field

import (
	"slices"

	"github.com/rs/zerolog"

	"github.com/colonyops/pencil/internal/core/logging"
)

// Mode is the coarse state of a field.
type Mode int

const (
	ModeView Mode = iota
	ModeEdit
	ModeHidden
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeHidden:
		return "hidden"
	default:
		return "view"
	}
}

// Callbacks are invoked synchronously after the transition that triggers them.
type Callbacks struct {
	OnSave   func(Value) // required
	OnCancel func()
	OnDelete func()
	OnFocus  func(Value)
	Validate func(Value) bool // nil means always valid
}

// Config is the immutable configuration a Controller is built from.
type Config struct {
	Name     string // used for log context only
	Value    Value
	EditMode bool
	ReadOnly bool
	Keys     KeyOptions
	Options  []string // valid tokens for multi-select fields
	Callbacks
}

// State is a snapshot of a field's state.
type State struct {
	Committed Value
	Draft     Value
	Editing   bool
	Hovered   bool
	Valid     bool
	Hidden    bool
}

// Controller owns a field's State and every transition on it. It is not safe
// for concurrent use.
type Controller struct {
	cfg   Config
	state State

	// last externally supplied inputs, compared on Sync
	extValue    Value
	extEditMode bool

	log zerolog.Logger
}

// New creates a controller in its initial state.
func New(cfg Config) (*Controller, error) {
	if cfg.OnSave == nil {
		return nil, ErrMissingOnSave
	}
	if cfg.OnCancel == nil {
		cfg.OnCancel = func() {}
	}
	if cfg.OnDelete == nil {
		cfg.OnDelete = func() {}
	}
	if cfg.Validate == nil {
		cfg.Validate = func(Value) bool { return true }
	}
	cfg.Options = slices.Clone(cfg.Options)

	return &Controller{
		cfg: cfg,
		state: State{
			Committed: cfg.Value,
			Draft:     cfg.Value,
			Editing:   cfg.EditMode && !cfg.ReadOnly,
			Valid:     true,
		},
		extValue:    cfg.Value,
		extEditMode: cfg.EditMode,
		log:         logging.Component("field").With().Str("field", cfg.Name).Logger(),
	}, nil
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Committed = cloneValue(s.Committed)
	s.Draft = cloneValue(s.Draft)
	return s
}

// Mode reports the coarse state. Hidden takes precedence over editing.
func (c *Controller) Mode() Mode {
	switch {
	case c.state.Hidden:
		return ModeHidden
	case c.state.Editing:
		return ModeEdit
	default:
		return ModeView
	}
}

// AllowEdit reports whether the field may enter edit mode.
func (c *Controller) AllowEdit() bool { return !c.cfg.ReadOnly }

// Keys returns the keyboard options the controller was built with.
func (c *Controller) Keys() KeyOptions { return c.cfg.Keys }

// Options returns the valid multi-select tokens.
func (c *Controller) Options() []string { return slices.Clone(c.cfg.Options) }

// Sync reconciles the controller with externally controlled inputs. It must
// run before any other handler in the same update cycle.
//
// A changed value overwrites both committed and draft, discarding unsaved
// edits. An edit-mode override dropping from true to false commits the draft
// through AttemptSave. Read-only fields track the override but never act on it.
func (c *Controller) Sync(value Value, editMode bool) {
	if !value.Equal(c.extValue) {
		c.extValue = cloneValue(value)
		c.state.Committed = cloneValue(value)
		c.state.Draft = cloneValue(value)
		c.log.Debug().Str("value", value.String()).Msg("external value applied")
	}

	if editMode == c.extEditMode {
		return
	}
	c.extEditMode = editMode
	if c.cfg.ReadOnly {
		return
	}
	if editMode {
		c.state.Editing = true
		return
	}
	c.log.Debug().Msg("edit mode override released, saving")
	c.AttemptSave()
}

// BeginEdit enters edit mode. It is a no-op for read-only fields.
func (c *Controller) BeginEdit() bool {
	if c.cfg.ReadOnly {
		return false
	}
	c.state.Editing = true
	c.log.Debug().Msg("begin edit")
	return true
}

// SetHover sets the hover flag. Entering hover requires edit permission;
// leaving it is always allowed.
func (c *Controller) SetHover(on bool) {
	if on && c.cfg.ReadOnly {
		return
	}
	c.state.Hovered = on
}

// SetDraft replaces the draft.
func (c *Controller) SetDraft(v Value) {
	c.state.Draft = cloneValue(v)
}

// Toggle applies a multi-select checkbox change to the draft. Tokens that are
// not among the configured options are dropped from the result, including
// token itself.
func (c *Controller) Toggle(token string, checked bool) {
	items := c.state.Draft.Items()
	idx := slices.Index(items, token)
	switch {
	case checked && idx < 0:
		items = append(items, token)
	case !checked && idx >= 0:
		items = slices.Delete(items, idx, idx+1)
	}

	items = slices.DeleteFunc(items, func(s string) bool {
		return !slices.Contains(c.cfg.Options, s)
	})
	c.state.Draft = List(items...)
}

// AttemptSave validates the draft and commits it on success. OnSave fires
// after the state is updated. Repeated saves are not deduplicated.
func (c *Controller) AttemptSave() bool {
	if !c.cfg.Validate(c.state.Draft) {
		c.state.Valid = false
		c.log.Debug().Str("draft", c.state.Draft.String()).Msg("validation rejected")
		return false
	}

	c.state.Committed = cloneValue(c.state.Draft)
	c.state.Editing = false
	c.state.Hovered = false
	c.state.Valid = true
	c.log.Debug().Str("value", c.state.Committed.String()).Msg("saved")

	c.cfg.OnSave(cloneValue(c.state.Committed))
	return true
}

// Cancel discards the draft and leaves edit mode. Validity is untouched.
func (c *Controller) Cancel() {
	c.state.Draft = cloneValue(c.state.Committed)
	c.state.Editing = false
	c.state.Hovered = false
	c.log.Debug().Msg("cancelled")

	c.cfg.OnCancel()
}

// Delete hides the field. The controller keeps working afterwards.
func (c *Controller) Delete() {
	c.state.Draft = cloneValue(c.state.Committed)
	c.state.Editing = false
	c.state.Hovered = false
	c.state.Hidden = true
	c.log.Debug().Msg("deleted")

	c.cfg.OnDelete()
}

// NotifyFocus reports the current draft to OnFocus. It must only be called
// from an explicit focus event.
func (c *Controller) NotifyFocus() {
	if c.cfg.OnFocus != nil {
		c.cfg.OnFocus(cloneValue(c.state.Draft))
	}
}

// HandleKey applies the auto-submit and auto-cancel shortcuts and reports
// whether a transition fired.
func (c *Controller) HandleKey(k Key) bool {
	keys := c.cfg.Keys
	switch k {
	case KeyEscape:
		if keys.DisableAutoCancel {
			return false
		}
		c.Cancel()
		return true
	case KeyEnter:
		if keys.DisableAutoSubmit || keys.Multiline {
			return false
		}
		c.AttemptSave()
		return true
	case KeySubmit:
		if keys.DisableAutoSubmit {
			return false
		}
		c.AttemptSave()
		return true
	}
	return false
}

func cloneValue(v Value) Value {
	if v.kind == KindList {
		v.list = slices.Clone(v.list)
	}
	return v
}
