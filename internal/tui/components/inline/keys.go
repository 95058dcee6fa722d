package inline

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/pencil/internal/core/field"
)

// DefaultSubmitKeys are the submit accelerators. Few terminals report
// ctrl+enter, so alt+enter and ctrl+s are accepted as well.
var DefaultSubmitKeys = []string{"ctrl+enter", "alt+enter", "ctrl+s"}

type keyMap struct {
	Submit   key.Binding
	Save     key.Binding
	Cancel   key.Binding
	Activate key.Binding
	Press    key.Binding
	Next     key.Binding
	Prev     key.Binding
}

func newKeyMap(submitKeys []string) keyMap {
	if len(submitKeys) == 0 {
		submitKeys = DefaultSubmitKeys
	}
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys(submitKeys...), key.WithHelp(submitKeys[0], "save")),
		Save:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Activate: key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Press:    key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "press")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "buttons")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
	}
}

// classify maps a key press onto the controller's keyboard protocol.
func (k keyMap) classify(msg tea.KeyPressMsg) field.Key {
	switch {
	case key.Matches(msg, k.Submit):
		return field.KeySubmit
	case key.Matches(msg, k.Save):
		return field.KeyEnter
	case key.Matches(msg, k.Cancel):
		return field.KeyEscape
	default:
		return field.KeyOther
	}
}

// editHelp returns the bindings shown under a field in edit mode.
func (k keyMap) editHelp(multiline, hasButtons bool) []key.Binding {
	bindings := make([]key.Binding, 0, 3)
	if multiline {
		bindings = append(bindings, k.Submit)
	} else {
		bindings = append(bindings, k.Save)
	}
	bindings = append(bindings, k.Cancel)
	if hasButtons {
		bindings = append(bindings, k.Next)
	}
	return bindings
}
