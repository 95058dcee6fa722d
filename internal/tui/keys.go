package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/pencil/internal/tui/components"
)

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Edit      key.Binding
	Copy      key.Binding
	Reload    key.Binding
	Override  key.Binding
	Delete    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next")),
		Prev:      key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "prev")),
		Edit:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Override:  key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "toggle edit lock")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Edit, k.Copy, k.Help, k.Quit}
}

func (k keyMap) sections() []components.HelpDialogSection {
	return []components.HelpDialogSection{
		{Title: "Fields", Bindings: []key.Binding{k.Next, k.Prev, k.Edit, k.Copy, k.Delete, k.Override}},
		{Title: "Editing", Bindings: []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save multiline")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "buttons")),
		}},
		{Title: "General", Bindings: []key.Binding{k.Reload, k.Help, k.Quit, k.ForceQuit}},
	}
}
