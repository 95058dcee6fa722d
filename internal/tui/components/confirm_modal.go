package components

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/pencil/internal/core/styles"
)

type confirmKeys struct {
	Yes    key.Binding
	No     key.Binding
	Switch key.Binding
	Choose key.Binding
}

var defaultConfirmKeys = confirmKeys{
	Yes:    key.NewBinding(key.WithKeys("y", "Y")),
	No:     key.NewBinding(key.WithKeys("n", "N", "esc")),
	Switch: key.NewBinding(key.WithKeys("left", "right", "h", "l", "tab", "shift+tab")),
	Choose: key.NewBinding(key.WithKeys("enter", "space")),
}

// ConfirmModal asks a yes/no question. The "No" button is selected
// initially so a stray enter never confirms a destructive action.
type ConfirmModal struct {
	message   string
	yes       bool // selected button
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a new confirmation modal.
func NewConfirmModal(message string) ConfirmModal {
	return ConfirmModal{message: message}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	keys := defaultConfirmKeys
	switch {
	case key.Matches(keyMsg, keys.Yes):
		m.confirmed = true
	case key.Matches(keyMsg, keys.No):
		m.cancelled = true
	case key.Matches(keyMsg, keys.Switch):
		m.yes = !m.yes
	case key.Matches(keyMsg, keys.Choose):
		m.confirmed = m.yes
		m.cancelled = !m.yes
	}

	return m, nil
}

// View renders the confirmation modal.
func (m ConfirmModal) View() string {
	yes, no := styles.ButtonStyle, styles.ButtonSelectedStyle
	if m.yes {
		yes, no = no, yes
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		yes.Render("Yes"), " ", no.Render("No"),
	)
	hint := styles.TextMutedStyle.Render("y/n")

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ConfirmMessageStyle.Render(m.message),
		buttons+"  "+hint,
	))
}

func (m ConfirmModal) Confirmed() bool { return m.confirmed }
func (m ConfirmModal) Cancelled() bool { return m.cancelled }
