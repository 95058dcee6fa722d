// Package components provides reusable TUI components.
package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/pencil/internal/core/styles"
)

const helpKeyWidth = 14

// HelpDialogSection groups related bindings under a title.
type HelpDialogSection struct {
	Title    string
	Bindings []key.Binding
}

// HelpDialog displays all available keyboard shortcuts.
type HelpDialog struct {
	title    string
	sections []HelpDialogSection
}

// NewHelpDialog creates a new help dialog with the given sections.
func NewHelpDialog(title string, sections []HelpDialogSection) *HelpDialog {
	return &HelpDialog{title: title, sections: sections}
}

// View renders the help dialog.
func (h *HelpDialog) View() string {
	var lines []string
	separator := styles.TextMutedStyle.Render(strings.Repeat("─", 25))

	for i, section := range h.sections {
		if section.Title != "" {
			if i > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, styles.HelpDialogSectionStyle.Render(section.Title), separator)
		}

		for _, b := range section.Bindings {
			if !b.Enabled() {
				continue
			}
			help := b.Help()
			lines = append(lines, formatKeyDesc(help.Key, help.Desc))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TextForegroundBoldStyle.Render(h.title),
		"",
		strings.Join(lines, "\n"),
		styles.HelpDialogHelpStyle.Render("esc/? close"),
	)

	return styles.HelpDialogModalStyle.Render(content)
}

// Overlay renders the help dialog centered over the given background.
func (h *HelpDialog) Overlay(background string, width, height int) string {
	return Center(background, h.View(), width, height)
}

// Center composites modal over the middle of background.
func Center(background, modal string, width, height int) string {
	bgLayer := lipgloss.NewLayer(background)
	modalLayer := lipgloss.NewLayer(modal)

	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}

func formatKeyDesc(k, desc string) string {
	pad := max(helpKeyWidth-lipgloss.Width(k), 1)
	return styles.TextPrimaryBoldStyle.Render(k+strings.Repeat(" ", pad)) + styles.TextForegroundStyle.Render(desc)
}
