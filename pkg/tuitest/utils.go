// Package tuitest provides testing utilities for TUI components.
package tuitest

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes and trailing whitespace for cleaner golden files.
// This makes golden files human-readable and less fragile to style changes.
func StripANSI(s string) string {
	s = ansi.Strip(s)
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " ")
		result = append(result, trimmed)
	}
	return strings.TrimRight(strings.Join(result, "\n"), "\n")
}

// KeyPress creates a key press message for a single rune.
func KeyPress(key rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: key, Text: string(key)})
}

// Type returns one key press message per rune of s, suitable for feeding a
// text input.
func Type(s string) []tea.Msg {
	msgs := make([]tea.Msg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, KeyPress(r))
	}
	return msgs
}

// KeyEnter creates an enter key press message.
func KeyEnter() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
}

// KeyCtrlEnter creates a ctrl+enter key press message.
func KeyCtrlEnter() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter, Mod: tea.ModCtrl})
}

// KeyCtrl creates a ctrl+<r> key press message.
func KeyCtrl(r rune) tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: r, Mod: tea.ModCtrl})
}

// KeyEsc creates an escape key press message.
func KeyEsc() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
}

// KeyTab creates a tab key press message.
func KeyTab() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab})
}

// KeyShiftTab creates a shift+tab key press message.
func KeyShiftTab() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyTab, Mod: tea.ModShift})
}

// KeySpace creates a space key press message.
func KeySpace() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
}

// KeyDown creates a down arrow key press message.
func KeyDown() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyDown})
}

// KeyUp creates an up arrow key press message.
func KeyUp() tea.Msg {
	return tea.KeyPressMsg(tea.Key{Code: tea.KeyUp})
}

// Click creates a left mouse click at the given cell.
func Click(x, y int) tea.Msg {
	return tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}
}

// Motion creates a mouse motion message at the given cell.
func Motion(x, y int) tea.Msg {
	return tea.MouseMotionMsg{X: x, Y: y}
}

// WindowSize creates a window size message.
func WindowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}
