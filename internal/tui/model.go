// Package tui hosts a column of inline fields in a full screen bubbletea
// program.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"github.com/colonyops/pencil/internal/core/config"
	"github.com/colonyops/pencil/internal/core/field"
	"github.com/colonyops/pencil/internal/core/logging"
	"github.com/colonyops/pencil/internal/core/notify"
	"github.com/colonyops/pencil/internal/core/styles"
	"github.com/colonyops/pencil/internal/tui/components"
)

const title = "pencil"

// Opts configures the host model.
type Opts struct {
	Config     *config.Config
	ConfigPath string
	// Clipboard writes text to the system clipboard. Defaults to
	// atotto/clipboard.
	Clipboard func(string) error
	// Reload re-reads the configuration. Defaults to config.Load(ConfigPath).
	Reload func() (*config.Config, error)
}

// NamedValue is the committed value of a visible field.
type NamedValue struct {
	Name  string
	Value field.Value
}

// Model is the host program. Fields are stacked vertically and exactly one
// of them holds keyboard focus.
type Model struct {
	entries []*entry
	focus   int

	width  int
	height int

	keys       keyMap
	help       help.Model
	helpDialog *components.HelpDialog
	showHelp   bool
	confirm    *components.ConfirmModal
	toasts     *ToastController

	configPath string
	clipboard  func(string) error
	reload     func() (*config.Config, error)

	initCmd  tea.Cmd
	quitting bool
	log      zerolog.Logger
}

// New builds the host model from the configured fields.
func New(opts Opts) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}
	applyStyles(cfg)

	m := Model{
		keys:       newKeyMap(),
		help:       help.New(),
		toasts:     NewToastController(),
		configPath: opts.ConfigPath,
		clipboard:  opts.Clipboard,
		reload:     opts.Reload,
		log:        logging.Component("tui"),
	}
	m.helpDialog = components.NewHelpDialog("Keyboard shortcuts", m.keys.sections())

	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	if m.reload == nil {
		path := opts.ConfigPath
		m.reload = func() (*config.Config, error) { return config.Load(path) }
	}

	ctx := logging.WithConfigPath(context.Background(), opts.ConfigPath)
	for _, fc := range cfg.Fields {
		e, err := newEntry(ctx, cfg, fc, m.toasts)
		if err != nil {
			return Model{}, err
		}
		m.entries = append(m.entries, e)
	}

	m.focus = -1
	if i := m.nextVisible(-1, 1); i >= 0 {
		m.initCmd = m.setFocus(i)
	}
	m.layout()

	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.initCmd
}

// Values returns the committed values of all visible fields in order.
func (m Model) Values() []NamedValue {
	out := make([]NamedValue, 0, len(m.entries))
	for _, e := range m.entries {
		if e.field.Hidden() {
			continue
		}
		out = append(out, NamedValue{Name: e.cfg.Name, Value: e.field.Committed()})
	}
	return out
}

// Update handles messages. External field inputs are synced before any
// handler runs.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	syncCmds := make([]tea.Cmd, 0, len(m.entries))
	for _, e := range m.entries {
		syncCmds = append(syncCmds, e.sync())
	}
	syncCmd := tea.Batch(syncCmds...)

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width)
	case toastTickMsg:
		return m, tea.Batch(syncCmd, m.toasts.HandleTick())
	case tea.KeyPressMsg:
		m, cmd = m.handleKey(msg)
	case tea.MouseClickMsg:
		cmd = m.handleClick(msg)
	case tea.MouseMotionMsg:
		for _, e := range m.entries {
			e.field.Update(msg)
		}
	default:
		if cur := m.current(); cur != nil {
			_, cmd = cur.field.Update(msg)
		}
	}

	if m.quitting {
		return m, cmd
	}

	m.layout()
	return m, tea.Batch(syncCmd, cmd, m.toasts.StartTicking())
}

func (m Model) handleKey(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	if m.confirm != nil {
		return m.handleConfirm(msg), nil
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	cur := m.current()
	if key.Matches(msg, m.keys.Override) && cur != nil {
		cur.override = !cur.override
		m.log.Debug().Ctx(cur.ctx).Bool("override", cur.override).Msg("edit override toggled")
		return m, cur.sync()
	}

	if cur != nil && cur.field.Editing() {
		_, cmd := cur.field.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Next):
		return m, m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m, m.moveFocus(-1)
	case key.Matches(msg, m.keys.Copy):
		m.copyCurrent()
	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadConfig()
	case key.Matches(msg, m.keys.Delete):
		m.confirmDelete()
	case cur != nil:
		_, cmd := cur.field.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleConfirm(msg tea.KeyPressMsg) Model {
	updated, _ := m.confirm.Update(msg)
	switch {
	case updated.Confirmed():
		m.confirm = nil
		if cur := m.current(); cur != nil {
			cur.field.Delete()
			m.moveFocusAfterDelete()
		}
	case updated.Cancelled():
		m.confirm = nil
	default:
		m.confirm = &updated
	}
	return m
}

func (m *Model) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	var cmds []tea.Cmd

	mouse := msg.Mouse()
	if mouse.Button == tea.MouseLeft {
		for i, e := range m.entries {
			if i != m.focus && e.field.Contains(mouse.X, mouse.Y) {
				cmds = append(cmds, m.setFocus(i))
				break
			}
		}
	}

	for _, e := range m.entries {
		_, cmd := e.field.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) current() *entry {
	if m.focus < 0 || m.focus >= len(m.entries) {
		return nil
	}
	return m.entries[m.focus]
}

// setFocus moves keyboard focus to entry i, blurring the previous field.
func (m *Model) setFocus(i int) tea.Cmd {
	if cur := m.current(); cur != nil {
		cur.field.Blur()
	}
	m.focus = i
	return m.entries[i].field.Focus()
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	next := m.nextVisible(m.focus, delta)
	if next < 0 {
		return nil
	}
	return m.setFocus(next)
}

func (m *Model) moveFocusAfterDelete() {
	if next := m.nextVisible(m.focus, 1); next >= 0 {
		m.setFocus(next)
		return
	}
	if prev := m.nextVisible(m.focus, -1); prev >= 0 {
		m.setFocus(prev)
		return
	}
	m.focus = -1
}

// nextVisible returns the index of the first visible entry after from in
// direction delta, or -1.
func (m Model) nextVisible(from, delta int) int {
	for i := from + delta; i >= 0 && i < len(m.entries); i += delta {
		if !m.entries[i].field.Hidden() {
			return i
		}
	}
	return -1
}

func (m *Model) copyCurrent() {
	cur := m.current()
	if cur == nil {
		return
	}

	value := cur.field.Committed()
	if value.IsNullish() {
		m.toasts.Push(notify.Warn("%s is empty", cur.label()))
		return
	}

	if err := m.clipboard(value.String()); err != nil {
		m.log.Error().Ctx(cur.ctx).Err(err).Msg("copy to clipboard")
		m.toasts.Push(notify.Error("Copy failed: %v", err))
		return
	}
	m.toasts.Push(notify.Info("Copied %s", cur.label()))
}

// reloadConfig re-reads the configuration and pushes changed values into the
// existing fields. Unsaved drafts of changed fields are discarded.
func (m *Model) reloadConfig() tea.Cmd {
	cfg, err := m.reload()
	if err != nil {
		m.log.Error().Err(err).Str("config", m.configPath).Msg("reload config")
		m.toasts.Push(notify.Error("Reload failed: %v", err))
		return nil
	}

	byName := make(map[string]config.FieldConfig, len(cfg.Fields))
	for _, fc := range cfg.Fields {
		byName[fc.Name] = fc
	}

	changed := 0
	var cmds []tea.Cmd
	for _, e := range m.entries {
		fc, ok := byName[e.cfg.Name]
		if !ok {
			continue
		}
		if v := fc.InitialValue(); !v.Equal(e.value) {
			e.value = v
			changed++
		}
		cmds = append(cmds, e.sync())
	}

	m.log.Info().Str("config", m.configPath).Int("changed", changed).Msg("config reloaded")
	m.toasts.Push(notify.Info("Reloaded config (%d changed)", changed))
	return tea.Batch(cmds...)
}

func (m *Model) confirmDelete() {
	cur := m.current()
	if cur == nil {
		return
	}
	if !cur.cfg.Buttons.ShowDelete {
		m.toasts.Push(notify.Warn("%s cannot be deleted", cur.label()))
		return
	}

	modal := components.NewConfirmModal(fmt.Sprintf("Delete %s?", cur.label()))
	m.confirm = &modal
}

// layout records where each visible field is drawn for mouse hit testing.
func (m Model) layout() {
	y := lipgloss.Height(m.renderHeader())
	for _, e := range m.entries {
		view := e.field.View()
		if view == "" {
			continue
		}
		e.field.SetOrigin(0, y)
		y += lipgloss.Height(view) + 1
	}
}

func (m Model) renderHeader() string {
	header := styles.TextPrimaryBoldStyle.Render(title)
	if m.configPath != "" {
		header += " " + styles.TextMutedStyle.Render(m.configPath)
	}
	return styles.HeaderStyle.Render(header)
}

func (m Model) renderFields() string {
	views := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		if view := e.field.View(); view != "" {
			views = append(views, view)
		}
	}
	if len(views) == 0 {
		return styles.PlaceholderStyle.Render("No fields")
	}
	return strings.Join(views, "\n\n")
}

// View renders the model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderFields(),
		styles.StatusBarStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())),
	)

	if m.width > 0 && m.height > 0 {
		switch {
		case m.confirm != nil:
			content = components.Center(content, m.confirm.View(), m.width, m.height)
		case m.showHelp:
			content = m.helpDialog.Overlay(content, m.width, m.height)
		}
		content = m.toasts.Overlay(content, m.width, m.height)
	}

	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}
