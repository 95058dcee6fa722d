package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pencil/internal/core/config"
	"github.com/colonyops/pencil/internal/core/field"
	"github.com/colonyops/pencil/pkg/tuitest"
)

func testConfig() *config.Config {
	return &config.Config{
		Theme: "tokyo-night",
		Fields: []config.FieldConfig{
			{Name: "name", Label: "Name", Type: config.FieldTypeText, Value: "Ada", Buttons: config.Buttons{Position: config.PositionAfter}},
			{Name: "age", Type: config.FieldTypeNumber, Value: 36, Buttons: config.Buttons{Position: config.PositionAfter, ShowDelete: true}},
			{Name: "id", Type: config.FieldTypeText, Value: "u-1", ReadOnly: true, Buttons: config.Buttons{Position: config.PositionAfter}},
		},
	}
}

type harness struct {
	m       Model
	copied  []string
	reloads int
	next    *config.Config
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	h := &harness{}
	m, err := New(Opts{
		Config:    cfg,
		Clipboard: func(s string) error { h.copied = append(h.copied, s); return nil },
		Reload: func() (*config.Config, error) {
			h.reloads++
			if h.next == nil {
				return nil, errors.New("no config")
			}
			return h.next, nil
		},
	})
	require.NoError(t, err)
	h.m = m
	h.send(tuitest.WindowSize(100, 40))
	return h
}

func (h *harness) send(msgs ...tea.Msg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		updated, cmd := h.m.Update(msg)
		h.m = updated.(Model)
		last = cmd
	}
	return last
}

func (h *harness) values() map[string]field.Value {
	out := map[string]field.Value{}
	for _, v := range h.m.Values() {
		out[v.Name] = v.Value
	}
	return out
}

func TestNew_FocusesFirstField(t *testing.T) {
	h := newHarness(t, testConfig())

	require.Len(t, h.m.entries, 3)
	assert.Equal(t, 0, h.m.focus)
	assert.True(t, h.m.entries[0].field.Focused())
	assert.False(t, h.m.entries[1].field.Focused())
}

func TestNew_InvalidRule(t *testing.T) {
	cfg := testConfig()
	cfg.Fields[0].Rules.Pattern = "[oops"

	_, err := New(Opts{Config: cfg})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "name"`)
}

func TestModel_EditAndSave(t *testing.T) {
	h := newHarness(t, testConfig())

	h.send(tuitest.KeyEnter())
	require.True(t, h.m.entries[0].field.Editing())

	h.send(tuitest.Type(" L")...)
	h.send(tuitest.KeyEnter())

	assert.Equal(t, field.Text("Ada L"), h.values()["name"])
	assert.True(t, h.m.toasts.HasToasts())
}

func TestModel_KeysGoToEditingField(t *testing.T) {
	h := newHarness(t, testConfig())

	h.send(tuitest.KeyEnter())
	h.send(tuitest.Type("qjy")...)

	assert.False(t, h.m.quitting)
	assert.Equal(t, 0, h.m.focus)
	assert.Empty(t, h.copied)
	assert.Equal(t, field.Text("Adaqjy"), h.m.entries[0].field.State().Draft)
}

func TestModel_FocusNavigation(t *testing.T) {
	h := newHarness(t, testConfig())

	h.send(tuitest.KeyDown())
	assert.Equal(t, 1, h.m.focus)

	h.send(tuitest.KeyPress('j'))
	assert.Equal(t, 2, h.m.focus)

	h.send(tuitest.KeyDown())
	assert.Equal(t, 2, h.m.focus, "stays on last field")

	h.send(tuitest.KeyUp(), tuitest.KeyUp(), tuitest.KeyUp())
	assert.Equal(t, 0, h.m.focus)
}

func TestModel_FocusChangeAppliesBlur(t *testing.T) {
	cfg := testConfig()
	cfg.Fields[0].SaveOnBlur = true
	h := newHarness(t, cfg)

	h.send(tuitest.KeyEnter())
	h.send(tuitest.Type("!")...)

	// Clicking another field moves focus, which blurs and saves the first.
	x, y := h.m.entries[1].field.Origin()
	h.send(tuitest.Click(x+2, y))

	assert.Equal(t, 1, h.m.focus)
	assert.Equal(t, field.Text("Ada!"), h.values()["name"])
	assert.True(t, h.m.entries[1].field.Editing())
}

func TestModel_Copy(t *testing.T) {
	h := newHarness(t, testConfig())

	h.send(tuitest.KeyPress('y'))
	assert.Equal(t, []string{"Ada"}, h.copied)

	h.send(tuitest.KeyDown(), tuitest.KeyPress('y'))
	assert.Equal(t, []string{"Ada", "36"}, h.copied)
}

func TestModel_CopyEmpty(t *testing.T) {
	cfg := testConfig()
	cfg.Fields[0].Value = nil
	h := newHarness(t, cfg)

	h.send(tuitest.KeyPress('y'))
	assert.Empty(t, h.copied)
	assert.True(t, h.m.toasts.HasToasts())
}

func TestModel_Reload(t *testing.T) {
	h := newHarness(t, testConfig())

	t.Run("failure keeps values", func(t *testing.T) {
		h.send(tuitest.KeyPress('r'))
		assert.Equal(t, 1, h.reloads)
		assert.Equal(t, field.Text("Ada"), h.values()["name"])
	})

	t.Run("changed values are pushed", func(t *testing.T) {
		next := testConfig()
		next.Fields[0].Value = "Grace"
		h.next = next

		h.send(tuitest.KeyPress('r'))
		assert.Equal(t, field.Text("Grace"), h.values()["name"])
		assert.Equal(t, field.Number(36), h.values()["age"])
	})
}

func TestModel_ReloadDiscardsOpenDraft(t *testing.T) {
	h := newHarness(t, testConfig())
	h.send(tuitest.KeyEnter())
	h.send(tuitest.Type("!")...)

	next := testConfig()
	next.Fields[0].Value = "Grace"
	h.next = next

	// reload is a host action, so trigger it directly while the field edits
	h.m.reloadConfig()

	st := h.m.entries[0].field.State()
	assert.Equal(t, field.Text("Grace"), st.Committed)
	assert.Equal(t, field.Text("Grace"), st.Draft)
}

func TestModel_OverrideForcesSave(t *testing.T) {
	h := newHarness(t, testConfig())

	h.send(tuitest.KeyCtrl('o'))
	require.True(t, h.m.entries[0].field.Editing())

	h.send(tuitest.Type("!")...)
	h.send(tuitest.KeyCtrl('o'))

	assert.False(t, h.m.entries[0].field.Editing())
	assert.Equal(t, field.Text("Ada!"), h.values()["name"])
}

func TestModel_OverrideReturnsEditorFocus(t *testing.T) {
	h := newHarness(t, testConfig())

	cmd := h.send(tuitest.KeyCtrl('o'))
	require.True(t, h.m.entries[0].field.Editing())
	assert.NotNil(t, cmd, "cursor blink from the focused editor is kept")
}

func TestModel_OverrideSkipsReadOnly(t *testing.T) {
	h := newHarness(t, testConfig())
	h.send(tuitest.KeyDown(), tuitest.KeyDown())
	require.Equal(t, 2, h.m.focus)

	h.send(tuitest.KeyCtrl('o'))
	assert.False(t, h.m.entries[2].field.Editing())

	h.send(tuitest.Type("zz")...)
	h.send(tuitest.KeyCtrl('o'))

	assert.False(t, h.m.entries[2].field.Editing())
	assert.Equal(t, field.Text("u-1"), h.values()["id"])
	assert.False(t, h.m.toasts.HasToasts(), "no save reported")
}

func TestModel_Delete(t *testing.T) {
	t.Run("not deletable", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.send(tuitest.KeyPress('x'))

		assert.Nil(t, h.m.confirm)
		assert.Len(t, h.m.Values(), 3)
	})

	t.Run("confirm hides field", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.send(tuitest.KeyDown(), tuitest.KeyPress('x'))
		require.NotNil(t, h.m.confirm)

		h.send(tuitest.KeyPress('y'))
		assert.Nil(t, h.m.confirm)
		assert.NotContains(t, h.values(), "age")
		assert.Equal(t, 2, h.m.focus, "focus moves to the next visible field")
	})

	t.Run("decline keeps field", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.send(tuitest.KeyDown(), tuitest.KeyPress('x'), tuitest.KeyPress('n'))

		assert.Nil(t, h.m.confirm)
		assert.Contains(t, h.values(), "age")
	})
}

func TestModel_ReadOnlyPatterns(t *testing.T) {
	cfg := testConfig()
	cfg.ReadOnly = []string{"na*"}
	h := newHarness(t, cfg)

	h.send(tuitest.KeyEnter())
	assert.False(t, h.m.entries[0].field.Editing())
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t, testConfig())

	h.send(tuitest.KeyPress('?'))
	assert.True(t, h.m.showHelp)
	assert.Contains(t, tuitest.StripANSI(fmt.Sprint(h.m.View().Content)), "Keyboard shortcuts")

	h.send(tuitest.KeyEnter())
	assert.False(t, h.m.entries[0].field.Editing(), "help swallows keys")

	h.send(tuitest.KeyEsc())
	assert.False(t, h.m.showHelp)
}

func TestModel_Quit(t *testing.T) {
	h := newHarness(t, testConfig())

	cmd := h.send(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, h.m.quitting)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_View(t *testing.T) {
	h := newHarness(t, testConfig())

	v := h.m.View()
	assert.True(t, v.AltScreen)
	assert.Equal(t, tea.MouseModeAllMotion, v.MouseMode)

	out := tuitest.StripANSI(fmt.Sprint(v.Content))
	assert.Contains(t, out, "pencil")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Ada")
	assert.Contains(t, out, "36")
}

func TestDiffSummary(t *testing.T) {
	tests := []struct {
		before, after    string
		added, removed int
	}{
		{"", "abc", 3, 0},
		{"abc", "", 0, 3},
		{"Ada", "Ada L", 2, 0},
		{"same", "same", 0, 0},
	}

	for _, tt := range tests {
		added, removed := diffSummary(tt.before, tt.after)
		assert.Equal(t, tt.added, added, "%q -> %q", tt.before, tt.after)
		assert.Equal(t, tt.removed, removed, "%q -> %q", tt.before, tt.after)
	}
}
