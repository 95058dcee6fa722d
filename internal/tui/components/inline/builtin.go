package inline

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/pencil/internal/core/field"
	"github.com/colonyops/pencil/internal/core/styles"
)

const defaultWidth = 40

func registerBuiltins(r *Registry) {
	plain := DisplayFunc(func(v field.Value) string { return v.String() })

	r.Register(TypeText, Strategy{
		NewEditor:  func(spec EditorSpec) Editor { return newTextEditor(spec, parseText) },
		NewDisplay: StaticDisplay(plain),
	})
	// The draft of a password field is typed in clear text; only the
	// committed value is masked.
	r.Register(TypePassword, Strategy{
		NewEditor:  func(spec EditorSpec) Editor { return newTextEditor(spec, parseText) },
		NewDisplay: StaticDisplay(DisplayFunc(func(field.Value) string { return styles.PasswordMask })),
	})
	r.Register(TypeNumber, Strategy{
		NewEditor:  func(spec EditorSpec) Editor { return newTextEditor(spec, parseNumber) },
		NewDisplay: StaticDisplay(plain),
		Accept: func(v field.Value) bool {
			return v.Kind() == field.KindNumber || v.IsNullish()
		},
	})
	r.Register(TypeTextarea, Strategy{
		NewEditor:  newTextareaEditor,
		NewDisplay: StaticDisplay(plain),
		Multiline:  true,
	})
	r.Register(TypeCheckbox, Strategy{
		NewEditor:  newCheckboxEditor,
		NewDisplay: newCheckboxDisplay,
	})
}

func parseText(s string) field.Value { return field.Text(s) }

// parseNumber keeps unparsable input as text so validation can reject it.
func parseNumber(s string) field.Value {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return field.Null()
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return field.Number(n)
	}
	return field.Text(s)
}

func attrInt(attrs Attributes, key string, fallback int) int {
	if v, ok := attrs[key]; ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func placeholderFor(spec EditorSpec) string {
	if p, ok := spec.Attributes["placeholder"]; ok {
		return p
	}
	return spec.Placeholder
}

// textEditor is a single-line editor over bubbles textinput.
type textEditor struct {
	input textinput.Model
	parse func(string) field.Value
	hooks Hooks
}

func newTextEditor(spec EditorSpec, parse func(string) field.Value) Editor {
	ti := textinput.New()
	ti.Placeholder = placeholderFor(spec)
	ti.Prompt = ""
	if p, ok := spec.Attributes["prompt"]; ok {
		ti.Prompt = p
	}
	ti.CharLimit = attrInt(spec.Attributes, "char_limit", 0)
	ti.SetWidth(attrInt(spec.Attributes, "width", spec.Width))

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	return &textEditor{input: ti, parse: parse, hooks: spec.Hooks}
}

func (e *textEditor) SetValue(v field.Value) {
	e.input.SetValue(v.String())
	e.input.CursorEnd()
}

func (e *textEditor) Focus() tea.Cmd { return e.input.Focus() }
func (e *textEditor) Blur() { e.input.Blur() }
func (e *textEditor) View() string { return e.input.View() }

func (e *textEditor) Update(msg tea.Msg) tea.Cmd {
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if after := e.input.Value(); after != before {
		e.hooks.SetValue(e.parse(after))
	}
	return cmd
}

// textareaEditor is a multi-line editor over bubbles textarea.
type textareaEditor struct {
	input textarea.Model
	hooks Hooks
}

func newTextareaEditor(spec EditorSpec) Editor {
	ta := textarea.New()
	ta.Placeholder = placeholderFor(spec)
	ta.ShowLineNumbers = false
	ta.CharLimit = attrInt(spec.Attributes, "char_limit", 0)
	ta.SetWidth(attrInt(spec.Attributes, "width", spec.Width))
	ta.SetHeight(attrInt(spec.Attributes, "height", 4))

	return &textareaEditor{input: ta, hooks: spec.Hooks}
}

func (e *textareaEditor) SetValue(v field.Value) {
	e.input.SetValue(v.String())
}

func (e *textareaEditor) Focus() tea.Cmd { return e.input.Focus() }
func (e *textareaEditor) Blur() { e.input.Blur() }
func (e *textareaEditor) View() string { return e.input.View() }

func (e *textareaEditor) Update(msg tea.Msg) tea.Cmd {
	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	if after := e.input.Value(); after != before {
		e.hooks.SetValue(field.Text(after))
	}
	return cmd
}

// checkboxEditor toggles option tokens of a multi-select draft. It keeps no
// selection of its own and reads the draft through Hooks.
type checkboxEditor struct {
	choices []Choice
	cursor  int
	focused bool
	hooks   Hooks
}

func newCheckboxEditor(spec EditorSpec) Editor {
	return &checkboxEditor{choices: spec.Choices, hooks: spec.Hooks}
}

func (e *checkboxEditor) SetValue(field.Value) { e.cursor = 0 }

func (e *checkboxEditor) Focus() tea.Cmd {
	e.focused = true
	return nil
}

func (e *checkboxEditor) Blur() { e.focused = false }

func (e *checkboxEditor) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !e.focused || len(e.choices) == 0 {
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		e.cursor = max(e.cursor-1, 0)
	case "down", "j":
		e.cursor = min(e.cursor+1, len(e.choices)-1)
	case "space", "x":
		token := e.choices[e.cursor].Value
		e.hooks.Toggle(token, !e.hooks.Draft().Contains(token))
	}
	return nil
}

func (e *checkboxEditor) View() string {
	draft := e.hooks.Draft()
	lines := make([]string, 0, len(e.choices))
	for i, c := range e.choices {
		check := styles.IconUnchecked
		if draft.Contains(c.Value) {
			check = styles.IconChecked
		}

		cursor := "  "
		style := styles.TextForegroundStyle
		if e.focused && i == e.cursor {
			cursor = styles.CheckboxCursorStyle.Render(styles.IconCursor) + " "
			style = styles.TextPrimaryStyle
		}
		lines = append(lines, cursor+style.Render(check+" "+c.label()))
	}
	return strings.Join(lines, "\n")
}

// newCheckboxDisplay renders selected tokens by their choice labels.
func newCheckboxDisplay(spec EditorSpec) Display {
	choices := spec.Choices
	return DisplayFunc(func(v field.Value) string {
		items := v.Items()
		labels := make([]string, 0, len(items))
		for _, token := range items {
			label := token
			for _, c := range choices {
				if c.Value == token {
					label = c.label()
					break
				}
			}
			labels = append(labels, label)
		}
		return strings.Join(labels, ", ")
	})
}
