// Package inline renders a field.Controller as a click-to-edit bubbletea
// component. The component owns no field state of its own: it reads
// controller snapshots and forwards terminal events to controller handlers.
package inline

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/colonyops/pencil/internal/core/field"
	"github.com/colonyops/pencil/internal/core/logging"
	"github.com/colonyops/pencil/internal/core/styles"
)

const (
	DefaultPlaceholder       = "Click to edit"
	DefaultValidationMessage = "Please provide a valid value"
	DefaultSaveLabel         = "Save"
	DefaultCancelLabel       = "Cancel"
	DefaultDeleteLabel       = "Delete"
)

// Options configures a Field. It is read once by New.
type Options struct {
	Name     string
	Label    string
	Type     Type // defaults to TypeText
	Value    field.Value
	EditMode bool
	ReadOnly bool
	Choices  []Choice // checkbox options

	Placeholder       string
	Instructions      string // markdown
	ValidationMessage string
	// Explain, when set, replaces ValidationMessage with a reason derived
	// from the rejected draft.
	Explain func(field.Value) string

	Attributes Attributes
	Width      int

	ClassPrefix       string
	HoverClass        string
	ViewClass         string
	SaveButtonClass   string
	CancelButtonClass string
	DeleteButtonClass string

	SaveLabel      string
	CancelLabel    string
	DeleteLabel    string
	HideSave       bool
	HideCancel     bool
	ShowDelete     bool
	ButtonPosition Position

	SaveOnBlur        bool
	CancelOnBlur      bool
	DisableAutoSubmit bool
	DisableAutoCancel bool
	SubmitKeys        []string
	ShowHelp          bool

	// Editor and Display replace the type's built-in strategy.
	Editor  func(EditorSpec) Editor
	Display Display

	Callbacks field.Callbacks
	OnBlur    func(field.Value)
}

type buttonKind int

const (
	buttonSave buttonKind = iota
	buttonCancel
	buttonDelete
)

type button struct {
	kind  buttonKind
	label string
	class string
}

// Field is an inline click-to-edit field.
type Field struct {
	opts     Options
	ctrl     *field.Controller
	strategy Strategy
	editor   Editor
	display  Display
	attrs    Attributes
	keys     keyMap
	help     help.Model

	instructions string

	focused     bool
	buttonFocus int // 0 is the editor, n is the nth visible button
	x, y        int

	log zerolog.Logger
}

// New creates a field using DefaultRegistry.
func New(opts Options) (*Field, error) {
	return NewWithRegistry(DefaultRegistry, opts)
}

// NewWithRegistry creates a field whose type is resolved against reg. An
// unknown type yields an error matching ErrUnsupportedType.
func NewWithRegistry(reg *Registry, opts Options) (*Field, error) {
	if opts.Type == "" {
		opts.Type = TypeText
	}
	strategy, err := reg.Lookup(opts.Type)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", opts.Name, err)
	}
	applyDefaults(&opts)

	f := &Field{
		opts:     opts,
		strategy: strategy,
		attrs:    filterAttributes(opts.Attributes),
		keys:     newKeyMap(opts.SubmitKeys),
		help:     help.New(),
		log:      logging.FieldLogger("inline", opts.Name),
	}

	if opts.SaveOnBlur && opts.CancelOnBlur {
		f.log.Warn().Msg("both save_on_blur and cancel_on_blur are set, blur will save")
	}

	tokens := make([]string, 0, len(opts.Choices))
	for _, c := range opts.Choices {
		tokens = append(tokens, c.Value)
	}

	ctrl, err := field.New(field.Config{
		Name:     opts.Name,
		Value:    opts.Value,
		EditMode: opts.EditMode,
		ReadOnly: opts.ReadOnly,
		Keys: field.KeyOptions{
			DisableAutoSubmit: opts.DisableAutoSubmit,
			DisableAutoCancel: opts.DisableAutoCancel,
			Multiline:         strategy.Multiline,
		},
		Options:   tokens,
		Callbacks: withAccept(opts.Callbacks, strategy.Accept),
	})
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", opts.Name, err)
	}
	f.ctrl = ctrl

	spec := EditorSpec{
		Placeholder: opts.Placeholder,
		Attributes:  f.attrs,
		Choices:     opts.Choices,
		Width:       opts.Width,
		Hooks: Hooks{
			SetValue: ctrl.SetDraft,
			Toggle:   ctrl.Toggle,
			Draft:    func() field.Value { return ctrl.State().Draft },
			Focus:    ctrl.NotifyFocus,
			Blur:     f.blurEdit,
		},
	}

	newEditor := strategy.NewEditor
	if opts.Editor != nil {
		newEditor = opts.Editor
	}
	f.editor = newEditor(spec)

	f.display = opts.Display
	if f.display == nil {
		f.display = strategy.NewDisplay(spec)
	}

	f.instructions = f.renderInstructions()

	if ctrl.Mode() == field.ModeEdit {
		f.editor.SetValue(ctrl.State().Draft)
	}

	return f, nil
}

func applyDefaults(opts *Options) {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	if opts.ValidationMessage == "" {
		opts.ValidationMessage = DefaultValidationMessage
	}
	if opts.ButtonPosition == "" {
		opts.ButtonPosition = PositionAfter
	}
	if opts.SaveLabel == "" {
		opts.SaveLabel = DefaultSaveLabel
	}
	if opts.CancelLabel == "" {
		opts.CancelLabel = DefaultCancelLabel
	}
	if opts.DeleteLabel == "" {
		opts.DeleteLabel = DefaultDeleteLabel
	}
}

// withAccept runs the strategy's representability check before the
// caller's validator.
func withAccept(cb field.Callbacks, accept func(field.Value) bool) field.Callbacks {
	if accept == nil {
		return cb
	}
	validate := cb.Validate
	cb.Validate = func(v field.Value) bool {
		if !accept(v) {
			return false
		}
		return validate == nil || validate(v)
	}
	return cb
}

func (f *Field) Name() string { return f.opts.Name }
func (f *Field) Type() Type { return f.opts.Type }
func (f *Field) Focused() bool { return f.focused }
func (f *Field) State() field.State { return f.ctrl.State() }
func (f *Field) Mode() field.Mode { return f.ctrl.Mode() }
func (f *Field) Hidden() bool { return f.ctrl.Mode() == field.ModeHidden }
func (f *Field) Editing() bool { return f.ctrl.Mode() == field.ModeEdit }
func (f *Field) Committed() field.Value { return f.ctrl.State().Committed }

// SetOrigin records where the host draws the field, for mouse hit testing.
func (f *Field) SetOrigin(x, y int) {
	f.x, f.y = x, y
}

// Origin returns the position recorded by SetOrigin.
func (f *Field) Origin() (x, y int) {
	return f.x, f.y
}

// Contains reports whether the cell (x, y) lies inside the rendered field.
func (f *Field) Contains(x, y int) bool {
	view := f.View()
	if view == "" {
		return false
	}
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	return x >= f.x && x < f.x+w && y >= f.y && y < f.y+h
}

// Sync applies externally controlled inputs. Hosts call it before
// forwarding any other message in the same update.
func (f *Field) Sync(value field.Value, editMode bool) tea.Cmd {
	prev := f.ctrl.Mode()
	before := f.ctrl.State().Draft

	f.ctrl.Sync(value, editMode)

	if prev == field.ModeEdit && f.ctrl.Mode() == field.ModeEdit {
		if draft := f.ctrl.State().Draft; !draft.Equal(before) {
			f.editor.SetValue(draft)
		}
	}
	return f.reconcile(prev)
}

// BeginEdit enters edit mode, as a click on the field does.
func (f *Field) BeginEdit() tea.Cmd {
	return f.transition(func() { f.ctrl.BeginEdit() })
}

// Delete hides the field from either mode.
func (f *Field) Delete() tea.Cmd {
	return f.transition(f.ctrl.Delete)
}

// Focus gives the field keyboard focus.
func (f *Field) Focus() tea.Cmd {
	if f.focused {
		return nil
	}
	f.focused = true
	if f.ctrl.Mode() == field.ModeEdit && f.buttonFocus == 0 {
		return f.focusEditor()
	}
	return nil
}

// Blur removes keyboard focus and applies the blur mode.
func (f *Field) Blur() {
	if !f.focused {
		return
	}
	f.focused = false
	f.ctrl.SetHover(false)
	f.blurEdit()
}

func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	if f.ctrl.Mode() == field.ModeHidden {
		return f, nil
	}

	switch msg := msg.(type) {
	case tea.MouseMotionMsg:
		if f.ctrl.Mode() == field.ModeView {
			m := msg.Mouse()
			f.ctrl.SetHover(f.Contains(m.X, m.Y))
		}
		return f, nil
	case tea.MouseClickMsg:
		m := msg.Mouse()
		if m.Button != tea.MouseLeft {
			return f, nil
		}
		inside := f.Contains(m.X, m.Y)
		switch {
		case inside && f.ctrl.Mode() == field.ModeView:
			return f, f.BeginEdit()
		case inside && f.ctrl.Mode() == field.ModeEdit:
			if b, ok := f.buttonAt(m.X, m.Y); ok {
				return f, f.press(b)
			}
		case !inside && f.ctrl.Mode() == field.ModeEdit:
			f.blurEdit()
		}
		return f, nil
	case tea.KeyPressMsg:
		if !f.focused {
			return f, nil
		}
		return f, f.handleKey(msg)
	}

	if f.ctrl.Mode() == field.ModeEdit {
		return f, f.editor.Update(msg)
	}
	return f, nil
}

func (f *Field) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if f.ctrl.Mode() == field.ModeView {
		if key.Matches(msg, f.keys.Activate) {
			return f.BeginEdit()
		}
		return nil
	}

	buttons := f.buttons()
	if f.buttonFocus > 0 {
		switch {
		case key.Matches(msg, f.keys.Next):
			f.buttonFocus = min(f.buttonFocus+1, len(buttons))
		case key.Matches(msg, f.keys.Prev):
			f.buttonFocus--
			if f.buttonFocus == 0 {
				return f.focusEditor()
			}
		case key.Matches(msg, f.keys.Press):
			return f.press(buttons[f.buttonFocus-1])
		case key.Matches(msg, f.keys.Cancel):
			return f.transition(func() { f.ctrl.HandleKey(field.KeyEscape) })
		}
		return nil
	}

	if key.Matches(msg, f.keys.Next) && len(buttons) > 0 {
		f.editor.Blur()
		f.buttonFocus = 1
		return nil
	}

	if k := f.keys.classify(msg); k != field.KeyOther {
		fired := false
		cmd := f.transition(func() { fired = f.ctrl.HandleKey(k) })
		if fired {
			return cmd
		}
	}
	return f.editor.Update(msg)
}

func (f *Field) press(b button) tea.Cmd {
	switch b.kind {
	case buttonSave:
		return f.transition(func() { f.ctrl.AttemptSave() })
	case buttonCancel:
		return f.transition(f.ctrl.Cancel)
	case buttonDelete:
		return f.transition(f.ctrl.Delete)
	}
	return nil
}

// transition runs fn against the controller and reconciles the editor with
// any mode change it caused.
func (f *Field) transition(fn func()) tea.Cmd {
	prev := f.ctrl.Mode()
	fn()
	return f.reconcile(prev)
}

func (f *Field) reconcile(prev field.Mode) tea.Cmd {
	mode := f.ctrl.Mode()
	if mode == prev {
		return nil
	}

	f.buttonFocus = 0
	if mode == field.ModeEdit {
		f.editor.SetValue(f.ctrl.State().Draft)
		if f.focused {
			return f.focusEditor()
		}
		return nil
	}
	if prev == field.ModeEdit {
		f.editor.Blur()
	}
	return nil
}

// focusEditor focuses the edit surface and reports the focus event once.
func (f *Field) focusEditor() tea.Cmd {
	cmd := f.editor.Focus()
	f.ctrl.NotifyFocus()
	return cmd
}

func (f *Field) blurEdit() {
	if f.ctrl.Mode() != field.ModeEdit {
		return
	}
	switch {
	case f.opts.SaveOnBlur:
		if f.opts.OnBlur != nil {
			f.opts.OnBlur(f.ctrl.State().Draft)
		}
		f.transition(func() { f.ctrl.AttemptSave() })
	case f.opts.CancelOnBlur:
		f.transition(f.ctrl.Cancel)
	default:
		f.editor.Blur()
	}
}

// buttons returns the visible affordances. Save-on-blur fields have none.
func (f *Field) buttons() []button {
	if f.opts.SaveOnBlur {
		return nil
	}

	prefix := f.opts.ClassPrefix
	classOr := func(class string) string {
		if class == "" {
			return prefix + styles.ClassButton
		}
		return class
	}

	var out []button
	if !f.opts.HideSave {
		out = append(out, button{buttonSave, f.opts.SaveLabel, classOr(f.opts.SaveButtonClass)})
	}
	if !f.opts.HideCancel {
		out = append(out, button{buttonCancel, f.opts.CancelLabel, classOr(f.opts.CancelButtonClass)})
	}
	if f.opts.ShowDelete {
		out = append(out, button{buttonDelete, f.opts.DeleteLabel, classOr(f.opts.DeleteButtonClass)})
	}
	return out
}

func (f *Field) renderInstructions() string {
	if strings.TrimSpace(f.opts.Instructions) == "" {
		return ""
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(f.opts.Width),
	)
	if err != nil {
		f.log.Debug().Err(err).Msg("failed to create markdown renderer, showing raw instructions")
		return styles.FormHelpStyle.Render(f.opts.Instructions)
	}

	rendered, err := renderer.Render(f.opts.Instructions)
	if err != nil {
		f.log.Debug().Err(err).Msg("failed to render instructions, showing raw instructions")
		return styles.FormHelpStyle.Render(f.opts.Instructions)
	}
	return strings.Trim(rendered, "\n")
}

// View renders the field. Hidden fields render nothing.
func (f *Field) View() string {
	st := f.ctrl.State()
	if st.Hidden {
		return ""
	}

	var body string
	if st.Editing {
		body = f.editView(st)
	} else {
		body = f.displayView(st)
	}

	titleStyle, borderStyle := f.frameStyles()
	content := body
	if f.opts.Label != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(f.opts.Label), body)
	}
	return borderStyle.Render(content)
}

func (f *Field) frameStyles() (title, border lipgloss.Style) {
	if f.focused {
		return styles.FormTitleStyle, styles.FormFieldFocusedStyle
	}
	return styles.TextMutedStyle, styles.FormFieldStyle
}

// frameOffset returns the cells a style draws before its content.
func frameOffset(s lipgloss.Style) (x, y int) {
	return s.GetMarginLeft() + s.GetBorderLeftSize() + s.GetPaddingLeft(),
		s.GetMarginTop() + s.GetBorderTopSize() + s.GetPaddingTop()
}

// buttonAt returns the button drawn at the screen cell (x, y). It follows the
// layout of View and editView.
func (f *Field) buttonAt(x, y int) (button, bool) {
	buttons := f.buttons()
	if len(buttons) == 0 || f.ctrl.Mode() != field.ModeEdit {
		return button{}, false
	}
	prefix := f.opts.ClassPrefix

	titleStyle, borderStyle := f.frameStyles()
	col, row := frameOffset(borderStyle)
	if f.opts.Label != "" {
		row += lipgloss.Height(titleStyle.Render(f.opts.Label))
	}

	dx, dy := frameOffset(styles.Resolve(prefix+styles.ClassEditWrapper, prefix))
	col, row = col+dx, row+dy
	if f.opts.ButtonPosition != PositionBefore {
		row += lipgloss.Height(f.renderEditor())
	}

	dx, dy = frameOffset(styles.Resolve(prefix+styles.ClassButtonWrapper, prefix))
	col, row = f.x+col+dx, f.y+row+dy

	for i, seg := range f.buttonSegments(buttons) {
		w, h := lipgloss.Width(seg), lipgloss.Height(seg)
		if x >= col && x < col+w && y >= row && y < row+h {
			return buttons[i], true
		}
		col += w + 1
	}
	return button{}, false
}

func (f *Field) displayView(st field.State) string {
	prefix := f.opts.ClassPrefix
	classes := ClassNames(prefix, f.ctrl.AllowEdit(), st.Hovered, f.opts.HoverClass, f.opts.ViewClass)
	style := styles.Resolve(classes, prefix)

	var text string
	if st.Committed.IsNullish() {
		text = style.Inherit(styles.PlaceholderStyle).Render(f.opts.Placeholder)
	} else {
		text = style.Render(f.display.Render(st.Committed))
	}

	if styles.HasClass(classes, styles.ClassPencilIcon) {
		text += " " + styles.TextPrimaryStyle.Render(styles.IconPencil)
	}
	return text
}

func (f *Field) editView(st field.State) string {
	prefix := f.opts.ClassPrefix
	editor := f.renderEditor()
	buttons := f.renderButtons()

	var parts []string
	switch {
	case buttons == "":
		parts = append(parts, editor)
	case f.opts.ButtonPosition == PositionBefore:
		parts = append(parts, buttons, editor)
	default:
		parts = append(parts, editor, buttons)
	}

	if f.instructions != "" {
		parts = append(parts, f.instructions)
	}
	if !st.Valid {
		parts = append(parts, styles.FormErrorStyle.Render(f.validationMessage(st.Draft)))
	}
	if f.opts.ShowHelp && f.focused {
		bindings := f.keys.editHelp(f.strategy.Multiline, buttons != "")
		parts = append(parts, f.help.ShortHelpView(bindings))
	}

	wrapper := styles.Resolve(prefix+styles.ClassEditWrapper, prefix)
	return wrapper.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (f *Field) renderEditor() string {
	prefix := f.opts.ClassPrefix
	return styles.Resolve(prefix+styles.ClassComponentWrap, prefix).Render(f.editor.View())
}

// buttonSegments renders each button on its own. The row joins them with a
// single space.
func (f *Field) buttonSegments(buttons []button) []string {
	prefix := f.opts.ClassPrefix
	out := make([]string, len(buttons))
	for i, b := range buttons {
		style := styles.Resolve(b.class, prefix)
		if f.buttonFocus == i+1 {
			style = styles.ButtonSelectedStyle
		}
		out[i] = style.Render(b.label)
	}
	return out
}

func (f *Field) renderButtons() string {
	buttons := f.buttons()
	if len(buttons) == 0 {
		return ""
	}

	segments := f.buttonSegments(buttons)
	rendered := make([]string, 0, len(segments)*2)
	for i, seg := range segments {
		if i > 0 {
			rendered = append(rendered, " ")
		}
		rendered = append(rendered, seg)
	}

	prefix := f.opts.ClassPrefix
	wrapper := styles.Resolve(prefix+styles.ClassButtonWrapper, prefix)
	return wrapper.Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func (f *Field) validationMessage(draft field.Value) string {
	if f.opts.Explain != nil {
		if reason := f.opts.Explain(draft); reason != "" {
			return reason
		}
	}
	return f.opts.ValidationMessage
}
