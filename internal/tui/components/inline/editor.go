package inline

import (
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/pencil/internal/core/field"
)

// Hooks connect an Editor to the field that hosts it.
type Hooks struct {
	SetValue func(field.Value)
	Toggle   func(token string, checked bool)
	Draft    func() field.Value
	Focus    func()
	Blur     func()
}

// Editor is the edit surface of a field. Built-in strategies and custom
// editors implement the same contract: they receive the current draft and
// report changes through Hooks.
type Editor interface {
	SetValue(v field.Value)
	Focus() tea.Cmd
	Blur()
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Display renders a committed, non-null value in view mode.
type Display interface {
	Render(v field.Value) string
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(v field.Value) string

func (f DisplayFunc) Render(v field.Value) string { return f(v) }

// StaticDisplay returns a display factory that ignores the spec.
func StaticDisplay(d Display) func(EditorSpec) Display {
	return func(EditorSpec) Display { return d }
}

// EditorSpec is what an editor factory receives.
type EditorSpec struct {
	Placeholder string
	Attributes  Attributes
	Choices     []Choice
	Width       int
	Hooks       Hooks
}

// Strategy pairs an editor factory with a display factory.
type Strategy struct {
	NewEditor  func(EditorSpec) Editor
	NewDisplay func(EditorSpec) Display
	// Multiline fields keep plain enter for the editor and save on the
	// submit accelerator only.
	Multiline bool
	// Accept rejects drafts the editor cannot represent, ahead of the
	// caller's own validation. Nil accepts everything.
	Accept func(field.Value) bool
}

// Registry maps field types to strategies.
type Registry struct {
	strategies map[Type]Strategy
}

// DefaultRegistry holds the built-in strategies.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry with the built-in strategies registered.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[Type]Strategy)}
	registerBuiltins(r)
	return r
}

// Register adds or replaces the strategy for t.
func (r *Registry) Register(t Type, s Strategy) {
	r.strategies[t] = s
}

// Lookup returns the strategy for t or an *UnsupportedTypeError.
func (r *Registry) Lookup(t Type) (Strategy, error) {
	s, ok := r.strategies[t]
	if !ok {
		return Strategy{}, &UnsupportedTypeError{Type: t}
	}
	return s, nil
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []Type {
	types := make([]Type, 0, len(r.strategies))
	for t := range r.strategies {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}
