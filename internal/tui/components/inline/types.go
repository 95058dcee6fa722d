package inline

import (
	"errors"
	"fmt"
	"slices"
)

// Type selects the editor and display strategy for a field.
type Type string

const (
	TypeText     Type = "text"
	TypePassword Type = "password"
	TypeTextarea Type = "textarea"
	TypeNumber   Type = "number"
	TypeCheckbox Type = "checkbox"
)

// Position places the button row relative to the editor.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
)

// ErrUnsupportedType matches any *UnsupportedTypeError.
var ErrUnsupportedType = errors.New("unsupported field type")

// UnsupportedTypeError is returned when a field type has no registered strategy.
type UnsupportedTypeError struct {
	Type Type
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported field type %q", string(e.Type))
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// Choice is a selectable option of a checkbox field.
type Choice struct {
	Value string
	Label string
}

func (c Choice) label() string {
	if c.Label == "" {
		return c.Value
	}
	return c.Label
}

// Attributes are extra editor settings supplied by the caller. Only keys in
// the allow-list reach an editor.
type Attributes map[string]string

var allowedAttributes = []string{"placeholder", "char_limit", "width", "height", "prompt"}

// filterAttributes returns a new map holding only allow-listed keys. The
// input map is never modified.
func filterAttributes(in Attributes) Attributes {
	out := make(Attributes, len(allowedAttributes))
	for k, v := range in {
		if slices.Contains(allowedAttributes, k) {
			out[k] = v
		}
	}
	return out
}
