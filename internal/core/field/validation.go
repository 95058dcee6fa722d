package field

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Rules holds declarative validation rules for a field value.
type Rules struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Min       int // minimum selections (multi-select)
	Max       int // maximum selections (multi-select)
}

// Check returns a human readable reason v violates the rules, or "" when v is
// acceptable.
func (r Rules) Check(v Value) string {
	if v.Kind() == KindList {
		return r.checkSelection(len(v.list))
	}
	if v.IsNullish() {
		if r.Required {
			return "required"
		}
		return ""
	}
	return r.checkText(v.String())
}

// Validator adapts the rules to the Callbacks.Validate signature.
func (r Rules) Validator() func(Value) bool {
	return func(v Value) bool { return r.Check(v) == "" }
}

func (r Rules) checkText(value string) string {
	if r.Required && value == "" {
		return "required"
	}
	if value == "" {
		return ""
	}
	n := utf8.RuneCountInString(value)
	if r.MinLength > 0 && n < r.MinLength {
		return fmt.Sprintf("minimum %d characters", r.MinLength)
	}
	if r.MaxLength > 0 && n > r.MaxLength {
		return fmt.Sprintf("maximum %d characters", r.MaxLength)
	}
	if r.Pattern != nil && !r.Pattern.MatchString(value) {
		return fmt.Sprintf("must match pattern: %s", r.Pattern.String())
	}
	return ""
}

func (r Rules) checkSelection(count int) string {
	if r.Required && count == 0 {
		return "at least one selection required"
	}
	if r.Min > 0 && count < r.Min {
		return fmt.Sprintf("select at least %d", r.Min)
	}
	if r.Max > 0 && count > r.Max {
		return fmt.Sprintf("select at most %d", r.Max)
	}
	return ""
}
