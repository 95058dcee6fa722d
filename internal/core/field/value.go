package field

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the content of an inline field: null, a string, a number, or an
// ordered list of option tokens for multi-select fields.
//
// The zero Value is null.
type Value struct {
	kind Kind
	text string
	num  float64
	list []string
}

// Null returns the nullish value.
func Null() Value { return Value{} }

// Text returns a string value. The empty string is a present value, not null.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// List returns a multi-select value holding a copy of items.
func List(items ...string) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

// FromAny converts a decoded YAML/JSON scalar or sequence into a Value.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return Text(t)
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case float64:
		return Number(t)
	case bool:
		return Text(strconv.FormatBool(t))
	case []string:
		return List(t...)
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			items = append(items, fmt.Sprint(item))
		}
		return List(items...)
	default:
		return Text(fmt.Sprint(t))
	}
}

func (v Value) Kind() Kind { return v.kind }

// IsNullish reports whether v is null. Empty text and empty lists are not nullish.
func (v Value) IsNullish() bool { return v.kind == KindNull }

// Number returns the numeric content and whether v is a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Items returns a copy of the list content. Non-list values yield nil.
func (v Value) Items() []string {
	if v.kind != KindList {
		return nil
	}
	return slices.Clone(v.list)
}

// Contains reports whether a list value holds token.
func (v Value) Contains(token string) bool {
	return v.kind == KindList && slices.Contains(v.list, token)
}

// String renders v as display text. Null renders as the empty string; callers
// that need to distinguish null must check IsNullish first.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindList:
		return strings.Join(v.list, ", ")
	default:
		return ""
	}
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindText:
		return v.text == o.text
	case KindNumber:
		return v.num == o.num
	case KindList:
		return slices.Equal(v.list, o.list)
	default:
		return true
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindText:
		return v.text, nil
	case KindNumber:
		return v.num, nil
	case KindList:
		if v.list == nil {
			return []string{}, nil
		}
		return v.list, nil
	default:
		return nil, nil
	}
}
