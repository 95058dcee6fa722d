package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestValue_IsNullish(t *testing.T) {
	assert.True(t, Null().IsNullish())
	assert.True(t, Value{}.IsNullish())
	assert.False(t, Text("").IsNullish(), "empty string is displayable")
	assert.False(t, Number(0).IsNullish())
	assert.False(t, List().IsNullish())
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), ""},
		{"text", Text("hello"), "hello"},
		{"integer number", Number(42), "42"},
		{"fractional number", Number(3.25), "3.25"},
		{"list", List("a", "b"), "a, b"},
		{"empty list", List(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"null vs null", Null(), Null(), true},
		{"null vs empty text", Null(), Text(""), false},
		{"same text", Text("x"), Text("x"), true},
		{"different text", Text("x"), Text("y"), false},
		{"number vs text", Number(1), Text("1"), false},
		{"same number", Number(1.5), Number(1.5), true},
		{"same list", List("a", "b"), List("a", "b"), true},
		{"list order matters", List("a", "b"), List("b", "a"), false},
		{"empty lists", List(), List(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
		})
	}
}

func TestValue_ListCopies(t *testing.T) {
	src := []string{"a", "b"}
	v := List(src...)
	src[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, v.Items())

	items := v.Items()
	items[1] = "changed"
	assert.Equal(t, []string{"a", "b"}, v.Items())
	assert.True(t, v.Contains("a"))
	assert.False(t, Text("a").Contains("a"))
}

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"nil", nil, Null()},
		{"string", "hi", Text("hi")},
		{"int", 7, Number(7)},
		{"float", 2.5, Number(2.5)},
		{"bool", true, Text("true")},
		{"string slice", []string{"a"}, List("a")},
		{"any slice", []any{"a", 1}, List("a", "1")},
		{"value passthrough", Text("v"), Text("v")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(FromAny(tt.in)), "got %v", FromAny(tt.in))
		})
	}
}

func TestValue_MarshalYAML(t *testing.T) {
	doc := map[string]Value{
		"name":  Text("Ada"),
		"age":   Number(36),
		"tags":  List("go", "rust"),
		"notes": Null(),
	}

	out, err := yaml.Marshal(doc)
	assert.NoError(t, err)
	assert.Equal(t, "age: 36\nname: Ada\nnotes: null\ntags:\n    - go\n    - rust\n", string(out))
}
