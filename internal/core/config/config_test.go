package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/pencil/internal/core/field"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.Equal(t, "tokyo-night", cfg.Theme)
		assert.NotEmpty(t, cfg.Fields)
		assert.True(t, cfg.ShowHelp)
	})

	t.Run("empty path returns defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Fields[0].Name, cfg.Fields[0].Name)
	})

	t.Run("file replaces default fields", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "pencil.yaml", `
theme: gruvbox
readonly:
  - "id"
fields:
  - name: title
    value: Hello
  - name: count
    type: number
    value: 3
    buttons:
      position: before
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "gruvbox", cfg.Theme)
		require.Len(t, cfg.Fields, 2)
		assert.Equal(t, FieldTypeText, cfg.Fields[0].Type, "type defaults to text")
		assert.Equal(t, PositionAfter, cfg.Fields[0].Buttons.Position)
		assert.Equal(t, PositionBefore, cfg.Fields[1].Buttons.Position)
		assert.Equal(t, field.Number(3), cfg.Fields[1].InitialValue())
	})

	t.Run("parse error", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "pencil.yaml", "fields: [")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config file")
	})

	t.Run("invalid config", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "pencil.yaml", "fields:\n  - name: when\n    type: date\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown type "date"`)
	})

	t.Run("values files override in order", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "title: first\ncount: 1\n")
		writeFile(t, dir, "b.yaml", "title: second\n")
		path := writeFile(t, dir, "pencil.yaml", `
values_files: [a.yaml, b.yaml]
fields:
  - name: title
    value: original
  - name: count
    type: number
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, field.Text("second"), cfg.Fields[0].InitialValue())
		assert.Equal(t, field.Number(1), cfg.Fields[1].InitialValue())
	})

	t.Run("missing values file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "pencil.yaml", "values_files: [gone.yaml]\nfields:\n  - name: a\n")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gone.yaml")
	})
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.applyDefaults()
	require.NoError(t, cfg.ValidateDeep(""))
	assert.Empty(t, cfg.Warnings())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg: Config{Theme: "tokyo-night", Fields: []FieldConfig{
				{Name: "a", Type: FieldTypeText, Buttons: Buttons{Position: PositionAfter}},
			}},
		},
		{
			name:    "unknown theme",
			cfg:     Config{Theme: "solarized"},
			wantErr: `unknown theme "solarized"`,
		},
		{
			name: "missing name",
			cfg: Config{Theme: "tokyo-night", Fields: []FieldConfig{
				{Type: FieldTypeText, Buttons: Buttons{Position: PositionAfter}},
			}},
			wantErr: "field 0: name is required",
		},
		{
			name: "duplicate name",
			cfg: Config{Theme: "tokyo-night", Fields: []FieldConfig{
				{Name: "a", Type: FieldTypeText, Buttons: Buttons{Position: PositionAfter}},
				{Name: "a", Type: FieldTypeNumber, Buttons: Buttons{Position: PositionAfter}},
			}},
			wantErr: `duplicate field name "a"`,
		},
		{
			name: "checkbox without choices",
			cfg: Config{Theme: "tokyo-night", Fields: []FieldConfig{
				{Name: "tags", Type: FieldTypeCheckbox, Buttons: Buttons{Position: PositionAfter}},
			}},
			wantErr: "checkbox fields require choices",
		},
		{
			name: "bad button position",
			cfg: Config{Theme: "tokyo-night", Fields: []FieldConfig{
				{Name: "a", Type: FieldTypeText, Buttons: Buttons{Position: "left"}},
			}},
			wantErr: `invalid button position "left"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFieldTypeIsValid(t *testing.T) {
	tests := []struct {
		fieldType FieldType
		want      bool
	}{
		{FieldTypeText, true},
		{FieldTypePassword, true},
		{FieldTypeTextarea, true},
		{FieldTypeNumber, true},
		{FieldTypeCheckbox, true},
		{"", false},
		{"date", false},
		{"TEXT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fieldType.IsValid())
		})
	}
}

func TestIsReadOnly(t *testing.T) {
	cfg := Config{ReadOnly: []string{"id", "meta.*", "audit/**"}}

	tests := []struct {
		name string
		f    FieldConfig
		want bool
	}{
		{"exact", FieldConfig{Name: "id"}, true},
		{"star", FieldConfig{Name: "meta.created"}, true},
		{"doublestar", FieldConfig{Name: "audit/by/user"}, true},
		{"own flag", FieldConfig{Name: "title", ReadOnly: true}, true},
		{"editable", FieldConfig{Name: "title"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsReadOnly(tt.f))
		})
	}
}

func TestInitialValue(t *testing.T) {
	tests := []struct {
		name string
		f    FieldConfig
		want field.Value
	}{
		{"null", FieldConfig{Type: FieldTypeText}, field.Null()},
		{"text", FieldConfig{Type: FieldTypeText, Value: "Ada"}, field.Text("Ada")},
		{"number", FieldConfig{Type: FieldTypeNumber, Value: 4}, field.Number(4)},
		{"number from string", FieldConfig{Type: FieldTypeNumber, Value: " 2.5 "}, field.Number(2.5)},
		{"list", FieldConfig{Type: FieldTypeCheckbox, Value: []any{"go", "zig"}}, field.List("go", "zig")},
		{"scalar checkbox", FieldConfig{Type: FieldTypeCheckbox, Value: "go"}, field.List("go")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(tt.f.InitialValue()), "got %v", tt.f.InitialValue())
		})
	}
}

func TestRulesCompile(t *testing.T) {
	rules, err := Rules{Required: true, MaxLength: 3, Pattern: "^[a-z]+$"}.Compile()
	require.NoError(t, err)

	assert.Empty(t, rules.Check(field.Text("abc")))
	assert.NotEmpty(t, rules.Check(field.Text("abcd")))
	assert.NotEmpty(t, rules.Check(field.Text("AB")))
	assert.NotEmpty(t, rules.Check(field.Null()))

	_, err = Rules{Pattern: "[oops"}.Compile()
	assert.Error(t, err)
}
