// Package config handles configuration loading and validation for pencil.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/pencil/internal/core/styles"
)

// FieldType represents the type of an inline field.
type FieldType string

// Supported field types.
const (
	FieldTypeText     FieldType = "text"
	FieldTypePassword FieldType = "password"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Button positions.
const (
	PositionBefore = "before"
	PositionAfter  = "after"
)

// Config holds the application configuration.
type Config struct {
	Theme       string                `yaml:"theme"`
	SubmitKeys  []string              `yaml:"submit_keys"`
	ClassPrefix string                `yaml:"class_prefix"`
	HoverClass  string                `yaml:"hover_class"`
	ShowHelp    bool                  `yaml:"show_help"`
	ReadOnly    []string              `yaml:"readonly"` // doublestar patterns matched against field names
	Classes     map[string]ClassStyle `yaml:"classes"`
	ValuesFiles []string              `yaml:"values_files"`
	Fields      []FieldConfig         `yaml:"fields"`
}

// ClassStyle defines a user style class. Colors are hex strings.
type ClassStyle struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Bold       bool   `yaml:"bold"`
	Italic     bool   `yaml:"italic"`
	Underline  bool   `yaml:"underline"`
	Faint      bool   `yaml:"faint"`
}

// FieldConfig defines a single inline field.
type FieldConfig struct {
	Name              string            `yaml:"name"`               // key used in output
	Label             string            `yaml:"label"`              // title shown above the field
	Type              FieldType         `yaml:"type"`               // text, password, textarea, number, checkbox
	Value             any               `yaml:"value"`              // initial committed value
	Placeholder       string            `yaml:"placeholder"`        // shown when the value is null
	Instructions      string            `yaml:"instructions"`       // markdown shown while editing
	ValidationMessage string            `yaml:"validation_message"` // shown when a save is rejected
	Class             string            `yaml:"class"`              // extra view-mode classes
	HoverClass        string            `yaml:"hover_class"`        // overrides the top-level hover class
	EditMode          bool              `yaml:"edit_mode"`          // start in edit mode
	ReadOnly          bool              `yaml:"readonly"`
	SaveOnBlur        bool              `yaml:"save_on_blur"`
	CancelOnBlur      bool              `yaml:"cancel_on_blur"`
	DisableAutoSubmit bool              `yaml:"disable_auto_submit"`
	DisableAutoCancel bool              `yaml:"disable_auto_cancel"`
	Attributes        map[string]string `yaml:"attributes"`
	Choices           []Choice          `yaml:"choices"` // checkbox options
	Buttons           Buttons           `yaml:"buttons"`
	Rules             Rules             `yaml:"rules"`
}

// Choice defines a checkbox option.
type Choice struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Buttons configures the edit-mode affordances of a field.
type Buttons struct {
	Position    string `yaml:"position"` // before or after
	HideSave    bool   `yaml:"hide_save"`
	HideCancel  bool   `yaml:"hide_cancel"`
	ShowDelete  bool   `yaml:"show_delete"`
	SaveLabel   string `yaml:"save_label"`
	CancelLabel string `yaml:"cancel_label"`
	DeleteLabel string `yaml:"delete_label"`
}

// Rules are declarative validation rules applied on save.
type Rules struct {
	Required  bool   `yaml:"required"`
	MinLength int    `yaml:"min_length"`
	MaxLength int    `yaml:"max_length"`
	Pattern   string `yaml:"pattern"`
	Min       int    `yaml:"min"` // minimum checkbox selections
	Max       int    `yaml:"max"` // maximum checkbox selections
}

// DefaultConfig returns a Config with sensible defaults and a small set of
// example fields, used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Theme:    styles.DefaultTheme,
		ShowHelp: true,
		Fields: []FieldConfig{
			{
				Name:         "name",
				Label:        "Name",
				Type:         FieldTypeText,
				Instructions: "Press **enter** to save or **esc** to cancel.",
				Rules:        Rules{Required: true},
			},
			{
				Name:  "bio",
				Label: "Bio",
				Type:  FieldTypeTextarea,
			},
			{
				Name:  "languages",
				Label: "Languages",
				Type:  FieldTypeCheckbox,
				Value: []any{"go"},
				Choices: []Choice{
					{Value: "go", Label: "Go"},
					{Value: "rust", Label: "Rust"},
					{Value: "zig", Label: "Zig"},
				},
			},
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			// A config file declares its own fields
			cfg.Fields = nil
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if len(cfg.ValuesFiles) > 0 {
		values, err := loadValuesFiles(filepath.Dir(configPath), cfg.ValuesFiles)
		if err != nil {
			return nil, err
		}
		cfg.ApplyValues(values)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = styles.DefaultTheme
	}
	for i := range c.Fields {
		f := &c.Fields[i]
		if f.Type == "" {
			f.Type = FieldTypeText
		}
		if f.Buttons.Position == "" {
			f.Buttons.Position = PositionAfter
		}
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if _, ok := styles.GetPalette(c.Theme); !ok {
		return fmt.Errorf("unknown theme %q", c.Theme)
	}

	names := make(map[string]bool, len(c.Fields))
	for i, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d: name is required", i)
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		names[f.Name] = true

		if err := f.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks that a field definition is valid.
func (f *FieldConfig) Validate() error {
	if !f.Type.IsValid() {
		return fmt.Errorf("field %q: unknown type %q", f.Name, f.Type)
	}

	if f.Type == FieldTypeCheckbox && len(f.Choices) == 0 {
		return fmt.Errorf("field %q: checkbox fields require choices", f.Name)
	}

	switch f.Buttons.Position {
	case PositionBefore, PositionAfter:
	default:
		return fmt.Errorf("field %q: invalid button position %q", f.Name, f.Buttons.Position)
	}

	return nil
}

// IsValid checks if the field type is a supported type.
func (ft FieldType) IsValid() bool {
	switch ft {
	case FieldTypeText, FieldTypePassword, FieldTypeTextarea, FieldTypeNumber, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// IsReadOnly reports whether the named field is read-only, either by its own
// flag or by matching a readonly pattern.
func (c *Config) IsReadOnly(f FieldConfig) bool {
	if f.ReadOnly {
		return true
	}
	for _, pattern := range c.ReadOnly {
		if ok, _ := doublestar.Match(pattern, f.Name); ok {
			return true
		}
	}
	return false
}

// ApplyValues overrides initial field values by field name.
func (c *Config) ApplyValues(values map[string]any) {
	for i := range c.Fields {
		if v, ok := values[c.Fields[i].Name]; ok {
			c.Fields[i].Value = v
		}
	}
}
