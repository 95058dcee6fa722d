package initcmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/pencil/internal/core/config"
)

// FieldOption is one field requested during init.
type FieldOption struct {
	Name string
	Type config.FieldType
}

// ConfigOptions holds the answers used to generate a starter config.
type ConfigOptions struct {
	Theme    string
	ShowHelp bool
	Fields   []FieldOption
}

type starterConfig struct {
	Theme    string         `yaml:"theme"`
	ShowHelp bool           `yaml:"show_help"`
	Fields   []starterField `yaml:"fields"`
}

type starterField struct {
	Name        string          `yaml:"name"`
	Label       string          `yaml:"label"`
	Type        string          `yaml:"type"`
	Placeholder string          `yaml:"placeholder,omitempty"`
	Choices     []config.Choice `yaml:"choices,omitempty"`
	Rules       *starterRules   `yaml:"rules,omitempty"`
}

type starterRules struct {
	MaxLength int `yaml:"max_length,omitempty"`
	Min       int `yaml:"min,omitempty"`
}

// DefaultFields is the field list offered by the wizard.
const DefaultFields = "name:text, bio:textarea, languages:checkbox"

// ParseFields parses a comma separated list of name:type pairs. A missing
// type means text.
func ParseFields(s string) ([]FieldOption, error) {
	var out []FieldOption
	seen := map[string]bool{}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, typ, _ := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		ft := config.FieldType(strings.TrimSpace(typ))
		if ft == "" {
			ft = config.FieldTypeText
		}

		if name == "" {
			return nil, fmt.Errorf("%q: field name is required", part)
		}
		if !ft.IsValid() {
			return nil, fmt.Errorf("%q: unknown type %q", part, ft)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate field name %q", name)
		}
		seen[name] = true

		out = append(out, FieldOption{Name: name, Type: ft})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}
	return out, nil
}

// GenerateConfig renders a starter config file.
func GenerateConfig(opts ConfigOptions) ([]byte, error) {
	cfg := starterConfig{Theme: opts.Theme, ShowHelp: opts.ShowHelp}

	for _, f := range opts.Fields {
		sf := starterField{
			Name:  f.Name,
			Label: titleCase(f.Name),
			Type:  string(f.Type),
		}

		switch f.Type {
		case config.FieldTypeCheckbox:
			sf.Choices = []config.Choice{
				{Value: "one", Label: "One"},
				{Value: "two", Label: "Two"},
				{Value: "three", Label: "Three"},
			}
			sf.Rules = &starterRules{Min: 1}
		case config.FieldTypeText:
			sf.Placeholder = "Click to edit " + strings.ToLower(sf.Label)
			sf.Rules = &starterRules{MaxLength: 80}
		}

		cfg.Fields = append(cfg.Fields, sf)
	}

	return yaml.Marshal(cfg)
}

// WriteConfig writes data to path, creating parent directories.
func WriteConfig(data []byte, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func titleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ConfigExists checks if a config file exists at the given path.
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// BackupConfig moves an existing config to <path>.bak, replacing any older
// backup. Returns the empty string when there is nothing to back up.
func BackupConfig(path string) (string, error) {
	if !ConfigExists(path) {
		return "", nil
	}

	backup := path + ".bak"
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("backup config: %w", err)
	}
	return backup, nil
}
