package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
	"github.com/lucasb-eyer/go-colorful"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// regex patterns, glob patterns, colors, initial values, and file accessibility.
// The configPath argument specifies the config file location to validate (empty
// string skips config file check). This calls Validate() first for basic
// structural validation.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateValuesFiles(configPath),
		c.validateReadOnly(),
		c.validateClasses(),
		c.validateFields(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	for _, f := range c.Fields {
		if f.SaveOnBlur && f.CancelOnBlur {
			warnings = append(warnings, ValidationWarning{
				Category: "Fields",
				Item:     f.Name,
				Message:  "save_on_blur and cancel_on_blur are both set, blur will save",
			})
		}
		if f.Buttons.HideSave && f.Buttons.HideCancel && f.DisableAutoSubmit && f.DisableAutoCancel && !f.SaveOnBlur && !f.CancelOnBlur {
			warnings = append(warnings, ValidationWarning{
				Category: "Fields",
				Item:     f.Name,
				Message:  "field has no way to leave edit mode",
			})
		}
	}

	for _, pattern := range c.ReadOnly {
		if !c.patternMatchesAny(pattern) {
			warnings = append(warnings, ValidationWarning{
				Category: "ReadOnly",
				Item:     pattern,
				Message:  "pattern matches no field",
			})
		}
	}

	return warnings
}

func (c *Config) patternMatchesAny(pattern string) bool {
	for _, f := range c.Fields {
		if ok, _ := doublestar.Match(pattern, f.Name); ok {
			return true
		}
	}
	return false
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateValuesFiles(configPath string) error {
	if len(c.ValuesFiles) == 0 {
		return nil
	}

	configDir := filepath.Dir(configPath)
	var errs criterio.FieldErrorsBuilder

	for i, file := range c.ValuesFiles {
		if _, err := LoadValues(resolvePath(configDir, file)); err != nil {
			errs = errs.Append(fmt.Sprintf("values_files[%d]", i), err)
		}
	}

	return errs.ToError()
}

func (c *Config) validateReadOnly() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.ReadOnly {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("readonly[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func (c *Config) validateClasses() error {
	var errs criterio.FieldErrorsBuilder
	for name, cls := range c.Classes {
		prefix := fmt.Sprintf("classes[%q]", name)
		if err := validHexColor(cls.Foreground); err != nil {
			errs = errs.Append(prefix+".foreground", err)
		}
		if err := validHexColor(cls.Background); err != nil {
			errs = errs.Append(prefix+".background", err)
		}
	}
	return errs.ToError()
}

func validHexColor(s string) error {
	if s == "" {
		return nil
	}
	if _, err := colorful.Hex(s); err != nil {
		return fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	return nil
}

// validateFields checks rule patterns compile and initial values fit their type.
func (c *Config) validateFields() error {
	var errs criterio.FieldErrorsBuilder
	for i, f := range c.Fields {
		prefix := fmt.Sprintf("fields[%d]", i)

		if f.Rules.Pattern != "" {
			if _, err := regexp.Compile(f.Rules.Pattern); err != nil {
				errs = errs.Append(prefix+".rules.pattern", fmt.Errorf("invalid regex %q: %w", f.Rules.Pattern, err))
			}
		}
		if f.Rules.MaxLength > 0 && f.Rules.MinLength > f.Rules.MaxLength {
			errs = errs.Append(prefix+".rules", fmt.Errorf("min_length %d exceeds max_length %d", f.Rules.MinLength, f.Rules.MaxLength))
		}
		if f.Rules.Max > 0 && f.Rules.Min > f.Rules.Max {
			errs = errs.Append(prefix+".rules", fmt.Errorf("min %d exceeds max %d", f.Rules.Min, f.Rules.Max))
		}

		if err := f.validateValue(); err != nil {
			errs = errs.Append(prefix+".value", err)
		}

		if f.Type == FieldTypeCheckbox {
			seen := make(map[string]bool, len(f.Choices))
			for j, choice := range f.Choices {
				switch {
				case choice.Value == "":
					errs = errs.Append(fmt.Sprintf("%s.choices[%d].value", prefix, j), fmt.Errorf("value is required"))
				case seen[choice.Value]:
					errs = errs.Append(fmt.Sprintf("%s.choices[%d].value", prefix, j), fmt.Errorf("duplicate choice %q", choice.Value))
				}
				seen[choice.Value] = true
			}
		}
	}
	return errs.ToError()
}

// validateValue checks the initial value is representable by the field type.
func (f *FieldConfig) validateValue() error {
	if f.Value == nil {
		return nil
	}

	switch f.Type {
	case FieldTypeNumber:
		switch v := f.Value.(type) {
		case int, int64, float64:
			return nil
		case string:
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return fmt.Errorf("%q is not a number", v)
			}
			return nil
		default:
			return fmt.Errorf("expected a number, got %T", f.Value)
		}
	case FieldTypeCheckbox:
		items, ok := f.Value.([]any)
		if !ok {
			return fmt.Errorf("expected a list, got %T", f.Value)
		}
		for _, item := range items {
			token := fmt.Sprint(item)
			if !f.hasChoice(token) {
				return fmt.Errorf("%q is not one of the choices", token)
			}
		}
		return nil
	default:
		switch f.Value.(type) {
		case []any, map[string]any:
			return fmt.Errorf("expected a scalar, got %T", f.Value)
		}
		return nil
	}
}

func (f *FieldConfig) hasChoice(token string) bool {
	for _, c := range f.Choices {
		if c.Value == token {
			return true
		}
	}
	return false
}
