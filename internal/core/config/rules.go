package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/colonyops/pencil/internal/core/field"
)

// Compile converts the declarative rules into field validation rules.
func (r Rules) Compile() (field.Rules, error) {
	rules := field.Rules{
		Required:  r.Required,
		MinLength: r.MinLength,
		MaxLength: r.MaxLength,
		Min:       r.Min,
		Max:       r.Max,
	}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return field.Rules{}, fmt.Errorf("compile pattern: %w", err)
		}
		rules.Pattern = re
	}
	return rules, nil
}

// InitialValue converts the YAML value into a field value.
func (f FieldConfig) InitialValue() field.Value {
	v := field.FromAny(f.Value)
	switch {
	case v.IsNullish():
		return v
	case f.Type == FieldTypeCheckbox && v.Kind() != field.KindList:
		return field.List(v.String())
	case f.Type == FieldTypeNumber && v.Kind() == field.KindText:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64); err == nil {
			return field.Number(n)
		}
	}
	return v
}
