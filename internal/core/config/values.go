package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// loadValuesFiles reads YAML value files and merges them in declaration
// order. Later files override earlier files for the same field name.
func loadValuesFiles(configDir string, files []string) (map[string]any, error) {
	merged := make(map[string]any)

	for _, file := range files {
		values, err := LoadValues(resolvePath(configDir, file))
		if err != nil {
			return nil, fmt.Errorf("values file %q: %w", file, err)
		}
		maps.Copy(merged, values)
	}

	return merged, nil
}

// LoadValues reads a YAML mapping of field name to value, the same shape
// `pencil run` prints on exit.
func LoadValues(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	return values, nil
}

func resolvePath(configDir, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(configDir, file)
}
