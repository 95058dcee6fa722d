package logging

import "context"

type contextKey string

const (
	fieldKey  contextKey = "field"
	configKey contextKey = "config"
)

// WithField adds an inline field name to the context.
func WithField(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, fieldKey, name)
}

// WithConfigPath adds the active config file path to the context.
func WithConfigPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, configKey, path)
}

// GetField retrieves the field name from the context.
// Returns empty string if not present.
func GetField(ctx context.Context) string {
	if name, ok := ctx.Value(fieldKey).(string); ok {
		return name
	}
	return ""
}

// GetConfigPath retrieves the config path from the context.
// Returns empty string if not present.
func GetConfigPath(ctx context.Context) string {
	if path, ok := ctx.Value(configKey).(string); ok {
		return path
	}
	return ""
}
