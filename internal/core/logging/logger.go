package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns the global logger tagged with a "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// FieldLogger returns a component logger that also carries the field name,
// for code that holds no context to attach it through ContextHook.
func FieldLogger(component, field string) zerolog.Logger {
	return log.With().Str("cmp", component).Str("field", field).Logger()
}
