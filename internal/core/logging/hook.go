package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook extracts the field name and config path from the event context.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if name := GetField(ctx); name != "" {
		e.Str("field", name)
	}

	if path := GetConfigPath(ctx); path != "" {
		e.Str("config", path)
	}
}
