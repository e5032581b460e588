package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies the session ID and document path from the event
// context into the log line.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	if sessionID := GetSessionID(ctx); sessionID != "" {
		e.Str("session_id", sessionID)
	}

	if path := GetDocument(ctx); path != "" {
		e.Str("file", path)
	}
}
