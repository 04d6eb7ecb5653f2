package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies widget and request_id from the event context so the
// transport's log lines can be matched to the controller that sent them.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if widget := GetWidget(ctx); widget != "" {
		e.Str("widget", widget)
	}
	if id := GetRequestID(ctx); id != "" {
		e.Str("request_id", id)
	}
}
