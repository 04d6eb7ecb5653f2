// Package logging holds the zerolog helpers shared by all components.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a child of the global logger tagged with a component
// name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// Install sets the global logger, attaching ContextHook.
func Install(l zerolog.Logger) {
	log.Logger = l.Hook(ContextHook{})
}
