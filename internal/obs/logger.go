// Package obs wires up the structured logger shared by every component.
package obs

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-formatted zerolog.Logger tagged with component,
// matching the timestamp + component-tag shape used across the rest of the
// pack's observability helpers.
func New(component string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Str("component", component).Logger()
}

// Nop returns a logger that discards all output, for tests and library
// callers that have not wired a sink.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
