// Package logger builds the process-wide zerolog logger.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing JSON to stdout. In the "dev" environment it
// switches to the human-readable console writer and debug level.
func New(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if env == "dev" {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(out).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
