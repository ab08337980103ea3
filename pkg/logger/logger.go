// Package logger builds the zerolog logger shared by the CLI.
package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing to w at the given level. The CLI passes
// stderr so log lines never interleave with rendered output.
func New(w io.Writer, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var logLevel zerolog.Level
	switch level {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(logLevel).
		With().
		Timestamp().
		Str("app", "mading").
		Logger()
}
