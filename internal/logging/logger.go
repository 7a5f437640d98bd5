// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zerolog implementations.
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr, "mode", mode)
type Logger interface {
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Format selects the log backend.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// New builds a Logger writing to w. The console format is meant for local
// development; anything else yields JSON lines.
func New(format Format, w io.Writer) Logger {
	if format == FormatConsole {
		zl := zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger()
		return NewZerologLogger(zl)
	}
	return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))
}
