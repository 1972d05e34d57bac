// =============================================================================
// R2 Troubleshooter - Logging
// =============================================================================
//
// This module configures the structured logger shared by the CLI, the
// converter and the MultiQC runner.
//
// LOG FORMAT:
//   slog text records on stderr, with the time under "ts" and the level
//   under "severity". Every record carries:
//     service=r2table
//     run_id=<uuid unique to this process>
//
// LEVELS:
//   warn by default, debug with --verbose.
//
// =============================================================================

package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Logger is the logging surface the packages depend on. *slog.Logger
// satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// New returns a text logger writing to w.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Key = "severity"
			}
			return a
		},
	})

	return slog.New(handler).With(
		slog.String("service", "r2table"),
		slog.String("run_id", uuid.NewString()),
	)
}

// OrDiscard returns logger, or a logger that drops everything when it is nil.
func OrDiscard(logger Logger) Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
