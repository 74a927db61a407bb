// Package logging configures the process-wide slog logger and generates
// run identifiers. Diagnostics for lint failures go to stdout through the
// orchestrator; the logger writes operational records to stderr so piped
// output stays clean.
package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// GenerateRunID generates a new UUID v4 identifying one linter invocation.
// The run ID is attached to every log record so concurrent pipelines from
// the same run can be correlated.
func GenerateRunID() string {
	return uuid.New().String()
}

// Setup installs the default slog logger writing to w.
//
// An unparsable level falls back to info; the mistake is reported through
// the freshly installed logger rather than failing the run.
func Setup(level string, w io.Writer, runID string) {
	var slogLevel slog.Level
	invalidLevel := false
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelInfo
		invalidLevel = true
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel,
	})
	logger := slog.New(handler.WithAttrs([]slog.Attr{
		slog.String("run_id", runID),
	}))
	slog.SetDefault(logger)

	if invalidLevel {
		slog.Warn("Invalid log level provided, defaulting to INFO", "provided", level)
	}
}
