// Package logging configures the application loggers.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// replaceAttrs standardizes common keys (e.g., "error" -> "err").
func replaceAttrs(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

// New creates a configured application logger.
// It writes to Stderr (to keep Stdout clean for CLI output).
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttrs,
	}))
}

// NewJSON creates a JSON logger for server mode, where output is scraped
// rather than read by a human.
func NewJSON(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceAttrs,
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
