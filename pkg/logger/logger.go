// Package logger provides centralized slog.Logger construction with
// configurable level and output format (text or JSON).
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options configures a logger beyond level and format.
type Options struct {
	Level  string
	Format string
	// Service, when set, is attached to every record as "service".
	Service   string
	AddSource bool
}

// New creates a *slog.Logger configured with the given level and format.
// Level: "debug", "info", "warn", "error" (default: "info").
// Format: "json" or "text" (default: "text").
// Output goes to stderr.
func New(level, format string) *slog.Logger {
	return NewWithWriter(os.Stderr, level, format)
}

// NewWithWriter creates a *slog.Logger writing to w.
func NewWithWriter(w io.Writer, level, format string) *slog.Logger {
	return NewWithOptions(w, Options{Level: level, Format: format})
}

// NewWithOptions creates a *slog.Logger writing to w using opts.
func NewWithOptions(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: opts.AddSource,
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}

	l := slog.New(handler)
	if opts.Service != "" {
		l = l.With("service", opts.Service)
	}
	return l
}

// ParseLevel converts a level string to slog.Level, ignoring case.
// Recognized values: "debug", "warn"/"warning", "error". Everything else
// returns LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
