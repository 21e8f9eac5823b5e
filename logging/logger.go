// Package logging builds the structured debug logger.
//
// Logs go to a size-rotated JSON file. The terminal is owned by the renderer, so nothing
// is ever logged to stdout or stderr; with no file configured logs are discarded.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Log levels accepted by ParseLevel
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// Options configures New
type Options struct {
	File       string // Empty discards all records
	Level      string
	MaxSizeMB  int // 0 disables rotation
	MaxBackups int
}

// ValidLevels returns the accepted level names in lower case
func ValidLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ParseLevel converts a level name to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a JSON logger and the closer of its output
func New(opts Options) (*slog.Logger, io.Closer, error) {
	if opts.File == "" {
		return Discard(), nopCloser{}, nil
	}

	w, err := NewRotatingWriter(opts.File, opts.MaxSizeMB, opts.MaxBackups)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})
	return slog.New(handler), w, nil
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
