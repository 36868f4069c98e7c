// Package log provides structured logging for go-virtual-venue.
// It wraps slog with a level and an output format chosen at startup.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	mu     sync.Mutex
	logger *slog.Logger
)

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init replaces the global logger. format is "json" or "text".
func Init(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var h slog.Handler
	if format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// L returns the global logger, creating an info level text logger on stderr if needed.
func L() *slog.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return Init(os.Stderr, "info", "text")
	}
	return l
}

func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger with the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
