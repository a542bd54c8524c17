package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var service = "djikoe"

// Init memasang slog default. format "text" untuk dev lokal, selain itu JSON.
func Init(serviceName, level, format string) {
	if serviceName != "" {
		service = serviceName
	}
	slog.SetDefault(slog.New(newHandler(os.Stdout, level, format)))
}

func newHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// For mengembalikan logger modul dengan field service & module.
func For(module string) *slog.Logger {
	return slog.Default().With("service", service, "module", module)
}

// Discard dipakai di test.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
