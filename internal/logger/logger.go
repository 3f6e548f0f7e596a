// File: internal/logger/logger.go
package logger

import (
	"io"
	"log/slog"
	"os"
)

// The level is shared by every logger built here, so --debug can raise it after startup
var level = new(slog.LevelVar)

func NewLogger() *slog.Logger {
	return NewLoggerTo(os.Stderr)
}

func NewLoggerTo(w io.Writer) *slog.Logger {
	level.Set(slog.LevelInfo)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewTextHandler(w, opts)

	logger := slog.New(handler)

	slog.SetDefault(logger)
	return logger
}

func SetDebug(enabled bool) {
	if enabled {
		level.Set(slog.LevelDebug)
		return
	}
	level.Set(slog.LevelInfo)
}
