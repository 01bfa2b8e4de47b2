// Package logging sets up the default slog logger, which call sites use through
// hermannm.dev/devlog/log.
package logging

import (
	"io"
	"log/slog"

	"hermannm.dev/devlog"
)

// Human-readable colored output in development, JSON in production.
func NewHandler(output io.Writer, production bool, level slog.Level) slog.Handler {
	if production {
		return slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	}
	return devlog.NewHandler(output, &devlog.Options{Level: level})
}

func SetDefault(output io.Writer, production bool, level slog.Level) {
	slog.SetDefault(slog.New(NewHandler(output, production, level)))
}
