// Package telemetry wires the module's structured logging, grounded on the
// logging package of the example corpus: a small Level/Format pair around
// log/slog with a package-level default logger, rather than a bespoke
// logging type.
package telemetry

import (
	"io"
	"log/slog"
	"os"
)

// Level mirrors slog's levels under names that read naturally at call
// sites that never import log/slog directly.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slogLevel() slog.Level {
	switch l {
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

// Format selects the slog handler backing the default logger.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// Init installs the process-wide default logger. Call it once from a host
// binary (see cmd/sheetcli); library code never calls Init itself.
func Init(level Level, format Format, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level.slogLevel()}
	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	defaultLogger = slog.New(handler)
}

// Default returns the current process-wide logger.
func Default() *slog.Logger { return defaultLogger }

// With returns a logger tagged with a session/request correlation ID.
func With(sessionID string) *slog.Logger {
	return defaultLogger.With("session_id", sessionID)
}
