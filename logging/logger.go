package logging

import (
	"io"
	"log/slog"
	"os"
)

// Level is a thin enum for user-friendly level configuration decoupled
// from slog.
type Level int

const (
	// LevelDebug is the debug logging level.
	LevelDebug Level = iota
	// LevelInfo is the informational logging level.
	LevelInfo
	// LevelWarn is the warning logging level.
	LevelWarn
	// LevelError is the error logging level.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slog() slog.Level {
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

// Logger is the minimal logging interface used throughout Lumen.
// Args follow the slog key/value convention.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter wraps an existing slog.Logger.
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	return &SlogAdapter{Logger: l}
}

// NewSlogLogger builds a Logger writing to w with the given level and
// format ("json" or "text"). A nil writer defaults to stderr.
func NewSlogLogger(level Level, format string, w io.Writer) Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level.slog()}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogAdapter{Logger: slog.New(handler)}
}

// NewDefaultLogger returns a Logger backed by slog.Default().
func NewDefaultLogger() Logger {
	return &SlogAdapter{Logger: slog.Default()}
}

// NoOpLogger discards everything. It is the default for an Application
// constructed without WithLogger, so the run loop never writes to a
// console the embedder does not own.
type NoOpLogger struct{}

// NewNoOpLogger returns a silent Logger.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

// Debug discards the message.
func (*NoOpLogger) Debug(string, ...any) {}

// Info discards the message.
func (*NoOpLogger) Info(string, ...any) {}

// Warn discards the message.
func (*NoOpLogger) Warn(string, ...any) {}

// Error discards the message.
func (*NoOpLogger) Error(string, ...any) {}
