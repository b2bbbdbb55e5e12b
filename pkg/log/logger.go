package log

import (
	"fmt"
	"strings"
)

// Logger is the structured logger used across the module.
// Key-value pairs alternate string keys and arbitrary values.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
	// Fatal logs at fatal level. Implementations backed by zap exit the process.
	Fatal(msg string, keysAndValues ...any)

	// WithKV returns a logger that attaches key and value to every entry.
	WithKV(key string, value any) Logger
	// GetAllKV returns the pairs attached with WithKV, oldest first.
	GetAllKV() []any
	// WithName returns a logger for a named component. Names nest with dots.
	WithName(name string) Logger
	Name() string
	// AddCallerSkip returns a logger that reports the caller skip frames further up.
	// Wrappers use it so entries point at their callers.
	AddCallerSkip(skip int) Logger
}

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// ParseLevel parses a level name, ignoring case. "warning" is accepted for LevelWarn.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal:
		return l, nil
	case "warning":
		return LevelWarn, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// SpanEventRecorder receives log entries as events on a trace span.
type SpanEventRecorder interface {
	TraceID() string
	SpanID() string

	// RecordEvent adds an event named name with the given key-value attributes.
	RecordEvent(name string, keysAndValues ...any)
	// RecordError adds an event like RecordEvent and marks the span as failed.
	RecordError(name string, keysAndValues ...any)
}
