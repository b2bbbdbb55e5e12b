package log_test

import "github.com/erc7824/nitrolite/multisig/pkg/log"

var _ log.Logger = (*recordingLogger)(nil)
var _ log.SpanEventRecorder = (*recordingRecorder)(nil)

type logEntry struct {
	Level         log.Level
	Message       string
	KeysAndValues []any
}

// recordingLogger keeps the last entry and the state set through the Logger methods.
type recordingLogger struct {
	last       logEntry
	name       string
	kv         []any
	callerSkip int
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{name: "recording"}
}

func (l *recordingLogger) Debug(msg string, kv ...any) { l.record(log.LevelDebug, msg, kv) }
func (l *recordingLogger) Info(msg string, kv ...any)  { l.record(log.LevelInfo, msg, kv) }
func (l *recordingLogger) Warn(msg string, kv ...any)  { l.record(log.LevelWarn, msg, kv) }
func (l *recordingLogger) Error(msg string, kv ...any) { l.record(log.LevelError, msg, kv) }
func (l *recordingLogger) Fatal(msg string, kv ...any) { l.record(log.LevelFatal, msg, kv) }

func (l *recordingLogger) WithKV(key string, value any) log.Logger {
	l.kv = append(l.kv, key, value)
	return l
}

func (l *recordingLogger) GetAllKV() []any { return l.kv }

func (l *recordingLogger) WithName(name string) log.Logger {
	l.name = name
	return l
}

func (l *recordingLogger) Name() string { return l.name }

func (l *recordingLogger) AddCallerSkip(skip int) log.Logger {
	l.callerSkip += skip
	return l
}

func (l *recordingLogger) record(level log.Level, msg string, kv []any) {
	all := append(append([]any{}, l.kv...), kv...)
	l.last = logEntry{Level: level, Message: msg, KeysAndValues: all}
}

// recordingRecorder keeps the last span event.
type recordingRecorder struct {
	traceID, spanID string
	failed          bool
	lastName        string
	lastAttrs       []any
}

func (r *recordingRecorder) TraceID() string { return r.traceID }
func (r *recordingRecorder) SpanID() string  { return r.spanID }

func (r *recordingRecorder) RecordEvent(name string, kv ...any) {
	r.lastName, r.lastAttrs = name, kv
}

func (r *recordingRecorder) RecordError(name string, kv ...any) {
	r.failed = true
	r.lastName, r.lastAttrs = name, kv
}

func kvMap(kv []any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			out[k] = kv[i+1]
		}
	}
	return out
}
