package log_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erc7824/nitrolite/multisig/pkg/log"
	"github.com/erc7824/nitrolite/multisig/pkg/sign"
)

// captureSyncer keeps every entry written to it.
type captureSyncer struct {
	bytes.Buffer
}

func (c *captureSyncer) Sync() error { return nil }

func (c *captureSyncer) entries(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(c.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "entry: %s", line)
		out = append(out, entry)
	}
	return out
}

func (c *captureSyncer) last(t *testing.T) map[string]any {
	t.Helper()
	entries := c.entries(t)
	require.NotEmpty(t, entries)
	return entries[len(entries)-1]
}

func newTestLogger(level log.Level) (log.Logger, *captureSyncer) {
	sink := &captureSyncer{}
	lg := log.NewZapLogger(log.Config{Format: "json", Level: level, Output: "stdout"}, sink)
	return lg, sink
}

func TestZapLoggerLevels(t *testing.T) {
	logger, sink := newTestLogger(log.LevelDebug)
	logger = logger.WithName("verifier")

	emit := map[log.Level]func(string, ...any){
		log.LevelDebug: logger.Debug,
		log.LevelInfo:  logger.Info,
		log.LevelWarn:  logger.Warn,
		log.LevelError: logger.Error,
	}

	for level, fn := range emit {
		t.Run(string(level), func(t *testing.T) {
			fn("signature checked", "scheme", "sr25519", "valid", true)

			entry := sink.last(t)
			assert.Equal(t, string(level), entry["level"])
			assert.Equal(t, "verifier", entry["logger"])
			assert.Equal(t, "signature checked", entry["msg"])
			assert.Equal(t, "sr25519", entry["scheme"])
			assert.Equal(t, true, entry["valid"])
			assert.Contains(t, entry, "ts")
			assert.Contains(t, entry["caller"], "log/zap_test.go:")
		})
	}
}

func TestZapLoggerFiltersByLevel(t *testing.T) {
	logger, sink := newTestLogger(log.LevelWarn)

	logger.Debug("dropped")
	logger.Info("dropped")
	logger.Warn("kept")

	entries := sink.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0]["msg"])
}

func TestZapLoggerContext(t *testing.T) {
	logger, sink := newTestLogger(log.LevelDebug)

	logger = logger.WithName("multisig").WithName("batch")
	assert.Equal(t, "multisig.batch", logger.Name())

	withBatch := logger.WithKV("batch_id", "b-1")
	withBoth := withBatch.WithKV("items", 3)
	assert.Equal(t, []any{"batch_id", "b-1"}, withBatch.GetAllKV())
	assert.Equal(t, []any{"batch_id", "b-1", "items", 3}, withBoth.GetAllKV())
	assert.Empty(t, logger.GetAllKV())

	withBoth.Info("batch done", "valid", 2)
	entry := sink.last(t)
	assert.Equal(t, "b-1", entry["batch_id"])
	assert.Equal(t, float64(3), entry["items"])
	assert.Equal(t, float64(2), entry["valid"])

	// Stringers are rendered through their String method.
	logger.Info("scheme", "type", sign.TypeEcdsa)
	assert.Equal(t, "ecdsa", sink.last(t)["type"])
}

func TestZapLoggerCallerSkip(t *testing.T) {
	logger, sink := newTestLogger(log.LevelDebug)

	helper := func(msg string) {
		logger.AddCallerSkip(1).Info(msg)
	}
	helper("from helper")

	caller, ok := sink.last(t)["caller"].(string)
	require.True(t, ok)
	assert.Contains(t, caller, "log/zap_test.go:")
}

func TestZapLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "verifier.log")

	logger := log.NewZapLogger(log.Config{Format: "logfmt", Level: log.LevelInfo, Output: path})
	logger.Info("started", "schemes", 3)
	require.NoError(t, logger.(*log.ZapLogger).Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=started")
	assert.Contains(t, string(data), "schemes=3")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.LevelDebug},
		{"INFO", log.LevelInfo},
		{" warn ", log.LevelWarn},
		{"warning", log.LevelWarn},
		{"error", log.LevelError},
		{"fatal", log.LevelFatal},
	}
	for _, tc := range tests {
		got, err := log.ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := log.ParseLevel("trace")
	assert.Error(t, err)
}

func TestNoopLogger(t *testing.T) {
	lg := log.NewNoopLogger()
	lg.Info("ignored", "k", "v")

	assert.Equal(t, "noop", lg.WithName("x").Name())
	assert.Empty(t, lg.WithKV("k", "v").GetAllKV())
	assert.Equal(t, lg, lg.AddCallerSkip(3))
}
