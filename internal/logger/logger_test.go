package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json", "info")

	log.Info("refresh granted", "user_id", "u-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "refresh granted", entry["msg"])
	assert.Equal(t, "u-1", entry["user_id"])
}

func TestPrettyHandler_LevelFilterAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "pretty", "warn")

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	log.With("component", "auth").WithGroup("req").Warn("rejected", "reason", "expired")

	out := buf.String()
	assert.Contains(t, out, "rejected")
	assert.Contains(t, out, "component")
	assert.Contains(t, out, "req.reason")
	assert.Contains(t, out, "expired")
}
