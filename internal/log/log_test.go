package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Setenv("MOCAP_LOG_FORMAT", "")
	var buf bytes.Buffer
	l := New(&buf, "warn")
	l.Info("hidden")
	l.Warn("shown", "frame", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "frame=3")
}

func TestNewJSON(t *testing.T) {
	t.Setenv("MOCAP_LOG_FORMAT", "json")
	var buf bytes.Buffer
	New(&buf, "info").Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"k":"v"`)
}
