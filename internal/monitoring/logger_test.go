package monitoring

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	// Save original logger
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	assert.True(t, called, "custom logger was not called")

	// Now set to nil and verify it doesn't call our logger
	called = false
	SetLogger(nil)
	Logf("test")
	assert.False(t, called, "no-op logger should not have triggered callback")
}

func TestUse_RoutesLogfThroughLogger(t *testing.T) {
	origLogger, origLogf := Logger, Logf
	defer func() { Logger, Logf = origLogger, origLogf }()

	var buf bytes.Buffer
	Use(NewLogger(&buf, slog.LevelInfo))
	Logf("measured %d objects", 2)
	Logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "measured 2 objects")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[", "non-terminal writers get no colour codes")

	Use(nil)
	Logf("discarded")
	assert.NotContains(t, buf.String(), "discarded")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
