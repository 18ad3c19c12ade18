package logging_test

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/blocksel/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"Warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"trace", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, logging.ParseLevel(tc.level))
			assert.Equal(t, tc.want, logging.New(tc.level).GetLevel())
		})
	}
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"debug", "INFO", "warning", "error"} {
		assert.True(t, logging.ValidLevel(level), level)
	}
	for _, level := range []string{"trace", "", "fatal"} {
		assert.False(t, logging.ValidLevel(level), level)
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Info("resolved range")
	logger.Warn("ambiguous range", logging.FieldBlock, "b1", logging.FieldOffset, 3)

	out := buf.String()
	assert.NotContains(t, out, "resolved range")
	assert.Contains(t, out, "ambiguous range")
	assert.Contains(t, out, "block=b1")
	assert.Contains(t, out, "offset=3")
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Equal(t, "blocksel", logger.GetPrefix())
}

// The default-logger tests swap global state and must not run in parallel.

func TestSetDefault(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.NewWithWriter(&bytes.Buffer{}, "error")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())
}

func TestSetLevel(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	logging.SetDefault(logging.NewWithWriter(&bytes.Buffer{}, "info"))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}
