package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerEmitsLeveledFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))
	defer Set(zap.NewNop())

	Info("session created", map[string]any{"session_id": "abc"})
	Warn("session refresh failed", nil)
	Error("session lookup failed", map[string]any{"error": "connection refused"})

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, "session created", entries[0].Message)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "abc", entries[0].ContextMap()["session_id"])

	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Empty(t, entries[1].Context)

	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	assert.Equal(t, "connection refused", entries[2].ContextMap()["error"])
}

func TestLoggerBeforeInitDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("early message", map[string]any{"k": "v"})
		Warn("early warning", nil)
	})
}
