package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogMirrorError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { Init("info", "console") })

	LogMirrorError("conversations:bob", "write", errors.New("timeout"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "Mirror write failed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "conversations:bob", fields["key"])
	assert.Equal(t, "write", fields["action"])
	assert.Equal(t, "timeout", fields["error"])
}

func TestLevels(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { Init("info", "console") })

	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Error("failed: %s", "boom")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "shown 2", entries[0].Message)
	assert.Equal(t, "failed: boom", entries[1].Message)
}
