package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet_Uninitialized(t *testing.T) {
	globalLogger = nil

	l := Get()
	require.NotNil(t, l)
	// No-op logger must not panic
	l.Info("should be discarded")
}

func TestInit_Development(t *testing.T) {
	err := Init("development", "debug")
	require.NoError(t, err)
	assert.NotNil(t, globalLogger)
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_Production(t *testing.T) {
	err := Init("production", "warn")
	require.NoError(t, err)
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
}

func TestInit_InvalidLevelFallsBack(t *testing.T) {
	err := Init("development", "not-a-level")
	require.NoError(t, err)
	assert.NotNil(t, globalLogger)
}
