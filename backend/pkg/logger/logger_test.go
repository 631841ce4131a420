package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGet_FallsBackBeforeInit(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	assert.NotNil(t, Get())
}

func TestInit_Levels(t *testing.T) {
	saved := Logger
	defer func() { Logger = saved }()

	require.NoError(t, Init("development"))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("production"))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
}
