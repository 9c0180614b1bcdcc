package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	require.NoError(t, Setup(false, "codebundle", "test"))
	assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))

	require.NoError(t, Setup(true, "codebundle", "test"))
	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))
}
