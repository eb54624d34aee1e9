package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/go-taskq/pkg/settings"
)

func TestNewDefaults(t *testing.T) {
	logger, err := New(settings.Logger{})
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel), "debug should be filtered at the default level")
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel), "info should pass at the default level")
}

func TestNewLevel(t *testing.T) {
	logger, err := New(settings.Logger{LogLevel: "warn"})
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel), "info should be filtered at warn level")
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel), "warn should pass at warn level")
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(settings.Logger{LogLevel: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "verbose"`)
}

func TestNewFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskq.log")
	logger, err := New(settings.Logger{
		LogLevel:    "debug",
		FileLogName: path,
		MaxSize:     1,
	})
	require.NoError(t, err)

	logger.Info("hello from the file sink")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the file sink")
	assert.Contains(t, string(data), `"level":"info"`)
}
