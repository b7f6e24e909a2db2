package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tui.log")
	log, cleanup, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)
	defer cleanup()

	log.Info("hello", zap.String("screen", "form"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), `"screen": "form"`)
}

func TestCleanupClosesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")
	log, cleanup, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)

	log.Info("before close")
	cleanup()
	log.Info("after close")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "before close")
	assert.NotContains(t, string(data), "after close")
}

func TestNewDefaultsToStderr(t *testing.T) {
	log, cleanup, err := New(Config{Level: "warn"})
	require.NoError(t, err)
	defer cleanup()

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, zapcore.InfoLevel)

	log.Debug("hidden")
	log.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	line := strings.TrimSpace(out)
	fields := strings.Split(line, "\t")
	require.GreaterOrEqual(t, len(fields), 3)
	assert.Len(t, fields[0], len("2006-01-02 15:04:05.000"))
	assert.Equal(t, "warn", fields[1])
	assert.Equal(t, "shown", fields[2])
}

func TestLeveledSatisfiesRetryableHTTP(t *testing.T) {
	var buf bytes.Buffer
	var leveled retryablehttp.LeveledLogger = NewLeveled(NewWithWriter(&buf, zapcore.DebugLevel))

	leveled.Debug("performing request", "method", "POST", "url", "http://x/api/students")
	assert.Contains(t, buf.String(), "performing request")
	assert.Contains(t, buf.String(), `"method": "POST"`)
}
