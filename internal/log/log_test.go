package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Alia5/planckmap/device"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelTrace, ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestConsoleSplit(t *testing.T) {
	var stdout, stderr bytes.Buffer
	logger, closers, err := setupLogger(Config{Level: "debug"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, closers)

	logger.Debug("layer changed")
	logger.Error("persist failed")

	assert.Contains(t, stdout.String(), "layer changed")
	assert.NotContains(t, stdout.String(), "persist failed")
	assert.Contains(t, stderr.String(), "persist failed")
	assert.NotContains(t, stderr.String(), "layer changed")
}

func TestTraceLevelName(t *testing.T) {
	var stdout bytes.Buffer
	logger, _, err := setupLogger(Config{Level: "trace", Format: "json"}, &stdout, &bytes.Buffer{})
	require.NoError(t, err)

	logger.Log(t.Context(), LevelTrace, "scan")
	assert.Contains(t, stdout.String(), `"level":"TRACE"`)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planckmap.log")
	var stderr bytes.Buffer
	logger, closers, err := setupLogger(Config{Level: "info", File: path}, &bytes.Buffer{}, &stderr)
	require.NoError(t, err)
	require.Len(t, closers, 1)

	logger.Info("hello")
	require.NoError(t, closers[0].Close())
	assert.FileExists(t, path)
	assert.Contains(t, stderr.String(), "hello")
}

func TestRawLogger(t *testing.T) {
	var buf bytes.Buffer
	r := &rawLogger{w: &buf, now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }}

	r.Log(device.Report{Endpoint: device.EndpointConsumer, Data: []byte{0xe2, 0x00}})
	r.Log(device.Report{Endpoint: device.EndpointKeyboard})

	assert.Equal(t, "2024/01/02 03:04:05.000 consumer report: 2 bytes, hex: e2 00\n", buf.String())

	NewRaw(nil).Log(device.Report{Endpoint: device.EndpointKeyboard, Data: []byte{1}})
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
