package util

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level string, format LogFormat) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l, _ := NewLogger(LoggerOptions{Level: level})
	l.AddOutput(NewConsoleOutput(buf, format))
	return l, buf
}

func TestLoggerLevelFiltering(t *testing.T) {
	l, buf := newBufferLogger("warn", FormatText)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warnf("shown %d", 1)
	l.Error("shown 2")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 1")
	assert.Contains(t, out, "[ERROR] shown 2")
}

func TestLoggerTextFieldsSorted(t *testing.T) {
	l, buf := newBufferLogger("debug", FormatText)

	l.With(Field{Key: "zeta", Value: 1}).Info("paired", Field{Key: "arrows", Value: 3})

	line := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasSuffix(line, "[INFO] paired arrows=3 zeta=1"), line)
}

func TestLoggerJSON(t *testing.T) {
	l, buf := newBufferLogger("info", FormatJSON)

	l.Info("loaded", Field{Key: "events", Value: 12})

	var entry map[string]interface{}
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "loaded", entry["message"])
	fields, ok := entry["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 12, fields["events"])
}

func TestLoggerWithContext(t *testing.T) {
	l, buf := newBufferLogger("info", FormatText)

	ctx := context.WithValue(context.Background(), ContextKeySource, "events.jsonl")
	l.WithContext(ctx).Info("reload")

	assert.Contains(t, buf.String(), "source=events.jsonl")
}

func TestContextLogger(t *testing.T) {
	CloseLogger()
	ctx := context.WithValue(context.Background(), ContextKeySource, "n0.jsonl")
	assert.NotPanics(t, func() { ContextLogger(ctx).Warn("dropped") })

	l, buf := newBufferLogger("info", FormatText)
	SetLogger(l)
	t.Cleanup(CloseLogger)

	ContextLogger(ctx).Warn("skipped invalid records", Field{Key: "count", Value: 2})
	assert.Contains(t, buf.String(), "source=n0.jsonl")
	assert.Contains(t, buf.String(), "count=2")
}

func TestLoggerFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctv.log")
	l, err := NewLogger(LoggerOptions{Level: "debug", File: path})
	require.NoError(t, err)

	l.Debugf("frame %d", 7)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[DEBUG] frame 7")
}

func TestLoggerBadFile(t *testing.T) {
	_, err := NewLogger(LoggerOptions{File: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}

func TestLoggerWithoutOutputs(t *testing.T) {
	l, err := NewLogger(LoggerOptions{})
	require.NoError(t, err)
	assert.NotPanics(t, func() { l.Info("dropped") })
}

func TestGlobalLogger(t *testing.T) {
	t.Cleanup(CloseLogger)

	buf := &bytes.Buffer{}
	l, err := NewLogger(LoggerOptions{Level: "debug"})
	require.NoError(t, err)
	l.AddOutput(NewConsoleOutput(buf, FormatText))
	SetLogger(l)

	LogDebugf("pair %s", "N0")
	LogWarn("slow", Field{Key: "ms", Value: 40})
	assert.Contains(t, buf.String(), "pair N0")
	assert.Contains(t, buf.String(), "slow ms=40")

	CloseLogger()
	buf.Reset()
	LogError("after close")
	assert.Empty(t, buf.String())
}

func TestParseLogFormat(t *testing.T) {
	f, err := ParseLogFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseLogFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, f)

	_, err = ParseLogFormat("xml")
	assert.Error(t, err)
}

func TestFormatEntryTimestamp(t *testing.T) {
	entry := LogEntry{
		Timestamp: time.Date(2023, 3, 17, 9, 0, 0, 5e6, time.Local),
		Level:     "INFO",
		Message:   "x",
	}
	line, err := formatEntry(entry, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "2023/03/17 09:00:00.005 [INFO] x", line)
}

func TestGetFileInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0644))

	before, err := GetFileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), before.Size)

	require.NoError(t, os.WriteFile(path, []byte("1234567"), 0644))
	after, err := GetFileInfo(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), after.Size)
	assert.Equal(t, before.Inode, after.Inode)
	assert.NotEqual(t, *before, *after)

	_, err = GetFileInfo(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
