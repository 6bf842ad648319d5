package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "debug"},
		{"WARN", "warn"},
		{"  Error  ", "error"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeLogLevel(tt.input), "input %q", tt.input)
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "warn")

	cl.Debugf("hidden %d", 1)
	cl.Infof("hidden too")
	cl.Warnf("shown warning")
	cl.Errorf("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
	assert.Contains(t, out, "shown error")
}

func TestConsoleLoggerTimestampPrefix(t *testing.T) {
	var buf bytes.Buffer
	cl := NewConsoleLogger(&buf, "info")

	cl.Infof("message")

	// Expect [HH:MM:SS] prefix
	line := buf.String()
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] info  message\n$`, line)
}

func TestConsoleLoggerNilWriter(t *testing.T) {
	cl := NewConsoleLogger(nil, "info")

	// Must not panic
	cl.Infof("dropped")
	cl.Errorf("dropped")
}

func TestFileLoggerWritesRunLog(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLoggerWithDirAndLevel(dir, "debug")
	require.NoError(t, err)

	fl.Debugf("debug line")
	fl.Warnf("warn line %d", 42)
	fl.Tracef("filtered out")
	require.NoError(t, fl.Close())

	data, err := os.ReadFile(fl.RunFile())
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "=== Stellium Run Log ===")
	assert.Contains(t, content, "debug line")
	assert.Contains(t, content, "warn line 42")
	assert.NotContains(t, content, "filtered out")

	// latest.log symlink points at the run file
	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(fl.RunFile()), target)
}

func TestFileLoggerRunFileNaming(t *testing.T) {
	dir := t.TempDir()

	fl, err := NewFileLoggerWithDirAndLevel(dir, "info")
	require.NoError(t, err)
	defer fl.Close()

	assert.True(t, strings.HasPrefix(filepath.Base(fl.RunFile()), "run-"))
	assert.True(t, strings.HasSuffix(fl.RunFile(), ".log"))
}

func TestNopLoggerSatisfiesInterface(t *testing.T) {
	var l Logger = Nop{}
	l.Warnf("discarded %s", "silently")
}
