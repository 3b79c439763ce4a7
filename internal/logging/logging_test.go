package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorTextHandler_Handle_FormatsLevelMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewColorTextHandler(&buf, nil, false)
	l := slog.New(h)

	l.Info("step complete", "slave", "engine", "elapsed", 0.25)

	line := buf.String()
	assert.Contains(t, line, "[INFO]")
	assert.Contains(t, line, "step complete")
	assert.Contains(t, line, "slave=engine")
	assert.Contains(t, line, "elapsed=0.25")
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestColorTextHandler_Handle_ColorizesWhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	h := NewColorTextHandler(&buf, nil, true)
	slog.New(h).Warn("careful")
	assert.Contains(t, buf.String(), colorYellow)
	assert.Contains(t, buf.String(), colorReset)
}

func TestColorTextHandler_Enabled_RespectsConfiguredLevel(t *testing.T) {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	h := NewColorTextHandler(&bytes.Buffer{}, opts, false)
	assert.False(t, h.Enabled(nil, slog.LevelInfo))
	assert.True(t, h.Enabled(nil, slog.LevelWarn))
	assert.True(t, h.Enabled(nil, slog.LevelError))
}

func TestColorTextHandler_WithAttrs_PersistsAcrossRecords(t *testing.T) {
	var buf bytes.Buffer
	h := NewColorTextHandler(&buf, nil, false)
	tagged := slog.New(h.WithAttrs([]slog.Attr{slog.String("instance", "composite-1")}))

	tagged.Info("hello")
	assert.Contains(t, buf.String(), "instance=composite-1")
}

func TestColorTextHandler_WithGroup_EmptyNameIsNoop(t *testing.T) {
	h := NewColorTextHandler(&bytes.Buffer{}, nil, false)
	assert.Same(t, h, h.WithGroup(""))
}

func TestTaggedAndForSlave_BindInstanceAndSlaveKeys(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	ForSlave(Tagged("composite-1"), "engine").Info("stepped")
	line := buf.String()
	assert.Contains(t, line, "instance=composite-1")
	assert.Contains(t, line, "slave=engine")
}

func TestForSlave_NilLoggerFallsBackToPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	ForSlave(nil, "engine").Info("ok")
	assert.Contains(t, buf.String(), "slave=engine")
}

func TestSetLevel_FiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)

	Info("suppressed")
	Warn("kept")

	assert.NotContains(t, buf.String(), "suppressed")
	assert.Contains(t, buf.String(), "kept")
}

func TestSetFormat_SwitchesToJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)

	Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	// restore text format so later tests in this package aren't affected.
	InitWithWriter(&buf, "INFO", "text", false)
}

func TestInit_UnknownOutputOpensFile(t *testing.T) {
	path := t.TempDir() + "/out.log"
	require.NoError(t, Init(Config{Output: path, Level: "INFO", Format: "text"}))
	Info("to file")

	InitWithWriter(&bytes.Buffer{}, "INFO", "text", false)
}

func TestDuration_ReturnsMillisecondsSinceStart(t *testing.T) {
	start := time.Now().Add(-10 * time.Millisecond)
	assert.GreaterOrEqual(t, Duration(start), 9.0)
}
