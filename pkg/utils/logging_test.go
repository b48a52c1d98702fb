package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var console, file bytes.Buffer

	logger, err := NewLogger(&console, "info", &file)
	require.NoError(t, err)

	logger.Debug("file written", slog.String("path", "a.sinc"))
	logger.Info("family built", slog.String("family", "ProgCtrl"))

	assert.NotContains(t, console.String(), "file written")
	assert.Contains(t, console.String(), "family=ProgCtrl")

	records := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, records, 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(records[1]), &record))
	assert.Equal(t, "family built", record["msg"])
	assert.Equal(t, "ProgCtrl", record["family"])
}

func TestNewLogger_ConsoleOnly(t *testing.T) {
	var console bytes.Buffer

	logger, err := NewLogger(&console, "DEBUG", nil)
	require.NoError(t, err)

	logger.Debug("file written")
	assert.Contains(t, console.String(), "file written")
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLogLevel("chatty")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}
