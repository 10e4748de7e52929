package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Format: FormatJSON, Writer: &buf, RunID: "run-1"})
	scoped := WithComponent(logger, "pipeline")
	scoped.Debug().Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "run-1", line["run_id"])
	assert.Equal(t, "pipeline", line["component"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "hello", line["message"])
}

func TestNewGeneratesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Format: FormatJSON, Writer: &buf})
	logger.Info().Msg("x")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	id, ok := line["run_id"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		infoOn  bool
	}{
		{"", false, true},
		{"bogus", false, true},
		{"DEBUG", true, true},
		{"warn", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Options{Level: tt.level, Format: FormatJSON, Writer: &buf})

			logger.Debug().Msg("d")
			assert.Equal(t, tt.debugOn, buf.Len() > 0)

			buf.Reset()
			logger.Info().Msg("i")
			assert.Equal(t, tt.infoOn, buf.Len() > 0)
		})
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := WithRegion(New(Options{Writer: &buf, RunID: "r"}), "exit")
	logger.Info().Msg("basket filled")

	out := buf.String()
	assert.Contains(t, out, "basket filled")
	assert.Contains(t, out, "region=")
	assert.NotContains(t, out, "{")
}
