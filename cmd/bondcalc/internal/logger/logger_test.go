package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	testCases := []struct {
		level    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			New(Config{Level: tc.level})
			assert.Equal(t, tc.expected, zerolog.GlobalLevel())
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "info"}, &buf)
	l.Info().Int("bonds", 3).Msg("projected")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "projected", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["bonds"])

	ts, ok := entry["time"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err)
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "warn"}, &buf)
	l.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	l.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(Config{Level: "info", Pretty: true}, &buf)
	l.Info().Msg("test message")

	out := buf.String()
	assert.Contains(t, out, "test message")
	assert.Contains(t, out, "INF")
}

func TestSetGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	defer func() { log.Logger = orig }()

	SetGlobalLogger(NewWithWriter(Config{Level: "info"}, &buf))
	log.Info().Msg("global")
	assert.Contains(t, buf.String(), "global")
}
