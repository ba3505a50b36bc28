package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, zerolog.DebugLevel, New(&buf, "DEBUG").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(&buf, "nonsense").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, New(&buf, "").GetLevel())
}

func TestNewWritesStructuredJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info")
	l.Info().Str("ticker", "AAPL").Msg("hello")
	l.Debug().Msg("dropped")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "AAPL", entry["ticker"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry, "time")
}
