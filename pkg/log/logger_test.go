package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	var buf bytes.Buffer
	l := build("finance-analytics", WithWriter(&buf), WithLogLevel("warn"))

	l.Info().Msg("dropped")
	l.Warn().Str("transaction_id", "tx-1").Msg("kept")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "finance-analytics", entry["service"])
	assert.Equal(t, "tx-1", entry["transaction_id"])
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestWithLogLevelUnknownKeepsInfo(t *testing.T) {
	var buf bytes.Buffer
	l := build("finance-analytics", WithWriter(&buf), WithLogLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}
