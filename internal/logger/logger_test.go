package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_JSON(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	Configure(&buf, "warn", "json")

	log.Info().Msg("hidden")
	log.Warn().Str("code", "533946").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "533946", entry["code"])
	assert.Equal(t, "plateau-gateway", entry["service"])
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}

func TestConfigure_UnknownLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var buf bytes.Buffer
	Configure(&buf, "loud", "console")

	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
}
