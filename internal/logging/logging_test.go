package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", FormatJSON)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("filter", "credit_score").Msg("applied filter")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"filter":"credit_score"`)
	assert.Contains(t, out, `"time":`)
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "DEBUG", FormatConsole)
	require.NoError(t, err)

	log.Debug().Int("after", 3).Msg("applied filter")
	out := buf.String()
	assert.Contains(t, out, "applied filter")
	assert.Contains(t, out, "after=3")
	assert.NotContains(t, out, "{", "console output is not JSON")
}

func TestNew_EmptyLevelDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "", FormatJSON)
	require.NoError(t, err)

	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty", FormatJSON)
	assert.ErrorContains(t, err, "parsing log level")

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.ErrorContains(t, err, "unknown log format")
}
