package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-core-poc/server/internal/core"
)

func TestInitProductionWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Production, Output: &buf})
	t.Cleanup(func() { Init(LoggerOpts{Environment: core.Testing}) })

	Debug().Msg("hidden")
	Info().Str("stage", "draft").Msg("Stage finished")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "draft", entry["stage"])
	assert.Equal(t, "Stage finished", entry["message"])
}

func TestInitTestingOnlyWarns(t *testing.T) {
	var buf bytes.Buffer
	Init(LoggerOpts{Environment: core.Testing, Output: &buf})

	Info().Msg("quiet")
	assert.Zero(t, buf.Len())
	Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}
