package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-lambdas/pkg/logger"
)

func TestNewWithWriter_IncluyeAppYRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "info", Name: "get_item"})

	log.WithRequestID("req-1").Info().Str("item_id", "42").Msg("hola")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "get_item", line["app"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "42", line["item_id"])
	assert.Equal(t, "hola", line["message"])
}

func TestNewWithWriter_RespetaNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "error"})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	log.Error().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNop_NoEscribe(t *testing.T) {
	log := logger.Nop()
	assert.NotPanics(t, func() { log.Error().Msg("nada") })
}

func TestNewWithWriter_DebugSoloConNivelDebug(t *testing.T) {
	var buf bytes.Buffer
	logger.NewWithWriter(&buf, logger.Config{Level: "info"}).Debug().Msg("oculto")
	assert.Zero(t, buf.Len())

	logger.NewWithWriter(&buf, logger.Config{Level: "debug"}).WithStr("handler", "get_item").Debug().Msg("visible")
	assert.Contains(t, buf.String(), `"handler":"get_item"`)
}
