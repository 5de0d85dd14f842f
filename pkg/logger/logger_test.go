package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelFor_PorDefectoSegunEntorno(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, levelFor(Config{Env: "development"}))
	assert.Equal(t, zerolog.InfoLevel, levelFor(Config{Env: "production"}))
}

func TestLevelFor_NivelExplicito(t *testing.T) {
	assert.Equal(t, zerolog.WarnLevel, levelFor(Config{Env: "development", Level: "WARN"}))
	assert.Equal(t, zerolog.ErrorLevel, levelFor(Config{Level: "error"}))
}

func TestLevelFor_NivelDesconocido_UsaInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, levelFor(Config{Level: "verboso"}))
}

func TestComponent_ConservaNivel(t *testing.T) {
	l := New(Config{Env: "production", Level: "warn", App: "bodega-api"})
	assert.Equal(t, zerolog.WarnLevel, l.Component("engine").Level())
}
