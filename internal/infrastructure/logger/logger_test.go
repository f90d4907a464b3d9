package logger_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taborra-server/whatsapp-bridge/internal/infrastructure/logger"
)

func TestNew_ConfiguresGlobalLogger(t *testing.T) {
	log, err := logger.New("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	// Later GetLogger calls keep the configured level instead of resetting
	// to the console/info default.
	assert.Equal(t, zerolog.DebugLevel, logger.GetLogger().GetLevel())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := logger.New("chatty", "json")
	assert.Error(t, err)
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	_, err := logger.New("info", "xml")
	assert.Error(t, err)
}
