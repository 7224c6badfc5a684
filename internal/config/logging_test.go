package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggerLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, LoggingConfig{Level: "debug"}.level())
	require.Equal(t, zerolog.WarnLevel, LoggingConfig{Level: "WARN"}.level())
	require.Equal(t, zerolog.InfoLevel, LoggingConfig{Level: "verbose"}.level())
	require.Equal(t, zerolog.InfoLevel, LoggingConfig{}.level())
}

func TestLoggerWriterFormat(t *testing.T) {
	_, isConsole := LoggingConfig{Format: "console"}.writer().(zerolog.ConsoleWriter)
	require.True(t, isConsole)

	_, isConsole = LoggingConfig{Format: "json"}.writer().(zerolog.ConsoleWriter)
	require.False(t, isConsole)
}

func TestNewLoggerAppliesLevel(t *testing.T) {
	logger := LoggingConfig{Level: "error", Format: "json"}.NewLogger()
	require.Equal(t, zerolog.ErrorLevel, logger.GetLevel())
}
