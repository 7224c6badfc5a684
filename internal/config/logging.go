package config

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const serviceName = "gatherhub"

// NewLogger builds the process logger from the logging config. Unknown
// levels fall back to info, unknown formats to JSON. The result is also
// installed as the global zerolog logger.
func (c LoggingConfig) NewLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	logger := zerolog.New(c.writer()).
		Level(c.level()).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	log.Logger = logger
	return logger
}

func (c LoggingConfig) level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

func (c LoggingConfig) writer() io.Writer {
	if c.Format == "console" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
	}
	return os.Stdout
}
