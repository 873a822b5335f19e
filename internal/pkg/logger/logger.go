package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger.
// Development gets a human-readable console writer; production logs JSON.
func Setup(isProduction bool) zerolog.Logger {
	var logger zerolog.Logger
	if isProduction {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		logger = zerolog.New(output).With().Timestamp().Logger()
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	log.Logger = logger
	return logger
}
