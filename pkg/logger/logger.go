package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// New builds the application logger. Development gets a console writer,
// anything else writes JSON to stdout.
func New(env, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if env == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	return logger.Level(lvl).With().Timestamp().Logger()
}
