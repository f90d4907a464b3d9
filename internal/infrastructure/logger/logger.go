package logger

import (
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu           sync.Mutex
	configured   bool
	globalLogger zerolog.Logger
)

// GetLogger returns the global logger. Before New has run it falls back to a
// console logger at info level, so packages may log during early startup.
func GetLogger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !configured {
		install(consoleLogger(), zerolog.InfoLevel)
	}
	return globalLogger
}

// New constructs the global zerolog logger from level and format
// configuration. Every later GetLogger call returns this logger.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, err
	}

	var writer zerolog.Logger
	switch strings.ToLower(format) {
	case "json":
		writer = zerolog.New(os.Stdout).With().Timestamp().Logger()
	case "console":
		writer = consoleLogger()
	default:
		return zerolog.Logger{}, errors.New("unsupported log format")
	}

	mu.Lock()
	defer mu.Unlock()
	install(writer, lvl)
	return globalLogger, nil
}

// install must be called with mu held.
func install(base zerolog.Logger, lvl zerolog.Level) {
	zerolog.SetGlobalLevel(lvl)
	globalLogger = base.Level(lvl)
	configured = true
}

func consoleLogger() zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(consoleWriter).With().Timestamp().Logger()
}
