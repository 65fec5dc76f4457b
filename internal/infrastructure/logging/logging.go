// Package logging builds the leveled loggers used across the engine.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const prefix = "simian"

var (
	defaultLogger *log.Logger
	once          sync.Once
)

// New creates a logger writing to w at the given level
func New(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           level,
	})
	return l
}

// Default returns the process-wide logger (stderr, info level)
func Default() *log.Logger {
	once.Do(func() {
		if defaultLogger == nil {
			defaultLogger = New(os.Stderr, log.InfoLevel)
		}
	})
	return defaultLogger
}

// SetDefault replaces the process-wide logger
func SetDefault(l *log.Logger) {
	once.Do(func() {})
	defaultLogger = l
}

// ParseLevel parses a level name: debug, info, warn, error or fatal.
func ParseLevel(level string) (log.Level, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return lvl, nil
}

// Discard returns a logger that drops everything, for tests
func Discard() *log.Logger {
	return New(io.Discard, log.FatalLevel)
}
