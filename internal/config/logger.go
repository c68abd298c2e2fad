package config

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// NewLogger returns a logger writing to w at the level named by the
// LOG_LEVEL environment variable. Unknown levels fall back to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(LogLevel())
	return logger
}

// LogLevel parses LOG_LEVEL.
func LogLevel() log.Level {
	level, err := log.ParseLevel(strings.ToLower(GetEnv("LOG_LEVEL", "info")))
	if err != nil {
		return log.InfoLevel
	}
	return level
}
