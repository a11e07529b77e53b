// Package logging wraps charmbracelet/log with the defaults gotslint uses
// for diagnostics on stderr and for messages meant for a person.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Process-wide diagnostics logger.
var defaultLogger atomic.Pointer[log.Logger]

// ParseLevel maps debug, info, warn (or warning) and error to a level,
// ignoring case. Anything else is info.
func ParseLevel(level string) log.Level {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "warning" {
		name = "warn"
	}
	parsed, err := log.ParseLevel(name)
	if err != nil || name == "" {
		return log.InfoLevel
	}
	return parsed
}

// New returns a stderr logger at the given level.
func New(level string) *log.Logger {
	return newLogger(os.Stderr, ParseLevel(level))
}

// NewInteractive returns an info logger for command output read by a
// person, such as "wrote tslint.json".
func NewInteractive(w io.Writer) *log.Logger {
	return newLogger(w, log.InfoLevel)
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(level)
	return logger
}

// Default returns the process-wide diagnostics logger, created at info
// level on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, New("info"))
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// SetFormat switches the process-wide logger between text, json and
// logfmt output.
func SetFormat(format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		Default().SetFormatter(log.TextFormatter)
	case "json":
		Default().SetFormatter(log.JSONFormatter)
	case "logfmt":
		Default().SetFormatter(log.LogfmtFormatter)
	default:
		return fmt.Errorf("unknown log format %q (want text, json or logfmt)", format)
	}
	return nil
}
