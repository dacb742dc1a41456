package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultLevel is the level used when none is configured.
const DefaultLevel = "info"

//nolint:gochecknoglobals // Fallback logger for code running outside a command context.
var defaultLogger = sync.OnceValue(func() *log.Logger {
	return New(DefaultLevel)
})

// New creates a logger writing to stderr at level.
// Valid levels: "debug", "info", "warn", "error".
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at level. Timestamps and
// caller information are omitted; the output is meant for a terminal.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  ParseLevel(level),
		Prefix: "mdlstyle",
	})
}

// ParseLevel maps a level name to a log level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the process-wide fallback logger.
func Default() *log.Logger {
	return defaultLogger()
}
