// Package rslog wraps gitlab.com/NebulousLabs/log behind the small
// surface this CLI needs: leveled Debug/Info/Error lines gated by
// RS_LOG_LEVEL. Narrowing to this surface keeps the rest of the module
// decoupled from the exact shape of the upstream logger.
package rslog

import (
	"fmt"
	"io"
	"os"
	"strings"

	nlog "gitlab.com/NebulousLabs/log"
)

// Level selects which lines are emitted.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

// LevelFromEnv reads RS_LOG_LEVEL ("error"|"info"|"debug"), defaulting
// to LevelInfo for an unset or unrecognized value. The one environment
// input this tool accepts.
func LevelFromEnv() Level {
	switch strings.ToLower(os.Getenv("RS_LOG_LEVEL")) {
	case "error":
		return LevelError
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger is the leveled logger used by the driver and CLI.
type Logger struct {
	level Level
	inner *nlog.Logger
}

// New builds a Logger writing to w at the given level.
func New(w io.Writer, level Level) (*Logger, error) {
	inner, err := nlog.NewLogger(w)
	if err != nil {
		return nil, err
	}
	return &Logger{level: level, inner: inner}, nil
}

// Debugf logs a debug-level line when the configured level permits it.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.inner.Debugln(sprintf(format, args...))
	}
}

// Infof logs an informational line when the configured level permits it.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		l.inner.Println(sprintf(format, args...))
	}
}

// Errorf always logs, regardless of level: errors are never suppressed.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.inner.Severe(sprintf(format, args...))
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
