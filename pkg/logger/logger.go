package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Level controls which messages a Logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the level tag used in log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. Unknown names map to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled logger with a fixed component tag. Fields are passed as
// alternating key/value pairs.
type Logger struct {
	component string
	level     Level
	out       *log.Logger
}

// New creates a logger for the given component at the given level name.
func New(component, level string) *Logger {
	return &Logger{
		component: component,
		level:     ParseLevel(level),
		out:       log.New(os.Stderr, "", 0),
	}
}

func (l *Logger) format(level Level, msg string, fields ...interface{}) string {
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")

	var b strings.Builder
	if len(fields) > 0 {
		b.WriteString(" |")
		for i := 0; i+1 < len(fields); i += 2 {
			fmt.Fprintf(&b, " %s=%v", fields[i], fields[i+1])
		}
	}
	return fmt.Sprintf("[%s] %s [%s] %s%s", ts, level, l.component, msg, b.String())
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, fields ...interface{}) {
	if l.level <= LevelDebug {
		l.out.Println(l.format(LevelDebug, msg, fields...))
	}
}

// Info logs an informational message.
func (l *Logger) Info(msg string, fields ...interface{}) {
	if l.level <= LevelInfo {
		l.out.Println(l.format(LevelInfo, msg, fields...))
	}
}

// Warn logs a warning.
func (l *Logger) Warn(msg string, fields ...interface{}) {
	if l.level <= LevelWarn {
		l.out.Println(l.format(LevelWarn, msg, fields...))
	}
}

// Error logs an error.
func (l *Logger) Error(msg string, fields ...interface{}) {
	l.out.Println(l.format(LevelError, msg, fields...))
}
