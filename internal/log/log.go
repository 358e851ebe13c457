// ABOUTME: Leveled logger wrapping slog levels; one instance per program, passed to constructors
// ABOUTME: Writes "[LEVEL] message" lines to the configured writer (stderr by default)

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger is a leveled line logger. A nil *Logger discards everything.
type Logger struct {
	mu    sync.Mutex
	w     io.Writer
	level atomic.Int64
}

// New creates a Logger writing to w at the given level.
// A nil writer defaults to os.Stderr.
func New(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	l := &Logger{w: w}
	l.level.Store(int64(level))
	return l
}

// Discard returns a Logger that drops all output.
func Discard() *Logger {
	return New(io.Discard, LevelError+1)
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SetLevel sets the minimum level that is emitted.
func (l *Logger) SetLevel(level slog.Level) {
	if l == nil {
		return
	}
	l.level.Store(int64(level))
}

// Level returns the current minimum level.
func (l *Logger) Level() slog.Level {
	if l == nil {
		return LevelError + 1
	}
	return slog.Level(l.level.Load())
}

// Debug logs a debug message if the level allows it.
func (l *Logger) Debug(format string, args ...any) {
	l.logf(LevelDebug, "[DEBUG] ", format, args...)
}

// Info logs an info message if the level allows it.
func (l *Logger) Info(format string, args ...any) {
	l.logf(LevelInfo, "[INFO] ", format, args...)
}

// Warn logs a warning message if the level allows it.
func (l *Logger) Warn(format string, args ...any) {
	l.logf(LevelWarn, "[WARN] ", format, args...)
}

// Error logs an error message if the level allows it.
func (l *Logger) Error(format string, args ...any) {
	l.logf(LevelError, "[ERROR] ", format, args...)
}

func (l *Logger) logf(level slog.Level, prefix, format string, args ...any) {
	if l == nil || slog.Level(l.level.Load()) > level {
		return
	}
	// Walker goroutines log concurrently; keep lines whole.
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, prefix+format+"\n", args...)
}
