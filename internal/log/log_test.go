// ABOUTME: Tests for the leveled logger
// ABOUTME: Validates level filtering, line format, nil-safety and level parsing

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLevel(t *testing.T) {
	t.Parallel()

	l := New(&bytes.Buffer{}, LevelInfo)
	l.SetLevel(LevelDebug)
	if l.Level() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", l.Level())
	}

	l.SetLevel(LevelError)
	if l.Level() != LevelError {
		t.Errorf("expected LevelError, got %v", l.Level())
	}
}

func TestDebugSuppressedAtInfoLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.Debug("this should be suppressed: %s", "test")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestLineFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, LevelDebug)
	l.Debug("walk %s", "src")
	l.Info("found %d", 3)
	l.Warn("skipped")
	l.Error("boom")

	want := "[DEBUG] walk src\n[INFO] found 3\n[WARN] skipped\n[ERROR] boom\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestErrorLevelFiltersWarn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, LevelError)
	l.Warn("quiet")
	l.Error("loud")

	if strings.Contains(buf.String(), "quiet") {
		t.Errorf("warn should be filtered at error level, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "loud") {
		t.Errorf("error should be emitted, got %q", buf.String())
	}
}

func TestNilLoggerIsNoop(t *testing.T) {
	t.Parallel()

	var l *Logger
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.SetLevel(LevelDebug)
	if l.Level() <= LevelError {
		t.Errorf("nil logger should report a level above error, got %v", l.Level())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
