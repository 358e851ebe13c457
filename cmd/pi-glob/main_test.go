// ABOUTME: Tests for CLI flag parsing and the run entry point
// ABOUTME: run is exercised end to end against a temp workspace with an isolated HOME

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mauromedda/pi-glob/internal/config"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		argv []string
		want map[string]any
		rest []string
	}{
		{
			name: "no flags",
			argv: []string{"*.go"},
			want: map[string]any{},
			rest: []string{"*.go"},
		},
		{
			name: "search flags",
			argv: []string{"-max-results", "5", "-workers", "2", "-timeout", "3s", "-format", "json", "**/*.md", "docs"},
			want: map[string]any{
				config.KeyMaxResults: 5,
				config.KeyWorkers:    2,
				config.KeyTimeout:    3 * time.Second,
				config.KeyFormat:     "json",
			},
			rest: []string{"**/*.md", "docs"},
		},
		{
			name: "no-follow and verbose",
			argv: []string{"--no-follow", "--verbose", "x"},
			want: map[string]any{
				config.KeyFollowSymlinks: false,
				config.KeyLogLevel:       "debug",
			},
			rest: []string{"x"},
		},
		{
			name: "explicit zero still overrides",
			argv: []string{"-max-results=0", "x"},
			want: map[string]any{config.KeyMaxResults: 0},
			rest: []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			args, err := parseFlags(tt.argv, io.Discard)
			if err != nil {
				t.Fatal(err)
			}
			got := args.overrides()
			if len(got) != len(tt.want) {
				t.Fatalf("overrides = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("overrides[%s] = %v, want %v", k, got[k], v)
				}
			}
			if strings.Join(args.remaining(), " ") != strings.Join(tt.rest, " ") {
				t.Errorf("remaining = %v, want %v", args.remaining(), tt.rest)
			}
		})
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	t.Parallel()

	args, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if args.parallel != 1 || args.serve || args.showConfig || args.version {
		t.Errorf("defaults = %+v", args)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	if _, err := parseFlags([]string{"-bogus"}, &stderr); err == nil {
		t.Error("expected error for unknown flag")
	}
	if _, err := parseFlags([]string{"-h"}, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h err = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stderr.String(), "usage: pi-glob") {
		t.Errorf("usage not printed: %q", stderr.String())
	}
}

// setupRun isolates HOME and changes into a fresh workspace with a few files.
func setupRun(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("NO_COLOR", "1")

	ws := t.TempDir()
	if err := os.MkdirAll(filepath.Join(ws, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, f := range []string{"src/a.go", "src/b.go", "README.md"} {
		p := filepath.Join(ws, f)
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(ws)
	return ws
}

func runArgs(t *testing.T, stdin string, argv ...string) (int, string, error) {
	t.Helper()
	args, err := parseFlags(argv, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	code, err := run(context.Background(), args, streams{in: strings.NewReader(stdin), out: &out, err: &errOut})
	return code, out.String(), err
}

func TestRun_Print(t *testing.T) {
	setupRun(t)

	code, out, err := runArgs(t, "", "**/*.go")
	if err != nil || code != 0 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[1] != "src/b.go" || lines[2] != "src/a.go" {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_ToolErrorExitCode(t *testing.T) {
	setupRun(t)

	code, out, err := runArgs(t, "", "-format", "json", "*", "missing")
	if err != nil {
		t.Fatal(err)
	}
	if code != exitToolError {
		t.Errorf("code = %d, want %d", code, exitToolError)
	}
	if !strings.Contains(out, `"code":"path_not_found"`) {
		t.Errorf("output = %s", out)
	}
}

func TestRun_Usage(t *testing.T) {
	setupRun(t)

	if _, _, err := runArgs(t, ""); err == nil || !strings.Contains(err.Error(), "usage") {
		t.Errorf("err = %v, want usage error", err)
	}
	if _, _, err := runArgs(t, "", "a", "b", "c"); err == nil {
		t.Error("expected error for three positional args")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	setupRun(t)

	if _, _, err := runArgs(t, "", "-max-results", "0", "*"); err == nil {
		t.Error("expected validation error for max-results 0")
	}
}

func TestRun_ShowConfig(t *testing.T) {
	setupRun(t)

	code, out, err := runArgs(t, "", "-show-config", "-max-results", "7")
	if err != nil || code != 0 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	if !strings.Contains(out, "=== Search ===") || !strings.Contains(out, "7") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_Serve(t *testing.T) {
	setupRun(t)

	stdin := `{"id":"s1","kind":"glob","action":{"pattern":"*.md"}}` + "\n"
	code, out, err := runArgs(t, stdin, "-serve")
	if err != nil || code != 0 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	if !strings.Contains(out, `"id":"s1"`) || !strings.Contains(out, `"README.md"`) {
		t.Errorf("output = %s", out)
	}

	if _, _, err := runArgs(t, "", "-serve", "extra"); err == nil {
		t.Error("expected error for positional args with -serve")
	}
}
