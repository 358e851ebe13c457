// ABOUTME: Tests for search base resolution: Unicode spaces, curly quotes, tilde, NFD
// ABOUTME: Uses temp directories to verify ResolveSearchPath variant matching and failures

package tools

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNormalizeSpaces(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no-break space", "hello\u00A0world", "hello world"},
		{"narrow no-break space", "hello\u202Fworld", "hello world"},
		{"ideographic space", "hello\u3000world", "hello world"},
		{"em space", "hello\u2003world", "hello world"},
		{"hair space", "hello\u200Aworld", "hello world"},
		{"medium mathematical space", "hello\u205Fworld", "hello world"},
		{"mixed unicode spaces", "a\u00A0b\u202Fc\u3000d", "a b c d"},
		{"ascii unchanged", "hello world", "hello world"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NormalizeSpaces(tt.input); got != tt.want {
				t.Errorf("NormalizeSpaces(%q) = %q; want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("cannot get home dir: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"tilde expansion", "~/Documents", filepath.Join(home, "Documents")},
		{"bare tilde", "~", home},
		{"tilde user form untouched", "~bob/x", "~bob/x"},
		{"at prefix strip", "@/some/dir", "/some/dir"},
		{"at prefix with tilde", "@~/foo", filepath.Join(home, "foo")},
		{"relative unchanged", "foo/bar", "foo/bar"},
		{"unicode space normalized", "foo\u00A0bar", "foo bar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExpandPath(tt.path); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q; want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolveSearchPath(t *testing.T) {
	t.Parallel()

	mkdir := func(t *testing.T, dir, name string) string {
		t.Helper()
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(p, 0o755); err != nil {
			t.Fatalf("mkdir %q: %v", p, err)
		}
		return p
	}

	t.Run("empty path is the workspace", func(t *testing.T) {
		t.Parallel()
		ws := t.TempDir()
		got, err := ResolveSearchPath("", ws)
		if err != nil || got != filepath.Clean(ws) {
			t.Errorf("got %q, %v; want %q", got, err, ws)
		}
	})

	t.Run("relative directory", func(t *testing.T) {
		t.Parallel()
		ws := t.TempDir()
		want := mkdir(t, ws, "src/pkg")
		got, err := ResolveSearchPath("./src/pkg/", ws)
		if err != nil || got != want {
			t.Errorf("got %q, %v; want %q", got, err, want)
		}
	})

	t.Run("absolute directory ignores workspace", func(t *testing.T) {
		t.Parallel()
		other := t.TempDir()
		got, err := ResolveSearchPath("@"+other, t.TempDir())
		if err != nil || got != filepath.Clean(other) {
			t.Errorf("got %q, %v; want %q", got, err, other)
		}
	})

	t.Run("narrow no-break space", func(t *testing.T) {
		t.Parallel()
		ws := t.TempDir()
		want := mkdir(t, ws, "10 AM")
		got, err := ResolveSearchPath("10\u202FAM", ws)
		if err != nil || got != want {
			t.Errorf("got %q, %v; want %q", got, err, want)
		}
	})

	t.Run("curly quote fallback", func(t *testing.T) {
		t.Parallel()
		ws := t.TempDir()
		want := mkdir(t, ws, "it's")
		got, err := ResolveSearchPath("it\u2019s", ws)
		if err != nil || got != want {
			t.Errorf("got %q, %v; want %q", got, err, want)
		}
	})

	t.Run("NFD fallback", func(t *testing.T) {
		if runtime.GOOS == "darwin" {
			t.Skip("APFS normalizes names; the direct variant already matches")
		}
		t.Parallel()
		ws := t.TempDir()
		want := mkdir(t, ws, norm.NFD.String("café"))
		got, err := ResolveSearchPath(norm.NFC.String("café"), ws)
		if err != nil || got != want {
			t.Errorf("got %q, %v; want %q", got, err, want)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, err := ResolveSearchPath("nope", t.TempDir())
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("err = %v, want ErrPathNotFound", err)
		}
	})

	t.Run("regular file is not a search base", func(t *testing.T) {
		t.Parallel()
		ws := t.TempDir()
		if err := os.WriteFile(filepath.Join(ws, "f.txt"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := ResolveSearchPath("f.txt", ws)
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("err = %v, want ErrPathNotFound", err)
		}
	})
}
