// ABOUTME: Search base resolution: "@" prefix, tilde expansion, Unicode spaces, NFD variants
// ABOUTME: Resolves model-supplied paths against the workspace and requires a directory

package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeSpaces replaces Unicode space characters with ASCII space (U+0020).
// Covered codepoints: U+00A0, U+2000-U+200A, U+202F, U+205F, U+3000.
func NormalizeSpaces(s string) string {
	if !strings.ContainsFunc(s, isUnicodeSpace) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isUnicodeSpace(r) {
			return ' '
		}
		return r
	}, s)
}

func isUnicodeSpace(r rune) bool {
	switch {
	case r == '\u00A0', r == '\u202F', r == '\u205F', r == '\u3000':
		return true
	case r >= '\u2000' && r <= '\u200A':
		return true
	}
	return false
}

// ExpandPath strips a leading "@" that models sometimes prepend, expands a
// leading "~" to the home directory, and normalizes Unicode spaces.
func ExpandPath(path string) string {
	path = strings.TrimPrefix(path, "@")
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return NormalizeSpaces(path)
}

// resolveAgainst expands path and joins it to workspace when relative.
func resolveAgainst(path, workspace string) string {
	path = ExpandPath(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspace, path)
	}
	return filepath.Clean(path)
}

// ResolveSearchPath returns the absolute directory to search for path. An
// empty path is the workspace itself. When the direct resolution does not
// exist, the NFD and straight-apostrophe variants are tried before giving up
// with ErrPathNotFound.
func ResolveSearchPath(path, workspace string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = "."
	}
	direct := resolveAgainst(path, workspace)
	candidates := []string{
		direct,
		resolveAgainst(norm.NFD.String(path), workspace),
		resolveAgainst(strings.ReplaceAll(path, "\u2019", "'"), workspace),
		resolveAgainst(norm.NFD.String(strings.ReplaceAll(path, "\u2019", "'")), workspace),
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%w: %s is not a directory", ErrPathNotFound, c)
		}
		return c, nil
	}
	return "", fmt.Errorf("%w: no such directory: %s", ErrPathNotFound, direct)
}
