// ABOUTME: Glob pattern compiler: braces, ** segments, *, ?, [classes] and \ escapes
// ABOUTME: Compilation is pure and fails fast with ErrInvalidPattern before any I/O

package glob

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidPattern is returned (wrapped with a reason) for malformed patterns.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// maxAlternatives bounds brace expansion, e.g. {a,b}{c,d}{e,f}... blowups.
const maxAlternatives = 1024

const globstar = "**"

type tokenKind uint8

const (
	tokLiteral tokenKind = iota // single rune
	tokAny                      // ?
	tokStar                     // *
	tokClass                    // [...]
)

type token struct {
	kind  tokenKind
	lit   rune
	class *charClass
}

type runeRange struct {
	lo, hi rune
}

type charClass struct {
	negated bool
	ranges  []runeRange
}

func (c *charClass) matches(r rune) bool {
	in := false
	for _, rr := range c.ranges {
		if r >= rr.lo && r <= rr.hi {
			in = true
			break
		}
	}
	return in != c.negated
}

// segment is one '/'-separated piece of a pattern.
type segment struct {
	globstar  bool
	isLiteral bool
	literal   string
	tokens    []token
}

// Pattern is a compiled, immutable glob pattern. Safe for concurrent use.
type Pattern struct {
	raw  string
	alts [][]segment // one entry per brace alternative
}

// String returns the pattern as given to Compile.
func (p *Pattern) String() string {
	return p.raw
}

// Alternatives returns how many brace alternatives the pattern expanded to.
func (p *Pattern) Alternatives() int {
	return len(p.alts)
}

// Compile parses a glob pattern.
//
// Syntax: '/' separates segments; a segment of exactly "**" matches zero or
// more segments; '*' matches any run of characters within a segment; '?'
// matches one character; "[a-z]", "[!a-z]" and "[^a-z]" match one character
// from (or not from) a set; "{a,b}" expands to alternatives; '\' escapes the
// next character. Patterns are relative: absolute patterns and ".."
// segments are rejected.
func Compile(pattern string) (*Pattern, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	s := norm.NFC.String(pattern)
	if strings.HasPrefix(s, "/") {
		return nil, fmt.Errorf("%w: %q is absolute; patterns are relative to the search path", ErrInvalidPattern, pattern)
	}

	expanded, err := expandBraces(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}

	p := &Pattern{raw: pattern, alts: make([][]segment, 0, len(expanded))}
	for _, alt := range expanded {
		segs, err := compileSegments(alt)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
		}
		p.alts = append(p.alts, segs)
	}
	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for tests and
// package-level patterns.
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

func compileSegments(s string) ([]segment, error) {
	parts := strings.Split(s, "/")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "", ".":
			continue
		case "..":
			return nil, errors.New("'..' segments are not allowed")
		case globstar:
			if n := len(segs); n > 0 && segs[n-1].globstar {
				continue
			}
			segs = append(segs, segment{globstar: true})
			continue
		}
		seg, err := compileSegment(part)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}
	if len(segs) == 0 {
		return nil, errors.New("pattern has no path segments")
	}
	return segs, nil
}

func compileSegment(s string) (segment, error) {
	var (
		toks    []token
		lit     strings.Builder
		literal = true
	)
	for i := 0; i < len(s); {
		switch s[i] {
		case '\\':
			if i+1 >= len(s) {
				return segment{}, errors.New("trailing backslash")
			}
			r, size := utf8.DecodeRuneInString(s[i+1:])
			toks = append(toks, token{kind: tokLiteral, lit: r})
			lit.WriteRune(r)
			i += 1 + size
		case '*':
			if n := len(toks); n == 0 || toks[n-1].kind != tokStar {
				toks = append(toks, token{kind: tokStar})
			}
			literal = false
			i++
		case '?':
			toks = append(toks, token{kind: tokAny})
			literal = false
			i++
		case '[':
			cls, n, err := parseClass(s[i:])
			if err != nil {
				return segment{}, err
			}
			toks = append(toks, token{kind: tokClass, class: cls})
			literal = false
			i += n
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			toks = append(toks, token{kind: tokLiteral, lit: r})
			lit.WriteRune(r)
			i += size
		}
	}
	if literal {
		return segment{isLiteral: true, literal: lit.String()}, nil
	}
	return segment{tokens: toks}, nil
}

// parseClass parses a bracket expression at the start of s and returns it
// with the number of bytes consumed. A ']' directly after '[' or '[!' is a
// literal member.
func parseClass(s string) (*charClass, int, error) {
	cls := &charClass{}
	i := 1
	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		cls.negated = true
		i++
	}
	first := true
	for {
		if i >= len(s) {
			return nil, 0, errors.New("unterminated character class")
		}
		if s[i] == ']' && !first {
			i++
			break
		}
		first = false

		lo, n, err := classRune(s, i)
		if err != nil {
			return nil, 0, err
		}
		i += n
		hi := lo
		if i+1 < len(s) && s[i] == '-' && s[i+1] != ']' {
			hi, n, err = classRune(s, i+1)
			if err != nil {
				return nil, 0, err
			}
			i += 1 + n
			if hi < lo {
				return nil, 0, fmt.Errorf("bad range %q-%q in character class", lo, hi)
			}
		}
		cls.ranges = append(cls.ranges, runeRange{lo: lo, hi: hi})
	}
	return cls, i, nil
}

func classRune(s string, i int) (rune, int, error) {
	if s[i] == '\\' {
		if i+1 >= len(s) {
			return 0, 0, errors.New("unterminated character class")
		}
		r, size := utf8.DecodeRuneInString(s[i+1:])
		return r, 1 + size, nil
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	return r, size, nil
}

// expandBraces expands {a,b} alternation, including nested and repeated
// groups. Braces inside character classes and escaped braces are literal.
func expandBraces(s string) ([]string, error) {
	open, end, commas, err := findBraceGroup(s)
	if err != nil {
		return nil, err
	}
	if open < 0 {
		return []string{s}, nil
	}

	prefix, suffix := s[:open], s[end+1:]
	bounds := append([]int{open}, commas...)
	bounds = append(bounds, end)

	var out []string
	for i := 0; i+1 < len(bounds); i++ {
		choice := s[bounds[i]+1 : bounds[i+1]]
		rest, err := expandBraces(prefix + choice + suffix)
		if err != nil {
			return nil, err
		}
		out = append(out, rest...)
		if len(out) > maxAlternatives {
			return nil, fmt.Errorf("brace expansion exceeds %d alternatives", maxAlternatives)
		}
	}
	return out, nil
}

// findBraceGroup locates the first top-level {...} group and the positions of
// its top-level commas. open is -1 when there is no group.
func findBraceGroup(s string) (open, end int, commas []int, err error) {
	open = -1
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '[':
			if end := classEnd(s, i); end > 0 {
				i = end
			}
		case '{':
			if depth == 0 {
				open = i
			}
			depth++
		case ',':
			if depth == 1 {
				commas = append(commas, i)
			}
		case '}':
			if depth == 0 {
				return -1, -1, nil, errors.New("unbalanced '}'")
			}
			depth--
			if depth == 0 {
				return open, i, commas, nil
			}
		}
	}
	if depth > 0 {
		return -1, -1, nil, errors.New("unbalanced '{'")
	}
	return -1, -1, nil, nil
}

// classEnd returns the index of the ']' closing the class that starts at
// s[i], or -1 when the class is unterminated.
func classEnd(s string, i int) int {
	j := i + 1
	if j < len(s) && (s[j] == '!' || s[j] == '^') {
		j++
	}
	if j < len(s) && s[j] == ']' {
		j++
	}
	for ; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case ']':
			return j
		case '/':
			return -1
		}
	}
	return -1
}
