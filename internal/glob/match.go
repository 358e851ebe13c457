// ABOUTME: Glob matching: anchored, case-sensitive, NFC-normalized path matching
// ABOUTME: Segment NFA handles ** without backtracking; CouldMatchUnder drives walk pruning

package glob

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Match compiles pattern and reports whether rel matches it.
func Match(pattern, rel string) (bool, error) {
	p, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return p.Match(rel), nil
}

// Match reports whether the slash-separated relative path rel matches the
// whole pattern. '*' and '?' never cross a '/'.
func (p *Pattern) Match(rel string) bool {
	parts := splitPath(rel)
	if len(parts) == 0 {
		return false
	}
	for _, segs := range p.alts {
		states := advance(segs, parts)
		if states != nil && states[len(segs)] {
			return true
		}
	}
	return false
}

// CouldMatchUnder reports whether some path strictly below the directory dir
// could match the pattern. The empty string and "." denote the search root.
func (p *Pattern) CouldMatchUnder(dir string) bool {
	parts := splitPath(dir)
	if len(parts) == 0 {
		return true
	}
	for _, segs := range p.alts {
		states := advance(segs, parts)
		if states == nil {
			continue
		}
		// At least one more pattern segment must remain to consume a name.
		for i := 0; i < len(segs); i++ {
			if states[i] {
				return true
			}
		}
	}
	return false
}

// advance runs the segment NFA over parts and returns the reachable state set
// (index i means segs[:i] consumed), or nil when no state survives.
func advance(segs []segment, parts []string) []bool {
	states := make([]bool, len(segs)+1)
	next := make([]bool, len(segs)+1)
	states[0] = true
	closure(segs, states)

	for _, name := range parts {
		clear(next)
		alive := false
		for i := 0; i < len(segs); i++ {
			if !states[i] {
				continue
			}
			seg := &segs[i]
			switch {
			case seg.globstar:
				next[i] = true
				next[i+1] = true
				alive = true
			case seg.match(name):
				next[i+1] = true
				alive = true
			}
		}
		if !alive {
			return nil
		}
		closure(segs, next)
		states, next = next, states
	}
	return states
}

// closure lets a ** segment match zero segments. A trailing ** needs at
// least one, so "a/**" matches a/b but not a itself.
func closure(segs []segment, states []bool) {
	for i := 0; i < len(segs)-1; i++ {
		if states[i] && segs[i].globstar {
			states[i+1] = true
		}
	}
}

func splitPath(rel string) []string {
	if !norm.NFC.IsNormalString(rel) {
		rel = norm.NFC.String(rel)
	}
	raw := strings.Split(rel, "/")
	parts := raw[:0]
	for _, s := range raw {
		if s == "" || s == "." {
			continue
		}
		parts = append(parts, s)
	}
	return parts
}

// match reports whether a single path segment matches this (non-**) segment.
func (s *segment) match(name string) bool {
	if s.isLiteral {
		return s.literal == name
	}
	toks := s.tokens
	ti, ni := 0, 0
	starTi, starNi := -1, 0
	for ni < len(name) {
		if ti < len(toks) {
			t := toks[ti]
			r, size := utf8.DecodeRuneInString(name[ni:])
			switch t.kind {
			case tokStar:
				starTi, starNi = ti, ni
				ti++
				continue
			case tokAny:
				ti++
				ni += size
				continue
			case tokLiteral:
				if r == t.lit {
					ti++
					ni += size
					continue
				}
			case tokClass:
				if t.class.matches(r) {
					ti++
					ni += size
					continue
				}
			}
		}
		if starTi < 0 {
			return false
		}
		// Let the last '*' absorb one more rune and retry.
		_, size := utf8.DecodeRuneInString(name[starNi:])
		starNi += size
		ti, ni = starTi+1, starNi
	}
	for ti < len(toks) && toks[ti].kind == tokStar {
		ti++
	}
	return ti == len(toks)
}
