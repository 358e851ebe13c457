// ABOUTME: Glob executor: validates an action, walks the base, filters, ranks, and truncates
// ABOUTME: Keeps only the best MaxResults matches in a min-heap while counting every match

package tools

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/mauromedda/pi-glob/internal/glob"
	"github.com/mauromedda/pi-glob/internal/log"
	"github.com/mauromedda/pi-glob/internal/types"
	"github.com/mauromedda/pi-glob/internal/walk"
)

// DefaultMaxResults caps the matches returned by one search.
const DefaultMaxResults = 100

// GlobOptions configures a GlobExecutor. Options are fixed at construction.
type GlobOptions struct {
	// Workspace is the directory relative paths resolve against.
	// Empty means the process working directory.
	Workspace string
	// MaxResults caps returned matches; values < 1 use DefaultMaxResults.
	MaxResults     int
	Workers        int
	FollowSymlinks bool
	SkipDirs       []string
	// Timeout bounds a single search. Zero means no limit.
	Timeout time.Duration
}

// GlobExecutor runs glob searches. It holds only static configuration and
// is safe for concurrent use.
type GlobExecutor struct {
	workspace  string
	maxResults int
	timeout    time.Duration
	walker     *walk.Walker
	log        *log.Logger
}

// NewGlobExecutor creates an executor. A nil logger discards output.
func NewGlobExecutor(opts GlobOptions, logger *log.Logger) *GlobExecutor {
	ws := opts.Workspace
	if ws == "" {
		if cwd, err := os.Getwd(); err == nil {
			ws = cwd
		} else {
			ws = "."
		}
	}
	if abs, err := filepath.Abs(ws); err == nil {
		ws = abs
	}

	limit := opts.MaxResults
	if limit < 1 {
		limit = DefaultMaxResults
	}

	return &GlobExecutor{
		workspace:  ws,
		maxResults: limit,
		timeout:    opts.Timeout,
		walker: walk.New(walk.Options{
			Workers:        opts.Workers,
			FollowSymlinks: opts.FollowSymlinks,
			SkipDirs:       opts.SkipDirs,
		}, logger),
		log: logger,
	}
}

// Workspace returns the absolute directory relative paths resolve against.
func (e *GlobExecutor) Workspace() string { return e.workspace }

// MaxResults returns the result cap.
func (e *GlobExecutor) MaxResults() int { return e.maxResults }

// Execute searches for files matching action.Pattern under action.Path.
// The pattern is validated before the path, and neither failure touches the
// tree. Errors wrap glob.ErrInvalidPattern, ErrPathNotFound or ErrCancelled.
func (e *GlobExecutor) Execute(ctx context.Context, action types.GlobAction) (types.GlobObservation, error) {
	p, err := glob.Compile(action.Pattern)
	if err != nil {
		return types.GlobObservation{}, err
	}

	base, err := ResolveSearchPath(action.Path, e.workspace)
	if err != nil {
		return types.GlobObservation{}, err
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return types.GlobObservation{}, fmt.Errorf("%w: %w", ErrCancelled, err)
	}

	start := time.Now()
	top := &rankHeap{}
	total := 0

	w := e.walker.WithPrune(func(dir string) bool {
		return !p.CouldMatchUnder(dir)
	})
	rep, err := w.Walk(ctx, base, func(c walk.Candidate) {
		if !p.Match(c.Path) {
			return
		}
		total++
		top.offer(c, e.maxResults)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return types.GlobObservation{}, fmt.Errorf("%w: %w", ErrCancelled, err)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return types.GlobObservation{}, fmt.Errorf("%w: %w", ErrPathNotFound, err)
		}
		return types.GlobObservation{}, fmt.Errorf("glob %s: %w", base, err)
	}

	ranked := top.sorted()
	matches := make([]string, len(ranked))
	for i, c := range ranked {
		matches[i] = c.Path
	}

	e.log.Debug("glob %q in %s: %d/%d matches, %d files, %d dirs, %d skipped (%s)",
		action.Pattern, base, len(matches), total, rep.Files, rep.Dirs, len(rep.Skipped),
		time.Since(start).Round(time.Millisecond))

	return types.GlobObservation{
		Pattern:         action.Pattern,
		SearchPath:      base,
		Matches:         matches,
		Truncated:       total > e.maxResults,
		TotalConsidered: total,
		Skipped:         len(rep.Skipped),
	}, nil
}

// ranksBefore reports whether a is listed before b: newer first, then by
// path in byte order.
func ranksBefore(a, b walk.Candidate) bool {
	if !a.ModTime.Equal(b.ModTime) {
		return a.ModTime.After(b.ModTime)
	}
	return a.Path < b.Path
}

// rankHeap is a min-heap whose root is the worst kept candidate.
type rankHeap []walk.Candidate

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return ranksBefore(h[j], h[i]) }
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *rankHeap) Push(x any)        { *h = append(*h, x.(walk.Candidate)) }
func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// offer keeps c if it ranks among the best limit candidates seen so far.
func (h *rankHeap) offer(c walk.Candidate, limit int) {
	if h.Len() < limit {
		heap.Push(h, c)
		return
	}
	if ranksBefore(c, (*h)[0]) {
		(*h)[0] = c
		heap.Fix(h, 0)
	}
}

// sorted returns the kept candidates in ranking order.
func (h *rankHeap) sorted() []walk.Candidate {
	out := slices.Clone(*h)
	slices.SortFunc(out, func(a, b walk.Candidate) int {
		if ranksBefore(a, b) {
			return -1
		}
		if ranksBefore(b, a) {
			return 1
		}
		return strings.Compare(a.Path, b.Path)
	})
	return out
}
