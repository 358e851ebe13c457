// ABOUTME: Bounded-parallel directory walker emitting regular files with their mod times
// ABOUTME: Follows symlinks with per-branch cycle detection; per-entry errors are skipped, not fatal

package walk

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/mauromedda/pi-glob/internal/log"
)

// Candidate is a regular file found under the walk root.
type Candidate struct {
	Path    string // relative to the root, slash-separated
	ModTime time.Time
}

// Options configures a Walker. The zero value walks with NumCPU workers and
// does not follow symlinks.
type Options struct {
	// Workers bounds how many directories are read concurrently.
	Workers int
	// FollowSymlinks descends into symlinked directories and emits
	// symlinked files. Cycles are detected per traversal branch.
	FollowSymlinks bool
	// SkipDirs lists directory base names that are never entered.
	SkipDirs []string
	// Prune, when set, is asked about every directory (relative,
	// slash-separated); returning true skips its subtree.
	Prune func(relDir string) bool
}

// Report summarizes a finished walk.
type Report struct {
	Files   int
	Dirs    int
	Skipped []Skip
}

// Walker enumerates files. It holds only configuration; every Walk call is
// an independent traversal.
type Walker struct {
	workers        int
	followSymlinks bool
	skipDirs       map[string]bool
	prune          func(string) bool
	log            *log.Logger
}

// New creates a Walker. A nil logger discards output.
func New(opts Options, logger *log.Logger) *Walker {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	skip := make(map[string]bool, len(opts.SkipDirs))
	for _, d := range opts.SkipDirs {
		skip[d] = true
	}
	return &Walker{
		workers:        workers,
		followSymlinks: opts.FollowSymlinks,
		skipDirs:       skip,
		prune:          opts.Prune,
		log:            logger,
	}
}

// WithPrune returns a copy of w that uses prune for this walk only.
func (w *Walker) WithPrune(prune func(relDir string) bool) *Walker {
	cp := *w
	cp.prune = prune
	return &cp
}

// Walk traverses root depth-first and calls visit for every regular file.
// visit runs on the calling goroutine, one candidate at a time, in an
// unspecified order. Walk stops promptly and returns ctx.Err() when ctx is
// cancelled.
func (w *Walker) Walk(ctx context.Context, root string, visit func(Candidate)) (*Report, error) {
	canon, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, fmt.Errorf("resolving walk root %s: %w", root, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	t := &traversal{
		w:     w,
		ctx:   gctx,
		g:     g,
		sem:   semaphore.NewWeighted(int64(w.workers)),
		out:   make(chan Candidate, 4*w.workers),
		skips: &SkipLog{},
	}

	g.Go(func() error {
		return t.dir(root, "", []string{canon})
	})

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(t.out)
	}()

	for c := range t.out {
		visit(c)
	}
	werr := <-done

	rep := &Report{
		Files:   int(t.files.Load()),
		Dirs:    int(t.dirs.Load()),
		Skipped: t.skips.Entries(),
	}
	if werr != nil {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		return rep, werr
	}
	return rep, nil
}

// traversal is the per-call state of one Walk.
type traversal struct {
	w     *Walker
	ctx   context.Context
	g     *errgroup.Group
	sem   *semaphore.Weighted
	out   chan Candidate
	skips *SkipLog
	files atomic.Int64
	dirs  atomic.Int64
}

// dir lists one directory. stack holds the canonical paths of abs and all
// of its ancestors on this branch.
func (t *traversal) dir(abs, rel string, stack []string) error {
	if err := t.ctx.Err(); err != nil {
		return err
	}
	t.dirs.Add(1)

	entries, err := os.ReadDir(abs)
	if err != nil {
		// ReadDir may return a partial listing alongside the error.
		t.skip(rel, ReasonUnreadable, err)
		if len(entries) == 0 {
			return nil
		}
	}

	for _, e := range entries {
		if err := t.ctx.Err(); err != nil {
			return err
		}
		name := e.Name()
		childAbs := filepath.Join(abs, name)
		childRel := path.Join(rel, name)

		switch typ := e.Type(); {
		case typ&fs.ModeSymlink != 0:
			if err := t.symlink(childAbs, childRel, stack); err != nil {
				return err
			}
		case typ.IsDir():
			if !t.enter(name, childRel) {
				continue
			}
			canon := filepath.Join(stack[len(stack)-1], name)
			if err := t.descend(childAbs, childRel, push(stack, canon)); err != nil {
				return err
			}
		case typ.IsRegular():
			info, err := e.Info()
			if err != nil {
				t.skip(childRel, ReasonVanished, err)
				continue
			}
			if err := t.emit(Candidate{Path: childRel, ModTime: info.ModTime()}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *traversal) symlink(abs, rel string, stack []string) error {
	if !t.w.followSymlinks {
		return nil
	}
	info, err := os.Stat(abs)
	if err != nil {
		t.skip(rel, ReasonBrokenLink, err)
		return nil
	}
	switch {
	case info.IsDir():
		if !t.enter(path.Base(rel), rel) {
			return nil
		}
		canon, err := filepath.EvalSymlinks(abs)
		if err != nil {
			t.skip(rel, ReasonBrokenLink, err)
			return nil
		}
		if slices.Contains(stack, canon) {
			t.skip(rel, ReasonCycle, fmt.Errorf("%s is an ancestor on this path", canon))
			return nil
		}
		return t.descend(abs, rel, push(stack, canon))
	case info.Mode().IsRegular():
		return t.emit(Candidate{Path: rel, ModTime: info.ModTime()})
	}
	return nil
}

// enter reports whether a directory should be traversed.
func (t *traversal) enter(name, rel string) bool {
	if t.w.skipDirs[name] {
		return false
	}
	if t.w.prune != nil && t.w.prune(rel) {
		return false
	}
	return true
}

// descend walks a subdirectory on a new goroutine when a worker slot is
// free and inline otherwise, so a saturated pool never blocks.
func (t *traversal) descend(abs, rel string, stack []string) error {
	if t.sem.TryAcquire(1) {
		t.g.Go(func() error {
			defer t.sem.Release(1)
			return t.dir(abs, rel, stack)
		})
		return nil
	}
	return t.dir(abs, rel, stack)
}

func (t *traversal) emit(c Candidate) error {
	t.files.Add(1)
	select {
	case t.out <- c:
		return nil
	case <-t.ctx.Done():
		return t.ctx.Err()
	}
}

func (t *traversal) skip(rel string, reason Reason, err error) {
	if rel == "" {
		rel = "."
	}
	t.skips.Add(Skip{Path: rel, Reason: reason, Err: err.Error()})
	t.w.log.Debug("walk: skipping %s (%s): %v", rel, reason, err)
}

// push returns stack+canon without aliasing the parent's backing array;
// sibling branches run concurrently.
func push(stack []string, canon string) []string {
	out := make([]string, len(stack), len(stack)+1)
	copy(out, stack)
	return append(out, canon)
}
