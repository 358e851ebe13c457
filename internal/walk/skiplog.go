// ABOUTME: Append-only, concurrency-safe record of entries skipped during a walk
// ABOUTME: Unreadable dirs, broken links, vanished files and symlink cycles land here

package walk

import (
	"sync"
)

// Reason classifies why an entry was skipped.
type Reason string

const (
	ReasonUnreadable Reason = "unreadable"    // ReadDir/Stat failed (permissions, I/O)
	ReasonBrokenLink Reason = "broken_link"   // symlink target missing
	ReasonVanished   Reason = "vanished"      // deleted between listing and stat
	ReasonCycle      Reason = "symlink_cycle" // directory already on the traversal stack
)

// Skip is one skipped entry.
type Skip struct {
	Path   string // relative to the walk root, slash-separated
	Reason Reason
	Err    string
}

// SkipLog collects skips from concurrent walkers.
type SkipLog struct {
	mu      sync.Mutex
	entries []Skip
}

// Add appends an entry.
func (l *SkipLog) Add(s Skip) {
	l.mu.Lock()
	l.entries = append(l.entries, s)
	l.mu.Unlock()
}

// Len returns the number of entries recorded so far.
func (l *SkipLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of the recorded entries.
func (l *SkipLog) Entries() []Skip {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Skip, len(l.entries))
	copy(out, l.entries)
	return out
}
