// Package tracker maintains per-module snapshots across discovery passes
// and derives the change set between consecutive passes.
package tracker

import (
	"slices"
	"sync"

	"go.trai.ch/sift/internal/core/domain"
)

// Tracker holds the latest recorded snapshot per module. Snapshots are
// replaced wholesale, never merged, and nothing is persisted across
// processes, so the first pass after startup reports every case as added.
//
// Callers must record the pre-discovery and the post-discovery snapshot on
// every watch iteration; skipping either recording makes subsequent diffs
// silently diverge from what is actually on disk.
type Tracker struct {
	mu        sync.Mutex
	snapshots map[string]*domain.Snapshot
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{snapshots: make(map[string]*domain.Snapshot)}
}

// RecordState overwrites the stored snapshot for the module.
func (t *Tracker) RecordState(modulePath string, snapshot *domain.Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshots[modulePath] = snapshot
}

// Recorded returns the stored snapshot for the module, or nil.
func (t *Tracker) Recorded(modulePath string) *domain.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshots[modulePath]
}

// Forget drops the snapshot for a module, typically because the module was
// deleted.
func (t *Tracker) Forget(modulePath string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.snapshots, modulePath)
}

// GetChanges diffs the stored snapshot for the module against next. It does
// not record next; callers do that explicitly via RecordState.
//
// With no stored snapshot every case in next is reported as added. When
// either snapshot contains a dynamic placeholder no per-case diff is
// attempted: dynamic identities are not stable between passes, so the
// change set only carries DynamicSpecsDetected and the module must be
// treated as a full rerun.
func (t *Tracker) GetChanges(modulePath string, next *domain.Snapshot, dependencyChanged bool) *domain.ChangeSet {
	t.mu.Lock()
	previous := t.snapshots[modulePath]
	t.mu.Unlock()

	changes := &domain.ChangeSet{
		ModulePath:        modulePath,
		DependencyChanged: dependencyChanged,
	}

	if next.Dynamic || (previous != nil && previous.Dynamic) {
		changes.DynamicSpecsDetected = true
		return changes
	}

	if previous == nil {
		changes.Added = next.Identities()
		return changes
	}

	for id, fp := range next.Entries {
		prevFP, existed := previous.Entries[id]
		switch {
		case !existed:
			changes.Added = append(changes.Added, id)
		case !fp.Equal(prevFP):
			changes.Modified = append(changes.Modified, id)
		}
	}
	for id := range previous.Entries {
		if _, exists := next.Entries[id]; !exists {
			changes.Removed = append(changes.Removed, id)
		}
	}

	slices.Sort(changes.Added)
	slices.Sort(changes.Modified)
	slices.Sort(changes.Removed)

	return changes
}
