package domain

import "slices"

// ChangeSet is the transient per-module diff between two discovery
// snapshots. It is computed and consumed within one watch iteration and
// never persisted.
type ChangeSet struct {
	ModulePath string

	// Added, Modified and Removed are sorted case identity strings.
	Added    []string
	Modified []string
	Removed  []string

	// DynamicSpecsDetected is true when either snapshot contains a dynamic
	// placeholder. No partial diff is computed in that case; the module
	// must be treated as a full rerun.
	DynamicSpecsDetected bool

	// DependencyChanged is true when discovery was triggered by a change to
	// one of the module's dependencies rather than the module itself.
	DependencyChanged bool
}

// Empty reports whether the change set carries no reportable change.
func (c *ChangeSet) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0 &&
		!c.DynamicSpecsDetected
}

// Merge unions another change set for the same module into c. Identity
// lists stay sorted and de-duplicated; the dynamic and dependency flags
// are sticky.
func (c *ChangeSet) Merge(other *ChangeSet) {
	c.Added = mergeSorted(c.Added, other.Added)
	c.Modified = mergeSorted(c.Modified, other.Modified)
	c.Removed = mergeSorted(c.Removed, other.Removed)
	c.DynamicSpecsDetected = c.DynamicSpecsDetected || other.DynamicSpecsDetected
	c.DependencyChanged = c.DependencyChanged || other.DependencyChanged
}

func mergeSorted(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	merged := append(slices.Clone(a), b...)
	slices.Sort(merged)
	return slices.Compact(merged)
}

// RerunTargets returns the identities that must be part of the next run:
// added and modified cases. Removed cases need no handling, they are simply
// absent from the next run.
func (c *ChangeSet) RerunTargets() []string {
	targets := make([]string, 0, len(c.Added)+len(c.Modified))
	targets = append(targets, c.Added...)
	targets = append(targets, c.Modified...)
	return targets
}

// RunScope is the rerun request produced by one watch iteration.
type RunScope struct {
	// FullRun requests a whole-project rerun; FilterPattern is empty then.
	FullRun bool
	// Reason is the user-facing explanation for a full run.
	Reason string
	// FilterPattern selects the identities to rerun when FullRun is false.
	// Every identity literal is escaped; an empty pattern matches nothing.
	FilterPattern string
	// Changes carries the per-module change sets behind the request.
	Changes []*ChangeSet
}
