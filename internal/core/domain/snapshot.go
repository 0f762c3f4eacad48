package domain

import (
	"slices"
	"time"
)

// Fingerprint is the structural signature of a case used to detect
// modifications between discovery passes: tags, flags, and the description
// when it is statically known.
type Fingerprint struct {
	Description string
	Tags        []string
	Focused     bool
	Skipped     bool
	Pending     bool
}

// Equal reports whether two fingerprints are structurally identical.
func (f Fingerprint) Equal(other Fingerprint) bool {
	return f.Description == other.Description &&
		f.Focused == other.Focused &&
		f.Skipped == other.Skipped &&
		f.Pending == other.Pending &&
		slices.Equal(f.Tags, other.Tags)
}

// Snapshot is the per-module map of case identity to fingerprint captured
// after a discovery pass. It is held in memory only and overwritten, never
// merged, on each new discovery of the same module.
type Snapshot struct {
	ModulePath string
	TakenAt    time.Time
	// Entries is keyed by CaseIdentity.String().
	Entries map[string]Fingerprint
	// Dynamic is true when any case in the snapshot is a dynamic
	// placeholder, which makes identities untrustworthy for diffing.
	Dynamic bool
}

// NewSnapshot captures a snapshot of the given tree.
func NewSnapshot(tree *SpecTree) *Snapshot {
	s := &Snapshot{
		ModulePath: tree.ModulePath,
		TakenAt:    time.Now(),
		Entries:    make(map[string]Fingerprint),
	}

	for id, node := range tree.Cases() {
		if id.Dynamic {
			s.Dynamic = true
		}

		tags := slices.Clone(node.Tags)
		slices.Sort(tags)

		desc := node.Description
		if node.Dynamic {
			// A computed description carries no structural information.
			desc = ""
		}

		s.Entries[id.String()] = Fingerprint{
			Description: desc,
			Tags:        tags,
			Focused:     node.Focused,
			Skipped:     node.Skipped,
			Pending:     node.Pending,
		}
	}

	return s
}

// Identities returns the sorted identity strings present in the snapshot.
func (s *Snapshot) Identities() []string {
	ids := make([]string, 0, len(s.Entries))
	for id := range s.Entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
