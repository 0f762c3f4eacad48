package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/engine/tracker"
)

func calcTree(cases ...string) *domain.SpecTree {
	container := &domain.SpecNode{
		Kind:        domain.KindContainer,
		Description: "calculator",
	}
	for _, c := range cases {
		container.Children = append(container.Children, &domain.SpecNode{
			Kind:        domain.KindCase,
			Description: c,
		})
	}
	return &domain.SpecTree{
		ModulePath: "/project/calc_spec.go",
		RelPath:    "calc_spec.go",
		Roots:      []*domain.SpecNode{container},
	}
}

func TestGetChanges_ColdStart(t *testing.T) {
	tr := tracker.NewTracker()
	next := domain.NewSnapshot(calcTree("adds", "subtracts"))

	changes := tr.GetChanges("/project/calc_spec.go", next, false)

	assert.Equal(t, []string{
		"calc_spec.go:calculator/adds",
		"calc_spec.go:calculator/subtracts",
	}, changes.Added)
	assert.Empty(t, changes.Modified)
	assert.Empty(t, changes.Removed)
	assert.False(t, changes.DynamicSpecsDetected)
}

func TestGetChanges_NoChange(t *testing.T) {
	tr := tracker.NewTracker()
	tree := calcTree("adds", "subtracts")

	tr.RecordState(tree.ModulePath, domain.NewSnapshot(tree))
	changes := tr.GetChanges(tree.ModulePath, domain.NewSnapshot(tree), false)

	assert.True(t, changes.Empty())
}

func TestGetChanges_CaseAdded(t *testing.T) {
	tr := tracker.NewTracker()

	tr.RecordState("/project/calc_spec.go", domain.NewSnapshot(calcTree("adds", "subtracts")))
	next := domain.NewSnapshot(calcTree("adds", "subtracts", "multiplies"))

	changes := tr.GetChanges("/project/calc_spec.go", next, false)

	assert.Equal(t, []string{"calc_spec.go:calculator/multiplies"}, changes.Added)
	assert.Empty(t, changes.Modified)
	assert.Empty(t, changes.Removed)
}

func TestGetChanges_CaseRemoved(t *testing.T) {
	tr := tracker.NewTracker()

	tr.RecordState("/project/calc_spec.go", domain.NewSnapshot(calcTree("adds", "subtracts")))
	next := domain.NewSnapshot(calcTree("adds"))

	changes := tr.GetChanges("/project/calc_spec.go", next, false)

	assert.Empty(t, changes.Added)
	assert.Empty(t, changes.Modified)
	assert.Equal(t, []string{"calc_spec.go:calculator/subtracts"}, changes.Removed)
}

func TestGetChanges_CaseModified(t *testing.T) {
	tr := tracker.NewTracker()

	before := calcTree("adds")
	tr.RecordState(before.ModulePath, domain.NewSnapshot(before))

	// Same identity, different structural fingerprint: the case gained a
	// focus flag.
	after := calcTree("adds")
	after.Roots[0].Children[0].Focused = true

	changes := tr.GetChanges(after.ModulePath, domain.NewSnapshot(after), false)

	assert.Empty(t, changes.Added)
	assert.Equal(t, []string{"calc_spec.go:calculator/adds"}, changes.Modified)
	assert.Empty(t, changes.Removed)
}

func TestGetChanges_DynamicSuppressesDiff(t *testing.T) {
	tr := tracker.NewTracker()

	tr.RecordState("/project/calc_spec.go", domain.NewSnapshot(calcTree("adds")))

	after := calcTree("adds", "subtracts")
	after.Roots[0].Children[1].Dynamic = true

	changes := tr.GetChanges(after.ModulePath, domain.NewSnapshot(after), false)

	assert.True(t, changes.DynamicSpecsDetected)
	assert.Empty(t, changes.Added)
	assert.Empty(t, changes.Modified)
	assert.Empty(t, changes.Removed)
}

func TestGetChanges_PreviousDynamicSuppressesDiff(t *testing.T) {
	tr := tracker.NewTracker()

	before := calcTree("adds")
	before.Roots[0].Children[0].Dynamic = true
	tr.RecordState(before.ModulePath, domain.NewSnapshot(before))

	// The module was cleaned up and is fully static now, but the stored
	// snapshot cannot be trusted for a diff.
	changes := tr.GetChanges(before.ModulePath, domain.NewSnapshot(calcTree("adds")), false)

	assert.True(t, changes.DynamicSpecsDetected)
}

func TestGetChanges_DependencyChanged(t *testing.T) {
	tr := tracker.NewTracker()
	tree := calcTree("adds")

	tr.RecordState(tree.ModulePath, domain.NewSnapshot(tree))
	changes := tr.GetChanges(tree.ModulePath, domain.NewSnapshot(tree), true)

	// The symbolic diff is empty, the dependency trigger still travels
	// with the change set.
	assert.True(t, changes.DependencyChanged)
	assert.Empty(t, changes.Added)
}

func TestGetChanges_DoesNotRecord(t *testing.T) {
	tr := tracker.NewTracker()

	next := domain.NewSnapshot(calcTree("adds"))
	_ = tr.GetChanges("/project/calc_spec.go", next, false)

	// GetChanges alone must not advance the stored state.
	require.Nil(t, tr.Recorded("/project/calc_spec.go"))

	changes := tr.GetChanges("/project/calc_spec.go", next, false)
	assert.Len(t, changes.Added, 1)
}

func TestRecordState_Overwrites(t *testing.T) {
	tr := tracker.NewTracker()

	tr.RecordState("/project/calc_spec.go", domain.NewSnapshot(calcTree("adds")))
	tr.RecordState("/project/calc_spec.go", domain.NewSnapshot(calcTree("subtracts")))

	snapshot := tr.Recorded("/project/calc_spec.go")
	require.NotNil(t, snapshot)
	assert.Equal(t, []string{"calc_spec.go:calculator/subtracts"}, snapshot.Identities())
}

func TestForget(t *testing.T) {
	tr := tracker.NewTracker()

	tr.RecordState("/project/calc_spec.go", domain.NewSnapshot(calcTree("adds")))
	tr.Forget("/project/calc_spec.go")

	assert.Nil(t, tr.Recorded("/project/calc_spec.go"))
}
