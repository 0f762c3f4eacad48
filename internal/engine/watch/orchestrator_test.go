package watch_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/sift/internal/adapters/logger"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/engine/discovery"
	"go.trai.ch/sift/internal/engine/tracker"
	"go.trai.ch/sift/internal/engine/watch"

	"go.trai.ch/sift/internal/adapters/telemetry"
)

const waitTimeout = 5 * time.Second

type stubDiscoverer struct {
	mu    sync.Mutex
	trees map[string]*domain.SpecTree
	errs  map[string]error
	calls []string
}

func (s *stubDiscoverer) DiscoverFile(_ context.Context, path string) (discovery.Result, error) {
	s.mu.Lock()
	s.calls = append(s.calls, path)
	tree, errFound := s.trees[path], s.errs[path]
	s.mu.Unlock()

	if errFound != nil {
		return nil, errFound
	}
	return &discovery.ExecutedResult{SpecTree: tree}, nil
}

func (s *stubDiscoverer) IsSpecModule(path string) bool {
	return strings.HasSuffix(path, "_spec.go")
}

type stubResolver struct {
	dependents map[string][]string
}

func (s *stubResolver) Direct(string, []byte) ([]string, error) { return nil, nil }
func (s *stubResolver) Transitive(string) ([]string, error)     { return nil, nil }
func (s *stubResolver) Dependents(path string) []string         { return s.dependents[path] }

type stubExecutor struct {
	mu      sync.Mutex
	scopes  []*domain.RunScope
	started chan struct{}
	// blockFirst makes the first Execute wait for cancellation.
	blockFirst bool
	calls      int
}

func (e *stubExecutor) Execute(ctx context.Context, scope *domain.RunScope) error {
	e.mu.Lock()
	e.calls++
	first := e.calls == 1
	e.mu.Unlock()

	select {
	case e.started <- struct{}{}:
	default:
	}

	if e.blockFirst && first {
		<-ctx.Done()
		return ctx.Err()
	}

	e.mu.Lock()
	e.scopes = append(e.scopes, scope)
	e.mu.Unlock()
	return nil
}

func (e *stubExecutor) scope(t *testing.T) *domain.RunScope {
	t.Helper()
	select {
	case <-e.started:
	case <-time.After(waitTimeout):
		t.Fatal("timeout waiting for executor")
	}
	require.Eventually(t, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		return len(e.scopes) > 0
	}, waitTimeout, time.Millisecond)

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scopes[len(e.scopes)-1]
}

type stubNotifier struct {
	mu      sync.Mutex
	notices []string
	passes  []string
}

func (n *stubNotifier) Notice(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, msg)
}

func (n *stubNotifier) Pass(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.passes = append(n.passes, msg)
}

func calcTree(path string, cases ...string) *domain.SpecTree {
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
		ModulePath: path,
		RelPath:    strings.TrimPrefix(path, "/project/"),
		Roots:      []*domain.SpecNode{container},
	}
}

type fixture struct {
	orchestrator *watch.Orchestrator
	discoverer   *stubDiscoverer
	executor     *stubExecutor
	notifier     *stubNotifier
	tracker      *tracker.Tracker
	cancel       context.CancelFunc
	done         chan struct{}
}

func newFixture(t *testing.T, disc *stubDiscoverer, res *stubResolver, exec *stubExecutor) *fixture {
	t.Helper()

	log := logger.New()
	log.SetOutput(io.Discard)

	notifier := &stubNotifier{}
	tr := tracker.NewTracker()

	o := watch.NewOrchestrator(disc, res, tr, exec, notifier, log, telemetry.NewNoOpTracer())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = o.Run(ctx)
		close(done)
	}()

	f := &fixture{
		orchestrator: o,
		discoverer:   disc,
		executor:     exec,
		notifier:     notifier,
		tracker:      tr,
		cancel:       cancel,
		done:         done,
	}
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(waitTimeout):
			t.Error("orchestrator did not stop")
		}
	})
	return f
}

func TestOrchestrator_DirectChange(t *testing.T) {
	path := "/project/calc_spec.go"
	disc := &stubDiscoverer{
		trees: map[string]*domain.SpecTree{path: calcTree(path, "adds", "subtracts")},
	}
	exec := &stubExecutor{started: make(chan struct{}, 1)}
	f := newFixture(t, disc, &stubResolver{}, exec)

	f.orchestrator.Enqueue(path)

	scope := exec.scope(t)
	assert.False(t, scope.FullRun)

	require.Len(t, scope.Changes, 1)
	cs := scope.Changes[0]
	assert.Equal(t, path, cs.ModulePath)
	assert.False(t, cs.DependencyChanged)
	assert.Equal(t, []string{
		"calc_spec.go:calculator/adds",
		"calc_spec.go:calculator/subtracts",
	}, cs.Added)
	assert.Contains(t, scope.FilterPattern, `calc_spec\.go:calculator/adds`)

	// A successful run is reported, never silently finished.
	require.Eventually(t, func() bool {
		f.notifier.mu.Lock()
		defer f.notifier.mu.Unlock()
		return len(f.notifier.passes) == 1
	}, waitTimeout, time.Millisecond)
}

func TestOrchestrator_DependencyChange(t *testing.T) {
	spec := "/project/calc_spec.go"
	helper := "/project/helpers.go"
	disc := &stubDiscoverer{
		trees: map[string]*domain.SpecTree{spec: calcTree(spec, "adds")},
	}
	res := &stubResolver{dependents: map[string][]string{helper: {spec}}}
	exec := &stubExecutor{started: make(chan struct{}, 1)}
	f := newFixture(t, disc, res, exec)

	f.orchestrator.Enqueue(helper)

	scope := exec.scope(t)
	require.Len(t, scope.Changes, 1)
	assert.Equal(t, spec, scope.Changes[0].ModulePath)
	assert.True(t, scope.Changes[0].DependencyChanged)
}

func TestOrchestrator_DependencyChangeWithEmptyDiff(t *testing.T) {
	spec := "/project/calc_spec.go"
	other := "/project/other_spec.go"
	helper := "/project/helpers.go"
	disc := &stubDiscoverer{
		trees: map[string]*domain.SpecTree{
			spec:  calcTree(spec, "adds"),
			other: calcTree(other, "multiplies"),
		},
	}
	res := &stubResolver{dependents: map[string][]string{helper: {spec}}}
	exec := &stubExecutor{started: make(chan struct{}, 2)}
	f := newFixture(t, disc, res, exec)

	// The dependent module is already tracked and structurally unchanged:
	// its rediscovery yields an empty diff, so no run is triggered.
	f.tracker.RecordState(spec, domain.NewSnapshot(disc.trees[spec]))
	f.orchestrator.Enqueue(helper)

	// A later direct change elsewhere does trigger a run; its scope must
	// not include anything from the dependency-only iteration.
	require.Eventually(t, func() bool {
		disc.mu.Lock()
		defer disc.mu.Unlock()
		return len(disc.calls) == 1
	}, waitTimeout, time.Millisecond)

	f.orchestrator.Enqueue(other)
	scope := exec.scope(t)

	require.Len(t, scope.Changes, 1)
	assert.Equal(t, other, scope.Changes[0].ModulePath)
	exec.mu.Lock()
	defer exec.mu.Unlock()
	assert.Equal(t, 1, exec.calls)
}

func TestOrchestrator_DynamicForcesFullRun(t *testing.T) {
	path := "/project/calc_spec.go"
	tree := calcTree(path, "adds")
	tree.Roots[0].Children[0].Dynamic = true

	disc := &stubDiscoverer{trees: map[string]*domain.SpecTree{path: tree}}
	exec := &stubExecutor{started: make(chan struct{}, 1)}
	f := newFixture(t, disc, &stubResolver{}, exec)

	f.orchestrator.Enqueue(path)

	scope := exec.scope(t)
	assert.True(t, scope.FullRun)
	assert.Empty(t, scope.FilterPattern)
	assert.Equal(t, watch.FullRunNotice, scope.Reason)

	require.Eventually(t, func() bool {
		f.notifier.mu.Lock()
		defer f.notifier.mu.Unlock()
		return len(f.notifier.notices) == 1
	}, waitTimeout, time.Millisecond)
	assert.Equal(t, "Full run required: dynamic specs detected", f.notifier.notices[0])
}

func TestOrchestrator_RemovedModule(t *testing.T) {
	path := "/project/calc_spec.go"
	disc := &stubDiscoverer{
		trees: map[string]*domain.SpecTree{},
		errs:  map[string]error{path: domain.ErrModuleNotFound},
	}
	exec := &stubExecutor{started: make(chan struct{}, 1)}
	f := newFixture(t, disc, &stubResolver{}, exec)

	f.tracker.RecordState(path, domain.NewSnapshot(calcTree(path, "adds")))
	f.orchestrator.Enqueue(path)

	// Removals alone trigger no run; the tracker just forgets the module.
	require.Eventually(t, func() bool {
		return f.tracker.Recorded(path) == nil
	}, waitTimeout, time.Millisecond)

	exec.mu.Lock()
	defer exec.mu.Unlock()
	assert.Zero(t, exec.calls)
}

func TestOrchestrator_SupersededRunCoalesces(t *testing.T) {
	pathA := "/project/a_spec.go"
	pathB := "/project/b_spec.go"
	disc := &stubDiscoverer{
		trees: map[string]*domain.SpecTree{
			pathA: calcTree(pathA, "adds"),
			pathB: calcTree(pathB, "subtracts"),
		},
	}
	exec := &stubExecutor{started: make(chan struct{}, 2), blockFirst: true}
	f := newFixture(t, disc, &stubResolver{}, exec)

	f.orchestrator.Enqueue(pathA)

	// Wait until the first run is in flight, then supersede it.
	select {
	case <-exec.started:
	case <-time.After(waitTimeout):
		t.Fatal("timeout waiting for first run")
	}
	f.orchestrator.Enqueue(pathB)

	scope := exec.scope(t)

	// The superseded iteration's module is coalesced into the next pass
	// together with the new change; nothing runs twice and nothing drops.
	require.Len(t, scope.Changes, 2)
	assert.Contains(t, scope.FilterPattern, `b_spec\.go:calculator/subtracts`)

	// The cancelled run's targets survive into the coalesced scope even
	// though rediscovering the module yields an empty diff.
	assert.Contains(t, scope.FilterPattern, `a_spec\.go:calculator/adds`)
	var coalesced *domain.ChangeSet
	for _, cs := range scope.Changes {
		if cs.ModulePath == pathA {
			coalesced = cs
		}
	}
	require.NotNil(t, coalesced)
	assert.Equal(t, []string{"a_spec.go:calculator/adds"}, coalesced.Added)

	exec.mu.Lock()
	defer exec.mu.Unlock()
	assert.Equal(t, 2, exec.calls)
}
