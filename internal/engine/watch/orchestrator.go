// Package watch drives the watch loop: debounced change events in, minimal
// rerun scopes out.
package watch

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/sift/internal/engine/discovery"
	"go.trai.ch/sift/internal/engine/tracker"
)

// FullRunNotice is printed when dynamic specs force a whole-project rerun.
const FullRunNotice = "Full run required: dynamic specs detected"

const iterationConcurrency = 4

// Discoverer is the discovery surface the orchestrator drives.
type Discoverer interface {
	DiscoverFile(ctx context.Context, path string) (discovery.Result, error)
	IsSpecModule(path string) bool
}

// Notifier surfaces user-facing watch notices and run outcomes.
type Notifier interface {
	Notice(msg string)
	Pass(msg string)
}

// Orchestrator consumes debounced change events and drives discovery,
// change tracking and rerun execution. Its loop is single-threaded; a burst
// of events collapses into one iteration, and a newer event supersedes an
// in-flight iteration instead of queuing behind it.
type Orchestrator struct {
	discoverer Discoverer
	resolver   ports.DependencyResolver
	tracker    *tracker.Tracker
	executor   ports.RunExecutor
	notifier   Notifier
	logger     ports.Logger
	tracer     ports.Tracer

	mu             sync.Mutex
	pending        map[string]struct{}
	cancelInflight context.CancelFunc
	// carried holds change sets whose run was superseded before it could
	// execute; they rejoin the next iteration's scope.
	carried []*domain.ChangeSet

	notify chan struct{}
}

// NewOrchestrator creates an orchestrator wired to the given collaborators.
func NewOrchestrator(
	discoverer Discoverer,
	resolver ports.DependencyResolver,
	tr *tracker.Tracker,
	executor ports.RunExecutor,
	notifier Notifier,
	logger ports.Logger,
	tracer ports.Tracer,
) *Orchestrator {
	return &Orchestrator{
		discoverer: discoverer,
		resolver:   resolver,
		tracker:    tr,
		executor:   executor,
		notifier:   notifier,
		logger:     logger,
		tracer:     tracer,
		pending:    make(map[string]struct{}),
		notify:     make(chan struct{}, 1),
	}
}

// Enqueue registers debounced change paths for the next iteration and
// supersedes any iteration currently in flight.
func (o *Orchestrator) Enqueue(paths ...string) {
	o.mu.Lock()
	for _, p := range paths {
		o.pending[p] = struct{}{}
	}
	cancel := o.cancelInflight
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	select {
	case o.notify <- struct{}{}:
	default:
	}
}

// Run processes enqueued changes until the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-o.notify:
		}

		paths := o.drain()
		if len(paths) == 0 {
			continue
		}

		iterCtx, cancel := context.WithCancel(ctx)
		o.setCancel(cancel)
		err := o.iterate(iterCtx, paths)
		o.setCancel(nil)
		cancel()

		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, context.Canceled) {
			// Superseded by a newer event. The drained paths rejoin the
			// pending set so the next iteration covers both changes in a
			// single coalesced pass.
			o.logger.Info("discovery superseded by newer change, coalescing")
			o.Enqueue(paths...)
			continue
		}
		o.logger.Error(err)
	}
}

func (o *Orchestrator) drain() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	paths := make([]string, 0, len(o.pending))
	for p := range o.pending {
		paths = append(paths, p)
	}
	o.pending = make(map[string]struct{})
	return paths
}

func (o *Orchestrator) setCancel(cancel context.CancelFunc) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelInflight = cancel
}

// affected maps each spec module that needs rediscovery to whether the
// trigger was a dependency change rather than an edit of the module itself.
func (o *Orchestrator) affected(paths []string) map[string]bool {
	modules := make(map[string]bool)

	for _, p := range paths {
		if o.discoverer.IsSpecModule(p) {
			if _, seen := modules[p]; !seen {
				modules[p] = false
			}
		}
		for _, dependent := range o.resolver.Dependents(p) {
			if o.discoverer.IsSpecModule(dependent) {
				modules[dependent] = true
			}
		}
	}

	return modules
}

// iterate runs one watch iteration over the drained paths: rediscover every
// affected module, diff against the tracked snapshots, and hand the
// resulting scope to the executor.
func (o *Orchestrator) iterate(ctx context.Context, paths []string) error {
	ctx, span := o.tracer.Start(ctx, "watch.iteration")
	defer span.End()
	span.SetAttribute("changed_paths", len(paths))

	// Change sets left over from a superseded iteration rejoin this one,
	// so their rerun targets survive even though the tracker has already
	// advanced past them.
	carried := o.takeCarried()

	modules := o.affected(paths)
	if len(modules) == 0 && len(carried) == 0 {
		return nil
	}

	var mu sync.Mutex
	var changes []*domain.ChangeSet

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(iterationConcurrency)

	for path, depChanged := range modules {
		group.Go(func() error {
			cs, err := o.diffModule(groupCtx, path, depChanged)
			if err != nil {
				return err
			}
			mu.Lock()
			changes = append(changes, cs)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		o.stash(append(carried, changes...))
		span.RecordError(err)
		return err
	}

	changes = coalesceChanges(carried, changes)

	if err := o.execute(ctx, changes); err != nil {
		o.stash(changes)
		return err
	}
	return nil
}

func (o *Orchestrator) stash(changes []*domain.ChangeSet) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.carried = append(o.carried, changes...)
}

func (o *Orchestrator) takeCarried() []*domain.ChangeSet {
	o.mu.Lock()
	defer o.mu.Unlock()
	carried := o.carried
	o.carried = nil
	return carried
}

// coalesceChanges folds carried-over change sets into the fresh ones,
// merging per module so a module superseded and rediscovered contributes
// a single combined change set.
func coalesceChanges(carried, fresh []*domain.ChangeSet) []*domain.ChangeSet {
	if len(carried) == 0 {
		return fresh
	}

	byModule := make(map[string]*domain.ChangeSet, len(fresh))
	for _, cs := range fresh {
		byModule[cs.ModulePath] = cs
	}

	out := fresh
	for _, cs := range carried {
		if existing, ok := byModule[cs.ModulePath]; ok {
			existing.Merge(cs)
			continue
		}
		byModule[cs.ModulePath] = cs
		out = append(out, cs)
	}
	return out
}

// diffModule rediscovers one module and computes its change set. The
// tracked snapshot is recorded before and after discovery; the pre
// recording pins the diff base, the post recording advances it. On a cold
// start there is no base to pin, so only the post recording happens and
// the diff reports every case as added.
func (o *Orchestrator) diffModule(ctx context.Context, path string, depChanged bool) (*domain.ChangeSet, error) {
	pre := o.tracker.Recorded(path)
	if pre != nil {
		o.tracker.RecordState(path, pre)
	}

	result, err := o.discoverer.DiscoverFile(ctx, path)
	if err != nil {
		if errors.Is(err, domain.ErrModuleNotFound) {
			return o.moduleRemoved(path, pre, depChanged), nil
		}
		return nil, err
	}

	next := domain.NewSnapshot(result.Tree())
	changeSet := o.tracker.GetChanges(path, next, depChanged)
	o.tracker.RecordState(path, next)

	return changeSet, nil
}

// moduleRemoved turns a deleted module into a change set listing every
// previously known case as removed.
func (o *Orchestrator) moduleRemoved(path string, pre *domain.Snapshot, depChanged bool) *domain.ChangeSet {
	o.tracker.Forget(path)

	changeSet := &domain.ChangeSet{
		ModulePath:        path,
		DependencyChanged: depChanged,
	}
	if pre != nil {
		if pre.Dynamic {
			changeSet.DynamicSpecsDetected = true
		} else {
			changeSet.Removed = pre.Identities()
		}
	}
	return changeSet
}

// execute builds the rerun scope from the iteration's change sets and hands
// it to the executor. Every triggered run reports success, failure or
// cancellation; nothing is silently dropped.
func (o *Orchestrator) execute(ctx context.Context, changes []*domain.ChangeSet) error {
	scope := &domain.RunScope{Changes: changes}

	var targets []string
	for _, cs := range changes {
		if cs.DynamicSpecsDetected {
			scope.FullRun = true
			scope.Reason = FullRunNotice
		}
		targets = append(targets, cs.RerunTargets()...)
	}

	if scope.FullRun {
		o.notifier.Notice(FullRunNotice)
	} else {
		filter := BuildFilter(targets)
		if filter.Empty() {
			// Nothing to rerun; removals need no run of their own.
			return nil
		}
		scope.FilterPattern = filter.Pattern()
	}

	err := o.executor.Execute(ctx, scope)
	switch {
	case err == nil:
		o.notifier.Pass("run finished")
	case errors.Is(err, context.Canceled):
		o.logger.Info("run cancelled")
		return err
	default:
		o.logger.Error(err)
	}
	return nil
}
