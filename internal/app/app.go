// Package app implements the application layer for sift.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/sift/internal/adapters/telemetry"
	"go.trai.ch/sift/internal/adapters/watcher"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/sift/internal/engine/discovery"
	"go.trai.ch/sift/internal/engine/tracker"
	"go.trai.ch/sift/internal/engine/watch"
	"go.trai.ch/sift/internal/ui/output"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	cfg          *domain.Config
	discoverer   *discovery.Discoverer
	orchestrator *watch.Orchestrator
	tracker      *tracker.Tracker
	watcher      ports.Watcher
	store        ports.ArtifactStore
	printer      *output.Printer
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	cfg *domain.Config,
	discoverer *discovery.Discoverer,
	orchestrator *watch.Orchestrator,
	tr *tracker.Tracker,
	w ports.Watcher,
	store ports.ArtifactStore,
	printer *output.Printer,
	logger ports.Logger,
) *App {
	return &App{
		cfg:          cfg,
		discoverer:   discoverer,
		orchestrator: orchestrator,
		tracker:      tr,
		watcher:      w,
		store:        store,
		printer:      printer,
		logger:       logger,
	}
}

// Watch runs the watch loop until the context is cancelled: an initial full
// discovery pass seeds the tracker, then file system events drive
// incremental rediscovery and scoped reruns.
func (a *App) Watch(ctx context.Context) error {
	shutdown := telemetry.SetupProvider()
	defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()

	a.printer.Info("watching " + a.cfg.Root)

	results, failures := a.discoverer.DiscoverAll(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	for _, result := range results {
		a.tracker.RecordState(result.Path(), domain.NewSnapshot(result.Tree()))
	}
	for _, failure := range failures {
		a.printer.Fail(failure.Error())
	}
	a.printer.Info(fmt.Sprintf("discovered %d spec modules", len(results)))

	if err := a.watcher.Start(ctx, a.cfg.Root); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() { _ = a.watcher.Stop() }()

	debouncer := watcher.NewDebouncer(a.cfg.Debounce, func(paths []string) {
		a.orchestrator.Enqueue(paths...)
	})
	defer debouncer.Flush()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})

	group.Go(func() error {
		return a.orchestrator.Run(ctx)
	})

	return group.Wait()
}

// List discovers every spec module under the project root and returns the
// case identities together with per-module discovery failures.
func (a *App) List(ctx context.Context) ([]domain.CaseIdentity, []*discovery.ModuleError) {
	results, failures := a.discoverer.DiscoverAll(ctx)

	var identities []domain.CaseIdentity
	for _, result := range results {
		identities = append(identities, result.Tree().Identities()...)
	}
	return identities, failures
}

// ListModule discovers a single spec module and returns its case
// identities. Relative paths resolve against the project root.
func (a *App) ListModule(ctx context.Context, path string) ([]domain.CaseIdentity, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.Root, path)
	}

	result, err := a.discoverer.DiscoverFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return result.Tree().Identities(), nil
}

// CacheStats reports the artifact store contents.
func (a *App) CacheStats() ports.CacheStats {
	return a.store.Stats()
}

// CacheClear evicts every cached artifact and returns the count removed.
func (a *App) CacheClear() int {
	return a.store.Clear()
}
