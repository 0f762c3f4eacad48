// Package discovery implements hybrid spec discovery: modules are compiled
// and executed for exact trees, with static parsing as the fallback when
// compilation fails.
package discovery

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

const discoveryConcurrency = 4

// Walker enumerates candidate spec modules under a root.
type Walker interface {
	WalkMatching(root, pattern string, ignores []string) iter.Seq[string]
}

// Discoverer coordinates compilation, execution and fallback parsing of
// spec modules, caching compiled artifacts by content and dependency hashes.
type Discoverer struct {
	cfg      *domain.Config
	parser   ports.StructureParser
	resolver ports.DependencyResolver
	hasher   ports.ContentHasher
	runner   ports.SpecRunner
	store    ports.ArtifactStore
	walker   Walker
	logger   ports.Logger
	tracer   ports.Tracer

	scopes *ScopeSet

	mu     sync.Mutex
	states map[string]State
}

// NewDiscoverer creates a discoverer wired to the given collaborators.
func NewDiscoverer(
	cfg *domain.Config,
	parser ports.StructureParser,
	resolver ports.DependencyResolver,
	hasher ports.ContentHasher,
	runner ports.SpecRunner,
	store ports.ArtifactStore,
	walker Walker,
	logger ports.Logger,
	tracer ports.Tracer,
) *Discoverer {
	return &Discoverer{
		cfg:      cfg,
		parser:   parser,
		resolver: resolver,
		hasher:   hasher,
		runner:   runner,
		store:    store,
		walker:   walker,
		logger:   logger,
		tracer:   tracer,
		scopes:   NewScopeSet(),
		states:   make(map[string]State),
	}
}

// State returns the discovery state of the given module path.
func (d *Discoverer) State(path string) State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.states[path]
}

func (d *Discoverer) setState(path string, state State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.states[path] = state
}

// DiscoverFile discovers a single module: a cached artifact is reused when
// neither the module nor any dependency changed, otherwise the module is
// compiled and executed, and on compile failure its structure is recovered
// statically.
func (d *Discoverer) DiscoverFile(ctx context.Context, path string) (Result, error) {
	ctx, span := d.tracer.Start(ctx, "discovery.file")
	defer span.End()
	span.SetAttribute("module", path)

	module, err := d.loadModule(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	d.setState(path, Compiling)

	key := domain.NewArtifactKey(module.Path, module.Hash, module.DepHashes)
	artifact, err := d.store.GetOrCompile(ctx, key, func(ctx context.Context) (*domain.CompiledArtifact, error) {
		return d.compile(ctx, module)
	})
	if err != nil {
		d.setState(path, NotStarted)
		span.RecordError(err)
		return nil, err
	}

	if artifact.CompileOK {
		d.setState(path, Executed)
		return &ExecutedResult{SpecTree: artifact.Tree}, nil
	}

	d.setState(path, CompileFailed)
	return &FallbackResult{SpecTree: artifact.Tree, Diagnostic: artifact.Diagnostic}, nil
}

// compile executes the module under its ambient scope and builds the
// artifact to cache. A compile failure is converted into a statically
// parsed tree rather than an error; only infrastructure failures propagate.
func (d *Discoverer) compile(ctx context.Context, module *domain.SpecModule) (*domain.CompiledArtifact, error) {
	scope := d.scopes.Acquire(module.Path)
	defer scope.Release()

	output, err := d.runner.Run(ctx, module)
	if err != nil {
		var compileErr *domain.CompileError
		if !errors.As(err, &compileErr) {
			return nil, err
		}
		return d.fallback(module, compileErr.Diagnostic)
	}

	return &domain.CompiledArtifact{
		ModulePath: module.Path,
		Raw:        output.Raw,
		Tree:       output.Tree,
		CompileOK:  true,
		CreatedAt:  time.Now(),
	}, nil
}

// fallback parses the module source statically and flags every node with
// the compiler diagnostic.
func (d *Discoverer) fallback(module *domain.SpecModule, diagnostic string) (*domain.CompiledArtifact, error) {
	d.logger.Warn("compilation failed, falling back to static discovery: " + module.Path)

	tree, err := d.parser.ParseSource(module.Path, module.Source)
	if err != nil {
		return nil, zerr.Wrap(err, "static fallback failed")
	}
	tree.MarkCompilationError(diagnostic)

	return &domain.CompiledArtifact{
		ModulePath: module.Path,
		Tree:       tree,
		CompileOK:  false,
		Diagnostic: diagnostic,
		CreatedAt:  time.Now(),
	}, nil
}

// loadModule reads the module source and resolves its dependency closure
// with the hash of every reachable dependency.
func (d *Discoverer) loadModule(path string) (*domain.SpecModule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrModuleNotFound, "module", path)
		}
		return nil, zerr.Wrap(err, "reading spec module")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.Wrap(err, "reading spec module")
	}

	deps, err := d.resolver.Transitive(path)
	if err != nil {
		return nil, zerr.Wrap(err, "resolving dependencies")
	}

	depHashes := make([]string, 0, len(deps))
	for _, dep := range deps {
		hash, err := d.hasher.HashFile(dep)
		if err != nil {
			// A dependency that vanished between resolution and hashing
			// still participates in the key so its absence invalidates.
			depHashes = append(depHashes, "missing:"+dep)
			continue
		}
		depHashes = append(depHashes, hash)
	}

	return &domain.SpecModule{
		Path:      path,
		Hash:      d.hasher.HashBytes(src),
		ModTime:   info.ModTime(),
		Deps:      deps,
		DepHashes: depHashes,
		Source:    src,
	}, nil
}

// ModuleError pairs a module path with the error that prevented its discovery.
type ModuleError struct {
	Path string
	Err  error
}

func (e *ModuleError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *ModuleError) Unwrap() error { return e.Err }

// DiscoverAll discovers every spec module under the project root. Modules
// that fail discovery are reported in the second return value without
// aborting the rest; the context cancels the whole pass.
func (d *Discoverer) DiscoverAll(ctx context.Context) ([]Result, []*ModuleError) {
	ctx, span := d.tracer.Start(ctx, "discovery.all")
	defer span.End()

	var mu sync.Mutex
	var results []Result
	var failures []*ModuleError

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(discoveryConcurrency)

	for path := range d.walker.WalkMatching(d.cfg.Root, d.cfg.SpecGlob, d.cfg.Ignore) {
		group.Go(func() error {
			result, err := d.DiscoverFile(ctx, path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failures = append(failures, &ModuleError{Path: path, Err: err})
				return nil
			}
			results = append(results, result)
			return nil
		})
	}

	_ = group.Wait()

	slices.SortFunc(results, func(a, b Result) int {
		return strings.Compare(a.Path(), b.Path())
	})
	slices.SortFunc(failures, func(a, b *ModuleError) int {
		return strings.Compare(a.Path, b.Path)
	})

	span.SetAttribute("modules", len(results))
	span.SetAttribute("failures", len(failures))

	return results, failures
}

// IsSpecModule reports whether the given path matches the configured spec
// module glob.
func (d *Discoverer) IsSpecModule(path string) bool {
	ok, err := filepath.Match(d.cfg.SpecGlob, filepath.Base(path))
	return err == nil && ok
}
