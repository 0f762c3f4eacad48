package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sift/internal/adapters/cache"         //nolint:depguard // Wired in app layer
	"go.trai.ch/sift/internal/adapters/config"        //nolint:depguard // Wired in app layer
	"go.trai.ch/sift/internal/adapters/logger"        //nolint:depguard // Wired in app layer
	watcheradapter "go.trai.ch/sift/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/sift/internal/engine/discovery"
	"go.trai.ch/sift/internal/engine/tracker"
	"go.trai.ch/sift/internal/engine/watch"
	"go.trai.ch/sift/internal/ui/output"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the App together with the collaborators the CLI needs
// directly.
type Components struct {
	App     *App
	Config  *domain.Config
	Logger  ports.Logger
	Printer *output.Printer
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			discovery.NodeID,
			watch.NodeID,
			tracker.NodeID,
			watcheradapter.NodeID,
			cache.NodeID,
			output.PrinterNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			config.NodeID,
			logger.NodeID,
			output.PrinterNodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // dependency collection
func runAppNode(ctx context.Context) (*App, error) {
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	discoverer, err := graft.Dep[*discovery.Discoverer](ctx)
	if err != nil {
		return nil, err
	}

	orchestrator, err := graft.Dep[*watch.Orchestrator](ctx)
	if err != nil {
		return nil, err
	}

	tr, err := graft.Dep[*tracker.Tracker](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	printer, err := graft.Dep[*output.Printer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(cfg, discoverer, orchestrator, tr, w, store, printer, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	application, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	printer, err := graft.Dep[*output.Printer](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:     application,
		Config:  cfg,
		Logger:  log,
		Printer: printer,
	}, nil
}
