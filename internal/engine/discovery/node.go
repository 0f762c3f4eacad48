package discovery

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sift/internal/adapters/cache"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	fsadapter "go.trai.ch/sift/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	parseradapter "go.trai.ch/sift/internal/adapters/parser" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/runner"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
)

// NodeID is the unique identifier for the discoverer Graft node.
const NodeID graft.ID = "engine.discovery"

func init() {
	graft.Register(graft.Node[*Discoverer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			parseradapter.NodeID,
			fsadapter.ResolverNodeID,
			fsadapter.HasherNodeID,
			fsadapter.WalkerNodeID,
			runner.NodeID,
			cache.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Discoverer, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			parser, err := graft.Dep[ports.StructureParser](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.DependencyResolver](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.ContentHasher](ctx)
			if err != nil {
				return nil, err
			}

			walker, err := graft.Dep[*fsadapter.Walker](ctx)
			if err != nil {
				return nil, err
			}

			specRunner, err := graft.Dep[ports.SpecRunner](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewDiscoverer(
				cfg,
				parser,
				resolver,
				hasher,
				specRunner,
				store,
				walker,
				log,
				tracer,
			), nil
		},
	})
}
