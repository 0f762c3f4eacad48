package watch

import (
	"context"

	"github.com/grindlemire/graft"
	fsadapter "go.trai.ch/sift/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/logger"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/runner"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/adapters/telemetry"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/sift/internal/engine/discovery"
	"go.trai.ch/sift/internal/engine/tracker"
	"go.trai.ch/sift/internal/ui/output"
)

// NodeID is the unique identifier for the watch orchestrator Graft node.
const NodeID graft.ID = "engine.watch"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			discovery.NodeID,
			fsadapter.ResolverNodeID,
			tracker.NodeID,
			runner.ExecutorNodeID,
			output.PrinterNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			discoverer, err := graft.Dep[*discovery.Discoverer](ctx)
			if err != nil {
				return nil, err
			}

			resolver, err := graft.Dep[ports.DependencyResolver](ctx)
			if err != nil {
				return nil, err
			}

			tr, err := graft.Dep[*tracker.Tracker](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.RunExecutor](ctx)
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

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return NewOrchestrator(
				discoverer,
				resolver,
				tr,
				executor,
				printer,
				log,
				tracer,
			), nil
		},
	})
}
