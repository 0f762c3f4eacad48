package runner

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sift/internal/adapters/config"
	"go.trai.ch/sift/internal/adapters/logger"
	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the spec runner Graft node.
	NodeID graft.ID = "adapter.runner"
	// ExecutorNodeID is the unique identifier for the run executor Graft node.
	ExecutorNodeID graft.ID = "adapter.runner.executor"
)

func init() {
	graft.Register(graft.Node[ports.SpecRunner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.SpecRunner, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(cfg.RunnerCmd, cfg.Root, log), nil
		},
	})

	graft.Register(graft.Node[ports.RunExecutor]{
		ID:        ExecutorNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.RunExecutor, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(cfg.RunnerCmd, cfg.Root, log), nil
		},
	})
}
