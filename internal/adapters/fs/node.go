package fs

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/sift/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the Walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the Hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// ResolverNodeID is the unique identifier for the Resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
)

func init() {
	// Walker Node (concrete type, used by discovery and the watcher)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	// Hasher Node
	graft.Register(graft.Node[ports.ContentHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ContentHasher, error) {
			return NewHasher(), nil
		},
	})

	// Resolver Node
	graft.Register(graft.Node[ports.DependencyResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DependencyResolver, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewResolver(cwd), nil
		},
	})
}
