package parser

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/sift/internal/core/ports"
)

// NodeID is the unique identifier for the structure parser Graft node.
const NodeID graft.ID = "adapter.parser"

func init() {
	graft.Register(graft.Node[ports.StructureParser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StructureParser, error) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			return NewParser(cwd), nil
		},
	})
}
