package tracker

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the tracker Graft node.
const NodeID graft.ID = "engine.tracker"

func init() {
	graft.Register(graft.Node[*Tracker]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Tracker, error) {
			return NewTracker(), nil
		},
	})
}
