package cache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impact/internal/core/ports"
)

// NodeID is the unique identifier for the graph cache Graft node.
const NodeID graft.ID = "adapter.graph_cache"

func init() {
	graft.Register(graft.Node[ports.GraphCache]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GraphCache, error) {
			return NewStore(), nil
		},
	})
}
