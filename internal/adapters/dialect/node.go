package dialect

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impact/internal/core/ports"
)

// NodeID is the unique identifier for the dialect registry Graft node.
const NodeID graft.ID = "adapter.dialects"

func init() {
	graft.Register(graft.Node[ports.DialectRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.DialectRegistry, error) {
			return NewDefaultRegistry(), nil
		},
	})
}
