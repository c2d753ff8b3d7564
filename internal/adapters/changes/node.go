package changes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impact/internal/core/ports"
)

// NodeID is the unique identifier for the change reader Graft node.
const NodeID graft.ID = "adapter.changes"

func init() {
	graft.Register(graft.Node[ports.ChangeReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ChangeReader, error) {
			return NewReader(), nil
		},
	})
}
