package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impact/internal/core/ports"
)

// NodeID is the unique identifier for the source catalog Graft node.
const NodeID graft.ID = "adapter.catalog"

func init() {
	graft.Register(graft.Node[ports.Catalog]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Catalog, error) {
			return NewCatalog(NewWalker(), NewHasher()), nil
		},
	})
}
