package graph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impact/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/impact/internal/core/ports"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.graph_builder"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			catalog, err := graft.Dep[ports.Catalog](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(catalog), nil
		},
	})
}
