package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/impact/internal/adapters/cache"     //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/changes"   //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/dialect"   //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/impact/internal/core/ports"
	"go.trai.ch/impact/internal/engine/graph"
	"go.trai.ch/impact/internal/engine/impact"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.NodeID,
			cache.NodeID,
			dialect.NodeID,
			graph.NodeID,
			impact.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			config.NodeID,
			changes.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	catalog, err := graft.Dep[ports.Catalog](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.GraphCache](ctx)
	if err != nil {
		return nil, err
	}

	dialects, err := graft.Dep[ports.DialectRegistry](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*graph.Builder](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[*impact.Resolver](ctx)
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

	recorder, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(catalog, store, dialects, builder, resolver, log, tracer, recorder, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	reader, err := graft.Dep[ports.ChangeReader](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
		ChangeReader: reader,
	}, nil
}
