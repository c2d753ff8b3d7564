// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/impact/internal/adapters/cache"
	_ "go.trai.ch/impact/internal/adapters/changes"
	_ "go.trai.ch/impact/internal/adapters/config"
	_ "go.trai.ch/impact/internal/adapters/dialect"
	_ "go.trai.ch/impact/internal/adapters/fs"
	_ "go.trai.ch/impact/internal/adapters/logger"
	_ "go.trai.ch/impact/internal/adapters/metrics"
	_ "go.trai.ch/impact/internal/adapters/telemetry"
	_ "go.trai.ch/impact/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/impact/internal/app"
	_ "go.trai.ch/impact/internal/engine/graph"
	_ "go.trai.ch/impact/internal/engine/impact"
)
