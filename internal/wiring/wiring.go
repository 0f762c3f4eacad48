// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sift/internal/adapters/cache"
	_ "go.trai.ch/sift/internal/adapters/config"
	_ "go.trai.ch/sift/internal/adapters/fs"
	_ "go.trai.ch/sift/internal/adapters/logger"
	_ "go.trai.ch/sift/internal/adapters/parser"
	_ "go.trai.ch/sift/internal/adapters/runner"
	_ "go.trai.ch/sift/internal/adapters/telemetry"
	_ "go.trai.ch/sift/internal/adapters/watcher"
	// Register app, engine and ui nodes.
	_ "go.trai.ch/sift/internal/app"
	_ "go.trai.ch/sift/internal/engine/discovery"
	_ "go.trai.ch/sift/internal/engine/tracker"
	_ "go.trai.ch/sift/internal/engine/watch"
	_ "go.trai.ch/sift/internal/ui/output"
)
