// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/sift/internal/core/domain"
)

// RunOutput is the result of executing a spec module: the realized tree with
// runtime-computed descriptions resolved, plus the runner's opaque compiled
// representation for caching.
type RunOutput struct {
	Tree *domain.SpecTree
	Raw  []byte
}

// SpecRunner compiles and executes a spec module. It is an external
// capability; a compile or execution failure is reported as a
// *domain.CompileError so callers can fall back to static discovery.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type SpecRunner interface {
	// Run compiles and executes the module, returning its realized tree.
	Run(ctx context.Context, module *domain.SpecModule) (*RunOutput, error)
}
