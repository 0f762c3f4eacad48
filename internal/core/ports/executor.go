package ports

import (
	"context"

	"go.trai.ch/sift/internal/core/domain"
)

// RunExecutor runs the rerun scope produced by a watch iteration. A context
// error from Execute means the run was cancelled, not that it failed.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type RunExecutor interface {
	Execute(ctx context.Context, scope *domain.RunScope) error
}
