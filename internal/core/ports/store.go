package ports

import (
	"context"

	"go.trai.ch/sift/internal/core/domain"
)

// CacheStats describes the contents of the artifact store.
type CacheStats struct {
	Entries   int
	TotalSize int64
}

// ArtifactStore stores compiled artifacts addressed by pre-resolved keys, so
// lookups never need to walk the dependency graph.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ArtifactStore interface {
	// Get retrieves the artifact for a key. Returns nil, nil on a miss.
	// An unusable stored artifact is reported as a miss, never an error.
	Get(key domain.ArtifactKey) (*domain.CompiledArtifact, error)

	// Put stores the artifact under its key.
	Put(artifact *domain.CompiledArtifact) error

	// GetOrCompile returns the cached artifact for key, or invokes compile
	// and stores its result. At most one compile is in flight per key;
	// concurrent callers for the same key block on the first compile's
	// result rather than duplicating work.
	GetOrCompile(ctx context.Context, key domain.ArtifactKey, compile func(ctx context.Context) (*domain.CompiledArtifact, error)) (*domain.CompiledArtifact, error)

	// Clear evicts everything and returns the number of entries removed.
	Clear() int

	// Stats reports entry count and approximate total size.
	Stats() CacheStats
}
