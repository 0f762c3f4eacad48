// Package cache implements the in-memory compiled artifact store.
package cache

import (
	"context"
	"sync"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.ArtifactStore = (*Store)(nil)

// Store implements ports.ArtifactStore. Entries are bounded by process
// lifetime; there is no automatic eviction, the cache-management surface
// (Stats, Clear) is the only way entries leave the map.
type Store struct {
	mu      sync.RWMutex
	entries map[domain.ArtifactKey]*domain.CompiledArtifact
	group   singleflight.Group
}

// NewStore creates an empty artifact store.
func NewStore() *Store {
	return &Store{
		entries: make(map[domain.ArtifactKey]*domain.CompiledArtifact),
	}
}

// Get retrieves the artifact for a key. A stored artifact that fails its
// validity check is dropped and reported as a miss, so corruption triggers
// recompilation instead of an error.
func (s *Store) Get(key domain.ArtifactKey) (*domain.CompiledArtifact, error) {
	s.mu.RLock()
	artifact, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !artifact.Valid() {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}
	return artifact, nil
}

// Put stores the artifact under its key.
func (s *Store) Put(artifact *domain.CompiledArtifact) error {
	if artifact == nil || artifact.Key == "" {
		return zerr.New("artifact has no key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[artifact.Key] = artifact
	return nil
}

// GetOrCompile returns the cached artifact for key or compiles it. The key
// is pre-resolved from (path, content hash, sorted dependency hashes), so
// concurrent requests for the same key collapse onto one singleflight call
// and block on the first compile's result.
func (s *Store) GetOrCompile(
	ctx context.Context,
	key domain.ArtifactKey,
	compile func(ctx context.Context) (*domain.CompiledArtifact, error),
) (*domain.CompiledArtifact, error) {
	if artifact, err := s.Get(key); err != nil || artifact != nil {
		return artifact, err
	}

	v, err, _ := s.group.Do(string(key), func() (any, error) {
		// Re-check under the flight: a concurrent caller may have
		// populated the entry between our miss and this call.
		if artifact, err := s.Get(key); err != nil || artifact != nil {
			return artifact, err
		}

		artifact, err := compile(ctx)
		if err != nil {
			return nil, err
		}
		artifact.Key = key
		if err := s.Put(artifact); err != nil {
			return nil, err
		}
		return artifact, nil
	})
	if err != nil {
		return nil, err
	}

	artifact, _ := v.(*domain.CompiledArtifact)
	return artifact, nil
}

// Clear evicts all entries and returns how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.entries)
	s.entries = make(map[domain.ArtifactKey]*domain.CompiledArtifact)
	return count
}

// Stats reports the entry count and approximate total size.
func (s *Store) Stats() ports.CacheStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := ports.CacheStats{Entries: len(s.entries)}
	for _, artifact := range s.entries {
		stats.TotalSize += artifact.Size()
	}
	return stats
}
