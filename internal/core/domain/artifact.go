package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
)

// ArtifactKey addresses a compiled artifact by module path, content hash and
// the sorted set of transitive dependency hashes. Any change to a transitive
// dependency hash produces a different key, which is what forces
// recompilation without walking the graph at lookup time.
type ArtifactKey string

// NewArtifactKey computes the key for a module. depHashes may be passed in
// any order; the key is stable under reordering.
func NewArtifactKey(path, contentHash string, depHashes []string) ArtifactKey {
	sorted := slices.Clone(depHashes)
	slices.Sort(sorted)

	h := xxhash.New()
	_, _ = h.WriteString(path)
	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(contentHash)
	_, _ = h.Write([]byte{0})
	for _, dep := range sorted {
		_, _ = h.WriteString(dep)
		_, _ = h.Write([]byte{0})
	}

	return ArtifactKey(fmt.Sprintf("%016x", h.Sum64()))
}

// CompiledArtifact is the cached result of compiling and executing a module.
// It is owned exclusively by the cache store.
type CompiledArtifact struct {
	Key        ArtifactKey
	ModulePath string

	// Raw is the opaque compiled representation produced by the runner.
	Raw []byte
	// Tree is the discovered spec tree: the realized tree when CompileOK,
	// or the static fallback tree when compilation failed.
	Tree *SpecTree

	CompileOK bool
	// Diagnostic carries the compiler output when CompileOK is false.
	Diagnostic string

	CreatedAt time.Time
}

// Valid reports whether the artifact is usable. An invalid artifact is
// treated by the store as a cache miss, never as a fatal condition.
func (a *CompiledArtifact) Valid() bool {
	return a != nil && a.Tree != nil
}

// Size approximates the artifact's memory footprint for cache statistics.
func (a *CompiledArtifact) Size() int64 {
	if a == nil {
		return 0
	}
	size := int64(len(a.Raw)) + int64(len(a.Diagnostic))
	if a.Tree != nil {
		for id := range a.Tree.Cases() {
			size += int64(len(id.String()))
		}
	}
	return size
}
