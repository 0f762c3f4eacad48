package discovery

import "go.trai.ch/sift/internal/core/domain"

// State tracks a module through the discovery lifecycle.
type State uint8

const (
	// NotStarted means the module has not been discovered yet.
	NotStarted State = iota
	// Compiling means a compile and execution is in flight.
	Compiling
	// Executed means the module compiled and its realized tree is available.
	Executed
	// CompileFailed means compilation failed and the tree was recovered by
	// static parsing.
	CompileFailed
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Compiling:
		return "compiling"
	case Executed:
		return "executed"
	case CompileFailed:
		return "compile failed"
	}
	return "unknown"
}

// Result is the outcome of discovering one module. It is either an
// ExecutedResult or a FallbackResult; no other implementations exist.
type Result interface {
	// Tree returns the discovered spec tree.
	Tree() *domain.SpecTree
	// Path returns the absolute path of the discovered module.
	Path() string

	sealed()
}

// ExecutedResult carries the realized tree of a module that compiled and ran.
type ExecutedResult struct {
	SpecTree *domain.SpecTree
}

func (r *ExecutedResult) Tree() *domain.SpecTree { return r.SpecTree }
func (r *ExecutedResult) Path() string           { return r.SpecTree.ModulePath }
func (r *ExecutedResult) sealed()                {}

// FallbackResult carries a statically recovered tree for a module that
// failed to compile, together with the compiler diagnostic. Every node in
// the tree is flagged accordingly.
type FallbackResult struct {
	SpecTree   *domain.SpecTree
	Diagnostic string
}

func (r *FallbackResult) Tree() *domain.SpecTree { return r.SpecTree }
func (r *FallbackResult) Path() string           { return r.SpecTree.ModulePath }
func (r *FallbackResult) sealed()                {}
