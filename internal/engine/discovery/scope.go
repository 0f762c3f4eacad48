package discovery

import "sync"

// ScopeSet hands out per-module ambient scopes. Executing a spec module
// mutates process-wide interpreter state, so at most one scope per module
// is held at a time; a second acquisition blocks until the first releases.
// Different modules do not contend.
type ScopeSet struct {
	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

// NewScopeSet creates an empty scope set.
func NewScopeSet() *ScopeSet {
	return &ScopeSet{paths: make(map[string]*sync.Mutex)}
}

// Acquire takes the ambient scope for the given module path, waiting for
// any holder to release it first.
func (s *ScopeSet) Acquire(path string) *Scope {
	s.mu.Lock()
	m, ok := s.paths[path]
	if !ok {
		m = &sync.Mutex{}
		s.paths[path] = m
	}
	s.mu.Unlock()

	m.Lock()
	return &Scope{mu: m, path: path}
}

// Scope is a held ambient scope for one module. Release it when discovery
// of the module finishes, on success and failure alike.
type Scope struct {
	mu   *sync.Mutex
	path string
	once sync.Once
}

// Path returns the module path the scope belongs to.
func (s *Scope) Path() string { return s.path }

// Release returns the scope to the set. Releasing twice is a no-op.
func (s *Scope) Release() {
	s.once.Do(s.mu.Unlock)
}
