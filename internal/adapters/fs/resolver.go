package fs

import (
	"go/ast"
	goparser "go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unique"

	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DependencyResolver = (*Resolver)(nil)

// Resolver extracts load edges from spec module source and maintains the
// forward and reverse dependency indexes.
type Resolver struct {
	root string

	mu      sync.RWMutex
	forward map[unique.Handle[string]][]unique.Handle[string]
	reverse map[unique.Handle[string]]map[unique.Handle[string]]struct{}
}

// NewResolver creates a resolver rooted at the given project directory.
// Bare dependency paths resolve against root; relative paths resolve
// against the declaring module's directory.
func NewResolver(root string) *Resolver {
	return &Resolver{
		root:    root,
		forward: make(map[unique.Handle[string]][]unique.Handle[string]),
		reverse: make(map[unique.Handle[string]]map[unique.Handle[string]]struct{}),
	}
}

// Direct returns the module's direct dependency paths in first-occurrence
// order, de-duplicated.
//
// When a module carries several independent top-level import blocks, only
// the first block is treated as canonical and the rest are ignored. That
// mirrors how the runner loads modules today; the intent behind it is
// unclear, so the behavior is preserved here rather than resolved.
func (r *Resolver) Direct(modulePath string, src []byte) ([]string, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, modulePath, src, goparser.ImportsOnly)
	if file == nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse module imports"), "path", modulePath)
	}

	block := firstImportBlock(file)
	if block == nil {
		return nil, nil
	}

	dir := filepath.Dir(modulePath)
	seen := make(map[string]struct{})
	var deps []string

	for _, spec := range block.Specs {
		imp, ok := spec.(*ast.ImportSpec)
		if !ok {
			continue
		}
		raw, err := strconv.Unquote(imp.Path.Value)
		if err != nil || raw == "" {
			continue
		}

		resolved := r.resolvePath(dir, raw)
		if _, dup := seen[resolved]; dup {
			continue
		}
		seen[resolved] = struct{}{}
		deps = append(deps, resolved)
	}

	return deps, nil
}

// firstImportBlock returns the first top-level import declaration, or nil.
func firstImportBlock(file *ast.File) *ast.GenDecl {
	for _, decl := range file.Decls {
		if gen, ok := decl.(*ast.GenDecl); ok && gen.Tok == token.IMPORT {
			return gen
		}
	}
	return nil
}

// resolvePath maps an import string to a file path. Relative imports
// resolve against the module's directory, bare imports against the project
// root. A path without an extension refers to a .go helper module.
func (r *Resolver) resolvePath(moduleDir, raw string) string {
	var resolved string
	if strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../") {
		resolved = filepath.Join(moduleDir, filepath.FromSlash(raw))
	} else {
		resolved = filepath.Join(r.root, filepath.FromSlash(raw))
	}

	if filepath.Ext(resolved) == "" {
		resolved += ".go"
	}
	return resolved
}

// Transitive returns the dependency closure of the module, excluding the
// module itself. Traversal is iterative with a visited set; a self- or
// mutual-reference cycle is broken by short-circuiting on second visit.
// Unreadable dependencies terminate their branch silently: a missing helper
// is the runner's problem to report, not a graph error.
func (r *Resolver) Transitive(modulePath string) ([]string, error) {
	visited := map[string]struct{}{modulePath: {}}
	var closure []string

	stack := []string{modulePath}
	for len(stack) > 0 {
		current := stack[0]
		stack = stack[1:]

		src, err := os.ReadFile(current) //nolint:gosec // project file
		if err != nil {
			if current == modulePath {
				return nil, zerr.With(zerr.Wrap(err, "failed to read module"), "path", current)
			}
			continue
		}

		deps, err := r.Direct(current, src)
		if err != nil {
			if current == modulePath {
				return nil, err
			}
			continue
		}
		r.index(current, deps)

		for _, dep := range deps {
			if _, ok := visited[dep]; ok {
				continue
			}
			visited[dep] = struct{}{}
			closure = append(closure, dep)
			stack = append(stack, dep)
		}
	}

	return closure, nil
}

// Dependents returns every indexed module that can reach path through its
// dependency edges, sorted for determinism.
func (r *Resolver) Dependents(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handle := unique.Make(path)
	seen := make(map[unique.Handle[string]]struct{})
	stack := []unique.Handle[string]{handle}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for parent := range r.reverse[current] {
			if _, ok := seen[parent]; ok {
				continue
			}
			seen[parent] = struct{}{}
			stack = append(stack, parent)
		}
	}

	dependents := make([]string, 0, len(seen))
	for handle := range seen {
		dependents = append(dependents, handle.Value())
	}
	slices.Sort(dependents)
	return dependents
}

// index records the module's direct edges, replacing any previous ones.
func (r *Resolver) index(modulePath string, deps []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	moduleHandle := unique.Make(modulePath)

	// Drop stale reverse edges from the previous resolution.
	for _, old := range r.forward[moduleHandle] {
		if parents, ok := r.reverse[old]; ok {
			delete(parents, moduleHandle)
			if len(parents) == 0 {
				delete(r.reverse, old)
			}
		}
	}

	handles := make([]unique.Handle[string], len(deps))
	for i, dep := range deps {
		depHandle := unique.Make(dep)
		handles[i] = depHandle

		if r.reverse[depHandle] == nil {
			r.reverse[depHandle] = make(map[unique.Handle[string]]struct{})
		}
		r.reverse[depHandle][moduleHandle] = struct{}{}
	}
	r.forward[moduleHandle] = handles
}
