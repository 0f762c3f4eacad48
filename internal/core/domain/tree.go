package domain

import (
	"iter"
	"slices"
)

// NodeKind distinguishes container declarations from runnable cases.
type NodeKind uint8

const (
	// KindContainer is a context/group declaration nesting other nodes.
	KindContainer NodeKind = iota
	// KindCase is a single runnable spec case.
	KindCase
)

// SpecNode is one declaration in a spec tree.
type SpecNode struct {
	Kind        NodeKind
	Description string
	// Dynamic marks a node whose description is computed at runtime and
	// therefore not statically knowable.
	Dynamic bool

	Focused bool
	Skipped bool
	Pending bool
	Tags    []string

	// Line and EndLine are the 1-based source span of the declaration.
	// Zero means no provenance is available.
	Line    int
	EndLine int

	// HasCompilationError marks nodes discovered by static fallback after
	// the module failed to compile; Diagnostic carries the compiler output.
	HasCompilationError bool
	Diagnostic          string

	Children []*SpecNode
}

// SpecTree is the realized hierarchy of declarations for one module.
type SpecTree struct {
	// ModulePath is the absolute path of the module the tree came from.
	ModulePath string
	// RelPath is ModulePath relative to the project root, '/'-normalized.
	RelPath string
	Roots   []*SpecNode
}

// Cases yields every runnable case in declaration order together with its
// identity. Context paths accumulate container descriptions top-down.
func (t *SpecTree) Cases() iter.Seq2[CaseIdentity, *SpecNode] {
	return func(yield func(CaseIdentity, *SpecNode) bool) {
		var walk func(nodes []*SpecNode, contexts []string) bool
		walk = func(nodes []*SpecNode, contexts []string) bool {
			for _, n := range nodes {
				switch n.Kind {
				case KindCase:
					id := CaseIdentity{
						RelPath:     t.RelPath,
						Contexts:    slices.Clone(contexts),
						Description: n.Description,
						Dynamic:     n.Dynamic,
					}
					if !yield(id, n) {
						return false
					}
				case KindContainer:
					if !walk(n.Children, append(contexts, n.Description)) {
						return false
					}
				}
			}
			return true
		}
		walk(t.Roots, nil)
	}
}

// Identities collects the identity of every case in the tree.
func (t *SpecTree) Identities() []CaseIdentity {
	var ids []CaseIdentity
	for id := range t.Cases() {
		ids = append(ids, id)
	}
	return ids
}

// MarkCompilationError flags every node in the tree with the given compiler
// diagnostic. Used when a tree was recovered by static fallback.
func (t *SpecTree) MarkCompilationError(diagnostic string) {
	var walk func(nodes []*SpecNode)
	walk = func(nodes []*SpecNode) {
		for _, n := range nodes {
			n.HasCompilationError = true
			n.Diagnostic = diagnostic
			walk(n.Children)
		}
	}
	walk(t.Roots)
}

// HasDynamic reports whether any case in the tree is a dynamic placeholder.
func (t *SpecTree) HasDynamic() bool {
	for id := range t.Cases() {
		if id.Dynamic {
			return true
		}
	}
	return false
}
