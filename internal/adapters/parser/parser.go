// Package parser implements static discovery of spec declarations. It
// enumerates containers and cases from source alone, never executing a body.
package parser

import (
	"bytes"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/printer"
	"go/token"
	"os"
	"path/filepath"
	"strconv"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StructureParser = (*Parser)(nil)

// proximityWindow is how many lines above a lookup target a preceding
// declaration may start and still be selected.
const proximityWindow = 1

// declKind classifies a DSL call site.
type declKind struct {
	kind    domain.NodeKind
	focused bool
	skipped bool
	pending bool
}

// declarations maps every recognized DSL name to its shape. The F, X and P
// prefixes mark focus, skip and pending respectively.
var declarations = map[string]declKind{
	"Describe":  {kind: domain.KindContainer},
	"FDescribe": {kind: domain.KindContainer, focused: true},
	"XDescribe": {kind: domain.KindContainer, skipped: true},
	"PDescribe": {kind: domain.KindContainer, pending: true},
	"Context":   {kind: domain.KindContainer},
	"FContext":  {kind: domain.KindContainer, focused: true},
	"XContext":  {kind: domain.KindContainer, skipped: true},
	"PContext":  {kind: domain.KindContainer, pending: true},
	"When":      {kind: domain.KindContainer},
	"FWhen":     {kind: domain.KindContainer, focused: true},
	"XWhen":     {kind: domain.KindContainer, skipped: true},
	"PWhen":     {kind: domain.KindContainer, pending: true},
	"It":        {kind: domain.KindCase},
	"FIt":       {kind: domain.KindCase, focused: true},
	"XIt":       {kind: domain.KindCase, skipped: true},
	"PIt":       {kind: domain.KindCase, pending: true},
	"Specify":   {kind: domain.KindCase},
	"FSpecify":  {kind: domain.KindCase, focused: true},
	"XSpecify":  {kind: domain.KindCase, skipped: true},
	"PSpecify":  {kind: domain.KindCase, pending: true},
}

// Parser implements ports.StructureParser on go/ast.
type Parser struct {
	root string
}

// NewParser creates a parser; rel paths in produced trees are computed
// against root.
func NewParser(root string) *Parser {
	return &Parser{root: root}
}

// ParseFile reads and parses the module at path.
func (p *Parser) ParseFile(path string) (*domain.SpecTree, error) {
	src, err := os.ReadFile(path) //nolint:gosec // project file
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read spec module"), "path", path)
	}
	return p.ParseSource(path, src)
}

// ParseSource parses the given source. Partial syntax errors are tolerated:
// whatever declarations go/parser could recover are still enumerated, since
// static discovery is the fallback path for broken modules.
func (p *Parser) ParseSource(path string, src []byte) (*domain.SpecTree, error) {
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, path, src, goparser.SkipObjectResolution)
	if file == nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse spec module"), "path", path)
	}

	tree := &domain.SpecTree{
		ModulePath: path,
		RelPath:    p.relPath(path),
	}

	scan := &scanner{fset: fset}
	tree.Roots = scan.block(file)

	return tree, nil
}

func (p *Parser) relPath(path string) string {
	if p.root != "" {
		if rel, err := filepath.Rel(p.root, path); err == nil {
			return domain.NormalizePath(rel)
		}
	}
	return domain.NormalizePath(path)
}

// scanner walks an AST collecting spec declarations in source order.
type scanner struct {
	fset *token.FileSet
}

// block collects the declarations nested directly under n.
func (s *scanner) block(n ast.Node) []*domain.SpecNode {
	var nodes []*domain.SpecNode

	ast.Inspect(n, func(node ast.Node) bool {
		call, ok := node.(*ast.CallExpr)
		if !ok {
			return true
		}

		shape, ok := declarations[calleeName(call)]
		if !ok {
			return true
		}

		nodes = append(nodes, s.declaration(call, shape))
		// The declaration owns everything beneath it; stop the outer walk
		// from descending into the call again.
		return false
	})

	return nodes
}

// declaration builds a SpecNode from a DSL call site.
func (s *scanner) declaration(call *ast.CallExpr, shape declKind) *domain.SpecNode {
	start := s.fset.Position(call.Pos())
	end := s.fset.Position(call.End())

	node := &domain.SpecNode{
		Kind:    shape.kind,
		Focused: shape.focused,
		Skipped: shape.skipped,
		Pending: shape.pending,
		Line:    start.Line,
		EndLine: end.Line,
	}

	s.describe(node, call)
	node.Tags = labels(call)

	if shape.kind == domain.KindContainer {
		if body := bodyFunc(call); body != nil {
			node.Children = s.block(body.Body)
		}
	}

	return node
}

// describe resolves the declaration's description. A non-literal first
// argument means the description is computed at runtime: the declaration is
// recorded as a dynamic placeholder rather than omitted, with the source
// expression kept as diagnostic text.
func (s *scanner) describe(node *domain.SpecNode, call *ast.CallExpr) {
	if len(call.Args) == 0 {
		node.Dynamic = true
		node.Description = fmt.Sprintf("[dynamic spec at line %d]", node.Line)
		return
	}

	if lit, ok := call.Args[0].(*ast.BasicLit); ok && lit.Kind == token.STRING {
		if desc, err := strconv.Unquote(lit.Value); err == nil {
			node.Description = desc
			return
		}
	}

	node.Dynamic = true
	node.Description = fmt.Sprintf("[dynamic spec at line %d]", node.Line)
	node.Diagnostic = "description not statically determinable: " + exprString(s.fset, call.Args[0])
}

// labels collects literal strings from Label(...) arguments.
func labels(call *ast.CallExpr) []string {
	var tags []string
	for _, arg := range call.Args {
		inner, ok := arg.(*ast.CallExpr)
		if !ok || calleeName(inner) != "Label" {
			continue
		}
		for _, labelArg := range inner.Args {
			if lit, ok := labelArg.(*ast.BasicLit); ok && lit.Kind == token.STRING {
				if tag, err := strconv.Unquote(lit.Value); err == nil {
					tags = append(tags, tag)
				}
			}
		}
	}
	return tags
}

// bodyFunc returns the declaration's body closure, if any.
func bodyFunc(call *ast.CallExpr) *ast.FuncLit {
	for i := len(call.Args) - 1; i >= 0; i-- {
		if fn, ok := call.Args[i].(*ast.FuncLit); ok {
			return fn
		}
	}
	return nil
}

func calleeName(call *ast.CallExpr) string {
	switch fun := call.Fun.(type) {
	case *ast.Ident:
		return fun.Name
	case *ast.SelectorExpr:
		return fun.Sel.Name
	default:
		return ""
	}
}

func exprString(fset *token.FileSet, expr ast.Expr) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, expr); err != nil {
		return "<unprintable expression>"
	}
	return buf.String()
}

// AtLine selects the declaration whose span covers line. When several
// spans cover it, the innermost declaration wins. With no covering span,
// the nearest preceding declaration within the proximity window is used.
func (p *Parser) AtLine(tree *domain.SpecTree, line int) (*domain.SpecNode, error) {
	var covering *domain.SpecNode
	var preceding *domain.SpecNode

	var walk func(nodes []*domain.SpecNode)
	walk = func(nodes []*domain.SpecNode) {
		for _, n := range nodes {
			if n.Line <= line && line <= n.EndLine {
				// Nested declarations are visited after their parents, so
				// the last covering node seen is the innermost.
				if covering == nil || n.Line >= covering.Line {
					covering = n
				}
			}
			if n.Line < line && line-n.Line <= proximityWindow {
				if preceding == nil || n.Line > preceding.Line {
					preceding = n
				}
			}
			walk(n.Children)
		}
	}
	walk(tree.Roots)

	if covering != nil {
		return covering, nil
	}
	if preceding != nil {
		return preceding, nil
	}
	return nil, zerr.With(domain.ErrNoSpecsAtLine, "line", line)
}
