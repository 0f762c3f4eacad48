package parser_test

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"go.trai.ch/sift/internal/adapters/parser"
	"go.trai.ch/sift/internal/core/domain"
)

// render produces a stable textual form of a parsed tree for golden
// comparison.
func render(tree *domain.SpecTree) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n", tree.RelPath)

	var walk func(nodes []*domain.SpecNode, depth int)
	walk = func(nodes []*domain.SpecNode, depth int) {
		for _, n := range nodes {
			kind := "case"
			if n.Kind == domain.KindContainer {
				kind = "container"
			}
			fmt.Fprintf(&b, "%s%s %q", strings.Repeat("  ", depth), kind, n.Description)
			if n.Dynamic {
				b.WriteString(" dynamic")
			}
			if n.Focused {
				b.WriteString(" focused")
			}
			if n.Skipped {
				b.WriteString(" skipped")
			}
			if n.Pending {
				b.WriteString(" pending")
			}
			if len(n.Tags) > 0 {
				fmt.Fprintf(&b, " tags=[%s]", strings.Join(n.Tags, " "))
			}
			fmt.Fprintf(&b, " lines=%d-%d\n", n.Line, n.EndLine)
			walk(n.Children, depth+1)
		}
	}
	walk(tree.Roots, 0)

	return []byte(b.String())
}

func TestParseSource_Golden(t *testing.T) {
	root := t.TempDir()
	p := parser.NewParser(root)

	tree, err := p.ParseSource(filepath.Join(root, "calc_spec.go"), []byte(calcSource))
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "calc_tree", render(tree))
}
