package ports

import "go.trai.ch/sift/internal/core/domain"

// StructureParser enumerates spec declarations from module source without
// executing any body.
//
//go:generate go run go.uber.org/mock/mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type StructureParser interface {
	// ParseFile reads and parses the module at path.
	ParseFile(path string) (*domain.SpecTree, error)

	// ParseSource parses the given source; path is used for provenance only.
	ParseSource(path string, src []byte) (*domain.SpecTree, error)

	// AtLine selects the declaration whose span covers line, or the nearest
	// preceding declaration within one line. It returns
	// domain.ErrNoSpecsAtLine when neither exists.
	AtLine(tree *domain.SpecTree, line int) (*domain.SpecNode, error)
}
