package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// CaseIdentity is the stable composite key of a single spec case. It is
// unique within a module; colliding descriptions under the same context path
// make a rerun target ambiguous, which is a documented limitation rather
// than something we resolve here.
type CaseIdentity struct {
	// RelPath is the module path relative to the project root, with
	// separators normalized to '/'.
	RelPath string
	// Contexts holds the ordered container descriptions enclosing the case.
	Contexts []string
	// Description is the case description. For dynamic cases this is a
	// synthetic placeholder.
	Description string
	// Dynamic marks a case whose description could not be determined
	// without executing the module.
	Dynamic bool
}

// String renders the identity in the stable form consumed by run-by-id
// tooling: {relPath}:{ctx1}/{ctx2}/.../{description}.
func (id CaseIdentity) String() string {
	segments := make([]string, 0, len(id.Contexts)+1)
	segments = append(segments, id.Contexts...)
	segments = append(segments, id.Description)
	return id.RelPath + ":" + strings.Join(segments, "/")
}

// Equal reports whether two identities name the same case.
func (id CaseIdentity) Equal(other CaseIdentity) bool {
	return id.RelPath == other.RelPath &&
		id.Description == other.Description &&
		slices.Equal(id.Contexts, other.Contexts)
}

// ParseCaseIdentity parses the stable string form back into a CaseIdentity.
func ParseCaseIdentity(s string) (CaseIdentity, error) {
	relPath, rest, ok := strings.Cut(s, ":")
	if !ok || relPath == "" || rest == "" {
		return CaseIdentity{}, zerr.With(ErrInvalidIdentity, "identity", s)
	}

	segments := strings.Split(rest, "/")
	return CaseIdentity{
		RelPath:     relPath,
		Contexts:    segments[:len(segments)-1],
		Description: segments[len(segments)-1],
	}, nil
}

// NormalizePath converts a host path to the '/'-separated form used in
// identities, on every platform.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}
