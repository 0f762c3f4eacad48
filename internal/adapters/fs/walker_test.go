package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/sift/internal/adapters/fs"
)

func TestWalkMatching(t *testing.T) {
	root := t.TempDir()
	write(t, root, "calc_spec.go", "package specs\n")
	write(t, root, "helpers.go", "package specs\n")
	write(t, root, filepath.Join("nested", "auth_spec.go"), "package specs\n")
	write(t, root, filepath.Join("node_modules", "dep_spec.go"), "package specs\n")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".git"), 0o755))
	write(t, root, filepath.Join(".git", "hook_spec.go"), "package specs\n")

	w := fs.NewWalker()
	var found []string
	for path := range w.WalkMatching(root, "*_spec.go", []string{"node_modules"}) {
		found = append(found, path)
	}
	slices.Sort(found)

	assert.Equal(t, []string{
		filepath.Join(root, "calc_spec.go"),
		filepath.Join(root, "nested", "auth_spec.go"),
	}, found)
}

func TestWalkFiles_StopsEarly(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.go", "package specs\n")
	write(t, root, "b.go", "package specs\n")

	w := fs.NewWalker()
	count := 0
	for range w.WalkFiles(root, nil) {
		count++
		break
	}

	assert.Equal(t, 1, count)
}
