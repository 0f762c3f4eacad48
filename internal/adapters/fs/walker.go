package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root, skipping version control
// directories and any directory matching an ignore pattern.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip unreadable entries rather than aborting the walk.
				return nil //nolint:nilerr // intentional
			}

			if skip := w.shouldSkip(d, ignores); skip != nil {
				return skip
			}
			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// WalkMatching yields files whose base name matches the given glob pattern.
func (w *Walker) WalkMatching(root, pattern string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for path := range w.WalkFiles(root, ignores) {
			matched, err := filepath.Match(pattern, filepath.Base(path))
			if err != nil || !matched {
				continue
			}
			if !yield(path) {
				return
			}
		}
	}
}

func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) error {
	name := d.Name()

	if d.IsDir() && (name == ".git" || name == ".jj") {
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		matched, _ := filepath.Match(ignore, name)
		if matched {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
	}

	return nil
}
