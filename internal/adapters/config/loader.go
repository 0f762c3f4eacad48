// Package config provides the configuration loader for sift.
package config

import (
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/sift/internal/core/domain"
	"go.trai.ch/sift/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load searches upward from cwd for sift.yaml. When none is found the
// defaults rooted at cwd apply; a project does not need a config file to be
// watchable.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve working directory")
	}

	path, err := l.findConfiguration(abs)
	if err != nil {
		return domain.DefaultConfig(abs), nil
	}

	return l.loadFile(path)
}

func (l *Loader) findConfiguration(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.SiftFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", cwd)
}

func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Siftfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	root := filepath.Dir(path)
	if file.Root != "" {
		if filepath.IsAbs(file.Root) {
			root = file.Root
		} else {
			root = filepath.Join(root, file.Root)
		}
	}

	cfg := domain.DefaultConfig(root)
	if file.SpecGlob != "" {
		cfg.SpecGlob = file.SpecGlob
	}
	if len(file.Ignore) > 0 {
		cfg.Ignore = file.Ignore
	}
	if file.DebounceMs > 0 {
		cfg.Debounce = time.Duration(file.DebounceMs) * time.Millisecond
	}
	if len(file.Runner) > 0 {
		cfg.RunnerCmd = file.Runner
	}

	return cfg, nil
}
