package ports

import "go.trai.ch/sift/internal/core/domain"

// ConfigLoader loads the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load resolves the configuration starting from the given working
	// directory, searching upward for sift.yaml and falling back to
	// defaults when none exists.
	Load(cwd string) (*domain.Config, error)
}
