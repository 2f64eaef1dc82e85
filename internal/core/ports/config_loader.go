package ports

import "go.trai.ch/tabby/internal/core/domain"

// ConfigLoader loads the tabby configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration from the given path.
	Load(path string) (*domain.Config, error)
}
