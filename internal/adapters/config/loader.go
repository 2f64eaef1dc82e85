// Package config provides the configuration loader for tabby.
package config

import (
	"os"

	"go.trai.ch/tabby/internal/adapters/cache"
	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up when none is given.
const DefaultFilename = "tabby.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	logger ports.Logger
}

// NewLoader creates a FileConfigLoader.
func NewLoader(logger ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{logger: logger}
}

// Load reads the configuration file at path.
func (l *FileConfigLoader) Load(path string) (*domain.Config, error) {
	if path == "" {
		path = DefaultFilename
	}
	l.logger.Info("loading configuration from " + path)
	return Load(path)
}

// Load reads a configuration file from the given path.
func Load(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var file Tabbyfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	cfg := &domain.Config{Profiles: make(map[string]*domain.Profile, len(file.Profiles))}
	for name, dto := range file.Profiles {
		profile, err := buildProfile(name, dto)
		if err != nil {
			return nil, zerr.With(err, "profile", name)
		}
		cfg.Profiles[name] = profile
	}
	return cfg, nil
}

// buildProfile validates one profile definition and converts it to its
// domain form, applying defaults for omitted fields.
func buildProfile(name string, dto ProfileDTO) (*domain.Profile, error) {
	selector := domain.ParseSheetSelector(dto.Sheet)

	format := dto.Format
	if format == "" {
		format = "parquet"
	}
	if _, err := cache.ForFormat(format); err != nil {
		return nil, err
	}
	if _, err := cache.ParseStrategy(dto.Strategy); err != nil {
		return nil, err
	}

	location := domain.CacheLocation(dto.CacheLocation)
	switch location {
	case "":
		location = domain.LocationRoot
	case domain.LocationRoot, domain.LocationSystem:
	default:
		return nil, zerr.With(zerr.New("unknown cache location"), "cache_location", dto.CacheLocation)
	}

	rootDir := dto.Root
	if rootDir == "" {
		rootDir = "."
	}

	return &domain.Profile{
		Name:          name,
		RootDir:       rootDir,
		Glob:          dto.Glob,
		Selector:      selector,
		Format:        format,
		Strategy:      dto.Strategy,
		Output:        dto.Output,
		CacheLocation: location,
		CacheDirHint:  dto.CacheDir,
	}, nil
}
