package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
)

// Manager owns the root directory, the raw cache-dir hint, and the
// resolve strategy, and derives cache file paths from logical dataset
// names.
type Manager struct {
	rootDir  string
	rawHint  string
	resolver Resolver
	cacheDir string
}

// NewManager validates the root directory and resolves the cache
// directory. An empty rootDir means the current directory; a nil
// resolver means RootResolver.
func NewManager(rootDir, cacheHint string, resolver Resolver) (*Manager, error) {
	if resolver == nil {
		resolver = RootResolver{}
	}
	rootDir, err := validateRootDir(rootDir)
	if err != nil {
		return nil, err
	}
	cacheDir, err := resolver.Resolve(rootDir, cacheHint)
	if err != nil {
		return nil, err
	}
	return &Manager{
		rootDir:  rootDir,
		rawHint:  cacheHint,
		resolver: resolver,
		cacheDir: cacheDir,
	}, nil
}

func validateRootDir(rootDir string) (string, error) {
	if rootDir == "" {
		rootDir = "."
	}
	info, err := os.Stat(rootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", zerr.With(domain.ErrRootNotFound, "path", rootDir)
	}
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat root directory"), "path", rootDir)
	}
	if !info.IsDir() {
		return "", zerr.With(domain.ErrNotADirectory, "path", rootDir)
	}
	return rootDir, nil
}

// Option reconfigures one Manager field.
type Option func(*settings)

type settings struct {
	rootDir  string
	rawHint  string
	resolver Resolver

	rootSet     bool
	hintSet     bool
	resolverSet bool
}

// WithRootDir changes the root directory.
func WithRootDir(dir string) Option {
	return func(s *settings) { s.rootDir, s.rootSet = dir, true }
}

// WithCacheHint changes the raw cache directory hint.
func WithCacheHint(hint string) Option {
	return func(s *settings) { s.rawHint, s.hintSet = hint, true }
}

// WithResolver changes the resolve strategy.
func WithResolver(r Resolver) Option {
	return func(s *settings) { s.resolver, s.resolverSet = r, true }
}

// Reconfigure applies the options and recomputes the cache directory
// atomically: either every derived field is updated or none is, so an
// error cannot leave the manager half-reconfigured.
func (m *Manager) Reconfigure(opts ...Option) error {
	next := settings{rootDir: m.rootDir, rawHint: m.rawHint, resolver: m.resolver}
	for _, opt := range opts {
		opt(&next)
	}
	if next.resolver == nil {
		next.resolver = RootResolver{}
	}

	rootDir := next.rootDir
	if next.rootSet {
		validated, err := validateRootDir(rootDir)
		if err != nil {
			return err
		}
		rootDir = validated
	}

	cacheDir, err := next.resolver.Resolve(rootDir, next.rawHint)
	if err != nil {
		return err
	}

	m.rootDir = rootDir
	m.rawHint = next.rawHint
	m.resolver = next.resolver
	m.cacheDir = cacheDir
	return nil
}

// RootDir returns the validated root directory.
func (m *Manager) RootDir() string { return m.rootDir }

// CacheDir returns the resolved cache directory.
func (m *Manager) CacheDir() string { return m.cacheDir }

// OutputPath derives the cache file path for a logical dataset name.
func (m *Manager) OutputPath(logicalName string, c ports.Cacher) string {
	return filepath.Join(m.cacheDir, logicalName+c.Suffix())
}

// ClearCache permanently deletes the cache directory contents. Entries
// that cannot be removed are collected and returned rather than aborting
// the clear.
func (m *Manager) ClearCache() ([]string, error) {
	entries, err := os.ReadDir(m.cacheDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list cache directory"), "dir", m.cacheDir)
	}

	var failed []string
	for _, entry := range entries {
		path := filepath.Join(m.cacheDir, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			failed = append(failed, path)
		}
	}
	return failed, nil
}
