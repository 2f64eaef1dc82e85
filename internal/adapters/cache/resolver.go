package cache

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"go.trai.ch/zerr"
)

// Resolver maps a root directory and a user-supplied hint to a concrete,
// existing cache directory. Resolvers never validate that the root
// directory exists; that is the Manager's job.
type Resolver interface {
	Resolve(rootDir, hint string) (string, error)
}

// defaultRootCacheName is the hidden folder used inside a root directory
// when no hint is given.
const defaultRootCacheName = ".cache"

// RootResolver anchors the cache inside the root directory and hides it
// so it does not pollute user-visible listings.
type RootResolver struct{}

// Resolve returns <rootDir>/<hint> (default ".cache"), created if
// missing and hidden. Creation is idempotent and race-tolerant.
func (RootResolver) Resolve(rootDir, hint string) (string, error) {
	name := hint
	if name == "" {
		name = defaultRootCacheName
	}
	dir := filepath.Join(rootDir, name)

	// A previous resolve may already have renamed the directory to its
	// hidden form; reuse it rather than recreating the visible one.
	if hidden := hiddenName(dir); hidden != dir {
		if info, err := os.Stat(hidden); err == nil && info.IsDir() {
			dir = hidden
		}
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create cache directory"), "dir", dir)
	}
	return hideDir(dir)
}

// SystemResolver anchors the cache under a per-user application cache
// root, independent of the root directory. The base is injected so tests
// can redirect it; empty means the user's cache home.
type SystemResolver struct {
	Base string
}

// DefaultSystemBase is the per-user cache root for tabby.
func DefaultSystemBase() string {
	return filepath.Join(xdg.CacheHome, "tabby")
}

// Resolve returns <base>/<hint>, created if missing. The directory is
// not hidden; the system cache root is already out of the way.
func (r SystemResolver) Resolve(_, hint string) (string, error) {
	base := r.Base
	if base == "" {
		base = DefaultSystemBase()
	}
	dir := filepath.Join(base, hint)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to create cache directory"), "dir", dir)
	}
	return dir, nil
}

// hiddenName returns the path with a dot-prefixed base name.
func hiddenName(path string) string {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return path
	}
	return filepath.Join(filepath.Dir(path), "."+base)
}

// hideDir hides the directory using the platform convention: a
// dot-prefixed name, plus the hidden attribute on Windows. Returns the
// final path.
func hideDir(path string) (string, error) {
	hidden := hiddenName(path)
	if hidden != path {
		if err := os.Rename(path, hidden); err != nil {
			return "", zerr.With(zerr.Wrap(err, "failed to hide cache directory"), "dir", path)
		}
	}
	if err := setHiddenAttr(hidden); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to set hidden attribute"), "dir", hidden)
	}
	return hidden, nil
}
