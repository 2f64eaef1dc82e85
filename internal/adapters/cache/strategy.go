package cache

import (
	"os"

	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
)

// FreshFunc reads fresh data, assumedly from the source file.
type FreshFunc func() (domain.Dataset, error)

// Strategy is one of the five read-time cache policies. Exactly one
// handler runs per Fetch call; no state persists between calls beyond
// the cache entry itself.
type Strategy uint8

const (
	// CheckCache returns cached data when valid, otherwise reads fresh
	// data, caches it, and returns it.
	CheckCache Strategy = iota
	// FallbackToCache behaves like CheckCache, but a failed fresh read
	// is recovered from the cache entry if one exists, even a stale one.
	FallbackToCache
	// ForceCacheUpdate always reads fresh data and overwrites the cache.
	ForceCacheUpdate
	// SkipCache always reads fresh data and never touches the cache file.
	SkipCache
	// FromCache always reads the cache entry and never touches the source.
	FromCache
)

// ParseStrategy parses a strategy token as used in config and flags.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "check":
		return CheckCache, nil
	case "fallback":
		return FallbackToCache, nil
	case "force":
		return ForceCacheUpdate, nil
	case "skip":
		return SkipCache, nil
	case "cached":
		return FromCache, nil
	default:
		return CheckCache, zerr.With(zerr.New("unknown cache strategy"), "strategy", s)
	}
}

// String returns the strategy's config token.
func (s Strategy) String() string {
	switch s {
	case FallbackToCache:
		return "fallback"
	case ForceCacheUpdate:
		return "force"
	case SkipCache:
		return "skip"
	case FromCache:
		return "cached"
	default:
		return "check"
	}
}

// Fetch resolves a dataset for the source/cache pair according to the
// strategy, using fresh to read new data when needed. Every returned
// dataset has the cacher's post-process pipeline applied.
func (s Strategy) Fetch(sourcePath, cachePath string, c ports.Cacher, fresh FreshFunc) (domain.Dataset, error) {
	switch s {
	case FallbackToCache:
		return fallbackToCache(sourcePath, cachePath, c, fresh)
	case ForceCacheUpdate:
		return forceCacheUpdate(cachePath, c, fresh)
	case SkipCache:
		return skipCache(c, fresh)
	case FromCache:
		return fromCache(cachePath, c)
	default:
		return checkCache(sourcePath, cachePath, c, fresh)
	}
}

// checkCache returns cached data on a hit; otherwise reads fresh data,
// caches it, and returns it.
func checkCache(sourcePath, cachePath string, c ports.Cacher, fresh FreshFunc) (domain.Dataset, error) {
	if c.CacheHit(sourcePath, cachePath) {
		ds, err := c.ReadCache(cachePath)
		if err != nil {
			return domain.Dataset{}, err
		}
		return c.PostProcess(ds), nil
	}
	return readThrough(cachePath, c, fresh)
}

// fallbackToCache is checkCache with one designed partial-failure path:
// when the fresh read fails and a cache entry exists, even a stale one,
// the entry is returned instead of the error.
func fallbackToCache(sourcePath, cachePath string, c ports.Cacher, fresh FreshFunc) (domain.Dataset, error) {
	if c.CacheHit(sourcePath, cachePath) {
		ds, err := c.ReadCache(cachePath)
		if err != nil {
			return domain.Dataset{}, err
		}
		return c.PostProcess(ds), nil
	}

	data, err := fresh()
	if err != nil {
		if _, statErr := os.Stat(cachePath); statErr != nil {
			// Not even the cache can save us.
			return domain.Dataset{}, err
		}
		ds, readErr := c.ReadCache(cachePath)
		if readErr != nil {
			return domain.Dataset{}, readErr
		}
		return c.PostProcess(ds), nil
	}

	data = c.PreProcess(data)
	written, err := c.WriteCache(cachePath, data)
	if err != nil {
		return domain.Dataset{}, err
	}
	return c.PostProcess(written), nil
}

// forceCacheUpdate reads fresh data and overwrites the cache regardless
// of its validity.
func forceCacheUpdate(cachePath string, c ports.Cacher, fresh FreshFunc) (domain.Dataset, error) {
	data, err := fresh()
	if err != nil {
		return domain.Dataset{}, err
	}
	data = c.PreProcess(data)
	written, err := c.WriteCache(cachePath, data)
	if err != nil {
		return domain.Dataset{}, err
	}
	return c.PostProcess(written), nil
}

// skipCache reads fresh data without reading or writing the cache file.
func skipCache(c ports.Cacher, fresh FreshFunc) (domain.Dataset, error) {
	data, err := fresh()
	if err != nil {
		return domain.Dataset{}, err
	}
	return c.PostProcess(c.PreProcess(data)), nil
}

// fromCache reads the cache entry and never attempts a source read.
func fromCache(cachePath string, c ports.Cacher) (domain.Dataset, error) {
	if _, err := os.Stat(cachePath); err != nil {
		return domain.Dataset{}, zerr.With(domain.ErrCacheEntryMissing, "cache_file", cachePath)
	}
	ds, err := c.ReadCache(cachePath)
	if err != nil {
		return domain.Dataset{}, err
	}
	return c.PostProcess(ds), nil
}

// readThrough is the shared miss path: fresh read, pre-process, write,
// post-process.
func readThrough(cachePath string, c ports.Cacher, fresh FreshFunc) (domain.Dataset, error) {
	data, err := fresh()
	if err != nil {
		return domain.Dataset{}, err
	}
	data = c.PreProcess(data)
	written, err := c.WriteCache(cachePath, data)
	if err != nil {
		return domain.Dataset{}, err
	}
	return c.PostProcess(written), nil
}
