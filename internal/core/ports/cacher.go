// Package ports defines the interfaces between the core and its adapters.
package ports

import "go.trai.ch/tabby/internal/core/domain"

// Processor is a pure transform over a dataset, run as part of a
// cacher's pre- or post-process pipeline.
type Processor func(domain.Dataset) domain.Dataset

// Cacher serializes datasets to one on-disk format and carries the
// ordered pre/post transform pipelines and the staleness predicate.
//
// PostProcess runs on every dataset handed back to a caller, cached or
// fresh, so a cache written by one cacher configuration stays readable
// by another with different post-processing.
//
//go:generate go run go.uber.org/mock/mockgen -source=cacher.go -destination=mocks/mock_cacher.go -package=mocks
type Cacher interface {
	// Suffix is the cache file extension, part of the cache entry identity.
	Suffix() string

	// PreProcess folds the registered pre-process transforms in
	// registration order. Called once, right before a fresh dataset is
	// written to cache.
	PreProcess(ds domain.Dataset) domain.Dataset

	// PostProcess folds the registered post-process transforms in
	// registration order.
	PostProcess(ds domain.Dataset) domain.Dataset

	// RegisterPreProcess appends a transform to the pre-process pipeline.
	// Registration is additive; transforms cannot be removed.
	RegisterPreProcess(p Processor)

	// RegisterPostProcess appends a transform to the post-process pipeline.
	RegisterPostProcess(p Processor)

	// ReadCache deserializes the dataset stored at path.
	ReadCache(path string) (domain.Dataset, error)

	// WriteCache serializes the dataset to path and returns the dataset
	// as written, so callers can reuse it without re-reading. The write
	// is materialized fully before touching storage; on failure the old
	// entry is left intact.
	WriteCache(path string, ds domain.Dataset) (domain.Dataset, error)

	// CacheHit reports whether the cache entry at cachePath is valid for
	// sourcePath: it exists and is strictly newer than the source.
	CacheHit(sourcePath, cachePath string) bool
}
