// Package cache implements dataset cachers, cache strategies, and the
// cache directory manager.
package cache

import (
	"os"
	"path/filepath"

	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// pipeline carries the ordered pre/post transform lists and the
// staleness predicate shared by all cachers.
type pipeline struct {
	pre  []ports.Processor
	post []ports.Processor
}

// PreProcess folds the registered pre-process transforms in order.
func (p *pipeline) PreProcess(ds domain.Dataset) domain.Dataset {
	for _, proc := range p.pre {
		ds = proc(ds)
	}
	return ds
}

// PostProcess folds the registered post-process transforms in order.
func (p *pipeline) PostProcess(ds domain.Dataset) domain.Dataset {
	for _, proc := range p.post {
		ds = proc(ds)
	}
	return ds
}

// RegisterPreProcess appends a transform to the pre-process pipeline.
func (p *pipeline) RegisterPreProcess(proc ports.Processor) {
	p.pre = append(p.pre, proc)
}

// RegisterPostProcess appends a transform to the post-process pipeline.
func (p *pipeline) RegisterPostProcess(proc ports.Processor) {
	p.post = append(p.post, proc)
}

// CacheHit reports whether the cache entry is valid for the source: the
// entry exists and its mtime is strictly greater than the source's.
// Every other state, including a missing source, is a miss.
func (p *pipeline) CacheHit(sourcePath, cachePath string) bool {
	cacheInfo, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	sourceInfo, err := os.Stat(sourcePath)
	if err != nil {
		return false
	}
	return sourceInfo.ModTime().Before(cacheInfo.ModTime())
}

// atomicWrite writes data to path via a temp file and rename, so a
// failed write leaves any previous entry intact.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to write cache data")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to close temp cache file")
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to set cache file permissions")
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.Wrap(err, "failed to move cache file into place")
	}
	return nil
}
