// Package collector merges a directory of workbooks into one cached
// aggregate dataset.
package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tabby/internal/adapters/cache"
	"go.trai.ch/tabby/internal/adapters/excel"
	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// defaultGlob matches the workbook files collected when no pattern is
// configured.
const defaultGlob = "*.xlsx"

// Options configure one collection run.
type Options struct {
	// Glob selects the source files inside the reader's root directory.
	Glob string
	// Selector picks the sheet(s) read from each source file.
	Selector domain.SheetSelector
	// Output is the logical name of the aggregate dataset. When empty a
	// name is derived from the collection shape, so different globs or
	// selectors never collide on one aggregate entry.
	Output string
	// NoAggregate warms the per-file caches but skips reading or writing
	// the aggregate entry.
	NoAggregate bool
}

// Collector owns one collection job: scan, per-file cached reads in
// parallel, filter, concatenate, cache the aggregate.
type Collector struct {
	reader *excel.Reader
	cacher ports.Cacher
	logger ports.Logger
	tel    ports.Telemetry
	opts   Options
}

// New creates a Collector. The aggregate is cached through the given
// cacher under the reader's cache directory.
func New(reader *excel.Reader, cacher ports.Cacher, logger ports.Logger, tel ports.Telemetry, opts Options) *Collector {
	if opts.Glob == "" {
		opts.Glob = defaultGlob
	}
	if opts.Output == "" {
		fingerprint := xxhash.Sum64String(opts.Glob + "\x00" + opts.Selector.String())
		opts.Output = fmt.Sprintf("collected-%016x", fingerprint)
	}
	return &Collector{
		reader: reader,
		cacher: cacher,
		logger: logger,
		tel:    tel,
		opts:   opts,
	}
}

// OutputPath returns the aggregate's cache entry path.
func (c *Collector) OutputPath() string {
	return c.reader.OutputPath(c.opts.Output, c.cacher)
}

// job is one immutable per-file work descriptor dispatched to the pool.
type job struct {
	index int
	path  string
}

// result is the typed outcome of one job: the sheets read, in workbook
// order.
type result struct {
	sheets []excel.Sheet
}

// Collect returns the aggregate dataset. The aggregate cache entry is
// reused unless some currently matching source file is newer than it;
// a newly added file therefore invalidates the aggregate even when no
// existing file changed.
func (c *Collector) Collect(ctx context.Context, strategy cache.Strategy) (domain.Dataset, error) {
	out := c.OutputPath()

	if !c.opts.NoAggregate {
		stale, err := c.shouldCollect(out)
		if err != nil {
			return domain.Dataset{}, err
		}
		if !stale {
			_, vertex := c.tel.Record(ctx, c.opts.Output)
			vertex.Cached()
			vertex.Complete(nil)

			ds, err := c.cacher.ReadCache(out)
			if err != nil {
				return domain.Dataset{}, err
			}
			return c.cacher.PostProcess(ds), nil
		}
	}

	files, err := c.matchFiles(out)
	if err != nil {
		return domain.Dataset{}, err
	}

	c.logger.Info(fmt.Sprintf("collecting %d source file(s)", len(files)))

	jobs := make([]job, len(files))
	for i, path := range files {
		jobs[i] = job{index: i, path: path}
	}

	// Fan out one bounded worker per source file; results land in their
	// job's slot and are only combined after the barrier.
	results := make([]result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, j := range jobs {
		g.Go(func() error {
			_, vertex := c.tel.Record(gctx, filepath.Base(j.path))
			sheets, err := c.readOne(j.path, strategy)
			vertex.Complete(err)
			if err != nil {
				return zerr.With(err, "source", j.path)
			}
			results[j.index] = result{sheets: sheets}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.Dataset{}, err
	}

	var frames []domain.Dataset
	for _, res := range results {
		for _, sheet := range res.sheets {
			if sheet.Data.Empty() || !sheet.Data.HasValues() {
				continue
			}
			frames = append(frames, sheet.Data)
		}
	}

	if len(frames) == 0 {
		// Aggregation over zero surviving sources is valid, not an error.
		c.logger.Info("no data collected")
		return domain.Dataset{}, nil
	}

	aggregate := domain.Concat(frames...).DropEmpty()
	if c.opts.NoAggregate {
		return c.cacher.PostProcess(aggregate), nil
	}

	aggregate = c.cacher.PreProcess(aggregate)
	written, err := c.cacher.WriteCache(out, aggregate)
	if err != nil {
		return domain.Dataset{}, err
	}
	return c.cacher.PostProcess(written), nil
}

// readOne reads the sheets selected by the collector's options from one
// source file through the per-file cache.
func (c *Collector) readOne(path string, strategy cache.Strategy) ([]excel.Sheet, error) {
	if c.opts.Selector.All() {
		return c.reader.ReadSheets(path, c.cacher, strategy)
	}
	ds, err := c.reader.Read(path, c.opts.Selector, c.cacher, strategy)
	if err != nil {
		return nil, err
	}
	return []excel.Sheet{{Name: c.opts.Selector.String(), Data: ds}}, nil
}

// shouldCollect reports whether the aggregate entry is absent or older
// than any currently matching source file.
func (c *Collector) shouldCollect(out string) (bool, error) {
	info, err := os.Stat(out)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to stat aggregate cache entry"), "cache_file", out)
	}
	outMtime := info.ModTime()

	files, err := c.matchFiles(out)
	if err != nil {
		return false, err
	}
	for _, path := range files {
		st, err := os.Stat(path)
		if err != nil {
			continue
		}
		if st.ModTime().After(outMtime) {
			return true, nil
		}
	}
	return false, nil
}

// matchFiles lists the regular files matching the glob in the root
// directory, excluding the aggregate's own output path, sorted by name
// so aggregation order is reproducible across platforms.
func (c *Collector) matchFiles(out string) ([]string, error) {
	pattern := filepath.Join(c.reader.RootDir(), c.opts.Glob)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid glob pattern"), "pattern", pattern)
	}

	files := make([]string, 0, len(matches))
	for _, path := range matches {
		if filepath.Clean(path) == filepath.Clean(out) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}
