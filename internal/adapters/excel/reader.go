// Package excel reads workbook sheets through the dataset cache layer.
package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.trai.ch/tabby/internal/adapters/cache"
	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// supportedExtensions are the workbook types excelize can enumerate.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// Sheet pairs a sheet name with the dataset read from it.
type Sheet struct {
	Name string
	Data domain.Dataset
}

// Reader reads and caches workbook sheet data, one cache entry per
// (source file, sheet selector) pair. Concurrent reads of the same cache
// entry are deduplicated.
type Reader struct {
	*cache.Manager
	logger ports.Logger
	group  singleflight.Group
}

// NewReader creates a Reader on top of the given cache manager.
func NewReader(mgr *cache.Manager, logger ports.Logger) *Reader {
	return &Reader{Manager: mgr, logger: logger}
}

// resolveSource maps a source reference to a path. Relative references
// are anchored to the root directory; a bare name gets the default
// workbook extension.
func (r *Reader) resolveSource(sourceFile string) string {
	if filepath.Ext(sourceFile) == "" {
		sourceFile += ".xlsx"
	}
	if filepath.IsAbs(sourceFile) {
		return sourceFile
	}
	return filepath.Join(r.RootDir(), sourceFile)
}

// cachePath derives the per-sheet cache entry path from the workbook
// stem and the selector token.
func (r *Reader) cachePath(sourcePath string, sel domain.SheetSelector, c ports.Cacher) string {
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return r.OutputPath(fmt.Sprintf("%s-%s", stem, sel), c)
}

// Read reads a single sheet of the source workbook through the given
// cache strategy. The selector must not be the all-sheets selector; use
// ReadAll for that.
func (r *Reader) Read(sourceFile string, sel domain.SheetSelector, c ports.Cacher, strategy cache.Strategy) (domain.Dataset, error) {
	if sel.All() {
		return domain.Dataset{}, zerr.New("all-sheets selector requires ReadAll")
	}
	sourcePath := r.resolveSource(sourceFile)
	cachePath := r.cachePath(sourcePath, sel, c)

	fresh := func() (domain.Dataset, error) {
		f, err := openWorkbook(sourcePath)
		if err != nil {
			return domain.Dataset{}, err
		}
		defer closeWorkbook(f, r.logger)

		name, err := resolveSheetName(f, sel)
		if err != nil {
			return domain.Dataset{}, err
		}
		return readSheet(f, name)
	}

	return r.fetch(sourcePath, cachePath, c, strategy, fresh)
}

// ReadAll reads every sheet of the source workbook, each sheet cached
// independently, and returns the datasets keyed by sheet name.
func (r *Reader) ReadAll(sourceFile string, c ports.Cacher, strategy cache.Strategy) (map[string]domain.Dataset, error) {
	sheets, err := r.ReadSheets(sourceFile, c, strategy)
	if err != nil {
		return nil, err
	}
	result := make(map[string]domain.Dataset, len(sheets))
	for _, s := range sheets {
		result[s.Name] = s.Data
	}
	return result, nil
}

// ReadSheets is ReadAll preserving workbook sheet order. The workbook is
// opened once and the handle shared across the per-sheet reads;
// enumeration failure is a hard error.
func (r *Reader) ReadSheets(sourceFile string, c ports.Cacher, strategy cache.Strategy) ([]Sheet, error) {
	sourcePath := r.resolveSource(sourceFile)

	f, err := openWorkbook(sourcePath)
	if err != nil {
		return nil, err
	}
	defer closeWorkbook(f, r.logger)

	var sheets []Sheet
	for _, name := range f.GetSheetList() {
		sel := domain.SheetByName(name)
		cachePath := r.cachePath(sourcePath, sel, c)

		fresh := func() (domain.Dataset, error) {
			return readSheet(f, name)
		}

		ds, err := r.fetch(sourcePath, cachePath, c, strategy, fresh)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, Sheet{Name: name, Data: ds})
	}
	return sheets, nil
}

// fetch runs the strategy under singleflight keyed by cache entry, so
// two goroutines asking for the same entry share one read. Shared
// results are cloned; the cache never hands out aliased storage.
func (r *Reader) fetch(sourcePath, cachePath string, c ports.Cacher, strategy cache.Strategy, fresh cache.FreshFunc) (domain.Dataset, error) {
	v, err, shared := r.group.Do(cachePath, func() (any, error) {
		return strategy.Fetch(sourcePath, cachePath, c, fresh)
	})
	if err != nil {
		return domain.Dataset{}, err
	}
	ds, ok := v.(domain.Dataset)
	if !ok {
		return domain.Dataset{}, zerr.New("unexpected singleflight result type")
	}
	if shared {
		ds = ds.Clone()
	}
	return ds, nil
}

// openWorkbook opens a workbook after checking it is a supported type.
func openWorkbook(sourcePath string) (*excelize.File, error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if !supportedExtensions[ext] {
		return nil, zerr.With(domain.ErrUnsupportedWorkbook, "path", sourcePath)
	}
	f, err := excelize.OpenFile(sourcePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "path", sourcePath)
	}
	return f, nil
}

func closeWorkbook(f *excelize.File, logger ports.Logger) {
	if err := f.Close(); err != nil && logger != nil {
		logger.Warn("failed to close workbook: " + err.Error())
	}
}

// resolveSheetName maps a selector to a sheet name present in the
// workbook.
func resolveSheetName(f *excelize.File, sel domain.SheetSelector) (string, error) {
	names := f.GetSheetList()
	if name, ok := sel.Name(); ok {
		for _, n := range names {
			if n == name {
				return name, nil
			}
		}
		return "", zerr.With(domain.ErrSheetNotFound, "sheet", name)
	}
	i := sel.Index()
	if i < 0 || i >= len(names) {
		return "", zerr.With(domain.ErrSheetNotFound, "sheet_index", i)
	}
	return names[i], nil
}

// readSheet parses one sheet into a dataset. The first row supplies
// column names; cell values are type-inferred per column.
func readSheet(f *excelize.File, name string) (domain.Dataset, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "sheet", name)
	}
	if len(rows) == 0 {
		return domain.Dataset{}, nil
	}

	header := rows[0]
	width := len(header)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	cols := make([]domain.Column, width)
	for i := range cols {
		colName := ""
		if i < len(header) {
			colName = strings.TrimSpace(header[i])
		}
		if colName == "" {
			colName = fmt.Sprintf("column_%d", i)
		}
		cols[i] = domain.Column{Name: colName, Type: domain.TypeString, Values: make([]domain.Value, 0, len(rows)-1)}
	}

	for _, row := range rows[1:] {
		for i := 0; i < width; i++ {
			if i < len(row) {
				cols[i].Values = append(cols[i].Values, domain.ParseCell(row[i]))
			} else {
				cols[i].Values = append(cols[i].Values, domain.Missing)
			}
		}
	}

	return domain.Dataset{Columns: cols}.Normalize(), nil
}
