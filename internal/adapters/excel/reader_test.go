package excel_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"go.trai.ch/tabby/internal/adapters/cache"
	"go.trai.ch/tabby/internal/adapters/excel"
	"go.trai.ch/tabby/internal/core/domain"
)

// writeWorkbook saves a workbook with the given sheets, each a slice of
// rows, to dir/name and returns its path.
func writeWorkbook(t *testing.T, dir, name string, sheets map[string][][]any, order []string) string {
	t.Helper()

	f := excelize.NewFile()
	for i, sheetName := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sheetName))
		} else {
			_, err := f.NewSheet(sheetName)
			require.NoError(t, err)
		}
		for r, row := range sheets[sheetName] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func newReader(t *testing.T, root string) *excel.Reader {
	t.Helper()
	mgr, err := cache.NewManager(root, "", nil)
	require.NoError(t, err)
	return excel.NewReader(mgr, nil)
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeWorkbook(t, root, "report.xlsx", map[string][][]any{
		"Data": {
			{"name", "count"},
			{"alpha", 1},
			{"beta", 2},
		},
	}, []string{"Data"})

	r := newReader(t, root)
	c := cache.NewParquetCacher()

	ds, err := r.Read("report", domain.SheetByName("Data"), c, cache.CheckCache)
	require.NoError(t, err)

	require.Equal(t, 2, ds.NumColumns())
	assert.Equal(t, "name", ds.Columns[0].Name)
	count, ok := ds.Column("count")
	require.True(t, ok)
	assert.Equal(t, domain.TypeInt, count.Type)
	assert.Equal(t, domain.Int(1), count.Values[0])

	t.Run("read populates the cache", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(root, ".cache"))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "report-Data.parquet", entries[0].Name())
	})

	t.Run("cached read returns the same data", func(t *testing.T) {
		again, err := r.Read("report", domain.SheetByName("Data"), c, cache.CheckCache)
		require.NoError(t, err)
		assert.True(t, ds.Equal(again))
	})

	t.Run("index selector addresses the same sheet", func(t *testing.T) {
		byIndex, err := r.Read("report", domain.SheetByIndex(0), c, cache.CheckCache)
		require.NoError(t, err)
		assert.True(t, ds.Equal(byIndex))
	})
}

func TestReader_Read_Errors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeWorkbook(t, root, "report.xlsx", map[string][][]any{
		"Data": {{"h"}, {"v"}},
	}, []string{"Data"})
	r := newReader(t, root)
	c := cache.NewParquetCacher()

	t.Run("unknown sheet name", func(t *testing.T) {
		t.Parallel()
		_, err := r.Read("report", domain.SheetByName("Nope"), c, cache.CheckCache)
		assert.ErrorContains(t, err, domain.ErrSheetNotFound.Error())
	})

	t.Run("sheet index out of range", func(t *testing.T) {
		t.Parallel()
		_, err := r.Read("report", domain.SheetByIndex(9), c, cache.CheckCache)
		assert.ErrorContains(t, err, domain.ErrSheetNotFound.Error())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		bad := filepath.Join(root, "data.ods")
		require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
		_, err := r.Read(bad, domain.SheetByIndex(0), c, cache.CheckCache)
		assert.ErrorContains(t, err, domain.ErrUnsupportedWorkbook.Error())
	})

	t.Run("all-sheets selector is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := r.Read("report", domain.AllSheets(), c, cache.CheckCache)
		assert.Error(t, err)
	})
}

func TestReader_ReadSheets(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeWorkbook(t, root, "multi.xlsx", map[string][][]any{
		"First":  {{"a"}, {1}},
		"Second": {{"b"}, {2}},
	}, []string{"First", "Second"})

	r := newReader(t, root)
	c := cache.NewParquetCacher()

	sheets, err := r.ReadSheets("multi", c, cache.CheckCache)
	require.NoError(t, err)
	require.Len(t, sheets, 2)
	assert.Equal(t, "First", sheets[0].Name)
	assert.Equal(t, "Second", sheets[1].Name)

	t.Run("each sheet gets its own cache entry", func(t *testing.T) {
		entries, err := os.ReadDir(filepath.Join(root, ".cache"))
		require.NoError(t, err)
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		assert.ElementsMatch(t, []string{"multi-First.parquet", "multi-Second.parquet"}, names)
	})

	t.Run("ReadAll keys the same data by sheet name", func(t *testing.T) {
		all, err := r.ReadAll("multi", c, cache.CheckCache)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.True(t, sheets[0].Data.Equal(all["First"]))
		assert.True(t, sheets[1].Data.Equal(all["Second"]))
	})
}

func TestReadSheet_HeaderHandling(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeWorkbook(t, root, "headers.xlsx", map[string][][]any{
		"Data": {
			{"name", "", "count"},
			{"x", "y", 1, "extra"},
		},
	}, []string{"Data"})

	r := newReader(t, root)
	ds, err := r.Read("headers", domain.SheetByIndex(0), cache.NewCSVCacher(), cache.SkipCache)
	require.NoError(t, err)

	require.Equal(t, 4, ds.NumColumns())
	assert.Equal(t, "name", ds.Columns[0].Name)
	assert.Equal(t, "column_1", ds.Columns[1].Name, "blank header cells get positional names")
	assert.Equal(t, "count", ds.Columns[2].Name)
	assert.Equal(t, "column_3", ds.Columns[3].Name, "rows wider than the header extend it")
}

func TestReader_SkipCacheLeavesNoEntry(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeWorkbook(t, root, "report.xlsx", map[string][][]any{
		"Data": {{"h"}, {"v"}},
	}, []string{"Data"})

	r := newReader(t, root)
	_, err := r.Read("report", domain.SheetByName("Data"), cache.NewParquetCacher(), cache.SkipCache)
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(root, ".cache"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
