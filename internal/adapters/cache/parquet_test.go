package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/tabby/internal/adapters/cache"
	"go.trai.ch/tabby/internal/core/domain"
)

func typedDataset() domain.Dataset {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	return domain.NewDataset(
		domain.Column{Name: "flag", Type: domain.TypeBool, Values: []domain.Value{domain.Bool(true), domain.Missing}},
		domain.Column{Name: "count", Type: domain.TypeInt, Values: []domain.Value{domain.Int(7), domain.Int(-2)}},
		domain.Column{Name: "ratio", Type: domain.TypeFloat, Values: []domain.Value{domain.Float(0.25), domain.Missing}},
		domain.Column{Name: "when", Type: domain.TypeTime, Values: []domain.Value{domain.Time(ts), domain.Missing}},
		domain.Column{Name: "label", Type: domain.TypeString, Values: []domain.Value{domain.String("a"), domain.String("b")}},
	)
}

func TestParquetCacher_RoundTrip(t *testing.T) {
	t.Parallel()

	c := cache.NewParquetCacher()
	path := filepath.Join(t.TempDir(), "data.parquet")
	ds := typedDataset()

	written, err := c.WriteCache(path, ds)
	require.NoError(t, err)
	require.True(t, ds.Equal(written))

	got, err := c.ReadCache(path)
	require.NoError(t, err)

	require.Equal(t, ds.NumColumns(), got.NumColumns())
	for i, col := range ds.Columns {
		assert.Equal(t, col.Name, got.Columns[i].Name, "column order must survive the round trip")
		assert.Equal(t, col.Type, got.Columns[i].Type)
	}
	assert.True(t, ds.Equal(got))
}

func TestParquetCacher_HeterogeneousColumn(t *testing.T) {
	t.Parallel()

	c := cache.NewParquetCacher()
	path := filepath.Join(t.TempDir(), "mixed.parquet")

	ds := domain.NewDataset(domain.Column{
		Name:   "mixed",
		Values: []domain.Value{domain.Int(1), domain.String("x"), domain.Missing},
	})

	t.Run("direct write is rejected", func(t *testing.T) {
		_, err := c.WriteCache(path, ds)
		assert.ErrorContains(t, err, domain.ErrColumnNotSerializable.Error())
	})

	t.Run("pre-process flattens the column to text", func(t *testing.T) {
		flattened := c.PreProcess(ds)
		col := flattened.Columns[0]
		require.Equal(t, domain.TypeString, col.Type)
		assert.Equal(t, domain.String("1"), col.Values[0])
		assert.Equal(t, domain.String("x"), col.Values[1])
		assert.True(t, col.Values[2].IsMissing(), "missing markers survive flattening")

		_, err := c.WriteCache(path, flattened)
		require.NoError(t, err)

		got, err := c.ReadCache(path)
		require.NoError(t, err)
		assert.True(t, flattened.Equal(got))
	})
}

func TestParquetCacher_TextColumnsStayText(t *testing.T) {
	t.Parallel()

	c := cache.NewParquetCacher()
	path := filepath.Join(t.TempDir(), "text.parquet")

	// Flattened heterogeneous columns produce exactly this shape:
	// numeric- and boolean-looking text that must not be re-inferred.
	ds := domain.NewDataset(domain.Column{
		Name:   "label",
		Type:   domain.TypeString,
		Values: []domain.Value{domain.String("123"), domain.String("true"), domain.String("x")},
	})

	_, err := c.WriteCache(path, ds)
	require.NoError(t, err)

	got, err := c.ReadCache(path)
	require.NoError(t, err)

	require.Equal(t, 1, got.NumColumns())
	col := got.Columns[0]
	assert.Equal(t, domain.TypeString, col.Type)
	assert.Equal(t, domain.String("123"), col.Values[0])
	assert.Equal(t, domain.String("true"), col.Values[1])
	assert.Equal(t, domain.String("x"), col.Values[2])
	assert.True(t, ds.Equal(got))
}

func TestParquetCacher_EmptyDataset(t *testing.T) {
	t.Parallel()

	c := cache.NewParquetCacher()
	path := filepath.Join(t.TempDir(), "empty.parquet")

	_, err := c.WriteCache(path, domain.Dataset{})
	require.NoError(t, err)

	got, err := c.ReadCache(path)
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestParquetCacher_Pipelines(t *testing.T) {
	t.Parallel()

	c := cache.NewParquetCacher()
	c.RegisterPreProcess(func(ds domain.Dataset) domain.Dataset {
		return domain.NewDataset(append(ds.Columns, domain.Column{
			Name:   "added",
			Values: []domain.Value{domain.Int(1)},
		})...)
	})
	c.RegisterPostProcess(func(ds domain.Dataset) domain.Dataset {
		return ds.DropEmpty()
	})

	ds := domain.NewDataset(domain.Column{Name: "n", Values: []domain.Value{domain.Int(5)}})

	pre := c.PreProcess(ds)
	_, ok := pre.Column("added")
	assert.True(t, ok)

	post := c.PostProcess(domain.NewDataset(domain.Column{
		Name:   "empty",
		Values: []domain.Value{domain.Missing},
	}))
	assert.True(t, post.Empty())
}

func TestCacheHit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	source := filepath.Join(dir, "source.xlsx")
	entry := filepath.Join(dir, "entry.parquet")
	c := cache.NewParquetCacher()

	t.Run("missing entry is a miss", func(t *testing.T) {
		touch(t, source)
		assert.False(t, c.CacheHit(source, entry))
	})

	t.Run("entry strictly newer than source is a hit", func(t *testing.T) {
		touch(t, entry)
		old := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(source, old, old))
		assert.True(t, c.CacheHit(source, entry))
	})

	t.Run("source newer than entry is a miss", func(t *testing.T) {
		newer := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(source, newer, newer))
		assert.False(t, c.CacheHit(source, entry))
	})

	t.Run("equal mtimes is a miss", func(t *testing.T) {
		at := time.Now().Truncate(time.Second)
		require.NoError(t, os.Chtimes(source, at, at))
		require.NoError(t, os.Chtimes(entry, at, at))
		assert.False(t, c.CacheHit(source, entry))
	})

	t.Run("missing source is a miss", func(t *testing.T) {
		require.NoError(t, os.Remove(source))
		assert.False(t, c.CacheHit(source, entry))
	})
}
