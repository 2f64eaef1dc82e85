package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/tabby/internal/core/domain"
)

func TestNewDataset_PadsShortColumns(t *testing.T) {
	t.Parallel()

	ds := domain.NewDataset(
		domain.Column{Name: "a", Values: []domain.Value{domain.Int(1), domain.Int(2)}},
		domain.Column{Name: "b", Values: []domain.Value{domain.String("x")}},
	)

	require.Equal(t, 2, ds.NumRows())
	b, ok := ds.Column("b")
	require.True(t, ok)
	assert.True(t, b.Values[1].IsMissing())
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("homogeneous column narrows to its kind", func(t *testing.T) {
		t.Parallel()
		ds := domain.NewDataset(domain.Column{
			Name:   "n",
			Values: []domain.Value{domain.Int(1), domain.Missing, domain.Int(3)},
		}).Normalize()
		assert.Equal(t, domain.TypeInt, ds.Columns[0].Type)
	})

	t.Run("mixed int and float widens to float", func(t *testing.T) {
		t.Parallel()
		ds := domain.NewDataset(domain.Column{
			Name:   "n",
			Values: []domain.Value{domain.Int(1), domain.Float(2.5)},
		}).Normalize()
		col := ds.Columns[0]
		assert.Equal(t, domain.TypeFloat, col.Type)
		assert.Equal(t, domain.KindFloat, col.Values[0].Kind())
		assert.InDelta(t, 1.0, col.Values[0].FloatValue(), 0)
	})

	t.Run("heterogeneous column stays any", func(t *testing.T) {
		t.Parallel()
		ds := domain.NewDataset(domain.Column{
			Name:   "n",
			Values: []domain.Value{domain.Int(1), domain.String("x")},
		}).Normalize()
		assert.Equal(t, domain.TypeAny, ds.Columns[0].Type)
	})

	t.Run("all-missing column keeps declared type", func(t *testing.T) {
		t.Parallel()
		ds := domain.NewDataset(domain.Column{
			Name:   "n",
			Type:   domain.TypeTime,
			Values: []domain.Value{domain.Missing, domain.Missing},
		}).Normalize()
		assert.Equal(t, domain.TypeTime, ds.Columns[0].Type)
	})
}

func TestDropEmpty(t *testing.T) {
	t.Parallel()

	ds := domain.NewDataset(
		domain.Column{Name: "a", Values: []domain.Value{domain.Int(1), domain.Missing, domain.Int(3)}},
		domain.Column{Name: "b", Values: []domain.Value{domain.String("x"), domain.Missing, domain.Missing}},
		domain.Column{Name: "empty", Values: []domain.Value{domain.Missing, domain.Missing, domain.Missing}},
	).DropEmpty()

	assert.Equal(t, 2, ds.NumColumns(), "all-missing column should be dropped")
	assert.Equal(t, 2, ds.NumRows(), "all-missing row should be dropped")
	_, ok := ds.Column("empty")
	assert.False(t, ok)
}

func TestConcat(t *testing.T) {
	t.Parallel()

	t.Run("union of columns in first-seen order", func(t *testing.T) {
		t.Parallel()
		a := domain.NewDataset(
			domain.Column{Name: "x", Values: []domain.Value{domain.Int(1)}},
			domain.Column{Name: "y", Values: []domain.Value{domain.String("a")}},
		)
		b := domain.NewDataset(
			domain.Column{Name: "y", Values: []domain.Value{domain.String("b")}},
			domain.Column{Name: "z", Values: []domain.Value{domain.Bool(true)}},
		)

		out := domain.Concat(a, b)
		require.Equal(t, 3, out.NumColumns())
		assert.Equal(t, "x", out.Columns[0].Name)
		assert.Equal(t, "y", out.Columns[1].Name)
		assert.Equal(t, "z", out.Columns[2].Name)
		require.Equal(t, 2, out.NumRows())

		x, _ := out.Column("x")
		assert.True(t, x.Values[1].IsMissing(), "rows without a column are padded")
		z, _ := out.Column("z")
		assert.True(t, z.Values[0].IsMissing())
	})

	t.Run("result is renormalized", func(t *testing.T) {
		t.Parallel()
		a := domain.NewDataset(domain.Column{Name: "n", Values: []domain.Value{domain.Int(1)}})
		b := domain.NewDataset(domain.Column{Name: "n", Values: []domain.Value{domain.Float(0.5)}})

		out := domain.Concat(a, b)
		assert.Equal(t, domain.TypeFloat, out.Columns[0].Type)
	})

	t.Run("no inputs yields empty dataset", func(t *testing.T) {
		t.Parallel()
		out := domain.Concat()
		assert.True(t, out.Empty())
	})
}

func TestDataset_Equal(t *testing.T) {
	t.Parallel()

	a := domain.NewDataset(domain.Column{Name: "n", Values: []domain.Value{domain.Int(1)}})
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Columns[0].Values[0] = domain.Int(2)
	assert.False(t, a.Equal(b))
}

func TestParseCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want domain.Value
	}{
		{"", domain.Missing},
		{"   ", domain.Missing},
		{"TRUE", domain.Bool(true)},
		{"false", domain.Bool(false)},
		{"42", domain.Int(42)},
		{"-7", domain.Int(-7)},
		{"3.14", domain.Float(3.14)},
		{"2024-06-01", domain.Time(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))},
		{"hello", domain.String("hello")},
		{"12abc", domain.String("12abc")},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			got := domain.ParseCell(tc.raw)
			assert.True(t, tc.want.Equal(got), "ParseCell(%q) = %v, want %v", tc.raw, got, tc.want)
		})
	}
}

func TestValue_Render(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "true", domain.Bool(true).Render())
	assert.Equal(t, "42", domain.Int(42).Render())
	assert.Equal(t, "3.5", domain.Float(3.5).Render())
	assert.Equal(t, "hi", domain.String("hi").Render())

	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-06-01T12:00:00Z", domain.Time(ts).Render())
}

func TestSheetSelector(t *testing.T) {
	t.Parallel()

	t.Run("parse name", func(t *testing.T) {
		t.Parallel()
		sel := domain.ParseSheetSelector("Sheet1")
		name, byName := sel.Name()
		assert.True(t, byName)
		assert.Equal(t, "Sheet1", name)
		assert.False(t, sel.All())
	})

	t.Run("parse index", func(t *testing.T) {
		t.Parallel()
		sel := domain.ParseSheetSelector("2")
		_, byName := sel.Name()
		assert.False(t, byName)
		assert.Equal(t, 2, sel.Index())
	})

	t.Run("parse all", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{"", "all", "*"} {
			assert.True(t, domain.ParseSheetSelector(raw).All(), "selector %q", raw)
		}
	})

	t.Run("string form parses back to an equivalent selector", func(t *testing.T) {
		t.Parallel()
		for _, sel := range []domain.SheetSelector{
			domain.SheetByName("Data"),
			domain.SheetByIndex(3),
			domain.AllSheets(),
		} {
			assert.Equal(t, sel, domain.ParseSheetSelector(sel.String()))
		}
	})
}
