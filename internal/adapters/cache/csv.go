package cache

import (
	"bytes"
	"encoding/csv"
	"os"

	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/zerr"
)

// CSVCacher caches datasets in a delimited text format. Any dataset can
// be written; reads return generically re-inferred columns, so the round
// trip is type-lossy (a text cell that looks numeric comes back numeric,
// and an empty text cell comes back missing). Callers needing strict
// types must reconstruct them.
type CSVCacher struct {
	pipeline
}

// NewCSVCacher creates a CSV cacher with empty pipelines.
func NewCSVCacher() *CSVCacher {
	return &CSVCacher{}
}

// Suffix returns ".csv".
func (c *CSVCacher) Suffix() string { return ".csv" }

// WriteCache serializes the dataset to path as a header row plus one
// record per row. Missing cells render as empty fields.
func (c *CSVCacher) WriteCache(path string, ds domain.Dataset) (domain.Dataset, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(ds.Columns))
	for i, col := range ds.Columns {
		header[i] = col.Name
	}
	if err := w.Write(header); err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to write csv header"), "cache_file", path)
	}

	numRows := ds.NumRows()
	record := make([]string, len(ds.Columns))
	for r := 0; r < numRows; r++ {
		for i, col := range ds.Columns {
			record[i] = col.Values[r].Render()
		}
		if err := w.Write(record); err != nil {
			return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to write csv record"), "cache_file", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to flush csv data"), "cache_file", path)
	}

	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return domain.Dataset{}, zerr.With(err, "cache_file", path)
	}
	return ds, nil
}

// ReadCache deserializes the dataset stored at path. Cell values are
// re-inferred generically and columns renormalized.
func (c *CSVCacher) ReadCache(path string) (domain.Dataset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Cache path is derived from trusted configuration
	if err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to read cache file"), "cache_file", path)
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to parse csv data"), "cache_file", path)
	}
	if len(records) == 0 {
		return domain.Dataset{}, nil
	}

	header := records[0]
	cols := make([]domain.Column, len(header))
	for i, name := range header {
		cols[i] = domain.Column{Name: name, Type: domain.TypeString, Values: make([]domain.Value, 0, len(records)-1)}
	}
	for _, record := range records[1:] {
		for i := range cols {
			if i < len(record) {
				cols[i].Values = append(cols[i].Values, domain.ParseCell(record[i]))
			} else {
				cols[i].Values = append(cols[i].Values, domain.Missing)
			}
		}
	}
	return domain.Dataset{Columns: cols}.Normalize(), nil
}
