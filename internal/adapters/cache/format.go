package cache

import (
	"go.trai.ch/tabby/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Cacher = (*ParquetCacher)(nil)
	_ ports.Cacher = (*CSVCacher)(nil)
)

// ForFormat returns a fresh cacher for the given format token. Empty
// means the default columnar format.
func ForFormat(format string) (ports.Cacher, error) {
	switch format {
	case "", "parquet":
		return NewParquetCacher(), nil
	case "csv":
		return NewCSVCacher(), nil
	default:
		return nil, zerr.With(zerr.New("unknown cache format"), "format", format)
	}
}
