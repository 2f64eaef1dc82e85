package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"go.trai.ch/tabby/internal/core/domain"
	"go.trai.ch/zerr"
)

// schemaMetadataKey is the parquet key/value entry carrying the column
// order and semantic types, which the parquet group representation loses
// (group fields are sorted by name).
const schemaMetadataKey = "tabby:schema"

// columnSpec is the serialized form of one column's identity.
type columnSpec struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ParquetCacher caches datasets in the parquet columnar format. Every
// column must have a format-representable type; the built-in pre-process
// coercion flattens heterogeneous columns to text beforehand.
type ParquetCacher struct {
	pipeline
}

// NewParquetCacher creates a parquet cacher with empty pipelines.
func NewParquetCacher() *ParquetCacher {
	return &ParquetCacher{}
}

// Suffix returns ".parquet".
func (c *ParquetCacher) Suffix() string { return ".parquet" }

// PreProcess folds the registered transforms, then coerces heterogeneous
// columns to text so the write cannot be rejected. Text cells that spell
// a missing-value literal after coercion are folded back into the
// missing marker.
func (c *ParquetCacher) PreProcess(ds domain.Dataset) domain.Dataset {
	ds = c.pipeline.PreProcess(ds)
	return coerceForParquet(ds)
}

func coerceForParquet(ds domain.Dataset) domain.Dataset {
	ds = ds.Normalize()
	cols := make([]domain.Column, len(ds.Columns))
	for i, col := range ds.Columns {
		if col.Type != domain.TypeAny {
			cols[i] = col
			continue
		}
		vals := make([]domain.Value, len(col.Values))
		for j, v := range col.Values {
			if v.IsMissing() {
				vals[j] = domain.Missing
				continue
			}
			s := v.Render()
			if domain.IsMissingLiteral(s) {
				vals[j] = domain.Missing
				continue
			}
			vals[j] = domain.String(s)
		}
		cols[i] = domain.Column{Name: col.Name, Type: domain.TypeString, Values: vals}
	}
	return domain.Dataset{Columns: cols}
}

// WriteCache serializes the dataset to path. Columns that are still
// heterogeneous are rejected outright; run PreProcess first.
func (c *ParquetCacher) WriteCache(path string, ds domain.Dataset) (domain.Dataset, error) {
	specs := make([]columnSpec, len(ds.Columns))
	group := parquet.Group{}
	for i, col := range ds.Columns {
		node, err := parquetNode(col.Type)
		if err != nil {
			return domain.Dataset{}, zerr.With(err, "column", col.Name)
		}
		group[col.Name] = parquet.Optional(node)
		specs[i] = columnSpec{Name: col.Name, Type: col.Type.String()}
	}

	meta, err := json.Marshal(specs)
	if err != nil {
		return domain.Dataset{}, zerr.Wrap(err, "failed to encode column metadata")
	}

	var buf bytes.Buffer
	if len(ds.Columns) > 0 {
		schema := parquet.NewSchema("dataset", group)
		writer := parquet.NewGenericWriter[map[string]any](
			&buf,
			schema,
			parquet.KeyValueMetadata(schemaMetadataKey, string(meta)),
		)
		rows := parquetRows(ds)
		if len(rows) > 0 {
			if _, err := writer.Write(rows); err != nil {
				return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to write parquet rows"), "cache_file", path)
			}
		}
		if err := writer.Close(); err != nil {
			return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to finalize parquet file"), "cache_file", path)
		}
	} else {
		// Parquet cannot represent a zero-column schema; a placeholder
		// column keeps the entry readable and the metadata authoritative.
		schema := parquet.NewSchema("dataset", parquet.Group{
			"_empty": parquet.Optional(parquet.Leaf(parquet.BooleanType)),
		})
		writer := parquet.NewGenericWriter[map[string]any](
			&buf,
			schema,
			parquet.KeyValueMetadata(schemaMetadataKey, string(meta)),
		)
		if err := writer.Close(); err != nil {
			return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to finalize parquet file"), "cache_file", path)
		}
	}

	if err := atomicWrite(path, buf.Bytes()); err != nil {
		return domain.Dataset{}, zerr.With(err, "cache_file", path)
	}
	return ds, nil
}

func parquetNode(t domain.Type) (parquet.Node, error) {
	switch t {
	case domain.TypeBool:
		return parquet.Leaf(parquet.BooleanType), nil
	case domain.TypeInt:
		return parquet.Int(64), nil
	case domain.TypeFloat:
		return parquet.Leaf(parquet.DoubleType), nil
	case domain.TypeTime:
		// Stored as epoch milliseconds; the semantic type lives in the
		// schema metadata.
		return parquet.Int(64), nil
	case domain.TypeString:
		return parquet.String(), nil
	default:
		return nil, domain.ErrColumnNotSerializable
	}
}

func parquetRows(ds domain.Dataset) []map[string]any {
	numRows := ds.NumRows()
	rows := make([]map[string]any, numRows)
	for r := 0; r < numRows; r++ {
		row := make(map[string]any, len(ds.Columns))
		for _, col := range ds.Columns {
			v := col.Values[r]
			if v.IsMissing() {
				continue
			}
			switch col.Type {
			case domain.TypeBool:
				row[col.Name] = v.BoolValue()
			case domain.TypeInt:
				row[col.Name] = v.IntValue()
			case domain.TypeFloat:
				row[col.Name] = v.FloatValue()
			case domain.TypeTime:
				row[col.Name] = v.TimeValue().UnixMilli()
			default:
				row[col.Name] = v.StringValue()
			}
		}
		rows[r] = row
	}
	return rows
}

// ReadCache deserializes the dataset stored at path, restoring column
// order and semantic types from the schema metadata. Rows are decoded
// against the file's own schema so entries written by any producer can
// be read back.
func (c *ParquetCacher) ReadCache(path string) (domain.Dataset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Cache path is derived from trusted configuration
	if err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to read cache file"), "cache_file", path)
	}

	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to open parquet file"), "cache_file", path)
	}

	specs, err := readColumnSpecs(file)
	if err != nil {
		return domain.Dataset{}, zerr.With(err, "cache_file", path)
	}
	if len(specs) == 0 {
		return domain.Dataset{}, nil
	}

	cells, err := readParquetCells(file)
	if err != nil {
		return domain.Dataset{}, zerr.With(zerr.Wrap(err, "failed to read parquet rows"), "cache_file", path)
	}

	cols := make([]domain.Column, len(specs))
	for i, spec := range specs {
		t := domain.TypeFromString(spec.Type)
		raw := cells[spec.Name]
		vals := make([]domain.Value, len(raw))
		for r, v := range raw {
			vals[r] = decodeParquetValue(v, t)
		}
		cols[i] = domain.Column{Name: spec.Name, Type: t, Values: vals}
	}
	return domain.NewDataset(cols...), nil
}

// readParquetCells reads every row group and collects the leaf values of
// each column by name, in row order.
func readParquetCells(file *parquet.File) (map[string][]parquet.Value, error) {
	paths := file.Schema().Columns()
	names := make([]string, len(paths))
	for i, path := range paths {
		names[i] = path[len(path)-1]
	}

	cells := make(map[string][]parquet.Value, len(names))
	buf := make([]parquet.Row, 64)
	for _, group := range file.RowGroups() {
		rows := group.Rows()
		for {
			n, readErr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, v := range row {
					name := names[v.Column()]
					// Row buffers are reused between reads.
					cells[name] = append(cells[name], v.Clone())
				}
			}
			if errors.Is(readErr, io.EOF) {
				break
			}
			if readErr != nil {
				_ = rows.Close()
				return nil, readErr
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}
	return cells, nil
}

// readColumnSpecs recovers column identity from the file metadata,
// falling back to the physical schema for files tabby did not write.
func readColumnSpecs(file *parquet.File) ([]columnSpec, error) {
	if raw, ok := file.Lookup(schemaMetadataKey); ok {
		var specs []columnSpec
		if err := json.Unmarshal([]byte(raw), &specs); err != nil {
			return nil, zerr.Wrap(err, "failed to decode column metadata")
		}
		return specs, nil
	}

	fields := file.Schema().Fields()
	specs := make([]columnSpec, len(fields))
	for i, f := range fields {
		specs[i] = columnSpec{Name: f.Name(), Type: domain.TypeAny.String()}
	}
	return specs, nil
}

func decodeParquetValue(v parquet.Value, t domain.Type) domain.Value {
	if v.IsNull() {
		return domain.Missing
	}
	switch t {
	case domain.TypeBool:
		return domain.Bool(v.Boolean())
	case domain.TypeInt:
		return domain.Int(v.Int64())
	case domain.TypeFloat:
		return domain.Float(v.Double())
	case domain.TypeTime:
		return domain.Time(time.UnixMilli(v.Int64()).UTC())
	case domain.TypeString:
		// Text stays text; re-inference would turn "123" back into a
		// number and undo the pre-write coercion.
		return domain.String(v.String())
	}

	// Foreign files carry no column metadata; decode from the physical
	// kind, with generic re-inference for text.
	switch v.Kind() {
	case parquet.Boolean:
		return domain.Bool(v.Boolean())
	case parquet.Int32, parquet.Int64:
		return domain.Int(v.Int64())
	case parquet.Float:
		return domain.Float(float64(v.Float()))
	case parquet.Double:
		return domain.Float(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return domain.ParseCell(v.String())
	default:
		return domain.Missing
	}
}
