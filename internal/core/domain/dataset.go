// Package domain contains the core types for cached tabular datasets.
package domain

// Type is the semantic type of a column.
type Type uint8

// Column types. TypeAny marks a heterogeneous column whose cells do not
// share a single kind; the columnar binary format cannot represent it
// without coercion.
const (
	TypeAny Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeTime
	TypeString
)

// String returns a human-readable type name.
func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeTime:
		return "time"
	case TypeString:
		return "string"
	default:
		return "any"
	}
}

// TypeFromString parses a type name produced by Type.String.
func TypeFromString(s string) Type {
	switch s {
	case "bool":
		return TypeBool
	case "int":
		return TypeInt
	case "float":
		return TypeFloat
	case "time":
		return TypeTime
	case "string":
		return TypeString
	default:
		return TypeAny
	}
}

// Column is a named, typed, ordered sequence of cells.
type Column struct {
	Name   string
	Type   Type
	Values []Value
}

// hasValues reports whether any cell is non-missing.
func (c Column) hasValues() bool {
	for _, v := range c.Values {
		if !v.IsMissing() {
			return true
		}
	}
	return false
}

// Dataset is an in-memory tabular value with named, ordered columns.
// The cache layer never mutates a Dataset it has returned; callers that
// need to modify one should work on a Clone.
type Dataset struct {
	Columns []Column
}

// NewDataset assembles a dataset from columns. All columns must have the
// same length; shorter columns are padded with missing markers.
func NewDataset(cols ...Column) Dataset {
	rows := 0
	for _, c := range cols {
		if len(c.Values) > rows {
			rows = len(c.Values)
		}
	}
	for i := range cols {
		for len(cols[i].Values) < rows {
			cols[i].Values = append(cols[i].Values, Missing)
		}
	}
	return Dataset{Columns: cols}
}

// NumRows returns the number of rows.
func (d Dataset) NumRows() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// NumColumns returns the number of columns.
func (d Dataset) NumColumns() int { return len(d.Columns) }

// Empty reports whether the dataset has no rows or no columns.
func (d Dataset) Empty() bool { return d.NumRows() == 0 || d.NumColumns() == 0 }

// HasValues reports whether any cell holds a non-missing value.
func (d Dataset) HasValues() bool {
	for _, c := range d.Columns {
		if c.hasValues() {
			return true
		}
	}
	return false
}

// Column returns the column with the given name.
func (d Dataset) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Clone returns a deep copy of the dataset. Columns share no backing
// storage with the original.
func (d Dataset) Clone() Dataset {
	cols := make([]Column, len(d.Columns))
	for i, c := range d.Columns {
		vals := make([]Value, len(c.Values))
		copy(vals, c.Values)
		cols[i] = Column{Name: c.Name, Type: c.Type, Values: vals}
	}
	return Dataset{Columns: cols}
}

// Equal reports whether two datasets have identical column order, names,
// types and cell values.
func (d Dataset) Equal(o Dataset) bool {
	if len(d.Columns) != len(o.Columns) {
		return false
	}
	for i, c := range d.Columns {
		oc := o.Columns[i]
		if c.Name != oc.Name || c.Type != oc.Type || len(c.Values) != len(oc.Values) {
			return false
		}
		for j, v := range c.Values {
			if !v.Equal(oc.Values[j]) {
				return false
			}
		}
	}
	return true
}

// DropEmpty removes rows and columns in which every cell is missing.
func (d Dataset) DropEmpty() Dataset {
	rows := d.NumRows()
	keepRow := make([]bool, rows)
	for i := 0; i < rows; i++ {
		for _, c := range d.Columns {
			if !c.Values[i].IsMissing() {
				keepRow[i] = true
				break
			}
		}
	}

	var cols []Column
	for _, c := range d.Columns {
		if !c.hasValues() {
			continue
		}
		vals := make([]Value, 0, rows)
		for i, v := range c.Values {
			if keepRow[i] {
				vals = append(vals, v)
			}
		}
		cols = append(cols, Column{Name: c.Name, Type: c.Type, Values: vals})
	}
	return Dataset{Columns: cols}
}

// Normalize renarrows every column to the most specific type shared by
// its non-missing cells. Integer cells widen to float when mixed with
// floats; columns that remain heterogeneous keep TypeAny.
func (d Dataset) Normalize() Dataset {
	cols := make([]Column, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = normalizeColumn(c)
	}
	return Dataset{Columns: cols}
}

func normalizeColumn(c Column) Column {
	t := TypeAny
	seen := false
	for _, v := range c.Values {
		if v.IsMissing() {
			continue
		}
		vt := typeOfKind(v.Kind())
		if !seen {
			t = vt
			seen = true
			continue
		}
		t = unifyTypes(t, vt)
	}
	if !seen {
		// All-missing columns keep their declared type.
		return c
	}
	if t == TypeFloat {
		// Widen any integer cells in a mixed numeric column.
		vals := make([]Value, len(c.Values))
		for i, v := range c.Values {
			if v.Kind() == KindInt {
				vals[i] = Float(float64(v.IntValue()))
			} else {
				vals[i] = v
			}
		}
		return Column{Name: c.Name, Type: t, Values: vals}
	}
	return Column{Name: c.Name, Type: t, Values: c.Values}
}

func typeOfKind(k Kind) Type {
	switch k {
	case KindBool:
		return TypeBool
	case KindInt:
		return TypeInt
	case KindFloat:
		return TypeFloat
	case KindTime:
		return TypeTime
	case KindString:
		return TypeString
	default:
		return TypeAny
	}
}

// unifyTypes returns the most specific type able to represent both.
func unifyTypes(a, b Type) Type {
	if a == b {
		return a
	}
	if (a == TypeInt && b == TypeFloat) || (a == TypeFloat && b == TypeInt) {
		return TypeFloat
	}
	return TypeAny
}

// Concat concatenates datasets row-wise. Columns are matched by name in
// first-seen order; rows missing a column are padded with the missing
// marker and every column is renormalized afterwards. Row identity is
// not preserved.
func Concat(datasets ...Dataset) Dataset {
	var order []string
	index := map[string]int{}
	for _, d := range datasets {
		for _, c := range d.Columns {
			if _, ok := index[c.Name]; !ok {
				index[c.Name] = len(order)
				order = append(order, c.Name)
			}
		}
	}

	total := 0
	for _, d := range datasets {
		total += d.NumRows()
	}

	cols := make([]Column, len(order))
	for i, name := range order {
		cols[i] = Column{Name: name, Values: make([]Value, 0, total)}
	}

	for _, d := range datasets {
		rows := d.NumRows()
		present := map[int]Column{}
		for _, c := range d.Columns {
			present[index[c.Name]] = c
		}
		for i := range cols {
			if c, ok := present[i]; ok {
				cols[i].Values = append(cols[i].Values, c.Values...)
			} else {
				for r := 0; r < rows; r++ {
					cols[i].Values = append(cols[i].Values, Missing)
				}
			}
		}
	}

	return Dataset{Columns: cols}.Normalize()
}
