package domain

import (
	"strconv"
	"time"
)

// Kind identifies the scalar kind carried by a Value.
type Kind uint8

// Value kinds, ordered roughly by specificity. KindMissing is the
// missing-value marker and belongs to every column type.
const (
	KindMissing Kind = iota
	KindBool
	KindInt
	KindFloat
	KindTime
	KindString
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a nullable scalar cell. The zero Value is the missing marker.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	t    time.Time
	s    string
}

// Missing is the missing-value marker.
var Missing = Value{}

// Bool wraps a bool cell.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int wraps an integer cell.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float wraps a floating point cell.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Time wraps a timestamp cell.
func Time(v time.Time) Value { return Value{kind: KindTime, t: v} }

// String wraps a text cell.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// BoolValue returns the wrapped bool. Only meaningful for KindBool.
func (v Value) BoolValue() bool { return v.b }

// IntValue returns the wrapped integer. Only meaningful for KindInt.
func (v Value) IntValue() int64 { return v.i }

// FloatValue returns the wrapped float. For KindInt the integer is
// widened, so numeric columns can be read uniformly.
func (v Value) FloatValue() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// TimeValue returns the wrapped timestamp. Only meaningful for KindTime.
func (v Value) TimeValue() time.Time { return v.t }

// StringValue returns the wrapped text. Only meaningful for KindString.
func (v Value) StringValue() string { return v.s }

// Render returns the canonical text form of the value. Missing renders
// as the empty string.
func (v Value) Render() string {
	switch v.kind {
	case KindMissing:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindTime:
		return v.t.Format(time.RFC3339)
	default:
		return v.s
	}
}

// Equal reports whether two values hold the same kind and payload.
// Timestamps compare as instants.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindMissing:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindTime:
		return v.t.Equal(o.t)
	default:
		return v.s == o.s
	}
}
