package engine

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// ============================================================================
// RESULT TABLES — Typed, render-ready report output
// ============================================================================
// A Table is the only thing a report produces: ordered columns, ordered rows,
// every cell a typed Value. Key columns identify a row across runs, which is
// what makes two results of the same report diffable.
// ============================================================================

// Kind is the type of a column and of every cell in it.
type Kind uint8

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Column describes one column of a result table.
type Column struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Decimals int    `json:"decimals,omitempty"` // display precision for KindFloat
	Key      bool   `json:"key,omitempty"`      // part of the row identity used by Diff
}

// StrCol returns a string column.
func StrCol(name string) Column { return Column{Name: name, Kind: KindString} }

// IntCol returns an integer column.
func IntCol(name string) Column { return Column{Name: name, Kind: KindInt} }

// FloatCol returns a float column rendered with the given decimal places.
func FloatCol(name string, decimals int) Column {
	return Column{Name: name, Kind: KindFloat, Decimals: decimals}
}

// AsKey marks the column as part of the row identity.
func (c Column) AsKey() Column {
	c.Key = true
	return c
}

// ============================================================================
// VALUES
// ============================================================================

// Value is a single typed cell. Exactly one payload field is meaningful,
// selected by Kind; Null overrides the payload entirely.
type Value struct {
	Kind  Kind
	Null  bool
	Str   string
	Int   int64
	Float float64
}

// Str returns a string cell.
func Str(s string) Value { return Value{Kind: KindString, Str: s} }

// Int returns an integer cell.
func Int(n int) Value { return Value{Kind: KindInt, Int: int64(n)} }

// Float returns a float cell.
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// Null returns a null cell of the given kind.
func Null(k Kind) Value { return Value{Kind: k, Null: true} }

// FloatOrNull returns a float cell, or a null cell when ok is false.
// It pairs with aggregates like Avg that cannot produce a value for
// an empty input.
func FloatOrNull(f float64, ok bool) Value {
	if !ok {
		return Null(KindFloat)
	}
	return Float(f)
}

// Num returns the cell as a float64. ok is false for nulls and strings.
func (v Value) Num() (float64, bool) {
	if v.Null {
		return 0, false
	}
	switch v.Kind {
	case KindInt:
		return float64(v.Int), true
	case KindFloat:
		return v.Float, true
	default:
		return 0, false
	}
}

// Equal reports whether two cells hold the same value.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind || v.Null != o.Null {
		return false
	}
	if v.Null {
		return true
	}
	switch v.Kind {
	case KindString:
		return v.Str == o.Str
	case KindInt:
		return v.Int == o.Int
	default:
		return v.Float == o.Float
	}
}

// Less orders cells of the same kind; nulls sort first.
func (v Value) Less(o Value) bool {
	if v.Null || o.Null {
		return v.Null && !o.Null
	}
	switch v.Kind {
	case KindString:
		return v.Str < o.Str
	case KindInt:
		return v.Int < o.Int
	default:
		return v.Float < o.Float
	}
}

// Raw renders the cell for machine output: fixed decimals, no grouping,
// empty string for null.
func (v Value) Raw(c Column) string {
	if v.Null {
		return ""
	}
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	default:
		return strconv.FormatFloat(v.Float, 'f', c.Decimals, 64)
	}
}

// Display renders the cell for humans: thousands separators on numbers,
// NULL spelled out.
func (v Value) Display(c Column) string {
	if v.Null {
		return "NULL"
	}
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return humanize.Comma(v.Int)
	default:
		return humanize.FormatFloat("#,###."+strings.Repeat("#", c.Decimals), v.Float)
	}
}

// MarshalJSON encodes the underlying value, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.Null {
		return []byte("null"), nil
	}
	switch v.Kind {
	case KindString:
		return json.Marshal(v.Str)
	case KindInt:
		return json.Marshal(v.Int)
	default:
		return json.Marshal(v.Float)
	}
}

// ============================================================================
// TABLES
// ============================================================================

// Table is an ordered, typed result set.
type Table struct {
	Name    string    `json:"name"`
	Columns []Column  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(name string, cols ...Column) *Table {
	return &Table{Name: name, Columns: cols}
}

// Append adds one row. Callers pass exactly one value per column.
func (t *Table) Append(vals ...Value) {
	t.Rows = append(t.Rows, vals)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// KeyColumns returns the positions of the key columns in order.
func (t *Table) KeyColumns() []int {
	var keys []int
	for i, c := range t.Columns {
		if c.Key {
			keys = append(keys, i)
		}
	}
	return keys
}

// Headers returns the column names in order.
func (t *Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
