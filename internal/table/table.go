// Package table contains the tabular data model shared across pipeline stages.
package table

import (
	"fmt"
	"time"
)

// Table is an ordered collection of named, equal-length columns.
// Cell values are one of: string, int64, float64, time.Time, or nil
// for a missing value.
type Table struct {
	name    string
	columns []*Column
	index   map[string]int
}

// Column holds a single named column of cell values.
type Column struct {
	Name   string
	Values []interface{}
}

// New creates an empty table with the given name.
func New(name string) *Table {
	return &Table{
		name:  name,
		index: make(map[string]int),
	}
}

// Name returns the table name.
func (t *Table) Name() string {
	return t.name
}

// AddColumn appends a column to the table. The first column fixes the
// row count; subsequent columns must match it.
func (t *Table) AddColumn(name string, values []interface{}) error {
	if _, exists := t.index[name]; exists {
		return fmt.Errorf("table %s: column %s already exists", t.name, name)
	}
	if len(t.columns) > 0 && len(values) != t.NumRows() {
		return fmt.Errorf("table %s: column %s has %d values, expected %d",
			t.name, name, len(values), t.NumRows())
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, &Column{Name: name, Values: values})
	return nil
}

// Column returns the named column, or an error if it does not exist.
// A missing column is a contract violation between stages, so the
// error names both the table and the column.
func (t *Table) Column(name string) (*Column, error) {
	idx, exists := t.index[name]
	if !exists {
		return nil, fmt.Errorf("table %s: missing expected column %s", t.name, name)
	}
	return t.columns[idx], nil
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, exists := t.index[name]
	return exists
}

// Columns returns the columns in insertion order.
func (t *Table) Columns() []*Column {
	return t.columns
}

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// NumRows returns the row count of the table.
func (t *Table) NumRows() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Values)
}

// NumColumns returns the column count of the table.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Clone returns a deep copy of the table under a new name. Stages use
// this to derive output tables without aliasing the input.
func (t *Table) Clone(name string) *Table {
	out := New(name)
	for _, col := range t.columns {
		values := make([]interface{}, len(col.Values))
		copy(values, col.Values)
		// AddColumn cannot fail here: names are unique and lengths match
		_ = out.AddColumn(col.Name, values)
	}
	return out
}

// FloatValues converts the column to float64 values. Supported cell
// types are int64 and float64; nil cells become 0.
func (c *Column) FloatValues() []float64 {
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		out[i] = ToFloat64(v)
	}
	return out
}

// IsNumeric reports whether every non-nil cell is an int64 or float64.
// An all-nil or empty column is not considered numeric.
func (c *Column) IsNumeric() bool {
	seen := false
	for _, v := range c.Values {
		switch v.(type) {
		case int64, float64:
			seen = true
		case nil:
		default:
			return false
		}
	}
	return seen
}

// TimeFromCell extracts a time.Time from a cell value.
func TimeFromCell(v interface{}) (time.Time, bool) {
	ts, ok := v.(time.Time)
	return ts, ok
}
