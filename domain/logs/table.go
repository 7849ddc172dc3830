package logs

import (
	"errors"
	"fmt"

	"logscope/domain/core"
)

// Column access errors - wrapped into SCHEMA_ERROR by the callers
var (
	ErrColumnMissing   = errors.New("column not present in table")
	ErrColumnType      = errors.New("column has a different type than requested")
	ErrLengthMismatch  = errors.New("column length does not match table row count")
	ErrDuplicateColumn = errors.New("column already present in table")
)

// Table is an immutable columnar view over one loaded dataset. Columns are
// stored by declared type; the analysis layer never mutates a loaded table.
type Table struct {
	kind  Kind
	order []string
	rows  int

	strs   map[string][]string
	floats map[string][]float64
	ints   map[string][]int
	bools  map[string][]bool
	times  map[string][]core.Timestamp
}

// NewTable creates an empty table for the given kind and row count
func NewTable(kind Kind, rows int) *Table {
	return &Table{
		kind:   kind,
		rows:   rows,
		strs:   make(map[string][]string),
		floats: make(map[string][]float64),
		ints:   make(map[string][]int),
		bools:  make(map[string][]bool),
		times:  make(map[string][]core.Timestamp),
	}
}

// Kind returns the dataset kind of the table
func (t *Table) Kind() Kind {
	return t.kind
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return t.rows
}

// Columns returns the column names in insertion order
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// HasColumn reports whether a column of any type is present
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.order {
		if c == name {
			return true
		}
	}
	return false
}

func (t *Table) register(name string, length int) error {
	if t.HasColumn(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateColumn, name)
	}
	if length != t.rows {
		return fmt.Errorf("%w: %s has %d values, table has %d rows", ErrLengthMismatch, name, length, t.rows)
	}
	t.order = append(t.order, name)
	return nil
}

// AddStrings adds a string or categorical column
func (t *Table) AddStrings(name string, values []string) error {
	if err := t.register(name, len(values)); err != nil {
		return err
	}
	t.strs[name] = values
	return nil
}

// AddFloats adds a float column
func (t *Table) AddFloats(name string, values []float64) error {
	if err := t.register(name, len(values)); err != nil {
		return err
	}
	t.floats[name] = values
	return nil
}

// AddInts adds an integer column
func (t *Table) AddInts(name string, values []int) error {
	if err := t.register(name, len(values)); err != nil {
		return err
	}
	t.ints[name] = values
	return nil
}

// AddBools adds a boolean column
func (t *Table) AddBools(name string, values []bool) error {
	if err := t.register(name, len(values)); err != nil {
		return err
	}
	t.bools[name] = values
	return nil
}

// AddTimes adds a timestamp column
func (t *Table) AddTimes(name string, values []core.Timestamp) error {
	if err := t.register(name, len(values)); err != nil {
		return err
	}
	t.times[name] = values
	return nil
}

// Strings returns a string or categorical column
func (t *Table) Strings(name string) ([]string, error) {
	if v, ok := t.strs[name]; ok {
		return v, nil
	}
	return nil, t.accessError(name)
}

// Floats returns a float column
func (t *Table) Floats(name string) ([]float64, error) {
	if v, ok := t.floats[name]; ok {
		return v, nil
	}
	return nil, t.accessError(name)
}

// Ints returns an integer column
func (t *Table) Ints(name string) ([]int, error) {
	if v, ok := t.ints[name]; ok {
		return v, nil
	}
	return nil, t.accessError(name)
}

// Bools returns a boolean column
func (t *Table) Bools(name string) ([]bool, error) {
	if v, ok := t.bools[name]; ok {
		return v, nil
	}
	return nil, t.accessError(name)
}

// Times returns a timestamp column
func (t *Table) Times(name string) ([]core.Timestamp, error) {
	if v, ok := t.times[name]; ok {
		return v, nil
	}
	return nil, t.accessError(name)
}

func (t *Table) accessError(name string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("%w: %s", ErrColumnType, name)
	}
	return fmt.Errorf("%w: %s", ErrColumnMissing, name)
}

// NumericColumns returns the names of float and int columns in order
func (t *Table) NumericColumns() []string {
	var out []string
	for _, name := range t.order {
		if _, ok := t.floats[name]; ok {
			out = append(out, name)
			continue
		}
		if _, ok := t.ints[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// NumericValues returns a float view of a float or int column
func (t *Table) NumericValues(name string) ([]float64, error) {
	if v, ok := t.floats[name]; ok {
		return v, nil
	}
	if v, ok := t.ints[name]; ok {
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	}
	return nil, t.accessError(name)
}

// ColumnTypeOf returns the stored type of a column
func (t *Table) ColumnTypeOf(name string) (ColumnType, bool) {
	if _, ok := t.strs[name]; ok {
		return TypeString, true
	}
	if _, ok := t.floats[name]; ok {
		return TypeFloat, true
	}
	if _, ok := t.ints[name]; ok {
		return TypeInt, true
	}
	if _, ok := t.bools[name]; ok {
		return TypeBool, true
	}
	if _, ok := t.times[name]; ok {
		return TypeTimestamp, true
	}
	return "", false
}

// SampleRows returns up to n leading rows as display strings per column,
// used by profiling reports and the dashboard preview
func (t *Table) SampleRows(n int) []map[string]string {
	if n > t.rows {
		n = t.rows
	}
	out := make([]map[string]string, n)
	for i := 0; i < n; i++ {
		row := make(map[string]string, len(t.order))
		for _, name := range t.order {
			row[name] = t.cellString(name, i)
		}
		out[i] = row
	}
	return out
}

func (t *Table) cellString(name string, i int) string {
	if v, ok := t.strs[name]; ok {
		return v[i]
	}
	if v, ok := t.floats[name]; ok {
		return fmt.Sprintf("%.2f", v[i])
	}
	if v, ok := t.ints[name]; ok {
		return fmt.Sprintf("%d", v[i])
	}
	if v, ok := t.bools[name]; ok {
		return fmt.Sprintf("%t", v[i])
	}
	if v, ok := t.times[name]; ok {
		return v[i].String()
	}
	return ""
}
