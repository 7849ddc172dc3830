package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"logscope/domain/core"
	"logscope/domain/logs"
	"logscope/internal"
	"logscope/internal/errors"
)

// Timestamp layouts accepted in the log files. The generator writes the
// first; RFC3339 is accepted for hand-edited fixtures.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Loader reads the fixed-schema CSV datasets from a data directory
type Loader struct {
	dataDir string
	logger  *internal.Logger
}

// NewLoader creates a loader rooted at the given data directory
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir: dataDir,
		logger:  internal.NewDefaultLogger(),
	}
}

// Load reads one dataset kind into a typed table. The file is re-read on
// every call; load and schema failures identify the offending dataset.
func (l *Loader) Load(ctx context.Context, kind logs.Kind) (*logs.Table, error) {
	path := filepath.Join(l.dataDir, kind.FileName())
	l.logger.Debug("Reading %s dataset from %s", kind, path)

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.LoadError(string(kind), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.LoadError(string(kind), err)
	}
	if len(rows) < 2 {
		return nil, errors.LoadError(string(kind), fmt.Errorf("file must have a header row and at least one data row"))
	}

	schema := logs.SchemaFor(kind)
	colIndex, err := matchHeader(kind, schema, rows[0])
	if err != nil {
		return nil, err
	}

	dataRows := rows[1:]
	table := logs.NewTable(kind, len(dataRows))

	for _, field := range schema.Fields {
		idx := colIndex[field.Name]
		cells := make([]string, len(dataRows))
		for i, row := range dataRows {
			if idx >= len(row) {
				return nil, errors.LoadError(string(kind), fmt.Errorf("row %d has %d cells, expected %d", i+2, len(row), len(schema.Fields)))
			}
			cells[i] = strings.TrimSpace(row[idx])
		}
		if err := addColumn(table, kind, field, cells); err != nil {
			return nil, err
		}
	}

	l.logger.Info("%s dataset loaded (%d rows, %d columns)", kind, table.NumRows(), len(table.Columns()))
	return table, nil
}

// matchHeader verifies the header matches the declared column set exactly
// and returns the position of each declared column
func matchHeader(kind logs.Kind, schema logs.Schema, header []string) (map[string]int, error) {
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := seen[name]; dup {
			return nil, errors.SchemaError(string(kind), "loader", name,
				fmt.Errorf("column appears more than once in header %v", header))
		}
		seen[name] = i
	}

	colIndex := make(map[string]int, len(schema.Fields))
	for _, field := range schema.Fields {
		idx, ok := seen[field.Name]
		if !ok {
			return nil, errors.SchemaError(string(kind), "loader", field.Name,
				fmt.Errorf("declared column missing from header %v", header))
		}
		colIndex[field.Name] = idx
	}

	if len(header) != len(schema.Fields) {
		declared := schema.ColumnNames()
		for _, h := range header {
			if _, ok := schema.Field(strings.TrimSpace(h)); !ok {
				return nil, errors.SchemaError(string(kind), "loader", strings.TrimSpace(h),
					fmt.Errorf("undeclared column in header; declared set is %v", declared))
			}
		}
	}

	return colIndex, nil
}

func addColumn(table *logs.Table, kind logs.Kind, field logs.Field, cells []string) error {
	switch field.Type {
	case logs.TypeTimestamp:
		values := make([]core.Timestamp, len(cells))
		for i, cell := range cells {
			ts, err := parseTimestamp(cell)
			if err != nil {
				return errors.SchemaError(string(kind), "loader", field.Name,
					fmt.Errorf("row %d: %w", i+2, err))
			}
			values[i] = ts
		}
		return table.AddTimes(field.Name, values)

	case logs.TypeFloat:
		values := make([]float64, len(cells))
		for i, cell := range cells {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return errors.SchemaError(string(kind), "loader", field.Name,
					fmt.Errorf("row %d: not a float: %q", i+2, cell))
			}
			if v < 0 {
				return errors.SchemaError(string(kind), "loader", field.Name,
					fmt.Errorf("row %d: negative value %v", i+2, v))
			}
			values[i] = v
		}
		return table.AddFloats(field.Name, values)

	case logs.TypeInt:
		values := make([]int, len(cells))
		for i, cell := range cells {
			v, err := strconv.Atoi(cell)
			if err != nil {
				return errors.SchemaError(string(kind), "loader", field.Name,
					fmt.Errorf("row %d: not an integer: %q", i+2, cell))
			}
			if v < 0 {
				return errors.SchemaError(string(kind), "loader", field.Name,
					fmt.Errorf("row %d: negative value %d", i+2, v))
			}
			values[i] = v
		}
		return table.AddInts(field.Name, values)

	case logs.TypeBool:
		values := make([]bool, len(cells))
		for i, cell := range cells {
			v, err := parseBool(cell)
			if err != nil {
				return errors.SchemaError(string(kind), "loader", field.Name,
					fmt.Errorf("row %d: not a boolean: %q", i+2, cell))
			}
			values[i] = v
		}
		return table.AddBools(field.Name, values)

	case logs.TypeCategorical:
		allowed := make(map[string]bool, len(field.Categories))
		for _, c := range field.Categories {
			allowed[c] = true
		}
		for i, cell := range cells {
			if cell == "" && field.Nullable {
				continue
			}
			if !allowed[cell] {
				return errors.SchemaError(string(kind), "loader", field.Name,
					fmt.Errorf("row %d: value %q outside declared set %v", i+2, cell, field.Categories))
			}
		}
		return table.AddStrings(field.Name, cells)

	default:
		return table.AddStrings(field.Name, cells)
	}
}

func parseTimestamp(cell string) (core.Timestamp, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return core.NewTimestamp(t), nil
		}
	}
	return core.Timestamp{}, fmt.Errorf("unparseable timestamp: %q", cell)
}

func parseBool(cell string) (bool, error) {
	// The generator writes Go-style booleans; pandas-exported files use
	// capitalized True/False.
	switch cell {
	case "True", "TRUE":
		return true, nil
	case "False", "FALSE":
		return false, nil
	}
	return strconv.ParseBool(cell)
}
