// Package table holds tabular data loaded from a source file.
//
// Cells are untyped: a source may hand back strings, numbers, or nil for an
// empty cell. Consumers decide how to interpret each value.
package table

import "fmt"

// Table is a loaded sheet: a header of column names and the data rows below it.
type Table struct {
	// Name identifies where the table came from (usually the file name).
	Name string

	// Columns holds the header names in file order.
	Columns []string

	// Rows holds one slice of cells per data row, aligned with Columns.
	Rows [][]any
}

// New creates an empty table with the given header.
func New(name string, columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Name: name, Columns: cols}
}

// Append adds a row, padding or truncating it to the header width.
func (t *Table) Append(row []any) {
	cells := make([]any, len(t.Columns))
	copy(cells, row)
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value at row i, column j, or nil when out of range.
func (t *Table) Cell(i, j int) any {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	row := t.Rows[i]
	if j < 0 || j >= len(row) {
		return nil
	}
	return row[j]
}

// String returns a short description for log lines.
func (t *Table) String() string {
	return fmt.Sprintf("%s (%d columns, %d rows)", t.Name, len(t.Columns), len(t.Rows))
}
