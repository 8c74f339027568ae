package extract

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/exupdate/internal/table"
	"golang.org/x/text/cases"
)

// Layout records where the required columns sit in a table.
type Layout struct {
	ID          int
	Description int
}

// MissingColumnsError is returned when required columns are absent from the header.
type MissingColumnsError struct {
	Missing   []string
	Available []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s\nAvailable columns: %s",
		quoteList(e.Missing), quoteList(e.Available))
}

// NormalizeColumns trims whitespace from every header name of t in place and
// resolves the identifier and description columns by case-insensitive name.
// When several headers fold to the same name the first one wins.
func NormalizeColumns(t *table.Table, idName, descName string) (Layout, error) {
	for i, c := range t.Columns {
		t.Columns[i] = strings.TrimSpace(c)
	}

	idName = strings.TrimSpace(idName)
	descName = strings.TrimSpace(descName)

	layout := Layout{
		ID:          findColumn(t.Columns, idName),
		Description: findColumn(t.Columns, descName),
	}

	var missing []string
	if layout.ID < 0 {
		missing = append(missing, idName)
	}
	if layout.Description < 0 {
		missing = append(missing, descName)
	}
	if len(missing) > 0 {
		available := make([]string, len(t.Columns))
		copy(available, t.Columns)
		return Layout{}, &MissingColumnsError{Missing: missing, Available: available}
	}

	return layout, nil
}

func findColumn(columns []string, name string) int {
	fold := cases.Fold()
	want := fold.String(name)
	for i, c := range columns {
		if fold.String(c) == want {
			return i
		}
	}
	return -1
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
