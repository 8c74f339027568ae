package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/exupdate/internal/table"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	Register(Format{
		Name:       "csv",
		Extensions: []string{".csv"},
		New:        func(l *slog.Logger) Loader { return NewDuckDBLoader(',', l) },
	})
	Register(Format{
		Name:       "tsv",
		Extensions: []string{".tsv", ".tab"},
		New:        func(l *slog.Logger) Loader { return NewDuckDBLoader('\t', l) },
	})
}

// DuckDBLoader reads delimited text through an in-memory DuckDB connection.
// Every column is read as text so cell values reach the pipeline unchanged;
// empty fields come back as nil.
type DuckDBLoader struct {
	delim  rune
	logger *slog.Logger
}

// NewDuckDBLoader creates a loader for files separated by delim.
func NewDuckDBLoader(delim rune, logger *slog.Logger) *DuckDBLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DuckDBLoader{delim: delim, logger: logger}
}

// Load reads path into a table.
func (l *DuckDBLoader) Load(ctx context.Context, path string, _ Options) (*table.Table, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	query := fmt.Sprintf(
		"SELECT * FROM read_csv_auto(%s, header=true, all_varchar=true, null_padding=true, delim=%s)",
		quoteLiteral(absPath),
		quoteLiteral(string(l.delim)),
	)
	l.logger.Debug("reading delimited file", "query", query)

	//nolint:rowserrcheck // rows.Err() is checked after iteration
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	t := table.New(filepath.Base(path), cols)
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", t.Len()+1, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		t.Append(values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return t, nil
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

var _ Loader = (*DuckDBLoader)(nil)
