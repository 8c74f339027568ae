package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/exupdate/internal/table"
	"github.com/xuri/excelize/v2"
)

func init() {
	Register(Format{
		Name:       "xlsx",
		Extensions: []string{".xlsx", ".xlsm"},
		New:        func(l *slog.Logger) Loader { return NewExcelLoader(l) },
	})
}

// ExcelLoader reads one worksheet of an Excel workbook. The first row is the
// header. Cells are read as their formatted text and empty cells become nil.
type ExcelLoader struct {
	logger *slog.Logger
}

// NewExcelLoader creates an Excel loader.
func NewExcelLoader(logger *slog.Logger) *ExcelLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ExcelLoader{logger: logger}
}

// Load reads the sheet named by opts.Sheet, or the first sheet.
func (l *ExcelLoader) Load(ctx context.Context, path string, opts Options) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	sheet := opts.Sheet
	if sheet == "" {
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found (available: %v)", sheet, sheets)
	}

	l.logger.Debug("reading worksheet", "sheet", sheet)

	// Stored values, not display text: "#,##0" would turn 12345 into "12,345".
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return table.New(sheet, nil), nil
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	header := make([]string, width)
	for i := range header {
		if i < len(rows[0]) && rows[0][i] != "" {
			header[i] = rows[0][i]
		} else {
			header[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	t := table.New(sheet, header)
	for _, r := range rows[1:] {
		cells := make([]any, width)
		for i, v := range r {
			if v != "" {
				cells[i] = v
			}
		}
		t.Append(cells)
	}

	return t, nil
}

var _ Loader = (*ExcelLoader)(nil)
