// Package sink writes extracted updates to a delimited file.
package sink

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/exupdate/internal/extract"
	"github.com/natefinch/atomic"
)

// DefaultFileName is the output file written when none is configured.
const DefaultFileName = "Executive Updates.csv"

// ErrNoData is returned when there are no updates to write. Nothing is
// written in that case.
var ErrNoData = errors.New("no valid data to save")

// CSVWriter writes updates as comma-separated UTF-8 text with a header row.
type CSVWriter struct {
	path   string
	logger *slog.Logger
}

// NewCSVWriter creates a writer for path.
func NewCSVWriter(path string, logger *slog.Logger) *CSVWriter {
	if path == "" {
		path = DefaultFileName
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CSVWriter{path: path, logger: logger}
}

// Path returns the destination file.
func (w *CSVWriter) Path() string {
	return w.path
}

// Write serializes updates and replaces the destination atomically, so a
// failed write never leaves a partial file behind.
func (w *CSVWriter) Write(updates []extract.Update) error {
	if len(updates) == 0 {
		return ErrNoData
	}

	data, err := Encode(updates)
	if err != nil {
		return err
	}

	w.logger.Debug("writing output", "path", w.path, "rows", len(updates), "bytes", len(data))

	if err := atomic.WriteFile(w.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("could not save %s: %w", w.path, err)
	}
	return nil
}

// Encode renders updates as CSV with the extract.Header() row first.
func Encode(updates []extract.Update) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(extract.Header()); err != nil {
		return nil, fmt.Errorf("failed to encode header: %w", err)
	}
	for i, u := range updates {
		if err := cw.Write(u.Record()); err != nil {
			return nil, fmt.Errorf("failed to encode row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("failed to encode output: %w", err)
	}
	return buf.Bytes(), nil
}
