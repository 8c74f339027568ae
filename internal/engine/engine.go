// Package engine runs an extraction: load the source file, turn its rows into
// executive updates and write them out.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/leapstack-labs/exupdate/internal/extract"
	"github.com/leapstack-labs/exupdate/internal/sink"
	"github.com/leapstack-labs/exupdate/internal/source"
	"github.com/leapstack-labs/exupdate/internal/table"
)

// Engine orchestrates one extraction run.
type Engine struct {
	runID    string
	logger   *slog.Logger
	sourceOp source.Options
	pipeline *extract.Pipeline
	writer   *sink.CSVWriter
	onLoad   func(*table.Table)
}

// Config holds engine configuration.
type Config struct {
	// OutputPath is the destination file (default sink.DefaultFileName)
	OutputPath string
	// Format forces an input format instead of detecting it from the extension
	Format string
	// Sheet selects the worksheet of a spreadsheet input
	Sheet string
	// IDColumn overrides the identifier column name
	IDColumn string
	// DescriptionColumn overrides the description column name
	DescriptionColumn string
	// OnLoad is called once the input has been read (optional)
	OnLoad func(*table.Table)
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Result describes a finished run.
type Result struct {
	RunID   string
	Input   string
	Output  string
	Updates []extract.Update
	Stats   extract.Stats

	// Written is false when there was nothing to save or the write failed.
	Written bool
	// WriteErr holds a write failure. It does not fail the run.
	WriteErr error
}

// New creates an engine. Every log line it emits carries a fresh run_id.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	return &Engine{
		runID:  runID,
		logger: logger,
		sourceOp: source.Options{
			Format: cfg.Format,
			Sheet:  cfg.Sheet,
		},
		pipeline: extract.New(extract.Options{
			IDColumn:          cfg.IDColumn,
			DescriptionColumn: cfg.DescriptionColumn,
			Logger:            logger,
		}),
		writer: sink.NewCSVWriter(cfg.OutputPath, logger),
		onLoad: cfg.OnLoad,
	}
}

// RunID returns the identifier attached to this engine's log lines.
func (e *Engine) RunID() string {
	return e.runID
}

// OutputPath returns the file the engine writes to.
func (e *Engine) OutputPath() string {
	return e.writer.Path()
}

// Load reads the input file. Any error here halts the run.
func (e *Engine) Load(ctx context.Context, path string) (*table.Table, error) {
	return source.Open(ctx, path, e.sourceOp, e.logger)
}

// Transform converts the loaded rows into updates. It fails only when the
// required columns are missing.
func (e *Engine) Transform(t *table.Table) (*extract.Result, error) {
	res, err := e.pipeline.Run(t)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("extracted updates",
		"source_rows", res.Stats.SourceRows,
		"updates", res.Stats.Updates,
		"annotated_rows", res.Stats.Annotated)
	return res, nil
}

// Write saves updates. sink.ErrNoData is returned unchanged when there is
// nothing to save.
func (e *Engine) Write(updates []extract.Update) error {
	return e.writer.Write(updates)
}

// Run loads path, transforms it and writes the result.
//
// Only an unreadable input or missing columns return an error. An empty
// result or a failed write is reported on the Result instead.
func (e *Engine) Run(ctx context.Context, path string) (*Result, error) {
	t, err := e.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if e.onLoad != nil {
		e.onLoad(t)
	}

	res, err := e.Transform(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}

	out := &Result{
		RunID:   e.runID,
		Input:   t.Name,
		Output:  e.writer.Path(),
		Updates: res.Updates,
		Stats:   res.Stats,
	}

	switch err := e.Write(res.Updates); {
	case err == nil:
		out.Written = true
	case errors.Is(err, sink.ErrNoData):
		e.logger.Debug("nothing to write")
	default:
		e.logger.Error("write failed", "path", out.Output, "error", err)
		out.WriteErr = err
	}

	return out, nil
}
