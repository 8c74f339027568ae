package extract

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/exupdate/internal/table"
)

// Options configures a Pipeline.
type Options struct {
	// IDColumn is the identifier column name (default IDColumn).
	IDColumn string
	// DescriptionColumn is the free-text column name (default DescriptionColumn).
	DescriptionColumn string
	// Logger receives per-row warnings (optional, uses discard if nil).
	Logger *slog.Logger
}

// Stats counts what happened during a run.
type Stats struct {
	SourceRows    int `json:"source_rows"`
	Updates       int `json:"updates"`
	Annotated     int `json:"annotated_rows"`
	InvalidIDs    int `json:"invalid_ids"`
	ExtractFaults int `json:"extract_faults"`
	CommentFaults int `json:"comment_faults"`
}

// Result is the output of a pipeline run.
type Result struct {
	Updates []Update
	Stats   Stats
}

// Pipeline runs the extraction stages over every row of a table.
type Pipeline struct {
	idColumn   string
	descColumn string
	logger     *slog.Logger

	// swapped in tests to exercise fault handling
	extractFn func(any) []Annotation
	cleanFn   func(string) string
}

// New creates a pipeline.
func New(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	idColumn := opts.IDColumn
	if idColumn == "" {
		idColumn = IDColumn
	}
	descColumn := opts.DescriptionColumn
	if descColumn == "" {
		descColumn = DescriptionColumn
	}
	return &Pipeline{
		idColumn:   idColumn,
		descColumn: descColumn,
		logger:     logger,
		extractFn:  ExtractAnnotations,
		cleanFn:    CleanComment,
	}
}

// Run normalizes the header of t and converts every row into updates.
//
// The only error is a *MissingColumnsError; row-level problems are logged as
// warnings and counted in Stats. Updates keep source row order, and the
// updates of one row keep the order of its annotations.
func (p *Pipeline) Run(t *table.Table) (*Result, error) {
	layout, err := NormalizeColumns(t, p.idColumn, p.descColumn)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("resolved columns",
		"id_column", t.Columns[layout.ID],
		"description_column", t.Columns[layout.Description])

	res := &Result{Updates: make([]Update, 0, t.Len())}
	for i := range t.Rows {
		row := i + 1

		id := p.cleanID(row, t.Cell(i, layout.ID), &res.Stats)
		annotations := p.extract(row, t.Cell(i, layout.Description), &res.Stats)
		if len(annotations) > 0 {
			res.Stats.Annotated++
		}

		updates := Expand(id, annotations)
		for j := range updates {
			updates[j].Comment = p.cleanComment(row, updates[j].Comment, &res.Stats)
		}
		res.Updates = append(res.Updates, updates...)
	}

	res.Stats.SourceRows = t.Len()
	res.Stats.Updates = len(res.Updates)
	return res, nil
}

func (p *Pipeline) cleanID(row int, v any, stats *Stats) ProjectID {
	id, err := ParseProjectID(v)
	if err != nil {
		stats.InvalidIDs++
		p.logger.Warn("invalid identifier replaced with NULL",
			"row", row, "column", p.idColumn, "value", fmt.Sprintf("%v", v))
		return ProjectID{}
	}
	return id
}

func (p *Pipeline) extract(row int, v any, stats *Stats) (annotations []Annotation) {
	defer func() {
		if r := recover(); r != nil {
			stats.ExtractFaults++
			p.logger.Warn("error processing description",
				"row", row, "description", fmt.Sprintf("%v", v), "error", fmt.Sprint(r))
			annotations = nil
		}
	}()
	return p.extractFn(v)
}

func (p *Pipeline) cleanComment(row int, raw string, stats *Stats) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			stats.CommentFaults++
			p.logger.Warn("error cleaning comment",
				"row", row, "comment", raw, "error", fmt.Sprint(r))
			cleaned = Null
		}
	}()
	return p.cleanFn(raw)
}
