package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/exupdate/internal/cli/output"
	"github.com/leapstack-labs/exupdate/internal/engine"
	"github.com/leapstack-labs/exupdate/internal/extract"
	"github.com/leapstack-labs/exupdate/internal/source"
	tbl "github.com/leapstack-labs/exupdate/internal/table"
	"github.com/spf13/cobra"
)

const noDataMessage = "No valid data to save. Check the input file."

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <input-file>",
		Short: "Extract executive updates from project descriptions",
		Long: `Extract every "EX: YYYY.MM.DD comment" annotation from the PROJECT_DESCRIPTION
column and write one row per annotation to a CSV file.

Projects without annotations still get one row with Date and Executive
Comment set to NULL. Identifiers that are not integers are left empty and
reported as warnings.

Supported inputs: ` + strings.Join(source.ListFormats(), ", ") + ` (picked by file extension
unless --format is given).

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Extract from an Excel export
  exupdate extract projects.xlsx

  # Read a specific worksheet and show the first rows
  exupdate extract projects.xlsx --sheet "Active" --preview 10

  # Write somewhere else and print a JSON summary
  exupdate extract export.csv --out-file out/updates.csv --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0])
		},
	}

	cmd.Flags().StringP("out-file", "f", "", "Destination file (default \"Executive Updates.csv\")")
	cmd.Flags().String("sheet", "", "Worksheet to read from a spreadsheet (default: first sheet)")
	cmd.Flags().String("format", "", "Input format: "+strings.Join(source.ListFormats(), ", "))
	cmd.Flags().String("id-column", "", "Identifier column name (default \"PROJECT_DISPLAY_ID\")")
	cmd.Flags().String("description-column", "", "Description column name (default \"PROJECT_DESCRIPTION\")")
	cmd.Flags().Int("preview", 0, "Print the first N extracted rows")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return source.ListFormats(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runExtract(cmd *cobra.Command, input string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	mode := r.EffectiveMode()

	eng := engine.New(engine.Config{
		OutputPath:        cfg.OutFile,
		Format:            cfg.Format,
		Sheet:             cfg.Sheet,
		IDColumn:          cfg.IDColumn,
		DescriptionColumn: cfg.DescriptionColumn,
		Logger:            cmdCtx.Logger,
		OnLoad: func(t *tbl.Table) {
			if mode != output.ModeJSON {
				r.Success(fmt.Sprintf("File %s loaded successfully.", t.Name))
			}
		},
	})

	res, err := eng.Run(cmd.Context(), input)
	if err != nil {
		return err
	}

	preview := res.Updates[:min(cfg.Preview, len(res.Updates))]

	switch mode {
	case output.ModeJSON:
		return extractJSON(r, res, preview)
	case output.ModeMarkdown:
		extractMarkdown(r, res, preview)
	default:
		extractText(r, res, preview)
	}
	return nil
}

func resultMessage(res *engine.Result) string {
	switch {
	case res.Written:
		return "Data successfully extracted to " + res.Output
	case res.WriteErr != nil:
		return "Could not save the file. " + res.WriteErr.Error()
	default:
		return noDataMessage
	}
}

// extractText outputs the run in styled text format.
func extractText(r *output.Renderer, res *engine.Result, preview []extract.Update) {
	r.Println("")
	r.Header(2, "Executive Updates")
	printSummary(r, res.Stats)

	if len(preview) > 0 {
		r.Println("")
		renderPreview(r.Out(), preview, false)
	}

	r.Println("")
	reportOutcome(r, res)
}

// extractMarkdown outputs the run in markdown format.
func extractMarkdown(r *output.Renderer, res *engine.Result, preview []extract.Update) {
	r.Println("")
	r.Header(1, "Executive Updates")
	r.Println("")
	r.KeyValue("Input", res.Input)
	printSummary(r, res.Stats)

	if len(preview) > 0 {
		r.Println("")
		r.Header(2, "Preview")
		r.Println("")
		renderPreview(r.Out(), preview, true)
	}

	r.Println("")
	reportOutcome(r, res)
}

// extractJSON outputs the run as a JSON document.
func extractJSON(r *output.Renderer, res *engine.Result, preview []extract.Update) error {
	doc := output.ExtractOutput{
		RunID:   res.RunID,
		Input:   res.Input,
		Output:  res.Output,
		Written: res.Written,
		Message: resultMessage(res),
		Summary: res.Stats,
		Preview: preview,
	}
	if res.WriteErr != nil {
		doc.Error = res.WriteErr.Error()
	}
	return r.JSON(doc)
}

func printSummary(r *output.Renderer, s extract.Stats) {
	r.KeyValue("Source rows", s.SourceRows)
	r.KeyValue("Rows with updates", s.Annotated)
	r.KeyValue("Output rows", s.Updates)
	if s.InvalidIDs > 0 {
		r.KeyValue("Invalid identifiers", s.InvalidIDs)
	}
	if faults := s.ExtractFaults + s.CommentFaults; faults > 0 {
		r.KeyValue("Processing errors", faults)
	}
}

func reportOutcome(r *output.Renderer, res *engine.Result) {
	switch {
	case res.Written:
		r.Success(resultMessage(res))
	case res.WriteErr != nil:
		r.Error(resultMessage(res))
	default:
		r.Muted(noDataMessage)
	}
}

func renderPreview(w io.Writer, updates []extract.Update, markdown bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)

	columns := extract.Header()
	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, u := range updates {
		t.AppendRow(table.Row{u.ProjectID.String(), u.Date, u.Comment})
	}

	if markdown {
		t.RenderMarkdown()
		return
	}
	t.Render()
}
