// Package extract turns free-text project descriptions into executive updates.
//
// A description may carry any number of inline annotations of the form
//
//	EX: 2024.01.15 Budget approved
//
// Each annotation becomes one output row carrying the project's identifier,
// the date token and the cleaned comment. A project without annotations still
// yields a single row with both annotation fields set to [Null].
//
// The stages run in order: [NormalizeColumns] resolves the required columns,
// [ParseProjectID] cleans the identifier, [ExtractAnnotations] scans the
// description, [Expand] fans a row out into updates and [CleanComment] tidies
// each comment. [Pipeline] wires them together over a whole table.
package extract

// Column names of the source sheet.
const (
	IDColumn          = "PROJECT_DISPLAY_ID"
	DescriptionColumn = "PROJECT_DESCRIPTION"
)

// Column names added by extraction.
const (
	DateColumn    = "Date"
	CommentColumn = "Executive Comment"
)

// Null is written for a date or comment that is missing.
const Null = "NULL"

// Header returns the fixed column order of the output file.
func Header() []string {
	return []string{IDColumn, DateColumn, CommentColumn}
}
