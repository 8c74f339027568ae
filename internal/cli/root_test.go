package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/exupdate/internal/cli/config"
	"github.com/leapstack-labs/exupdate/internal/cli/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wantUpdates = `PROJECT_DISPLAY_ID,Date,Executive Comment
101,2024.01.15,Budget approved
101,2024.02.01,On track
102,NULL,NULL
,2024.03.10,Vendor selected
`

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestExtract_CSV(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	stdout, stderr, err := runCLI(t, "extract", "projects.csv", "-o", "markdown")
	require.NoError(t, err)

	assert.Contains(t, stdout, "File projects.csv loaded successfully.")
	assert.Contains(t, stdout, "Data successfully extracted to Executive Updates.csv")
	testutil.AssertNoANSI(t, stdout)
	assert.Contains(t, stderr, "invalid identifier replaced with NULL")
	assert.Contains(t, stderr, "value=abc")

	data, err := os.ReadFile(filepath.Join(dir, "Executive Updates.csv"))
	require.NoError(t, err)
	assert.Equal(t, wantUpdates, string(data))
}

func TestExtract_XLSX_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	stdout, _, err := runCLI(t, "extract", "projects.xlsx",
		"--sheet", "Projects", "--out-file", "updates.csv", "--preview", "2", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Written bool   `json:"written"`
		Output  string `json:"output"`
		Message string `json:"message"`
		Summary struct {
			SourceRows int `json:"source_rows"`
			Updates    int `json:"updates"`
			Annotated  int `json:"annotated_rows"`
			InvalidIDs int `json:"invalid_ids"`
		} `json:"summary"`
		Preview []map[string]any `json:"preview"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc), "stdout must be a single JSON document: %s", stdout)

	assert.True(t, doc.Written)
	assert.Equal(t, "updates.csv", doc.Output)
	assert.Equal(t, "Data successfully extracted to updates.csv", doc.Message)
	assert.Equal(t, 3, doc.Summary.SourceRows)
	assert.Equal(t, 4, doc.Summary.Updates)
	assert.Equal(t, 2, doc.Summary.Annotated)
	assert.Equal(t, 1, doc.Summary.InvalidIDs)
	require.Len(t, doc.Preview, 2)
	assert.Equal(t, "2024.02.01", doc.Preview[1]["date"])

	data, err := os.ReadFile(filepath.Join(dir, "updates.csv"))
	require.NoError(t, err)
	assert.Equal(t, wantUpdates, string(data))
}

func TestExtract_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.WriteCSV(t, filepath.Join(dir, "bad.csv"),
		[]string{"PROJECT_DISPLAY_ID", "NOTES"}, [][]string{{"1", "EX: 2024.01.01 x"}})

	_, _, err := runCLI(t, "extract", "bad.csv", "-o", "markdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
	assert.Contains(t, err.Error(), "PROJECT_DESCRIPTION")

	_, statErr := os.Stat(filepath.Join(dir, "Executive Updates.csv"))
	assert.True(t, os.IsNotExist(statErr), "no output file is written")
}

func TestExtract_MissingInput(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := runCLI(t, "extract", "nope.csv", "-o", "markdown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading nope.csv")
}

func TestExtract_NoData(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.csv"),
		[]byte("PROJECT_DISPLAY_ID,PROJECT_DESCRIPTION\n"), 0o600))

	stdout, _, err := runCLI(t, "extract", "empty.csv", "-o", "markdown")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No valid data to save. Check the input file.")

	_, statErr := os.Stat(filepath.Join(dir, "Executive Updates.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtract_WriteFault(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	_, stderr, err := runCLI(t, "extract", "projects.csv", "-o", "markdown",
		"--out-file", filepath.Join("missing", "dir", "out.csv"))
	require.NoError(t, err, "a failed save is reported, not returned")
	assert.Contains(t, stderr, "Could not save the file.")
}

func TestExtract_InvalidOutputMode(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Chdir(dir)

	_, _, err := runCLI(t, "extract", "projects.csv", "-o", "html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output mode")
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "exupdate.yaml"),
		[]byte("sheet: Projects\nid_column: Ref\n"), 0o600))

	stdout, _, err := runCLI(t, "config", "-o", "markdown")
	require.NoError(t, err)

	testutil.AssertValidMarkdown(t, stdout)
	assert.Contains(t, stdout, "**Config file:** exupdate.yaml")
	assert.Contains(t, stdout, "sheet: Projects")
	assert.Contains(t, stdout, "id_column: Ref")
	assert.Contains(t, stdout, "description_column: PROJECT_DESCRIPTION")
}

func TestConfigCommand_JSON(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := runCLI(t, "config", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		ConfigFile string         `json:"config_file"`
		Config     map[string]any `json:"config"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Empty(t, doc.ConfigFile)
	assert.Equal(t, "Executive Updates.csv", doc.Config["out_file"])
	assert.Equal(t, "json", doc.Config["output"])
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := runCLI(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "exupdate "+Version)
}
