package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/exupdate/internal/extract"
	"github.com/leapstack-labs/exupdate/internal/source"
	"github.com/leapstack-labs/exupdate/internal/table"
	"github.com/leapstack-labs/exupdate/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEngine_Run(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "projects.csv", ` project_display_id ,Owner,Project_Description
101,ana,"EX:2024.01.15 -= Delayed EX:2024.02.01 On track"
abc,ben,EX:2024.03.01 Budget approved
103,cy,
`)
	output := filepath.Join(dir, "Executive Updates.csv")

	var loaded *table.Table
	logger, logs := testutil.NewCaptureLogger()
	eng := New(Config{
		OutputPath: output,
		Logger:     logger,
		OnLoad:     func(t *table.Table) { loaded = t },
	})

	res, err := eng.Run(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, loaded)
	assert.Equal(t, "projects.csv", loaded.Name)

	assert.True(t, res.Written)
	assert.NoError(t, res.WriteErr)
	assert.Equal(t, eng.RunID(), res.RunID)
	assert.Equal(t, "projects.csv", res.Input)
	assert.Equal(t, output, res.Output)
	assert.Equal(t, extract.Stats{SourceRows: 3, Updates: 4, Annotated: 2, InvalidIDs: 1}, res.Stats)

	got, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "PROJECT_DISPLAY_ID,Date,Executive Comment\n"+
		"101,2024.01.15,Delayed\n"+
		"101,2024.02.01,On track\n"+
		",2024.03.01,Budget approved\n"+
		"103,NULL,NULL\n", string(got))

	assert.Contains(t, logs.String(), "run_id="+eng.RunID())
	assert.Contains(t, logs.String(), "value=abc")
}

func TestEngine_Run_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "bad.csv", "PROJECT_DISPLAY_ID,Name\n1,x\n")
	output := filepath.Join(dir, "out.csv")

	res, err := New(Config{OutputPath: output}).Run(context.Background(), input)
	assert.Nil(t, res)

	var mce *extract.MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"PROJECT_DESCRIPTION"}, mce.Missing)
	assert.Equal(t, []string{"PROJECT_DISPLAY_ID", "Name"}, mce.Available)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "no output on fatal error")
}

func TestEngine_Run_UnreadableInput(t *testing.T) {
	dir := t.TempDir()

	_, err := New(Config{}).Run(context.Background(), filepath.Join(dir, "missing.csv"))
	require.Error(t, err)

	_, err = New(Config{}).Run(context.Background(), writeInput(t, dir, "notes.txt", "hello"))
	var ufe *source.UnknownFormatError
	assert.True(t, errors.As(err, &ufe))
}

func TestEngine_Run_NoRows(t *testing.T) {
	dir := t.TempDir()
	csvInput := writeInput(t, dir, "header.csv", "PROJECT_DISPLAY_ID,PROJECT_DESCRIPTION\n")
	output := filepath.Join(dir, "out.csv")

	res, err := New(Config{OutputPath: output}).Run(context.Background(), csvInput)
	require.NoError(t, err)
	assert.False(t, res.Written)
	assert.NoError(t, res.WriteErr)
	assert.Empty(t, res.Updates)

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEngine_Run_WriteFault(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "projects.csv", "PROJECT_DISPLAY_ID,PROJECT_DESCRIPTION\n1,EX:2024.01.15 ok\n")
	output := filepath.Join(dir, "no-such-dir", "out.csv")

	res, err := New(Config{OutputPath: output}).Run(context.Background(), input)
	require.NoError(t, err, "write faults do not fail the run")
	assert.False(t, res.Written)
	assert.Error(t, res.WriteErr)
	assert.Len(t, res.Updates, 1)
}

func TestNew_Defaults(t *testing.T) {
	eng := New(Config{})
	assert.Equal(t, "Executive Updates.csv", eng.OutputPath())
	assert.NotEmpty(t, eng.RunID())
	assert.NotEqual(t, eng.RunID(), New(Config{}).RunID())
}
