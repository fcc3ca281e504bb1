package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanq-dev/qualifier/internal/config"
	"github.com/loanq-dev/qualifier/internal/history"
	"github.com/loanq-dev/qualifier/internal/ratesheet"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runQualifier(t, "", "init", dir)
	require.NoError(t, err)

	for _, d := range []string{"data", "results", "logs"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	sheet, err := ratesheet.Load(filepath.Join(dir, "data", "daily_rate_sheet.csv"))
	require.NoError(t, err)
	assert.Equal(t, 22, sheet.Len())
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runQualifier(t, "", "init", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "rate_sheet: data/daily_rate_sheet.csv")
	assert.Contains(t, contents, "data_dir: data")
	assert.Contains(t, contents, "enabled: true")
}

func TestInit_RefusesExistingWorkspace(t *testing.T) {
	dir := t.TempDir()
	_, err := runQualifier(t, "", "init", dir)
	require.NoError(t, err)

	_, err = runQualifier(t, "", "init", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_WorkspaceIsUsable(t *testing.T) {
	dir := t.TempDir()
	_, err := runQualifier(t, "", "init", dir)
	require.NoError(t, err)
	chdir(t, dir)

	stdout, err := runQualifier(t, "", applicantArgs()...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Found 10 qualifying loans")

	entries, err := history.Read(filepath.Join(dir, "logs", "qualifier-history.csv"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(dir, "data", "daily_rate_sheet.csv"), entries[0].RateSheet)
	assert.Empty(t, entries[0].Output)
}
