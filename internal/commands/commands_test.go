package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/loanq-dev/qualifier/internal/commands"
	"github.com/loanq-dev/qualifier/internal/ratesheet"
)

// runQualifier executes the CLI in-process with stdin as scripted input and
// returns what it wrote to stdout.
func runQualifier(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// workspace switches into an empty directory and writes the sample rate
// sheet there, returning its path.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "rates.csv")
	require.NoError(t, os.WriteFile(path, ratesheet.SampleCSV(), 0o644))
	return path
}

// applicantArgs qualifies for ten offers on the sample sheet.
func applicantArgs(extra ...string) []string {
	args := []string{
		"qualify", "--no-banner",
		"--credit-score", "750",
		"--monthly-debt", "1000",
		"--monthly-income", "5000",
		"--loan-amount", "300000",
		"--home-value", "400000",
	}
	return append(args, extra...)
}
