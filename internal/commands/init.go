package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/loanq-dev/qualifier/internal/config"
	"github.com/loanq-dev/qualifier/internal/ratesheet"
)

// sampleSheetName is the rate sheet written by init.
const sampleSheetName = "daily_rate_sheet.csv"

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a qualifier workspace with a sample rate sheet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir)
		},
	}

	return cmd
}

func runInit(w io.Writer, dir string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if ratesheet.Exists(cfgPath) {
		return fmt.Errorf("%s already exists", cfgPath)
	}

	// Create directory structure.
	for _, d := range []string{"data", "results", "logs"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write the sample rate sheet unless one is already there.
	sheet := filepath.Join(dir, "data", sampleSheetName)
	if !ratesheet.Exists(sheet) {
		if err := os.WriteFile(sheet, ratesheet.SampleCSV(), 0o644); err != nil {
			return fmt.Errorf("writing sample rate sheet: %w", err)
		}
	}

	// Write qualifier.yaml. Paths stay relative so the workspace can move.
	cfg := config.Default()
	cfg.RateSheet = filepath.Join("data", sampleSheetName)
	cfg.History.Enabled = true
	if err := config.Save(cfgPath, cfg); err != nil {
		return err
	}

	fmt.Fprintf(w, "Initialized qualifier workspace at %s\n", dir)
	return nil
}
