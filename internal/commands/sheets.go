package commands

import (
	"github.com/spf13/cobra"

	"github.com/loanq-dev/qualifier/internal/display"
	"github.com/loanq-dev/qualifier/internal/ratesheet"
)

func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets",
		Short: "List rate sheets in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			log := loggerFrom(cmd.Context())

			files, err := ratesheet.Scan(cfg.DataDir)
			if err != nil {
				return err
			}

			summaries := make([]display.SheetSummary, 0, len(files))
			for _, f := range files {
				s := display.SheetSummary{File: f}
				t, err := ratesheet.Load(f.Path)
				if err != nil {
					log.Debug().Err(err).Str("rate_sheet", f.Path).Msg("unreadable rate sheet")
					s.Err = err
				} else {
					s.Offers = t.Len()
					s.Warnings = ratesheet.Check(t)
				}
				summaries = append(summaries, s)
			}

			display.Sheets(cmd.OutOrStdout(), summaries)
			return nil
		},
	}
}
