package commands

import (
	"github.com/spf13/cobra"

	"github.com/loanq-dev/qualifier/internal/display"
	"github.com/loanq-dev/qualifier/internal/history"
)

func newHistoryCommand() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past qualification runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())

			entries, err := history.Read(cfg.History.Path)
			if err != nil {
				return err
			}
			if last > 0 && len(entries) > last {
				entries = entries[len(entries)-last:]
			}

			display.History(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&last, "last", "n", 0, "show only the most recent N runs")

	return cmd
}
