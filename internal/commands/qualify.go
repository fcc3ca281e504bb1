package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/loanq-dev/qualifier/internal/config"
	"github.com/loanq-dev/qualifier/internal/display"
	"github.com/loanq-dev/qualifier/internal/history"
	"github.com/loanq-dev/qualifier/internal/model"
	"github.com/loanq-dev/qualifier/internal/prompt"
	"github.com/loanq-dev/qualifier/internal/qualify"
	"github.com/loanq-dev/qualifier/internal/ratesheet"
)

type qualifyOptions struct {
	applicant prompt.ApplicantInput
	output    string
	yes       bool
	noBanner  bool
}

func newQualifyCommand() *cobra.Command {
	var opts qualifyOptions

	cmd := &cobra.Command{
		Use:   "qualify",
		Short: "Find the loans an applicant qualifies for",
		Long: `Load a rate sheet, collect the applicant's financial details and list
every loan the applicant qualifies for. Values not given as flags are
prompted for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := configFrom(cmd.Context())
			log := loggerFrom(cmd.Context())

			p, closePrompter, err := newPrompter(cmd, cfg.DataDir, log)
			if err != nil {
				return err
			}
			defer closePrompter()

			return runQualify(cmd.OutOrStdout(), p, cfg, log, opts)
		},
	}

	cmd.Flags().String("rate-sheet", "", "path to the rate sheet CSV")
	cmd.Flags().Bool("history", false, "record this run in the history log")
	cmd.Flags().StringVar(&opts.applicant.CreditScore, "credit-score", "", "applicant credit score")
	cmd.Flags().StringVar(&opts.applicant.MonthlyDebt, "monthly-debt", "", "applicant monthly debt")
	cmd.Flags().StringVar(&opts.applicant.MonthlyIncome, "monthly-income", "", "applicant monthly income")
	cmd.Flags().StringVar(&opts.applicant.LoanAmount, "loan-amount", "", "requested loan amount")
	cmd.Flags().StringVar(&opts.applicant.HomeValue, "home-value", "", "home value")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "save qualifying loans to this CSV file (never overwrites)")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "answer yes to confirmation prompts")
	cmd.Flags().BoolVar(&opts.noBanner, "no-banner", false, "skip the welcome banner")

	return cmd
}

// newPrompter picks line editing for terminals and plain line reads for
// anything else. Rate sheets in dataDir are offered as completions.
func newPrompter(cmd *cobra.Command, dataDir string, log zerolog.Logger) (prompt.Prompter, func(), error) {
	in := cmd.InOrStdin()
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return prompt.NewLines(in, cmd.OutOrStdout()), func() {}, nil
	}

	var completions []string
	files, err := ratesheet.Scan(dataDir)
	if err != nil {
		log.Debug().Err(err).Str("data_dir", dataDir).Msg("no rate sheet completions")
	}
	for _, fi := range files {
		completions = append(completions, fi.Path)
	}

	rl, err := prompt.NewReadline(completions)
	if err != nil {
		return nil, nil, err
	}
	return rl, func() { _ = rl.Close() }, nil
}

func runQualify(w io.Writer, p prompt.Prompter, cfg *config.Config, log zerolog.Logger, opts qualifyOptions) error {
	if cfg.Banner && !opts.noBanner {
		display.Banner(w)
	}

	path := cfg.RateSheet
	if path == "" {
		answer, err := p.Text("Enter a file path to a rate-sheet (.csv):")
		if err != nil {
			return err
		}
		path = answer
	}
	if !ratesheet.Exists(path) {
		return fmt.Errorf("can't find this path: %s", path)
	}

	table, err := ratesheet.Load(path)
	if err != nil {
		return err
	}
	for _, ce := range ratesheet.Check(table) {
		log.Warn().Str("rate_sheet", path).Msg(ce.Error())
	}

	applicant, err := prompt.CollectApplicant(p, opts.applicant)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	log = log.With().Str("run_id", runID).Logger()

	res, err := qualify.New(log).FindQualifyingLoans(table, applicant)
	if err != nil {
		return err
	}

	display.Ratios(w, res.Ratios)
	display.Count(w, res.Table.Len())
	display.Loans(w, res.Table)

	output, err := saveQualifyingLoans(w, p, res.Table, opts)
	if err != nil {
		return err
	}

	if cfg.History.Enabled {
		entry := history.Entry{
			Timestamp:    time.Now().UTC(),
			RunID:        runID,
			RateSheet:    path,
			CreditScore:  applicant.CreditScore,
			LoanAmount:   applicant.LoanAmount,
			DebtToIncome: res.Ratios.DebtToIncome,
			LoanToValue:  res.Ratios.LoanToValue,
			Qualifying:   res.Table.Len(),
			Output:       output,
		}
		if err := history.Append(cfg.History.Path, []history.Entry{entry}); err != nil {
			log.Warn().Err(err).Msg("failed to record run history")
		}
	}
	return nil
}

// saveQualifyingLoans runs the save dialogue and returns the path written,
// or "" when nothing was saved.
func saveQualifyingLoans(w io.Writer, p prompt.Prompter, t model.LoanTable, opts qualifyOptions) (string, error) {
	if opts.output != "" {
		if t.Len() == 0 {
			fmt.Fprintln(w, "No qualifying loans to save.")
			return "", nil
		}
		if err := ratesheet.Save(opts.output, t); err != nil {
			return "", err
		}
		fmt.Fprintf(w, "Qualifying loans saved to %s\n", opts.output)
		return opts.output, nil
	}

	if !opts.yes {
		save, err := p.Confirm("Do you want to save the qualifying loans as a csv file?")
		if errors.Is(err, prompt.ErrAborted) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		if !save {
			return "", nil
		}
	}

	if t.Len() == 0 {
		fmt.Fprintln(w, "No qualifying loans to save. Good bye!")
		return "", nil
	}

	path, err := prompt.ChooseOutputPath(p, w, ratesheet.Exists)
	if errors.Is(err, prompt.ErrTooManyAttempts) {
		fmt.Fprintln(w, "Maximum attempts reached for creating a new file.")
		fmt.Fprintln(w, "Exiting. Please try again later.")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	if !opts.yes {
		proceed, err := p.Confirm(fmt.Sprintf("Output will be stored to %s. Proceed?", path))
		if err != nil {
			return "", err
		}
		if !proceed {
			fmt.Fprintln(w, "Output not saved to a csv file. Goodbye!")
			return "", nil
		}
	}

	if err := ratesheet.Save(path, t); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "Qualifying loans saved to %s\n", path)
	return path, nil
}
