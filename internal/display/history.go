package display

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/loanq-dev/qualifier/internal/history"
	"github.com/loanq-dev/qualifier/internal/ratesheet"
)

// History renders past qualification runs.
func History(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No qualification runs recorded.")
		return
	}

	tw := newTable(w)
	tw.AppendHeader(table.Row{"When", "Rate Sheet", "Credit Score", "Loan", "DTI", "LTV", "Qualifying", "Saved To"})
	for _, e := range entries {
		tw.AppendRow(table.Row{
			e.Timestamp.Local().Format(time.DateTime),
			e.RateSheet,
			strconv.Itoa(e.CreditScore),
			Money(e.LoanAmount),
			e.DebtToIncome.StringFixed(2),
			e.LoanToValue.StringFixed(2),
			strconv.Itoa(e.Qualifying),
			e.Output,
		})
	}
	tw.Render()
}

// SheetSummary is one line of the rate sheet listing.
type SheetSummary struct {
	File     ratesheet.FileInfo
	Offers   int
	Warnings []ratesheet.CheckError
	Err      error // set when the sheet could not be read
}

// Sheets renders the rate sheets found in a data directory, followed by any
// warnings about their contents.
func Sheets(w io.Writer, sheets []SheetSummary) {
	if len(sheets) == 0 {
		fmt.Fprintln(w, "No rate sheets found.")
		return
	}

	tw := newTable(w)
	tw.AppendHeader(table.Row{"Rate Sheet", "Size", "Offers", "Status"})
	for _, s := range sheets {
		status := "ok"
		offers := strconv.Itoa(s.Offers)
		switch {
		case s.Err != nil:
			status = "unreadable"
			offers = "-"
		case len(s.Warnings) > 0:
			status = fmt.Sprintf("%d warnings", len(s.Warnings))
		}
		tw.AppendRow(table.Row{s.File.Name, strconv.FormatInt(s.File.Size, 10), offers, status})
	}
	tw.Render()

	for _, s := range sheets {
		if s.Err != nil {
			fmt.Fprintf(w, "%s: %v\n", s.File.Name, s.Err)
		}
		for _, warn := range s.Warnings {
			fmt.Fprintf(w, "%s: %s\n", s.File.Name, warn)
		}
	}
}
