// Package display renders qualifier output for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/loanq-dev/qualifier/internal/model"
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Border(lipgloss.RoundedBorder()).
	Padding(1, 4).
	Align(lipgloss.Center)

// Banner writes the welcome banner.
func Banner(w io.Writer) {
	fmt.Fprintln(w, bannerStyle.Render("Welcome to\n\nLoan Qualifier App!"))
}

// Ratios writes the applicant's ratios rounded to two places.
func Ratios(w io.Writer, r model.DerivedRatios) {
	fmt.Fprintf(w, "The monthly debt to income ratio is %s\n", r.DebtToIncome.StringFixed(2))
	fmt.Fprintf(w, "The loan to value ratio is %s.\n", r.LoanToValue.StringFixed(2))
}

// Count writes how many loans qualified.
func Count(w io.Writer, n int) {
	fmt.Fprintf(w, "Found %d qualifying loans\n", n)
}

// Loans renders a rate sheet as a table under its own header.
func Loans(w io.Writer, t model.LoanTable) {
	if t.Len() == 0 {
		return
	}

	tw := newTable(w)

	header := make(table.Row, len(t.Header))
	for i, col := range t.Header {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, o := range t.Offers {
		tw.AppendRow(offerRow(o, len(t.Header)))
	}
	tw.Render()
}

// newTable returns a light-styled table writer that keeps header text as given.
func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.Style().Format.Header = text.FormatDefault
	return tw
}

// offerRow formats the six known columns and passes extra raw columns through.
func offerRow(o model.LoanOffer, width int) table.Row {
	row := make(table.Row, 0, width)
	row = append(row,
		o.Lender,
		Money(o.MaxLoanAmount),
		o.MaxLTV.String(),
		o.MaxDTI.String(),
		strconv.Itoa(o.MinCreditScore),
		o.InterestRate.String()+"%",
	)
	for i := len(row); i < width && i < len(o.Raw); i++ {
		row = append(row, o.Raw[i])
	}
	return row
}

var printer = message.NewPrinter(language.English)

// Money formats an amount with thousands separators, e.g. $250,000 or $1,234.50.
func Money(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return printer.Sprintf("$%d", d.IntPart())
	}
	return printer.Sprintf("$%.2f", d.InexactFloat64())
}
