package ratesheet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loanq-dev/qualifier/internal/model"
)

// CheckError describes a suspicious value in a rate sheet row.
type CheckError struct {
	Row         int // 1-based, header is row 1
	Lender      string
	Description string
}

func (e CheckError) Error() string {
	return fmt.Sprintf("row %d [%s]: %s", e.Row, e.Lender, e.Description)
}

// Check reports values no lender would publish: a blank lender, a
// non-positive max amount, ratio caps outside [0, 1], or negative scores
// and rates. Qualification does not depend on it.
func Check(t model.LoanTable) []CheckError {
	var errs []CheckError
	one := decimal.NewFromInt(1)

	for i, o := range t.Offers {
		row := i + 2
		add := func(format string, args ...any) {
			errs = append(errs, CheckError{Row: row, Lender: o.Lender, Description: fmt.Sprintf(format, args...)})
		}

		if strings.TrimSpace(o.Lender) == "" {
			add("lender name is blank")
		}
		if !o.MaxLoanAmount.IsPositive() {
			add("max loan amount %s is not positive", o.MaxLoanAmount)
		}
		if o.MaxLTV.IsNegative() || o.MaxLTV.GreaterThan(one) {
			add("max LTV %s is outside [0, 1]", o.MaxLTV)
		}
		if o.MaxDTI.IsNegative() || o.MaxDTI.GreaterThan(one) {
			add("max DTI %s is outside [0, 1]", o.MaxDTI)
		}
		if o.MinCreditScore < 0 {
			add("min credit score %d is negative", o.MinCreditScore)
		}
		if o.InterestRate.IsNegative() {
			add("interest rate %s is negative", o.InterestRate)
		}
	}
	return errs
}
