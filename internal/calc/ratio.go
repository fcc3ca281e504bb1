// Package calc computes the ratios lenders use to qualify an applicant.
package calc

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/loanq-dev/qualifier/internal/model"
)

// ErrZeroDivisor is returned when a ratio's denominator is zero.
var ErrZeroDivisor = errors.New("division by zero")

// MonthlyDebtRatio returns debt / income.
func MonthlyDebtRatio(debt, income decimal.Decimal) (decimal.Decimal, error) {
	if income.IsZero() {
		return decimal.Zero, fmt.Errorf("monthly debt ratio: income is zero: %w", ErrZeroDivisor)
	}
	return debt.Div(income), nil
}

// LoanToValueRatio returns loanAmount / homeValue.
func LoanToValueRatio(loanAmount, homeValue decimal.Decimal) (decimal.Decimal, error) {
	if homeValue.IsZero() {
		return decimal.Zero, fmt.Errorf("loan to value ratio: home value is zero: %w", ErrZeroDivisor)
	}
	return loanAmount.Div(homeValue), nil
}

// Derive computes both ratios for an applicant.
func Derive(p model.ApplicantProfile) (model.DerivedRatios, error) {
	dti, err := MonthlyDebtRatio(p.MonthlyDebt, p.MonthlyIncome)
	if err != nil {
		return model.DerivedRatios{}, err
	}
	ltv, err := LoanToValueRatio(p.LoanAmount, p.HomeValue)
	if err != nil {
		return model.DerivedRatios{}, err
	}
	return model.DerivedRatios{DebtToIncome: dti, LoanToValue: ltv}, nil
}
