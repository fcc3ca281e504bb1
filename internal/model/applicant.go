package model

import "github.com/shopspring/decimal"

// ApplicantProfile holds the applicant's financial information.
type ApplicantProfile struct {
	CreditScore   int
	MonthlyDebt   decimal.Decimal
	MonthlyIncome decimal.Decimal
	LoanAmount    decimal.Decimal // requested
	HomeValue     decimal.Decimal
}

// DerivedRatios are computed once per run from an ApplicantProfile.
// They are never rounded or clamped; rounding is for display only.
type DerivedRatios struct {
	DebtToIncome decimal.Decimal
	LoanToValue  decimal.Decimal
}
