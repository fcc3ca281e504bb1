// Package qualify narrows a rate sheet to the offers an applicant qualifies for.
package qualify

import (
	"github.com/shopspring/decimal"

	"github.com/loanq-dev/qualifier/internal/model"
)

// FilterMaxLoanSize keeps offers whose max loan amount covers the requested amount.
func FilterMaxLoanSize(requested decimal.Decimal, offers []model.LoanOffer) []model.LoanOffer {
	return keep(offers, func(o model.LoanOffer) bool {
		return o.MaxLoanAmount.GreaterThanOrEqual(requested)
	})
}

// FilterCreditScore keeps offers whose minimum credit score the applicant meets.
func FilterCreditScore(score int, offers []model.LoanOffer) []model.LoanOffer {
	return keep(offers, func(o model.LoanOffer) bool {
		return score >= o.MinCreditScore
	})
}

// FilterDebtToIncome keeps offers that allow the applicant's debt-to-income ratio.
func FilterDebtToIncome(ratio decimal.Decimal, offers []model.LoanOffer) []model.LoanOffer {
	return keep(offers, func(o model.LoanOffer) bool {
		return ratio.LessThanOrEqual(o.MaxDTI)
	})
}

// FilterLoanToValue keeps offers that allow the applicant's loan-to-value ratio.
func FilterLoanToValue(ratio decimal.Decimal, offers []model.LoanOffer) []model.LoanOffer {
	return keep(offers, func(o model.LoanOffer) bool {
		return ratio.LessThanOrEqual(o.MaxLTV)
	})
}

// keep returns a new slice of the offers matching pred, in input order.
func keep(offers []model.LoanOffer, pred func(model.LoanOffer) bool) []model.LoanOffer {
	out := make([]model.LoanOffer, 0, len(offers))
	for _, o := range offers {
		if pred(o) {
			out = append(out, o)
		}
	}
	return out
}
