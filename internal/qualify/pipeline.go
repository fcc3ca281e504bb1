package qualify

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/loanq-dev/qualifier/internal/calc"
	"github.com/loanq-dev/qualifier/internal/model"
)

// Result is the outcome of a qualification run.
type Result struct {
	Table  model.LoanTable // qualifying offers under the input header
	Ratios model.DerivedRatios
}

// stage is one step of the pipeline.
type stage struct {
	name  string
	apply func([]model.LoanOffer) []model.LoanOffer
}

// Qualifier runs the qualification pipeline and logs each stage.
type Qualifier struct {
	log zerolog.Logger
}

// New creates a Qualifier that logs to log.
func New(log zerolog.Logger) *Qualifier {
	return &Qualifier{log: log.With().Str("component", "qualify").Logger()}
}

// FindQualifyingLoans runs the pipeline with logging disabled.
func FindQualifyingLoans(table model.LoanTable, applicant model.ApplicantProfile) (Result, error) {
	return New(zerolog.Nop()).FindQualifyingLoans(table, applicant)
}

// FindQualifyingLoans derives the applicant's ratios and applies the four
// filters in a fixed order: loan size, credit score, debt-to-income,
// loan-to-value. An empty result is not an error.
func (q *Qualifier) FindQualifyingLoans(table model.LoanTable, applicant model.ApplicantProfile) (Result, error) {
	ratios, err := calc.Derive(applicant)
	if err != nil {
		return Result{}, fmt.Errorf("deriving ratios: %w", err)
	}

	q.log.Debug().
		Str("debt_to_income", ratios.DebtToIncome.String()).
		Str("loan_to_value", ratios.LoanToValue.String()).
		Msg("derived ratios")

	stages := []stage{
		{"max_loan_size", func(o []model.LoanOffer) []model.LoanOffer { return FilterMaxLoanSize(applicant.LoanAmount, o) }},
		{"credit_score", func(o []model.LoanOffer) []model.LoanOffer { return FilterCreditScore(applicant.CreditScore, o) }},
		{"debt_to_income", func(o []model.LoanOffer) []model.LoanOffer { return FilterDebtToIncome(ratios.DebtToIncome, o) }},
		{"loan_to_value", func(o []model.LoanOffer) []model.LoanOffer { return FilterLoanToValue(ratios.LoanToValue, o) }},
	}

	offers := table.Offers
	for _, s := range stages {
		before := len(offers)
		offers = s.apply(offers)
		q.log.Debug().
			Str("filter", s.name).
			Int("before", before).
			Int("after", len(offers)).
			Msg("applied filter")
	}

	q.log.Info().
		Int("offers", table.Len()).
		Int("qualifying", len(offers)).
		Msg("qualification complete")

	return Result{Table: table.WithOffers(offers), Ratios: ratios}, nil
}
