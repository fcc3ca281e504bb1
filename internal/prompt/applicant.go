package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loanq-dev/qualifier/internal/model"
)

// ApplicantInput holds raw applicant answers. Blank fields are prompted for.
type ApplicantInput struct {
	CreditScore   string
	MonthlyDebt   string
	MonthlyIncome string
	LoanAmount    string
	HomeValue     string
}

// CollectApplicant asks for every field of preset that is blank, then parses
// the answers into a profile.
func CollectApplicant(p Prompter, preset ApplicantInput) (model.ApplicantProfile, error) {
	in := preset
	questions := []struct {
		text   string
		answer *string
	}{
		{"What's your credit score?", &in.CreditScore},
		{"What's your current amount of monthly debt?", &in.MonthlyDebt},
		{"What's your total monthly income?", &in.MonthlyIncome},
		{"What's your desired loan amount?", &in.LoanAmount},
		{"What's your home value?", &in.HomeValue},
	}

	for _, q := range questions {
		if strings.TrimSpace(*q.answer) != "" {
			continue
		}
		answer, err := p.Text(q.text)
		if err != nil {
			return model.ApplicantProfile{}, err
		}
		*q.answer = answer
	}

	return ParseApplicant(in)
}

// ParseApplicant coerces raw answers: the credit score to an integer, the
// amounts to decimals. Values are not range checked.
func ParseApplicant(in ApplicantInput) (model.ApplicantProfile, error) {
	score, err := strconv.Atoi(strings.TrimSpace(in.CreditScore))
	if err != nil {
		return model.ApplicantProfile{}, fmt.Errorf("parsing credit score %q: %w", in.CreditScore, err)
	}

	debt, err := parseAmount("monthly debt", in.MonthlyDebt)
	if err != nil {
		return model.ApplicantProfile{}, err
	}
	income, err := parseAmount("monthly income", in.MonthlyIncome)
	if err != nil {
		return model.ApplicantProfile{}, err
	}
	loan, err := parseAmount("loan amount", in.LoanAmount)
	if err != nil {
		return model.ApplicantProfile{}, err
	}
	home, err := parseAmount("home value", in.HomeValue)
	if err != nil {
		return model.ApplicantProfile{}, err
	}

	return model.ApplicantProfile{
		CreditScore:   score,
		MonthlyDebt:   debt,
		MonthlyIncome: income,
		LoanAmount:    loan,
		HomeValue:     home,
	}, nil
}

func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
