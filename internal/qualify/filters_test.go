package qualify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loanq-dev/qualifier/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func offer(lender, maxAmount, ltv, dti string, score int, rate string) model.LoanOffer {
	return model.LoanOffer{
		Lender:         lender,
		MaxLoanAmount:  dec(maxAmount),
		MaxLTV:         dec(ltv),
		MaxDTI:         dec(dti),
		MinCreditScore: score,
		InterestRate:   dec(rate),
	}
}

func testOffers() []model.LoanOffer {
	return []model.LoanOffer{
		offer("Bank of Big - Starter Plus", "300000", "0.85", "0.39", 700, "4.35"),
		offer("West Central Credit Union - Starter Plus", "300000", "0.8", "0.44", 650, "3.9"),
		offer("FHA Fredie Mac - Starter Plus", "300000", "0.85", "0.45", 550, "4.35"),
		offer("FHA Fannie Mae - Starter Plus", "200000", "0.9", "0.37", 630, "4.2"),
		offer("General MBS Partners - Starter Plus", "300000", "0.85", "0.36", 670, "4.05"),
		offer("Bank of Fintech - Starter Plus", "100000", "0.85", "0.47", 610, "4.5"),
		offer("iBank - Starter Plus", "300000", "0.9", "0.4", 620, "3.9"),
		offer("Goldman MBS - Starter Plus", "100000", "0.8", "0.43", 600, "4.35"),
		offer("Prosper MBS - Starter Plus", "100000", "0.9", "0.38", 640, "3.75"),
		offer("Developers Credit Union - Starter Plus", "200000", "0.85", "0.46", 640, "4.2"),
		offer("Bank of Stodge & Stiff - Starter Plus", "100000", "0.8", "0.35", 680, "4.35"),
	}
}

func lenders(offers []model.LoanOffer) []string {
	names := make([]string, len(offers))
	for i, o := range offers {
		names[i] = o.Lender
	}
	return names
}

// assertOrderedSubset checks that got is a subsequence of all.
func assertOrderedSubset(t *testing.T, all, got []model.LoanOffer) {
	t.Helper()
	require.LessOrEqual(t, len(got), len(all))
	j := 0
	for _, o := range got {
		for j < len(all) && all[j].Lender != o.Lender {
			j++
		}
		require.Less(t, j, len(all), "%q is not in order or not in the input", o.Lender)
		j++
	}
}

func TestFilterMaxLoanSize(t *testing.T) {
	got := FilterMaxLoanSize(dec("200000"), testOffers())
	assert.Equal(t, []string{
		"Bank of Big - Starter Plus",
		"West Central Credit Union - Starter Plus",
		"FHA Fredie Mac - Starter Plus",
		"FHA Fannie Mae - Starter Plus",
		"General MBS Partners - Starter Plus",
		"iBank - Starter Plus",
		"Developers Credit Union - Starter Plus",
	}, lenders(got))
}

func TestFilterMaxLoanSize_BoundaryInclusive(t *testing.T) {
	offers := []model.LoanOffer{offer("Exact", "250000", "0.8", "0.4", 600, "4")}
	assert.Len(t, FilterMaxLoanSize(dec("250000"), offers), 1)
	assert.Empty(t, FilterMaxLoanSize(dec("250000.01"), offers))
}

func TestFilterCreditScore(t *testing.T) {
	got := FilterCreditScore(640, testOffers())
	assert.Equal(t, []string{
		"FHA Fredie Mac - Starter Plus",
		"FHA Fannie Mae - Starter Plus",
		"Bank of Fintech - Starter Plus",
		"iBank - Starter Plus",
		"Goldman MBS - Starter Plus",
		"Prosper MBS - Starter Plus",
		"Developers Credit Union - Starter Plus",
	}, lenders(got))
}

func TestFilterDebtToIncome(t *testing.T) {
	got := FilterDebtToIncome(dec("0.44"), testOffers())
	assert.Equal(t, []string{
		"West Central Credit Union - Starter Plus",
		"FHA Fredie Mac - Starter Plus",
		"Bank of Fintech - Starter Plus",
		"Developers Credit Union - Starter Plus",
	}, lenders(got))
}

func TestFilterLoanToValue(t *testing.T) {
	got := FilterLoanToValue(dec("0.86"), testOffers())
	assert.Equal(t, []string{
		"FHA Fannie Mae - Starter Plus",
		"iBank - Starter Plus",
		"Prosper MBS - Starter Plus",
	}, lenders(got))
}

func TestFilters_EmptyInput(t *testing.T) {
	assert.Empty(t, FilterMaxLoanSize(dec("1"), nil))
	assert.Empty(t, FilterCreditScore(800, nil))
	assert.Empty(t, FilterDebtToIncome(dec("0.1"), nil))
	assert.Empty(t, FilterLoanToValue(dec("0.1"), nil))
}

func TestFilters_SubsetAndOrder(t *testing.T) {
	all := testOffers()
	results := map[string][]model.LoanOffer{
		"max_loan_size":  FilterMaxLoanSize(dec("150000"), all),
		"credit_score":   FilterCreditScore(660, all),
		"debt_to_income": FilterDebtToIncome(dec("0.4"), all),
		"loan_to_value":  FilterLoanToValue(dec("0.82"), all),
	}
	for name, got := range results {
		t.Run(name, func(t *testing.T) {
			assertOrderedSubset(t, all, got)
		})
	}
}

func TestFilters_DoNotMutateInput(t *testing.T) {
	all := testOffers()
	before := lenders(all)

	_ = FilterCreditScore(700, all)
	_ = FilterMaxLoanSize(dec("250000"), all)

	assert.Equal(t, before, lenders(all))
}

func applyAll(offers []model.LoanOffer, order []int, amount decimal.Decimal, score int, dti, ltv decimal.Decimal) []model.LoanOffer {
	filters := []func([]model.LoanOffer) []model.LoanOffer{
		func(o []model.LoanOffer) []model.LoanOffer { return FilterMaxLoanSize(amount, o) },
		func(o []model.LoanOffer) []model.LoanOffer { return FilterCreditScore(score, o) },
		func(o []model.LoanOffer) []model.LoanOffer { return FilterDebtToIncome(dti, o) },
		func(o []model.LoanOffer) []model.LoanOffer { return FilterLoanToValue(ltv, o) },
	}
	for _, i := range order {
		offers = filters[i](offers)
	}
	return offers
}

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for pos := 0; pos <= len(p); pos++ {
			perm := make([]int, 0, n)
			perm = append(perm, p[:pos]...)
			perm = append(perm, n-1)
			perm = append(perm, p[pos:]...)
			out = append(out, perm)
		}
	}
	return out
}

func TestFilters_OrderIndependent(t *testing.T) {
	amount, score, dti, ltv := dec("100000"), 640, dec("0.4"), dec("0.82")
	want := lenders(applyAll(testOffers(), []int{0, 1, 2, 3}, amount, score, dti, ltv))
	require.NotEmpty(t, want)

	perms := permutations(4)
	require.Len(t, perms, 24)
	for _, order := range perms {
		got := lenders(applyAll(testOffers(), order, amount, score, dti, ltv))
		assert.Equal(t, want, got, "order %v", order)
	}
}

func TestFilters_Idempotent(t *testing.T) {
	amount, score, dti, ltv := dec("100000"), 640, dec("0.4"), dec("0.82")
	order := []int{0, 1, 2, 3}
	once := applyAll(testOffers(), order, amount, score, dti, ltv)
	twice := applyAll(once, order, amount, score, dti, ltv)
	assert.Equal(t, lenders(once), lenders(twice))
}
