package model

import "github.com/shopspring/decimal"

// LoanOffer is one row of a rate sheet.
type LoanOffer struct {
	Lender         string
	MaxLoanAmount  decimal.Decimal
	MaxLTV         decimal.Decimal // max loan-to-value, 0-1
	MaxDTI         decimal.Decimal // max debt-to-income, 0-1
	MinCreditScore int
	InterestRate   decimal.Decimal

	// Raw is the CSV record the offer was parsed from, including any
	// columns after the six fixed ones. Nil for offers built in code.
	Raw []string
}

// LoanTable is a rate sheet: its header row plus offers in file order.
type LoanTable struct {
	Header []string
	Offers []LoanOffer
}

// Len returns the number of offers.
func (t LoanTable) Len() int { return len(t.Offers) }

// WithOffers returns a table sharing t's header with a different offer set.
func (t LoanTable) WithOffers(offers []LoanOffer) LoanTable {
	return LoanTable{Header: t.Header, Offers: offers}
}
