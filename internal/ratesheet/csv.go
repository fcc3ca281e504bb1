// Package ratesheet reads and writes lender rate sheets.
package ratesheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/loanq-dev/qualifier/internal/model"
)

// Header is the default rate sheet header, used when a table has none.
const Header = "Lender,Max Loan Amount,Max LTV,Max DTI,Min Credit Score,Interest Rate"

// Rate sheets may carry extra columns after these; they are preserved.
const (
	numFields    = 6
	colLender    = 0
	colMaxAmount = 1
	colMaxLTV    = 2
	colMaxDTI    = 3
	colMinCredit = 4
	colRate      = 5
)

// ReadTable reads a rate sheet. The first row is the header; every data row
// must have as many fields as the header.
func ReadTable(r io.Reader) (model.LoanTable, error) {
	cr := csv.NewReader(r)
	// 0: the header's field count is enforced on every following row.
	cr.FieldsPerRecord = 0

	records, err := cr.ReadAll()
	if err != nil {
		return model.LoanTable{}, fmt.Errorf("reading rate sheet CSV: %w", err)
	}

	if len(records) == 0 {
		return model.LoanTable{}, nil
	}

	header := records[0]
	if len(header) < numFields {
		return model.LoanTable{}, fmt.Errorf("header has %d columns, need at least %d", len(header), numFields)
	}

	table := model.LoanTable{Header: header}
	for i, rec := range records[1:] {
		o, err := UnmarshalOffer(rec)
		if err != nil {
			return model.LoanTable{}, fmt.Errorf("row %d: %w", i+2, err)
		}
		table.Offers = append(table.Offers, o)
	}
	return table, nil
}

// WriteTable writes a rate sheet (including header).
func WriteTable(w io.Writer, t model.LoanTable) error {
	cw := csv.NewWriter(w)

	header := t.Header
	if len(header) == 0 {
		header = strings.Split(Header, ",")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, o := range t.Offers {
		if err := cw.Write(MarshalOffer(o)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalOffer converts an offer to a CSV row. Offers read from a file are
// written back exactly as they were read.
func MarshalOffer(o model.LoanOffer) []string {
	if len(o.Raw) > 0 {
		return slices.Clone(o.Raw)
	}
	row := make([]string, numFields)
	row[colLender] = o.Lender
	row[colMaxAmount] = o.MaxLoanAmount.String()
	row[colMaxLTV] = o.MaxLTV.String()
	row[colMaxDTI] = o.MaxDTI.String()
	row[colMinCredit] = strconv.Itoa(o.MinCreditScore)
	row[colRate] = o.InterestRate.String()
	return row
}

// UnmarshalOffer converts a CSV row to an offer.
func UnmarshalOffer(record []string) (model.LoanOffer, error) {
	if len(record) < numFields {
		return model.LoanOffer{}, fmt.Errorf("expected at least %d fields, got %d", numFields, len(record))
	}

	maxAmount, err := parseDecimal("max loan amount", record[colMaxAmount])
	if err != nil {
		return model.LoanOffer{}, err
	}
	maxLTV, err := parseDecimal("max LTV", record[colMaxLTV])
	if err != nil {
		return model.LoanOffer{}, err
	}
	maxDTI, err := parseDecimal("max DTI", record[colMaxDTI])
	if err != nil {
		return model.LoanOffer{}, err
	}
	minCredit, err := strconv.Atoi(strings.TrimSpace(record[colMinCredit]))
	if err != nil {
		return model.LoanOffer{}, fmt.Errorf("parsing min credit score %q: %w", record[colMinCredit], err)
	}
	rate, err := parseDecimal("interest rate", record[colRate])
	if err != nil {
		return model.LoanOffer{}, err
	}

	return model.LoanOffer{
		Lender:         record[colLender],
		MaxLoanAmount:  maxAmount,
		MaxLTV:         maxLTV,
		MaxDTI:         maxDTI,
		MinCreditScore: minCredit,
		InterestRate:   rate,
		Raw:            slices.Clone(record),
	}, nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing %s %q: %w", field, s, err)
	}
	return d, nil
}
