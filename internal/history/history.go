// Package history records qualification runs in a CSV log.
package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one row in the history log.
type Entry struct {
	Timestamp    time.Time
	RunID        string
	RateSheet    string
	CreditScore  int
	LoanAmount   decimal.Decimal
	DebtToIncome decimal.Decimal
	LoanToValue  decimal.Decimal
	Qualifying   int
	Output       string // where results were saved, if anywhere
}

// Header is the CSV header for the history log.
const Header = "timestamp,run_id,rate_sheet,credit_score,loan_amount,debt_to_income,loan_to_value,qualifying,output"

const (
	numFields      = 9
	colTimestamp   = 0
	colRunID       = 1
	colRateSheet   = 2
	colCreditScore = 3
	colLoanAmount  = 4
	colDTI         = 5
	colLTV         = 6
	colQualifying  = 7
	colOutput      = 8
)

// MarshalEntry converts an Entry to a CSV row. Ratios are kept unrounded.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colRateSheet] = e.RateSheet
	row[colCreditScore] = strconv.Itoa(e.CreditScore)
	row[colLoanAmount] = e.LoanAmount.String()
	row[colDTI] = e.DebtToIncome.String()
	row[colLTV] = e.LoanToValue.String()
	row[colQualifying] = strconv.Itoa(e.Qualifying)
	row[colOutput] = e.Output
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	score, err := strconv.Atoi(record[colCreditScore])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing credit_score %q: %w", record[colCreditScore], err)
	}
	loan, err := decimal.NewFromString(record[colLoanAmount])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing loan_amount %q: %w", record[colLoanAmount], err)
	}
	dti, err := decimal.NewFromString(record[colDTI])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing debt_to_income %q: %w", record[colDTI], err)
	}
	ltv, err := decimal.NewFromString(record[colLTV])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing loan_to_value %q: %w", record[colLTV], err)
	}
	qualifying, err := strconv.Atoi(record[colQualifying])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing qualifying %q: %w", record[colQualifying], err)
	}

	return Entry{
		Timestamp:    ts,
		RunID:        record[colRunID],
		RateSheet:    record[colRateSheet],
		CreditScore:  score,
		LoanAmount:   loan,
		DebtToIncome: dti,
		LoanToValue:  ltv,
		Qualifying:   qualifying,
		Output:       record[colOutput],
	}, nil
}

// Append writes entries to the log at path, creating it and its header if needed.
func Append(path string, entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries in the log at path.
// Returns an empty slice if the file does not exist.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
