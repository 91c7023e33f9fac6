package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgermap/internal/model"
)

const (
	numFields    = 9
	colName      = 0
	colGroup     = 1
	colParent    = 2
	colOpening   = 3
	colDebit     = 4
	colCredit    = 5
	colClosing   = 6
	colRevenue   = 7
	colDeemedPos = 8
)

var header = []string{"name", "group", "parent_group", "opening", "debit", "credit", "closing", "is_revenue", "is_deemed_positive"}

// ReadLedgers reads a ledgers CSV. Amounts are sign-normalised on read.
func ReadLedgers(r io.Reader) ([]model.LedgerAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledgers CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var ledgers []model.LedgerAccount
	for i, rec := range records[1:] {
		l, err := UnmarshalLedger(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		ledgers = append(ledgers, l)
	}
	return ledgers, nil
}

// WriteLedgers writes a ledgers CSV.
func WriteLedgers(w io.Writer, ledgers []model.LedgerAccount) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, l := range ledgers {
		if err := cw.Write(MarshalLedger(l)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalLedger converts a ledger to a CSV row.
func MarshalLedger(l model.LedgerAccount) []string {
	row := make([]string, numFields)
	row[colName] = l.Name
	row[colGroup] = l.Group
	row[colParent] = l.ParentGroup
	row[colOpening] = l.Opening.String()
	row[colDebit] = l.Debit.String()
	row[colCredit] = l.Credit.String()
	row[colClosing] = l.Closing.String()
	row[colRevenue] = strconv.FormatBool(l.IsRevenue)
	row[colDeemedPos] = strconv.FormatBool(l.IsDeemedPositive)
	return row
}

// UnmarshalLedger converts a CSV row to a normalised ledger.
func UnmarshalLedger(record []string) (model.LedgerAccount, error) {
	if len(record) != numFields {
		return model.LedgerAccount{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	var amounts [4]decimal.Decimal
	for i, col := range []int{colOpening, colDebit, colCredit, colClosing} {
		v, err := parseAmount(record[col])
		if err != nil {
			return model.LedgerAccount{}, fmt.Errorf("parsing %s %q: %w", header[col], record[col], err)
		}
		amounts[i] = v
	}

	revenue, err := parseBool(record[colRevenue])
	if err != nil {
		return model.LedgerAccount{}, fmt.Errorf("parsing is_revenue %q: %w", record[colRevenue], err)
	}
	deemed, err := parseBool(record[colDeemedPos])
	if err != nil {
		return model.LedgerAccount{}, fmt.Errorf("parsing is_deemed_positive %q: %w", record[colDeemedPos], err)
	}

	return model.Normalize(model.LedgerAccount{
		Name:             record[colName],
		Group:            record[colGroup],
		ParentGroup:      record[colParent],
		Opening:          amounts[0],
		Debit:            amounts[1],
		Credit:           amounts[2],
		Closing:          amounts[3],
		IsRevenue:        revenue,
		IsDeemedPositive: deemed,
	}), nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
