package importer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/ledgermap/internal/model"
)

// Options tune how exported figures are read.
type Options struct {
	// DebitNegative is set for exports that write debit balances as
	// negative numbers, as Tally does.
	DebitNegative bool
}

type field int

const (
	fieldName field = iota
	fieldParentGroup
	fieldGroup
	fieldOpening
	fieldDebit
	fieldCredit
	fieldClosing
	fieldRevenue
	fieldDeemedPositive
	numFields
)

// aliases are cleaned header names per field. Fields are resolved in
// declaration order, so parent group claims "primarygroup" before group
// can take it by partial match.
var aliases = [numFields][]string{
	fieldName:           {"name", "ledger", "ledgername", "particulars"},
	fieldParentGroup:    {"primarygroup", "parentgroup"},
	fieldGroup:          {"parent", "group", "under", "ledgergroup"},
	fieldOpening:        {"openingbalance", "opening"},
	fieldDebit:          {"debit", "dr"},
	fieldCredit:         {"credit", "cr"},
	fieldClosing:        {"closingbalance", "closing"},
	fieldRevenue:        {"isrevenue"},
	fieldDeemedPositive: {"isdeemedpositive", "deemedpositive"},
}

// headerMarkers identify the header row among preamble rows.
var headerMarkers = []string{"name", "openingbalance", "closingbalance", "parent", "ledger"}

func clean(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// findHeader returns the index of the first row that looks like a header.
func findHeader(rows [][]string) int {
	for i, row := range rows {
		for _, cell := range row {
			c := clean(cell)
			for _, m := range headerMarkers {
				if strings.Contains(c, m) {
					return i
				}
			}
		}
	}
	return 0
}

// mapColumns resolves each field to a column, or -1. Exact matches win over
// partial ones and no column serves two fields.
func mapColumns(header []string) [numFields]int {
	var cols [numFields]int
	for i := range cols {
		cols[i] = -1
	}
	claimed := make(map[int]bool)
	cleaned := make([]string, len(header))
	for i, h := range header {
		cleaned[i] = clean(h)
	}

	for _, exact := range []bool{true, false} {
		for f := field(0); f < numFields; f++ {
			if cols[f] >= 0 {
				continue
			}
		search:
			for _, alias := range aliases[f] {
				for i, h := range cleaned {
					if claimed[i] || h == "" {
						continue
					}
					if h == alias || (!exact && len(alias) > 2 && strings.Contains(h, alias)) {
						cols[f] = i
						claimed[i] = true
						break search
					}
				}
			}
		}
	}
	return cols
}

// parseTable turns raw rows into ledgers. Rows before the header, blank
// names and total rows are skipped.
func parseTable(rows [][]string, opts Options) ([]model.LedgerAccount, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	h := findHeader(rows)
	cols := mapColumns(rows[h])
	if cols[fieldName] < 0 {
		return nil, fmt.Errorf("no name or ledger column in header %q", rows[h])
	}
	if cols[fieldDeemedPositive] < 0 {
		logrus.Warn("no deemed-positive column, inferring ledger nature from its group")
	}

	var ledgers []model.LedgerAccount
	for i, row := range rows[h+1:] {
		cell := func(f field) string {
			c := cols[f]
			if c < 0 || c >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[c])
		}

		name := cell(fieldName)
		if name == "" || isTotalRow(name) {
			continue
		}

		l, err := ledgerFrom(cell, cols, opts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", h+i+2, err)
		}
		l.Name = name
		ledgers = append(ledgers, model.Normalize(l))
	}
	return ledgers, nil
}

func ledgerFrom(cell func(field) string, cols [numFields]int, opts Options) (model.LedgerAccount, error) {
	var l model.LedgerAccount
	l.Group = cell(fieldGroup)
	l.ParentGroup = cell(fieldParentGroup)

	var err error
	amount := func(f field) decimal.Decimal {
		if err != nil {
			return decimal.Zero
		}
		var v decimal.Decimal
		v, err = parseAmount(cell(f))
		if err != nil {
			err = fmt.Errorf("parsing %s %q: %w", aliases[f][0], cell(f), err)
		}
		return v
	}
	l.Opening = amount(fieldOpening)
	l.Debit = amount(fieldDebit).Abs()
	l.Credit = amount(fieldCredit).Abs()
	l.Closing = amount(fieldClosing)
	if err != nil {
		return l, err
	}
	if opts.DebitNegative {
		l.Opening = l.Opening.Neg()
		l.Closing = l.Closing.Neg()
	}
	if cols[fieldClosing] < 0 {
		l.Closing = l.Opening.Add(l.Debit).Sub(l.Credit)
	}

	l.IsRevenue = parseFlag(cell(fieldRevenue))
	if cols[fieldDeemedPositive] >= 0 {
		l.IsDeemedPositive = parseFlag(cell(fieldDeemedPositive))
	} else {
		l.IsDeemedPositive = debitNatured(l.Group, l.ParentGroup)
	}
	return l, nil
}

// debitGroups are the Tally primary groups whose balances are debit by
// nature. Everything else reads as credit-natured.
var debitGroups = map[string]bool{
	"fixedassets":          true,
	"currentassets":        true,
	"investments":          true,
	"bankaccounts":         true,
	"cashinhand":           true,
	"depositsasset":        true,
	"loansadvancesasset":   true,
	"stockinhand":          true,
	"sundrydebtors":        true,
	"miscexpensesasset":    true,
	"purchaseaccounts":     true,
	"directexpenses":       true,
	"indirectexpenses":     true,
	"branchdivisionsasset": true,
}

// debitNatured infers a ledger's nature from its group or parent group.
func debitNatured(group, parent string) bool {
	return debitGroups[clean(group)] || debitGroups[clean(parent)]
}

var totalLabels = map[string]bool{
	"total":      true,
	"grandtotal": true,
	"subtotal":   true,
	"nettotal":   true,
}

// isTotalRow matches summary rows by their whole label.
func isTotalRow(name string) bool {
	return totalLabels[clean(name)]
}

// parseAmount reads "1,200.50", "(1,200.50)", "1200.50 Cr" and "1200.50 Dr".
// Cr and parentheses are negative.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}
	neg := false
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "cr"):
		neg = true
		s = s[:len(s)-2]
	case strings.HasSuffix(lower, "dr"):
		s = s[:len(s)-2]
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = !neg
		s = s[1 : len(s)-1]
	}
	s = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if neg {
		v = v.Neg()
	}
	return v, nil
}

func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}
