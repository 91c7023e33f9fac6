package model

import (
	"github.com/shopspring/decimal"
)

// LedgerAccount is one row of a trial balance.
type LedgerAccount struct {
	Name             string          `json:"name"`
	Group            string          `json:"group"`                  // immediate source group, e.g. "Sundry Debtors"
	ParentGroup      string          `json:"parent_group,omitempty"` // parent of Group, empty at the top level
	Opening          decimal.Decimal `json:"opening"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Closing          decimal.Decimal `json:"closing"` // debit-positive
	IsRevenue        bool            `json:"is_revenue"`
	IsDeemedPositive bool            `json:"is_deemed_positive"`
	Amount           decimal.Decimal `json:"amount"` // sign-normalised statement amount, see Normalize
}

// LedgerKey identifies a ledger for duplicate detection.
type LedgerKey struct {
	Name  string
	Group string
}

// Key returns the (name, group) identity of the ledger.
func (l LedgerAccount) Key() LedgerKey {
	return LedgerKey{Name: l.Name, Group: l.Group}
}

// Normalize sets Amount from Closing. Debit-natured ledgers (deemed positive)
// keep their balance; credit-natured ledgers are flipped so liabilities,
// equity and income present as positive amounts.
func Normalize(l LedgerAccount) LedgerAccount {
	if l.IsDeemedPositive {
		l.Amount = l.Closing
	} else {
		l.Amount = l.Closing.Neg()
	}
	return l
}

// NormalizeAll applies Normalize to every ledger and returns a new slice.
func NormalizeAll(ledgers []LedgerAccount) []LedgerAccount {
	out := make([]LedgerAccount, len(ledgers))
	for i, l := range ledgers {
		out[i] = Normalize(l)
	}
	return out
}
