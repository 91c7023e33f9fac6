package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgermap/internal/model"
)

// SampleTrialBalance returns a small balanced trial balance for a new
// workspace. Closing balances are debit-positive and sum to zero.
func SampleTrialBalance() []model.LedgerAccount {
	row := func(name, group, parent string, closing int64, deemedPositive, revenue bool) model.LedgerAccount {
		c := decimal.NewFromInt(closing)
		l := model.LedgerAccount{
			Name: name, Group: group, ParentGroup: parent,
			Closing: c, IsDeemedPositive: deemedPositive, IsRevenue: revenue,
		}
		if c.IsPositive() {
			l.Debit = c
		} else {
			l.Credit = c.Neg()
		}
		return model.Normalize(l)
	}
	return []model.LedgerAccount{
		row("Equity Share Capital", "Capital Account", "", -100000, false, false),
		row("General Reserve", "Reserves & Surplus", "Capital Account", -20000, false, false),
		row("Beta Supplies", "Sundry Creditors", "Current Liabilities", -15000, false, false),
		row("Furniture & Fixtures", "Fixed Assets", "", 60000, true, false),
		row("HDFC Bank", "Bank Accounts", "Current Assets", 45000, true, false),
		row("Cash", "Cash-in-hand", "Current Assets", 5000, true, false),
		row("Acme Traders", "Sundry Debtors", "Current Assets", 30000, true, false),
		row("Sales - Domestic", "Sales Accounts", "", -200000, false, true),
		row("Purchases", "Purchase Accounts", "", 120000, true, false),
		row("Salary", "Indirect Expenses", "", 50000, true, false),
		row("Office Rent", "Indirect Expenses", "", 25000, true, false),
	}
}
