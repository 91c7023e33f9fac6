package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgermap/internal/model"
)

func TestDefaultChecks(t *testing.T) {
	dormant := line("Old deposit", "AS-NCA-LTLA-SD", 5000)
	dormant.Ledger.Opening = decimal.NewFromInt(5000)

	moving := dormant
	moving.Ledger.Debit = decimal.NewFromInt(100)

	revenueElsewhere := line("Scrap sales", "AS-CA-OCA", 100)
	revenueElsewhere.Ledger.IsRevenue = true

	tests := []struct {
		name  string
		check string
		line  Line
		want  bool
	}{
		{"unmapped with balance", model.CheckUnmapped, line("X", model.Unmapped, 10), true},
		{"unmapped at zero", model.CheckUnmapped, line("X", model.Unmapped, 0), false},
		{"liability debit", model.CheckLiabilityDebitBalance, line("Creditor", "EL-CL-TP-OTH", -10), true},
		{"liability credit", model.CheckLiabilityDebitBalance, line("Creditor", "EL-CL-TP-OTH", 10), false},
		{"negative reserves allowed", model.CheckLiabilityDebitBalance, line("P&L", "EL-SHF-RS-PL", -10), false},
		{"asset credit", model.CheckAssetCreditBalance, line("Bank", "AS-CA-CASH-BB", -10), true},
		{"asset debit", model.CheckAssetCreditBalance, line("Bank", "AS-CA-CASH-BB", 10), false},
		{"zero", model.CheckZeroBalance, line("Nil", "AS-CA-OCA", 0), true},
		{"maturity", model.CheckMaturityClassification, line("Term loan", "EL-NCL-LTB-TL", 10), true},
		{"no maturity", model.CheckMaturityClassification, line("Cash", "AS-CA-CASH", 10), false},
		{"related party", model.CheckRelatedParty, line("Loan from Director", "EL-NCL-LTB-LRP", 10), true},
		{"kmp", model.CheckRelatedParty, line("KMP remuneration", "EXP-EBE-SAL", 10), true},
		{"msme unknown", model.CheckMSMEClassification, line("Acme", "EL-CL-TP-OTH", 10), true},
		{"msme known", model.CheckMSMEClassification, line("Acme", "EL-CL-TP-MSME", 10), false},
		{"statutory", model.CheckStatutoryDues, line("GST Payable", "EL-CL-OCL-SD", 10), true},
		{"sign income", model.CheckSignPolarity, line("Sales return", "INC-REV-SALE", -10), true},
		{"sign expense", model.CheckSignPolarity, line("Rent", "EXP-OE-RENT", -10), true},
		{"sign ok", model.CheckSignPolarity, line("Rent", "EXP-OE-RENT", 10), false},
		{"dormant", model.CheckDormantAccount, dormant, true},
		{"moving", model.CheckDormantAccount, moving, false},
		{"revenue elsewhere", model.CheckRevenueFlagMismatch, revenueElsewhere, true},
	}

	checks := DefaultChecks()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := checks[tt.check]
			require.True(t, ok)
			got, err := c(tt.line, Context{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
