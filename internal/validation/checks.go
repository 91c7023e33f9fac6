package validation

import (
	"slices"
	"strings"

	"github.com/cleared-dev/ledgermap/internal/model"
)

var relatedPartyWords = []string{
	"director", "promoter", "relative", "subsidiary", "associate", "holding", "key management", "kmp",
}

var statutoryWords = []string{
	"gst", "tds", "tcs", "pf payable", "esi payable", "pt payable", "income tax",
}

// maturityNotes need a current/non-current split before filing.
var maturityNotes = []string{"LTB", "LTP", "NCI", "LTLA"}

// DefaultChecks returns the stock check for every validation type.
func DefaultChecks() map[string]Check {
	return map[string]Check{
		model.CheckUnmapped:               unmapped,
		model.CheckLiabilityDebitBalance:  liabilityDebitBalance,
		model.CheckAssetCreditBalance:     assetCreditBalance,
		model.CheckZeroBalance:            zeroBalance,
		model.CheckMaturityClassification: maturityClassification,
		model.CheckRelatedParty:           relatedParty,
		model.CheckMSMEClassification:     msmeClassification,
		model.CheckStatutoryDues:          statutoryDues,
		model.CheckLargeBalance:           largeBalance,
		model.CheckSignPolarity:           signPolarity,
		model.CheckDormantAccount:         dormantAccount,
		model.CheckRevenueFlagMismatch:    revenueFlagMismatch,
	}
}

func unmapped(l Line, _ Context) (bool, error) {
	return !l.Mapped() && !l.Ledger.Amount.IsZero(), nil
}

// Shareholders' funds may legitimately run negative (accumulated losses).
func liabilityDebitBalance(l Line, _ Context) (bool, error) {
	c := l.code()
	return c.Area == "EL" && c.FaceGroup != "SHF" && l.Ledger.Amount.IsNegative(), nil
}

func assetCreditBalance(l Line, _ Context) (bool, error) {
	return l.code().Area == "AS" && l.Ledger.Amount.IsNegative(), nil
}

func zeroBalance(l Line, _ Context) (bool, error) {
	return l.Ledger.Closing.IsZero(), nil
}

func maturityClassification(l Line, _ Context) (bool, error) {
	return slices.Contains(maturityNotes, l.code().NoteGroup), nil
}

func relatedParty(l Line, _ Context) (bool, error) {
	return containsAny(l.Ledger.Name, relatedPartyWords), nil
}

func msmeClassification(l Line, _ Context) (bool, error) {
	c := l.code()
	return c.Area == "EL" && c.FaceGroup == "CL" && c.NoteGroup == "TP" && c.SubNote != "MSME", nil
}

func statutoryDues(l Line, _ Context) (bool, error) {
	return containsAny(l.Ledger.Name, statutoryWords), nil
}

func largeBalance(l Line, ctx Context) (bool, error) {
	if l.Tier == model.TierOverride {
		return false, nil
	}
	limit := ctx.Materiality
	if limit.IsZero() {
		limit = materialityCap
	}
	return l.Ledger.Amount.Abs().GreaterThan(limit), nil
}

func signPolarity(l Line, _ Context) (bool, error) {
	switch l.code().Area {
	case "INC", "EXP":
		return l.Ledger.Amount.IsNegative(), nil
	}
	return false, nil
}

func dormantAccount(l Line, _ Context) (bool, error) {
	ld := l.Ledger
	return ld.Opening.Equal(ld.Closing) && ld.Debit.IsZero() && ld.Credit.IsZero(), nil
}

func revenueFlagMismatch(l Line, _ Context) (bool, error) {
	return l.Ledger.IsRevenue && l.Mapped() && l.code().Area != "INC", nil
}

func containsAny(name string, words []string) bool {
	lower := strings.ToLower(name)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
