package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// ledger builds a debit-natured ledger, so Amount equals closing.
func ledger(name, group string, closing int64) model.LedgerAccount {
	return model.Normalize(model.LedgerAccount{Name: name, Group: group, Closing: decimal.NewFromInt(closing), IsDeemedPositive: true})
}

func storeWith(t *testing.T, rs ...model.Rule) *rules.Store {
	t.Helper()
	s := rules.NewStore(nil)
	for _, r := range rs {
		require.NoError(t, s.Add(r))
	}
	for _, v := range rules.DefaultValidations() {
		require.NoError(t, s.AddValidation(v))
	}
	return s
}

func override(id, name, code string) model.OverrideRule {
	return model.OverrideRule{ID: id, LedgerName: name, TargetCode: code, Active: true}
}

func kw(id, pattern string, mt model.MatchType, code string, prio int) model.KeywordRule {
	return model.KeywordRule{ID: id, Pattern: pattern, MatchType: mt, TargetCode: code, Priority: prio, Active: true}
}

func grp(id, group, parent, code string) model.GroupRule {
	return model.GroupRule{ID: id, GroupName: group, ParentGroup: parent, TargetCode: code, Active: true}
}

func TestRoundTripScenario(t *testing.T) {
	s := storeWith(t,
		grp("GM001", "Cash-in-hand", "", "AS-CA-CASH"),
		kw("KW001", "Sales", model.MatchContains, "INC-REV-SALE", 50),
	)
	cash := ledger("Cash in Hand", "Cash-in-hand", 5000)
	sales := model.Normalize(model.LedgerAccount{
		Name: "Sales - Domestic", Group: "Sales Accounts", Closing: decimal.NewFromInt(-20000), IsRevenue: true,
	})

	results := New(s).ClassifyAll([]model.LedgerAccount{cash, sales})
	require.Len(t, results, 2)
	assert.Equal(t, "AS-CA-CASH", results[0].Code)
	assert.Equal(t, model.TierGroup, results[0].Tier)
	assert.Equal(t, "INC-REV-SALE", results[1].Code)
	assert.Equal(t, model.TierKeyword, results[1].Tier)

	stats := Summarize(results)
	assert.Equal(t, 0, stats.Unmapped)
	assert.Equal(t, 2, stats.Mapped)
}

func TestOverrideBeatsKeywordAndGroup(t *testing.T) {
	s := storeWith(t,
		grp("GM001", "Sundry Creditors", "", "EL-CL-TP-OTH"),
		kw("KW001", "Acme", model.MatchContains, "EL-CL-TP-MSME", 99),
		override("OV001", "Acme Traders", "EL-CL-OCL"),
	)
	r := New(s)

	res := r.Classify(ledger("Acme Traders", "Sundry Creditors", -100))
	assert.Equal(t, "EL-CL-OCL", res.Code)
	assert.Equal(t, "OV001", res.RuleID)
	assert.Equal(t, model.TierOverride, res.Tier)

	res = r.Classify(ledger("Acme Traders Pvt", "Sundry Creditors", -100))
	assert.Equal(t, "EL-CL-TP-MSME", res.Code, "override is exact and case-sensitive")

	res = r.Classify(ledger("acme traders", "Sundry Creditors", -100))
	assert.Equal(t, model.TierKeyword, res.Tier)

	res = r.Classify(ledger("Beta Supplies", "Sundry Creditors", -100))
	assert.Equal(t, "EL-CL-TP-OTH", res.Code)
	assert.Equal(t, model.TierGroup, res.Tier)
}

func TestOverrideCurrentGroupQualifier(t *testing.T) {
	o := override("OV001", "Building - Leasehold", "AS-NCA-PPE-BLDG")
	o.CurrentGroup = "Fixed Assets"
	r := New(storeWith(t, o))

	assert.Equal(t, "AS-NCA-PPE-BLDG", r.Classify(ledger("Building - Leasehold", "fixed assets", 10)).Code)
	assert.Equal(t, model.Unmapped, r.Classify(ledger("Building - Leasehold", "Current Assets", 10)).Code)
}

func TestKeywordPriorityAndStableOrder(t *testing.T) {
	s := storeWith(t,
		kw("KW001", "loan", model.MatchContains, "EL-NCL-LTB", 50),
		kw("KW002", "director", model.MatchContains, "EL-NCL-LTB-LRP", 90),
		kw("KW003", "loan", model.MatchContains, "EL-CL-STB", 50),
	)
	r := New(s)

	assert.Equal(t, "KW002", r.Classify(ledger("Loan from Director", "x", -1)).RuleID)
	assert.Equal(t, "KW001", r.Classify(ledger("Term Loan", "x", -1)).RuleID, "equal priority keeps insertion order")
}

func TestNegativeKeywordPriorityRanksLast(t *testing.T) {
	s := storeWith(t,
		kw("KW001", "loan", model.MatchContains, "EL-CL-STB", -5),
		kw("KW002", "loan", model.MatchContains, "EL-NCL-LTB", 0),
	)
	r := New(s)

	assert.Equal(t, "KW002", r.Classify(ledger("Term Loan", "x", -1)).RuleID)
}

func TestKeywordMatchTypes(t *testing.T) {
	s := storeWith(t,
		kw("KW001", "FD", model.MatchStartsWith, "AS-CA-CASH-FD", 60),
		kw("KW002", "payable", model.MatchEndsWith, "EL-CL-OCL", 55),
	)
	r := New(s)

	assert.Equal(t, "KW001", r.Classify(ledger("fd with SBI", "x", 1)).RuleID)
	assert.Equal(t, model.Unmapped, r.Classify(ledger("SBI FD", "x", 1)).Code)
	assert.Equal(t, "KW002", r.Classify(ledger("Audit fee PAYABLE", "x", -1)).RuleID)
	assert.Equal(t, model.Unmapped, r.Classify(ledger("Payable audit fee", "x", -1)).Code)
}

func TestGroupParentQualifier(t *testing.T) {
	s := storeWith(t,
		grp("GM001", "Bank OD A/c", "Loans (Liability)", "EL-CL-STB-BOD"),
		grp("GM002", "Bank OD A/c", "Current Assets", "AS-CA-CASH-BB"),
	)
	r := New(s)

	od := ledger("HDFC OD", "Bank OD A/c", -10)
	od.ParentGroup = "Loans (Liability)"
	assert.Equal(t, "GM001", r.Classify(od).RuleID)

	od.ParentGroup = "Current Assets"
	assert.Equal(t, "GM002", r.Classify(od).RuleID)

	od.ParentGroup = ""
	assert.Equal(t, model.Unmapped, r.Classify(od).Code)
}

func TestInactiveRulesAreSkipped(t *testing.T) {
	o := override("OV001", "Petty Cash", "AS-CA-OCA")
	o.Active = false
	s := storeWith(t, o, grp("GM001", "Cash-in-hand", "", "AS-CA-CASH-COH"))

	res := New(s).Classify(ledger("Petty Cash", "Cash-in-hand", 10))
	assert.Equal(t, "GM001", res.RuleID)
}

func TestResolverSnapshotsStore(t *testing.T) {
	s := storeWith(t, grp("GM001", "Cash-in-hand", "", "AS-CA-CASH"))
	r := New(s)
	require.NoError(t, s.SetActive("GM001", false))

	assert.Equal(t, "GM001", r.Classify(ledger("Cash", "Cash-in-hand", 1)).RuleID)
	assert.Equal(t, model.Unmapped, New(s).Classify(ledger("Cash", "Cash-in-hand", 1)).Code)
}

func TestUnmappedAccounting(t *testing.T) {
	r := New(rules.Defaults())
	ledgers := []model.LedgerAccount{
		ledger("Cash", "Cash-in-Hand", 100),
		ledger("Mystery", "Strange Group", 100),
		ledger("GST Payable", "Duties & Taxes", -50),
		ledger("Zzz", "Nowhere", 0),
	}
	results := r.ClassifyAll(ledgers)
	stats := Summarize(results)

	assert.Equal(t, len(ledgers), stats.Total)
	assert.Equal(t, stats.Total, stats.Mapped+stats.Unmapped)
	assert.Equal(t, 2, stats.Unmapped)
	assert.Equal(t, 1, stats.ByTier[model.TierKeyword])
	assert.Equal(t, 1, stats.ByTier[model.TierGroup])

	assert.Contains(t, results[1].Flags, "VL001")
	assert.NotContains(t, results[3].Flags, "VL001", "zero-balance unmapped ledgers are not flagged as unmapped")
	assert.Contains(t, results[3].Flags, "VL004")
}

func TestValidationNeverChangesCode(t *testing.T) {
	r := New(rules.Defaults())
	res := r.Classify(ledger("Bank of India", "Bank Accounts", -500))
	assert.Equal(t, "AS-CA-CASH-BB", res.Code)
	assert.Contains(t, res.Flags, "VL003")
	require.NotEmpty(t, res.Issues)
}

func TestDeterminism(t *testing.T) {
	s := rules.Defaults()
	ledgers := []model.LedgerAccount{
		ledger("Cash", "Cash-in-Hand", 100),
		ledger("Salary Payable", "Provisions", -40),
		ledger("Director Loan", "Unsecured Loans", -900),
		ledger("Unknown", "Misc", 3),
	}
	a := New(s).ClassifyAll(ledgers)
	b := New(s).ClassifyAll(ledgers)
	assert.Equal(t, a, b)
}

func TestWithNotes(t *testing.T) {
	notes, err := schedule.BuildNoteNumberMap(1, false)
	require.NoError(t, err)
	r := New(storeWith(t, grp("GM001", "Cash-in-hand", "", "AS-CA-CASH-COH")), WithNotes(notes))

	res := r.Classify(ledger("Cash", "Cash-in-hand", 1))
	want, _ := notes.Lookup("AS-CA-CASH")
	assert.Equal(t, want, res.NoteNumber)
	assert.Zero(t, r.Classify(ledger("Other", "x", 1)).NoteNumber)
}

func TestRunCollectsContext(t *testing.T) {
	b := New(rules.Defaults()).Run([]model.LedgerAccount{
		ledger("Cash", "Cash-in-Hand", 1_000_000),
		ledger("Debtors", "Sundry Debtors", 500_000),
	})
	assert.True(t, decimal.NewFromInt(1_500_000).Equal(b.Context.TotalAssets))
	assert.True(t, decimal.NewFromInt(150_000).Equal(b.Context.Materiality))
	assert.Contains(t, b.Results[0].Flags, "VL009")
	assert.Empty(t, b.Failures)
}
