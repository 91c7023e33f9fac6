package model

// Unmapped is the code assigned when no rule matches a ledger.
const Unmapped = "UNMAPPED"

// ClassificationResult is the outcome of classifying one ledger. It is
// recomputed on every run and never stored on its own.
type ClassificationResult struct {
	Ledger     LedgerAccount `json:"ledger"`
	Code       string        `json:"code"`
	RuleID     string        `json:"rule_id,omitempty"`
	Tier       Tier          `json:"tier"`
	NoteNumber int           `json:"note_number,omitempty"`
	Flags      []string      `json:"flags,omitempty"`
	Issues     []Issue       `json:"issues,omitempty"`
}

// Mapped reports whether a rule assigned a code.
func (r ClassificationResult) Mapped() bool {
	return r.Code != Unmapped
}

// Variant distinguishes independent classification passes over one ledger set.
type Variant string

const (
	VariantPrimary    Variant = "primary"
	VariantComparison Variant = "comparison"
)

// Statement identifies one of the two financial statements.
type Statement string

const (
	StatementBalanceSheet Statement = "balance_sheet"
	StatementProfitLoss   Statement = "profit_loss"
)

// Period selects the reporting period of an amount.
type Period string

const (
	PeriodCurrent Period = "current"
	PeriodPrior   Period = "prior"
)
