package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// Severity ranks validation issues.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// Validation types. Each selects one check in the validation engine.
const (
	CheckUnmapped               = "unmapped"
	CheckLiabilityDebitBalance  = "liability_debit_balance"
	CheckAssetCreditBalance     = "asset_credit_balance"
	CheckZeroBalance            = "zero_balance"
	CheckMaturityClassification = "maturity_classification"
	CheckRelatedParty           = "related_party"
	CheckMSMEClassification     = "msme_classification"
	CheckStatutoryDues          = "statutory_dues"
	CheckLargeBalance           = "large_balance"
	CheckSignPolarity           = "sign_polarity"
	CheckDormantAccount         = "dormant_account"
	CheckRevenueFlagMismatch    = "revenue_flag_mismatch"
)

// ValidationRule configures one validation check. Type selects the check
// implementation; MessageTemplate may reference {ledger_name} and {amount}.
type ValidationRule struct {
	ID              string   `yaml:"id" json:"id"`
	Type            string   `yaml:"type" json:"type"`
	Severity        Severity `yaml:"severity" json:"severity"`
	Condition       string   `yaml:"condition,omitempty" json:"condition,omitempty"`
	Action          string   `yaml:"action" json:"action"`
	MessageTemplate string   `yaml:"message_template" json:"message_template"`
	Active          bool     `yaml:"active" json:"active"`
}

// Validate checks the validation rule's fields.
func (v ValidationRule) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.ID, validation.Required),
		validation.Field(&v.Type, validation.Required),
		validation.Field(&v.Severity, validation.Required,
			validation.In(SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow)),
		validation.Field(&v.MessageTemplate, validation.Required),
	)
}

// Issue is a validation rule that fired for one ledger.
type Issue struct {
	RuleID     string          `json:"rule_id"`
	Type       string          `json:"type"`
	Severity   Severity        `json:"severity"`
	Action     string          `json:"action"`
	Message    string          `json:"message"`
	LedgerName string          `json:"ledger_name"`
	Amount     decimal.Decimal `json:"amount"`
}
