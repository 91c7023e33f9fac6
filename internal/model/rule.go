package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Tier is the rule category that produced a classification.
type Tier string

const (
	TierOverride Tier = "override"
	TierKeyword  Tier = "keyword"
	TierGroup    Tier = "group"
	TierUnmapped Tier = "unmapped"
)

// MatchType selects how a keyword pattern is tested against a ledger name.
type MatchType string

const (
	MatchContains   MatchType = "contains"
	MatchStartsWith MatchType = "starts_with"
	MatchEndsWith   MatchType = "ends_with"
)

// Rule is one of OverrideRule, KeywordRule or GroupRule.
type Rule interface {
	RuleID() string
	Target() string
	IsActive() bool
	Tier() Tier
	Validate() error
	rule()
}

// OverrideRule maps one ledger, by exact name, to a code.
type OverrideRule struct {
	ID           string `yaml:"id" json:"id"`
	LedgerName   string `yaml:"ledger_name" json:"ledger_name"`
	CurrentGroup string `yaml:"current_group,omitempty" json:"current_group,omitempty"`
	TargetCode   string `yaml:"target_code" json:"target_code"`
	Reason       string `yaml:"reason,omitempty" json:"reason,omitempty"`
	Active       bool   `yaml:"active" json:"active"`
}

// KeywordRule maps ledgers whose name matches Pattern.
type KeywordRule struct {
	ID         string    `yaml:"id" json:"id"`
	Pattern    string    `yaml:"pattern" json:"pattern"`
	MatchType  MatchType `yaml:"match_type" json:"match_type"`
	TargetCode string    `yaml:"target_code" json:"target_code"`
	Priority   int       `yaml:"priority" json:"priority"`
	Active     bool      `yaml:"active" json:"active"`
}

// GroupRule maps ledgers by their source group.
type GroupRule struct {
	ID          string `yaml:"id" json:"id"`
	GroupName   string `yaml:"group_name" json:"group_name"`
	ParentGroup string `yaml:"parent_group,omitempty" json:"parent_group,omitempty"`
	TargetCode  string `yaml:"target_code" json:"target_code"`
	Active      bool   `yaml:"active" json:"active"`
}

func (r OverrideRule) RuleID() string { return r.ID }
func (r OverrideRule) Target() string { return r.TargetCode }
func (r OverrideRule) IsActive() bool { return r.Active }
func (r OverrideRule) Tier() Tier     { return TierOverride }
func (OverrideRule) rule()            {}

func (r KeywordRule) RuleID() string { return r.ID }
func (r KeywordRule) Target() string { return r.TargetCode }
func (r KeywordRule) IsActive() bool { return r.Active }
func (r KeywordRule) Tier() Tier     { return TierKeyword }
func (KeywordRule) rule()            {}

func (r GroupRule) RuleID() string { return r.ID }
func (r GroupRule) Target() string { return r.TargetCode }
func (r GroupRule) IsActive() bool { return r.Active }
func (r GroupRule) Tier() Tier     { return TierGroup }
func (GroupRule) rule()            {}

// Validate checks the override rule's fields.
func (r OverrideRule) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.LedgerName, validation.Required),
		validation.Field(&r.TargetCode, validation.Required),
	)
}

// Validate checks the keyword rule's fields.
func (r KeywordRule) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Pattern, validation.Required),
		validation.Field(&r.MatchType, validation.Required,
			validation.In(MatchContains, MatchStartsWith, MatchEndsWith)),
		validation.Field(&r.TargetCode, validation.Required),
	)
}

// Validate checks the group rule's fields.
func (r GroupRule) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.GroupName, validation.Required),
		validation.Field(&r.TargetCode, validation.Required),
	)
}
