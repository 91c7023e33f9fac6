// Package validation evaluates configured validation rules against classified
// ledger lines.
package validation

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// Line is one classified ledger as seen by the checks.
type Line struct {
	Ledger model.LedgerAccount
	Code   string // model.Unmapped when no rule matched
	Tier   model.Tier
	RuleID string
}

// Mapped reports whether the line has a code.
func (l Line) Mapped() bool { return l.Code != model.Unmapped && l.Code != "" }

// code decodes the line's code. Unmapped lines yield the zero Code.
func (l Line) code() schedule.Code {
	if !l.Mapped() {
		return schedule.Code{}
	}
	c, err := schedule.Decode(l.Code)
	if err != nil {
		return schedule.Code{}
	}
	return c
}

// Check decides whether a rule applies to a line.
type Check func(l Line, ctx Context) (bool, error)

// RuleFailure records a rule that could not be evaluated for a line.
type RuleFailure struct {
	RuleID     string
	LedgerName string
	Err        error
}

func (f RuleFailure) Error() string {
	return fmt.Sprintf("validation %s on %q: %v", f.RuleID, f.LedgerName, f.Err)
}

func (f RuleFailure) Unwrap() error { return f.Err }

// Engine evaluates active validation rules. It is safe for concurrent use
// once constructed.
type Engine struct {
	rules   []model.ValidationRule
	checks  map[string]Check
	skipped []string
}

// New builds an engine over the active rules using the stock checks. Rules
// whose type has no check are skipped and reported by Skipped.
func New(rules []model.ValidationRule) *Engine {
	return NewWithChecks(rules, DefaultChecks())
}

// NewWithChecks builds an engine with a custom check table.
func NewWithChecks(rules []model.ValidationRule, checks map[string]Check) *Engine {
	e := &Engine{checks: checks}
	for _, r := range rules {
		if !r.Active {
			continue
		}
		if _, ok := checks[r.Type]; !ok {
			logrus.WithFields(logrus.Fields{"rule": r.ID, "type": r.Type}).Warn("no check for validation type, skipping")
			e.skipped = append(e.skipped, r.ID)
			continue
		}
		e.rules = append(e.rules, r)
	}
	return e
}

// Skipped returns the IDs of rules that have no check implementation.
func (e *Engine) Skipped() []string { return e.skipped }

// Evaluate runs every rule against one line. A rule that errors or panics is
// reported as a failure and does not stop the remaining rules.
func (e *Engine) Evaluate(l Line, ctx Context) ([]model.Issue, []RuleFailure) {
	var issues []model.Issue
	var failures []RuleFailure

	for _, r := range e.rules {
		hit, err := runCheck(e.checks[r.Type], l, ctx)
		if err != nil {
			failures = append(failures, RuleFailure{RuleID: r.ID, LedgerName: l.Ledger.Name, Err: err})
			continue
		}
		if !hit {
			continue
		}
		msg, err := Render(r.MessageTemplate, l.Ledger.Name, l.Ledger.Amount)
		if err != nil {
			failures = append(failures, RuleFailure{RuleID: r.ID, LedgerName: l.Ledger.Name, Err: err})
			msg = fmt.Sprintf("Validation %s triggered", r.ID)
		}
		issues = append(issues, model.Issue{
			RuleID:     r.ID,
			Type:       r.Type,
			Severity:   r.Severity,
			Action:     r.Action,
			Message:    msg,
			LedgerName: l.Ledger.Name,
			Amount:     l.Ledger.Amount,
		})
	}

	for _, f := range failures {
		logrus.WithError(f.Err).WithField("rule", f.RuleID).WithField("ledger", f.LedgerName).Warn("validation rule failed")
	}
	return issues, failures
}

func runCheck(c Check, l Line, ctx Context) (hit bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			hit, err = false, fmt.Errorf("check panicked: %v", p)
		}
	}()
	return c(l, ctx)
}

// Context carries figures computed over the whole ledger set before any line
// is validated.
type Context struct {
	TotalAssets decimal.Decimal `json:"total_assets"`
	Materiality decimal.Decimal `json:"materiality"`
}

var (
	// materialityCap bounds the materiality threshold (one crore).
	materialityCap = decimal.NewFromInt(10_000_000)
	materialityPct = decimal.NewFromFloat(0.10)
)

// NewContext derives the aggregate context from classified lines.
// Materiality is 10% of total assets, capped at one crore.
func NewContext(lines []Line) Context {
	total := decimal.Zero
	for _, l := range lines {
		if l.code().Area == "AS" {
			total = total.Add(l.Ledger.Amount)
		}
	}
	mat := materialityCap
	if total.IsPositive() {
		if pct := total.Mul(materialityPct); pct.LessThan(mat) {
			mat = pct
		}
	}
	return Context{TotalAssets: total, Materiality: mat}
}
