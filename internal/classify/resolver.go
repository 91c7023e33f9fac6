// Package classify assigns Schedule III codes to ledgers by tiered rules.
package classify

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/schedule"
	"github.com/cleared-dev/ledgermap/internal/validation"
)

// Resolver classifies ledgers against a fixed snapshot of a rule store.
// Changes to the store after New are not seen.
type Resolver struct {
	overrides []model.OverrideRule
	keywords  []keywordMatcher
	groups    []model.GroupRule
	engine    *validation.Engine
	notes     schedule.NoteMap
}

type keywordMatcher struct {
	rule    model.KeywordRule
	pattern string // lower-cased
}

func (m keywordMatcher) match(name string) bool {
	n := strings.ToLower(name)
	switch m.rule.MatchType {
	case model.MatchContains:
		return strings.Contains(n, m.pattern)
	case model.MatchStartsWith:
		return strings.HasPrefix(n, m.pattern)
	case model.MatchEndsWith:
		return strings.HasSuffix(n, m.pattern)
	}
	return false
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNotes attaches display note numbers to results.
func WithNotes(m schedule.NoteMap) Option {
	return func(r *Resolver) { r.notes = m }
}

// New builds a resolver from the active rules of s. Validation uses the
// store's validation rules.
func New(s *rules.Store, opts ...Option) *Resolver {
	r := &Resolver{engine: validation.New(s.Validations())}

	for _, o := range s.Overrides() {
		if o.Active {
			r.overrides = append(r.overrides, o)
		}
	}

	var kws []model.KeywordRule
	for _, k := range s.Keywords() {
		if k.Active {
			kws = append(kws, k)
		}
	}
	slices.SortStableFunc(kws, func(a, b model.KeywordRule) int { return b.Priority - a.Priority })
	for _, k := range kws {
		r.keywords = append(r.keywords, keywordMatcher{rule: k, pattern: strings.ToLower(k.Pattern)})
	}

	for _, g := range s.Groups() {
		if g.Active {
			r.groups = append(r.groups, g)
		}
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// resolve applies the tiers in order. The first matching rule wins.
func (r *Resolver) resolve(l model.LedgerAccount) (model.Rule, bool) {
	for _, o := range r.overrides {
		if o.LedgerName != l.Name {
			continue
		}
		if o.CurrentGroup != "" && !sameName(o.CurrentGroup, l.Group) {
			continue
		}
		return o, true
	}
	for _, k := range r.keywords {
		if k.match(l.Name) {
			return k.rule, true
		}
	}
	for _, g := range r.groups {
		if !sameName(g.GroupName, l.Group) {
			continue
		}
		if g.ParentGroup != "" && !sameName(g.ParentGroup, l.ParentGroup) {
			continue
		}
		return g, true
	}
	return nil, false
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// resultFor turns a tier match into an unvalidated result.
func (r *Resolver) resultFor(l model.LedgerAccount) model.ClassificationResult {
	res := model.ClassificationResult{Ledger: l, Code: model.Unmapped, Tier: model.TierUnmapped}
	rule, ok := r.resolve(l)
	if !ok {
		return res
	}
	switch v := rule.(type) {
	case model.OverrideRule, model.KeywordRule, model.GroupRule:
		res.Code = v.Target()
		res.RuleID = v.RuleID()
		res.Tier = v.Tier()
	default:
		panic(fmt.Sprintf("classify: unhandled rule kind %T", rule))
	}
	if n, ok := r.notes.Lookup(res.Code); ok {
		res.NoteNumber = n
	}
	return res
}

func (r *Resolver) validate(res *model.ClassificationResult, ctx validation.Context) []validation.RuleFailure {
	issues, failures := r.engine.Evaluate(lineOf(*res), ctx)
	res.Issues = issues
	res.Flags = nil
	for _, is := range issues {
		res.Flags = append(res.Flags, is.RuleID)
	}
	return failures
}

func lineOf(res model.ClassificationResult) validation.Line {
	return validation.Line{Ledger: res.Ledger, Code: res.Code, Tier: res.Tier, RuleID: res.RuleID}
}

// Classify resolves one ledger and validates it without aggregate context.
func (r *Resolver) Classify(l model.LedgerAccount) model.ClassificationResult {
	res := r.resultFor(l)
	r.validate(&res, validation.Context{})
	return res
}

// Batch is the outcome of classifying a ledger set.
type Batch struct {
	Results  []model.ClassificationResult
	Failures []validation.RuleFailure
	Context  validation.Context
}

// Run resolves every ledger, derives the aggregate validation context from
// the resolved set, then validates each line. Results follow input order.
func (r *Resolver) Run(ledgers []model.LedgerAccount) Batch {
	b := Batch{Results: make([]model.ClassificationResult, len(ledgers))}
	lines := make([]validation.Line, len(ledgers))
	for i, l := range ledgers {
		b.Results[i] = r.resultFor(l)
		lines[i] = lineOf(b.Results[i])
	}
	b.Context = validation.NewContext(lines)
	for i := range b.Results {
		b.Failures = append(b.Failures, r.validate(&b.Results[i], b.Context)...)
	}
	return b
}

// ClassifyAll is Run without the batch details.
func (r *Resolver) ClassifyAll(ledgers []model.LedgerAccount) []model.ClassificationResult {
	return r.Run(ledgers).Results
}

// Issues flattens the issues of every result.
func Issues(results []model.ClassificationResult) []model.Issue {
	var out []model.Issue
	for _, res := range results {
		out = append(out, res.Issues...)
	}
	return out
}
