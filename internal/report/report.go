// Package report runs the full classify, number and aggregate pipeline for
// both mapping variants.
package report

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/ledgermap/internal/classify"
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
	"github.com/cleared-dev/ledgermap/internal/runlog"
	"github.com/cleared-dev/ledgermap/internal/schedule"
	"github.com/cleared-dev/ledgermap/internal/statement"
	"github.com/cleared-dev/ledgermap/internal/validation"
)

// Input is everything one run needs. Comparison is optional.
type Input struct {
	Current    []model.LedgerAccount
	Prior      []model.LedgerAccount
	Primary    *rules.Store
	Comparison *rules.Store
	Config     model.AggregationConfig
	// ComparisonConfig, when set, replaces Config for the comparison variant.
	ComparisonConfig *model.AggregationConfig
}

func (in Input) configFor(v model.Variant) model.AggregationConfig {
	if v == model.VariantComparison && in.ComparisonConfig != nil {
		return *in.ComparisonConfig
	}
	return in.Config
}

// Period holds one period's classification.
type Period struct {
	Results  []model.ClassificationResult `json:"results"`
	Stats    classify.Stats               `json:"stats"`
	Failures []string                     `json:"failures,omitempty"`
	Context  validation.Context           `json:"context"`
}

// Variant is the outcome of one mapping variant.
type Variant struct {
	Variant    model.Variant         `json:"variant"`
	Current    Period                `json:"current"`
	Prior      Period                `json:"prior"`
	NoteMap    schedule.NoteMap      `json:"-"`
	Statements *statement.Statements `json:"statements"`
}

// Report is the outcome of a run.
type Report struct {
	RunID    string                `json:"run_id"`
	Variants []*Variant            `json:"variants"`
	Notes    statement.ExportNotes `json:"-"`
}

// Variant returns the named variant, or nil.
func (r *Report) Variant(v model.Variant) *Variant {
	for _, out := range r.Variants {
		if out.Variant == v {
			return out
		}
	}
	return nil
}

// Build classifies both periods under each variant, numbers notes and
// aggregates statements. Variants share no state.
func Build(in Input) (*Report, error) {
	if in.Primary == nil {
		return nil, errors.New("primary rules are required")
	}
	if err := in.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid aggregation config: %w", err)
	}
	if in.ComparisonConfig != nil {
		if err := in.ComparisonConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid comparison aggregation config: %w", err)
		}
	}

	rep := &Report{RunID: runlog.NewRunID(), Notes: statement.NewExportNotes()}
	stores := []struct {
		variant model.Variant
		store   *rules.Store
	}{
		{model.VariantPrimary, in.Primary},
		{model.VariantComparison, in.Comparison},
	}
	for _, s := range stores {
		if s.store == nil {
			continue
		}
		v, err := buildVariant(s.variant, s.store, in, in.configFor(s.variant), rep.Notes)
		if err != nil {
			return nil, fmt.Errorf("%s variant: %w", s.variant, err)
		}
		rep.Variants = append(rep.Variants, v)

		logrus.WithFields(logrus.Fields{
			"run_id":         rep.RunID,
			"variant":        s.variant,
			"ledgers":        v.Current.Stats.Total,
			"unmapped":       v.Current.Stats.Unmapped,
			"issues":         v.Current.Stats.Validation.Total,
			"has_difference": v.Statements.BalanceSheet.HasDifference,
		}).Info("built statements")
	}
	return rep, nil
}

func buildVariant(variant model.Variant, store *rules.Store, in Input, cfg model.AggregationConfig, notes statement.ExportNotes) (*Variant, error) {
	tax := store.Taxonomy()
	nm, err := tax.BuildNoteNumberMap(cfg.StartNoteNumber, cfg.IncludeContingentLiabilities)
	if err != nil {
		return nil, err
	}
	r := classify.New(store, classify.WithNotes(nm))

	out := &Variant{
		Variant: variant,
		Current: period(r.Run(in.Current)),
		Prior:   period(r.Run(in.Prior)),
		NoteMap: nm,
	}

	current := statement.SumByCode(out.Current.Results)
	prior := statement.SumByCode(out.Prior.Results)
	if err := notes.NumberNotes(tax, variant, current, prior, cfg); err != nil {
		return nil, err
	}

	out.Statements = statement.Aggregate(statement.Input{
		Variant: variant,
		Current: current,
		Prior:   prior,
		Balance: statement.BalanceSheet(tax),
		Profit:  statement.ProfitLoss(tax),
		Notes:   notes,
		Config:  cfg,
	})
	if len(out.Statements.Unplaced) > 0 {
		logrus.WithFields(logrus.Fields{"variant": variant, "codes": out.Statements.Unplaced}).Warn("amounts on codes without a statement line")
	}
	return out, nil
}

func period(b classify.Batch) Period {
	p := Period{Results: b.Results, Stats: classify.Summarize(b.Results), Context: b.Context}
	for _, f := range b.Failures {
		p.Failures = append(p.Failures, f.Error())
	}
	return p
}

// LogEntries renders one run-log row per variant.
func (r *Report) LogEntries(command string) []runlog.Entry {
	var out []runlog.Entry
	for _, v := range r.Variants {
		out = append(out, runlog.Entry{
			RunID:         r.RunID,
			Command:       command,
			Variant:       string(v.Variant),
			Ledgers:       v.Current.Stats.Total,
			Mapped:        v.Current.Stats.Mapped,
			Unmapped:      v.Current.Stats.Unmapped,
			Issues:        v.Current.Stats.Validation.Total,
			HasDifference: v.Statements.BalanceSheet.HasDifference,
		})
	}
	return out
}
