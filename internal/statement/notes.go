package statement

import (
	"fmt"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// NoteKey identifies one numbered line.
type NoteKey struct {
	Statement model.Statement
	Variant   model.Variant
	Code      string
}

// ExportNotes holds the ledger-aware note numbers of every variant.
type ExportNotes struct {
	Numbers    map[NoteKey]int
	Contingent map[model.Variant]int
}

// NewExportNotes returns an empty set.
func NewExportNotes() ExportNotes {
	return ExportNotes{Numbers: make(map[NoteKey]int), Contingent: make(map[model.Variant]int)}
}

// Lookup returns the note number of a line.
func (n ExportNotes) Lookup(st model.Statement, variant model.Variant, code string) (int, bool) {
	if n.Numbers == nil {
		return 0, false
	}
	v, ok := n.Numbers[NoteKey{Statement: st, Variant: variant, Code: code}]
	return v, ok
}

// Range returns the lowest and highest numbers allocated to a statement of a
// variant. Both are zero when nothing was numbered.
func (n ExportNotes) Range(st model.Statement, variant model.Variant) schedule.Range {
	var r schedule.Range
	for k, v := range n.Numbers {
		if k.Statement != st || k.Variant != variant {
			continue
		}
		if r.First == 0 || v < r.First {
			r.First = v
		}
		if v > r.Last {
			r.Last = v
		}
	}
	return r
}

// NumberNotes numbers one variant's notes from cfg.StartNoteNumber: Balance
// Sheet notes in taxonomy order, the contingent-liabilities slot when
// configured, then Profit and Loss notes. With SkipEmptyNotes, a note with no
// amount in either period gets no number. Each call restarts at the start
// number, so variants never share a sequence.
func (n ExportNotes) NumberNotes(tax *schedule.Taxonomy, variant model.Variant, current, prior Amounts, cfg model.AggregationConfig) error {
	if cfg.StartNoteNumber < 1 {
		return fmt.Errorf("start note number must be at least 1, got %d", cfg.StartNoteNumber)
	}
	for k := range n.Numbers {
		if k.Variant == variant {
			delete(n.Numbers, k)
		}
	}
	delete(n.Contingent, variant)

	next := cfg.StartNoteNumber
	assign := func(st schedule.Statements, statement model.Statement) {
		for e := range tax.Notes(st) {
			code := e.Code.String()
			if cfg.SkipEmptyNotes && current.Get(code).IsZero() && prior.Get(code).IsZero() {
				continue
			}
			n.Numbers[NoteKey{Statement: statement, Variant: variant, Code: code}] = next
			next++
		}
	}

	assign(schedule.BalanceSheet, model.StatementBalanceSheet)
	if cfg.IncludeContingentLiabilities {
		n.Contingent[variant] = next
		next++
	}
	assign(schedule.ProfitLoss, model.StatementProfitLoss)
	return nil
}
