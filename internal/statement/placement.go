package statement

import (
	"strings"

	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// Placement tells which statement a category belongs to.
type Placement string

const (
	PlacementNone         Placement = ""
	PlacementBalanceSheet Placement = "BS"
	PlacementProfitLoss   Placement = "PL"
	PlacementBoth         Placement = "BS-PL"
)

// Placer answers placement lookups against a pair of templates.
type Placer struct {
	index map[string]schedule.Statements
}

// NewPlacer indexes the line labels and codes of both templates. Sub-notes of
// a line's code are indexed with it.
func NewPlacer(tax *schedule.Taxonomy, balance, profit Template) *Placer {
	p := &Placer{index: make(map[string]schedule.Statements)}
	p.add(tax, balance, schedule.BalanceSheet)
	p.add(tax, profit, schedule.ProfitLoss)
	return p
}

func (p *Placer) add(tax *schedule.Taxonomy, t Template, st schedule.Statements) {
	lines := make(map[string]bool)
	for _, r := range t.Lines() {
		p.index[normalize(r.Label)] |= st
		p.index[normalize(r.Code)] |= st
		lines[r.Code] = true
	}
	for e := range tax.All() {
		if e.Level() <= schedule.MinAssignableLevel || !lines[e.Code.Note().String()] {
			continue
		}
		p.index[normalize(e.Description)] |= st
		p.index[normalize(e.Code.String())] |= st
	}
}

// Placement reports whether category names a Balance Sheet line, a Profit and
// Loss line, both, or neither.
func (p *Placer) Placement(category string) Placement {
	st := p.index[normalize(category)]
	switch {
	case st.Has(schedule.BalanceSheet) && st.Has(schedule.ProfitLoss):
		return PlacementBoth
	case st.Has(schedule.BalanceSheet):
		return PlacementBalanceSheet
	case st.Has(schedule.ProfitLoss):
		return PlacementProfitLoss
	default:
		return PlacementNone
	}
}

// DefaultPlacer indexes the stock templates of the default taxonomy.
func DefaultPlacer() *Placer {
	tax := schedule.Default()
	return NewPlacer(tax, BalanceSheet(tax), ProfitLoss(tax))
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
