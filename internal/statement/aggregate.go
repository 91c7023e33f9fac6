package statement

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// Amounts maps a level-3 code to its summed statement amount.
type Amounts map[string]decimal.Decimal

// Get returns the amount for code, zero when absent.
func (a Amounts) Get(code string) decimal.Decimal {
	return a[code]
}

// SumByCode groups mapped results by level-3 code and sums their amounts.
// Sub-note codes roll up to their note.
func SumByCode(results []model.ClassificationResult) Amounts {
	out := make(Amounts)
	for _, r := range results {
		if !r.Mapped() {
			continue
		}
		key := r.Code
		if c, err := schedule.Decode(r.Code); err == nil {
			key = c.Note().String()
		}
		out[key] = out[key].Add(r.Ledger.Amount)
	}
	return out
}

// Pair holds the current and prior period value of one figure.
type Pair struct {
	Current decimal.Decimal `json:"current"`
	Prior   decimal.Decimal `json:"prior"`
}

func (p Pair) get(period model.Period) decimal.Decimal {
	if period == model.PeriodPrior {
		return p.Prior
	}
	return p.Current
}

func (p *Pair) set(period model.Period, v decimal.Decimal) {
	if period == model.PeriodPrior {
		p.Prior = v
		return
	}
	p.Current = v
}

// RowView is a template row with its figures.
type RowView struct {
	Row
	NoteNumber int  `json:"note_number,omitempty"`
	HasAmount  bool `json:"has_amount"`
	Amount     Pair `json:"amount"`
}

// ProfitLossView is the aggregated Profit and Loss statement.
type ProfitLossView struct {
	Rows            []RowView `json:"rows"`
	Revenue         Pair      `json:"revenue"`
	Expenses        Pair      `json:"expenses"`
	Tax             Pair      `json:"tax"`
	ProfitBeforeTax Pair      `json:"profit_before_tax"`
	NetProfit       Pair      `json:"net_profit"`
}

// BalanceSheetView is the aggregated Balance Sheet.
type BalanceSheetView struct {
	Rows          []RowView `json:"rows"`
	Liabilities   Pair      `json:"liabilities"`
	Assets        Pair      `json:"assets"`
	Imbalance     Pair      `json:"imbalance"`
	HasDifference bool      `json:"has_difference"`
}

// Statements holds both statements of one mapping variant.
type Statements struct {
	Variant      model.Variant    `json:"variant"`
	BalanceSheet BalanceSheetView `json:"balance_sheet"`
	ProfitLoss   ProfitLossView   `json:"profit_loss"`
	// Unplaced lists codes carrying an amount that no template line binds.
	Unplaced []string `json:"unplaced,omitempty"`
}

// Input is everything one variant's aggregation needs.
type Input struct {
	Variant model.Variant
	Current Amounts
	Prior   Amounts
	Balance Template
	Profit  Template
	Notes   ExportNotes
	Config  model.AggregationConfig
}

// plSection is the running P&L bucket a line row feeds.
type plSection int

const (
	plRevenue plSection = iota
	plExpenses
	plTax
	plAfterTax
)

// plAccumulator is fresh for each (period, variant) walk.
type plAccumulator struct {
	section                plSection
	revenue, expenses, tax decimal.Decimal
	sinceTotal             decimal.Decimal
}

func (a *plAccumulator) net() decimal.Decimal {
	return a.revenue.Sub(a.expenses).Sub(a.tax)
}

type bsAccumulator struct {
	assetsSide          bool
	liabilities, assets decimal.Decimal
	sinceTotal          decimal.Decimal
}

// Aggregate rolls amounts up into both statements for one variant. Current
// and prior are walked separately with their own accumulators.
func Aggregate(in Input) *Statements {
	out := &Statements{
		Variant:      in.Variant,
		ProfitLoss:   ProfitLossView{Rows: viewRows(in.Profit, in.Notes, in.Variant)},
		BalanceSheet: BalanceSheetView{Rows: viewRows(in.Balance, in.Notes, in.Variant)},
	}

	for _, period := range []model.Period{model.PeriodCurrent, model.PeriodPrior} {
		amounts := in.Current
		if period == model.PeriodPrior {
			amounts = in.Prior
		}
		pl := walkProfitLoss(out.ProfitLoss.Rows, amounts, period)
		out.ProfitLoss.Revenue.set(period, pl.revenue)
		out.ProfitLoss.Expenses.set(period, pl.expenses)
		out.ProfitLoss.Tax.set(period, pl.tax)
		out.ProfitLoss.ProfitBeforeTax.set(period, pl.revenue.Sub(pl.expenses))
		out.ProfitLoss.NetProfit.set(period, pl.net())

		bs := walkBalanceSheet(out.BalanceSheet.Rows, amounts, pl.net(), period)
		out.BalanceSheet.Liabilities.set(period, bs.liabilities)
		out.BalanceSheet.Assets.set(period, bs.assets)
		diff := bs.assets.Sub(bs.liabilities).Abs()
		out.BalanceSheet.Imbalance.set(period, diff)
		if diff.GreaterThan(in.Config.ImbalanceTolerance) {
			out.BalanceSheet.HasDifference = true
		}
	}

	out.Unplaced = unplaced(in)
	return out
}

func viewRows(t Template, notes ExportNotes, variant model.Variant) []RowView {
	rows := make([]RowView, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = RowView{Row: r, HasAmount: r.Kind == RowLine || r.Kind == RowTotal}
		if r.Kind == RowLine {
			if n, ok := notes.Lookup(t.Statement, variant, r.Code); ok {
				rows[i].NoteNumber = n
			}
		}
	}
	return rows
}

func walkProfitLoss(rows []RowView, amounts Amounts, period model.Period) *plAccumulator {
	acc := &plAccumulator{}
	for i := range rows {
		r := &rows[i]
		switch r.Role {
		case RoleExpensesStart:
			acc.section = plExpenses
		case RoleTaxStart:
			acc.section = plTax
		}
		switch r.Kind {
		case RowLine:
			v := amounts.Get(r.Code)
			r.Amount.set(period, v)
			acc.sinceTotal = acc.sinceTotal.Add(v)
			switch acc.section {
			case plRevenue:
				acc.revenue = acc.revenue.Add(v)
			case plExpenses:
				acc.expenses = acc.expenses.Add(v)
			case plTax:
				acc.tax = acc.tax.Add(v)
			}
		case RowTotal:
			r.Amount.set(period, totalFor(r.Total, acc.sinceTotal, acc.revenue.Sub(acc.expenses), acc.net()))
			acc.sinceTotal = decimal.Zero
		}
		if r.Role == RoleTaxEnd {
			acc.section = plAfterTax
		}
	}
	return acc
}

func walkBalanceSheet(rows []RowView, amounts Amounts, profit decimal.Decimal, period model.Period) *bsAccumulator {
	acc := &bsAccumulator{}
	injected := false
	for i := range rows {
		r := &rows[i]
		if r.Role == RoleAssetsStart {
			acc.assetsSide = true
		}
		switch r.Kind {
		case RowLine:
			v := amounts.Get(r.Code)
			if r.ProfitSink && !injected {
				v = v.Add(profit)
				injected = true
			}
			r.Amount.set(period, v)
			acc.sinceTotal = acc.sinceTotal.Add(v)
			if acc.assetsSide {
				acc.assets = acc.assets.Add(v)
			} else {
				acc.liabilities = acc.liabilities.Add(v)
			}
		case RowTotal:
			r.Amount.set(period, acc.sinceTotal)
			acc.sinceTotal = decimal.Zero
		}
	}
	return acc
}

func totalFor(kind TotalKind, section, beforeTax, net decimal.Decimal) decimal.Decimal {
	switch kind {
	case TotalProfitBeforeTax:
		return beforeTax
	case TotalProfitForPeriod:
		return net
	default:
		return section
	}
}

func unplaced(in Input) []string {
	bound := make(map[string]bool)
	for _, t := range []Template{in.Balance, in.Profit} {
		for _, r := range t.Lines() {
			bound[r.Code] = true
		}
	}
	seen := make(map[string]bool)
	var out []string
	for _, a := range []Amounts{in.Current, in.Prior} {
		for code, v := range a {
			if bound[code] || seen[code] || v.IsZero() {
				continue
			}
			seen[code] = true
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return out
}
