// Package statement rolls classified ledgers up into the Balance Sheet and the
// Profit and Loss statement.
package statement

import (
	"strings"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// RowKind is the role of a template row.
type RowKind string

const (
	RowHeader    RowKind = "header"    // section title, no amount
	RowSubheader RowKind = "subheader" // indented title, no amount
	RowLine      RowKind = "line"      // bound to one level-3 code
	RowTotal     RowKind = "total"     // computed
)

// SectionRole marks a structural boundary used by the aggregator.
type SectionRole string

const (
	RoleNone          SectionRole = ""
	RoleAssetsStart   SectionRole = "assets-start"
	RoleExpensesStart SectionRole = "expenses-start"
	RoleTaxStart      SectionRole = "tax-start"
	RoleTaxEnd        SectionRole = "tax-end"
)

// TotalKind selects how a total row is computed.
type TotalKind string

const (
	TotalSection         TotalKind = "section"           // lines since the previous total
	TotalProfitBeforeTax TotalKind = "profit-before-tax" // revenue less expenses
	TotalProfitForPeriod TotalKind = "profit-for-period" // net profit
)

// Row is one row of a statement template.
type Row struct {
	Kind          RowKind     `json:"kind"`
	Label         string      `json:"label"`
	Code          string      `json:"code,omitempty"`
	Role          SectionRole `json:"role,omitempty"`
	Total         TotalKind   `json:"total,omitempty"`
	ProfitSink    bool        `json:"profit_sink,omitempty"`
	Uncategorised bool        `json:"uncategorised,omitempty"`
}

// Template is an ordered statement layout.
type Template struct {
	Statement model.Statement
	Rows      []Row
}

// Lines returns the line rows in order.
func (t Template) Lines() []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.Kind == RowLine {
			out = append(out, r)
		}
	}
	return out
}

const (
	// profitSinkCode receives net profit on the Balance Sheet.
	profitSinkCode = "EL-SHF-RS"
	// taxFaceGroup opens the tax section of the Profit and Loss.
	taxFaceGroup = "EXP-TAX"
	assetsArea   = "AS"
	expenseArea  = "EXP"
)

// BalanceSheet builds the Balance Sheet layout from a taxonomy.
func BalanceSheet(tax *schedule.Taxonomy) Template {
	t := Template{Statement: model.StatementBalanceSheet}
	seenArea := false
	for e := range tax.All() {
		if !e.Statements.Has(schedule.BalanceSheet) {
			continue
		}
		code := e.Code.String()
		switch e.Level() {
		case 1:
			if seenArea {
				t.Rows = append(t.Rows, Row{Kind: RowTotal, Label: "TOTAL", Total: TotalSection})
			}
			seenArea = true
			row := Row{Kind: RowHeader, Label: strings.ToUpper(e.Description), Code: code}
			if e.Code.Area == assetsArea {
				row.Role = RoleAssetsStart
			}
			t.Rows = append(t.Rows, row)
		case 2:
			t.Rows = append(t.Rows, Row{Kind: RowSubheader, Label: e.Description, Code: code})
		case schedule.MinAssignableLevel:
			t.Rows = append(t.Rows, Row{
				Kind:          RowLine,
				Label:         e.Description,
				Code:          code,
				ProfitSink:    code == profitSinkCode,
				Uncategorised: e.Uncategorised,
			})
		}
	}
	t.Rows = append(t.Rows, Row{Kind: RowTotal, Label: "TOTAL", Total: TotalSection})
	return t
}

// ProfitLoss builds the Profit and Loss layout from a taxonomy.
func ProfitLoss(tax *schedule.Taxonomy) Template {
	t := Template{Statement: model.StatementProfitLoss}
	seenArea := false
	for e := range tax.All() {
		if !e.Statements.Has(schedule.ProfitLoss) {
			continue
		}
		code := e.Code.String()
		switch e.Level() {
		case 1:
			if seenArea {
				t.Rows = append(t.Rows, Row{Kind: RowTotal, Label: "Total income", Total: TotalSection})
			}
			seenArea = true
			row := Row{Kind: RowHeader, Label: strings.ToUpper(e.Description), Code: code}
			if e.Code.Area == expenseArea {
				row.Role = RoleExpensesStart
			}
			t.Rows = append(t.Rows, row)
		case 2:
			row := Row{Kind: RowSubheader, Label: e.Description, Code: code}
			if code == taxFaceGroup {
				t.Rows = append(t.Rows,
					Row{Kind: RowTotal, Label: "Total expenses", Total: TotalSection},
					Row{Kind: RowTotal, Label: "Profit/(Loss) before tax", Total: TotalProfitBeforeTax},
				)
				row.Role = RoleTaxStart
			}
			t.Rows = append(t.Rows, row)
		case schedule.MinAssignableLevel:
			t.Rows = append(t.Rows, Row{Kind: RowLine, Label: e.Description, Code: code, Uncategorised: e.Uncategorised})
		}
	}
	t.Rows = append(t.Rows, Row{Kind: RowTotal, Label: "Profit/(Loss) for the period", Total: TotalProfitForPeriod, Role: RoleTaxEnd})
	return t
}
