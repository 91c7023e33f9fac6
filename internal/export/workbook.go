// Package export writes aggregated statements to an Excel workbook.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/statement"
)

// Header is printed above every sheet.
type Header struct {
	Company      string
	CurrentLabel string
	PriorLabel   string
}

// FirstDataRow is the sheet row of the first statement row. The rows above
// it hold the header block.
const FirstDataRow = 5

const amountFormat = "#,##0.00;(#,##0.00)"

// Exporter accumulates statement sheets in one workbook.
type Exporter struct {
	wb     *excelize.File
	header Header
	sheets int
	bold   int
	amount int
	total  int
}

// New creates an empty workbook.
func New(h Header) (*Exporter, error) {
	if h.CurrentLabel == "" {
		h.CurrentLabel = "Current period"
	}
	if h.PriorLabel == "" {
		h.PriorLabel = "Previous period"
	}
	wb := excelize.NewFile()
	e := &Exporter{wb: wb, header: h}

	var err error
	if e.bold, err = wb.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	format := amountFormat
	if e.amount, err = wb.NewStyle(&excelize.Style{CustomNumFmt: &format}); err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	if e.total, err = wb.NewStyle(&excelize.Style{CustomNumFmt: &format, Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, fmt.Errorf("creating style: %w", err)
	}
	return e, nil
}

// SheetName names the sheet of one statement of one variant.
func SheetName(st model.Statement, variant model.Variant) string {
	title := "Balance Sheet"
	if st == model.StatementProfitLoss {
		title = "Profit and Loss"
	}
	return fmt.Sprintf("%s (%s)", title, variant)
}

// AddStatements writes both statements of a variant as two sheets.
func (e *Exporter) AddStatements(s *statement.Statements) error {
	if s == nil {
		return errors.New("statements are nil")
	}
	if err := e.addSheet(model.StatementBalanceSheet, s.Variant, s.BalanceSheet.Rows); err != nil {
		return err
	}
	if s.BalanceSheet.HasDifference {
		if err := e.appendDifference(SheetName(model.StatementBalanceSheet, s.Variant), len(s.BalanceSheet.Rows), s.BalanceSheet.Imbalance); err != nil {
			return err
		}
	}
	return e.addSheet(model.StatementProfitLoss, s.Variant, s.ProfitLoss.Rows)
}

func (e *Exporter) addSheet(st model.Statement, variant model.Variant, rows []statement.RowView) error {
	name := SheetName(st, variant)
	idx, err := e.wb.NewSheet(name)
	if err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}
	if e.sheets == 0 {
		e.wb.SetActiveSheet(idx)
	}
	e.sheets++

	title := "Balance Sheet"
	if st == model.StatementProfitLoss {
		title = "Statement of Profit and Loss"
	}
	head := [][]interface{}{
		{e.header.Company},
		{title},
		{},
		{"Particulars", "Note No.", e.header.CurrentLabel, e.header.PriorLabel},
	}
	for i, r := range head {
		if err := e.setRow(name, i+1, r); err != nil {
			return err
		}
	}
	if err := e.wb.SetCellStyle(name, "A1", "D4", e.bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rows {
		n := FirstDataRow + i
		if err := e.setRow(name, n, rowValues(r)); err != nil {
			return err
		}
		if err := e.styleRow(name, n, r); err != nil {
			return err
		}
	}

	if err := e.wb.SetColWidth(name, "A", "A", 60); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}
	return e.wb.SetColWidth(name, "B", "D", 18)
}

func rowValues(r statement.RowView) []interface{} {
	label := r.Label
	if r.Kind == statement.RowLine {
		label = "    " + label
	}
	out := []interface{}{label, nil, nil, nil}
	if r.NoteNumber > 0 {
		out[1] = r.NoteNumber
	}
	if r.HasAmount {
		out[2] = r.Amount.Current.InexactFloat64()
		out[3] = r.Amount.Prior.InexactFloat64()
	}
	return out
}

func (e *Exporter) styleRow(sheet string, n int, r statement.RowView) error {
	var err error
	switch r.Kind {
	case statement.RowHeader, statement.RowSubheader:
		err = e.wb.SetCellStyle(sheet, cell("A", n), cell("A", n), e.bold)
	case statement.RowTotal:
		if err = e.wb.SetCellStyle(sheet, cell("A", n), cell("A", n), e.bold); err == nil {
			err = e.wb.SetCellStyle(sheet, cell("C", n), cell("D", n), e.total)
		}
	case statement.RowLine:
		err = e.wb.SetCellStyle(sheet, cell("C", n), cell("D", n), e.amount)
	}
	if err != nil {
		return fmt.Errorf("styling row %d: %w", n, err)
	}
	return nil
}

func (e *Exporter) appendDifference(sheet string, rows int, imbalance statement.Pair) error {
	n := FirstDataRow + rows + 1
	if err := e.setRow(sheet, n, []interface{}{"Difference", nil, imbalance.Current.InexactFloat64(), imbalance.Prior.InexactFloat64()}); err != nil {
		return err
	}
	return e.wb.SetCellStyle(sheet, cell("C", n), cell("D", n), e.total)
}

func (e *Exporter) setRow(sheet string, n int, values []interface{}) error {
	if err := e.wb.SetSheetRow(sheet, cell("A", n), &values); err != nil {
		return fmt.Errorf("writing row %d of %s: %w", n, sheet, err)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// Write drops the default sheet and writes the workbook.
func (e *Exporter) Write(w io.Writer) error {
	if e.sheets == 0 {
		return errors.New("no statements to export")
	}
	if err := e.dropDefaultSheet(); err != nil {
		return err
	}
	if _, err := e.wb.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// SaveAs writes the workbook to path.
func (e *Exporter) SaveAs(path string) error {
	if e.sheets == 0 {
		return errors.New("no statements to export")
	}
	if err := e.dropDefaultSheet(); err != nil {
		return err
	}
	if err := e.wb.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func (e *Exporter) dropDefaultSheet() error {
	for _, name := range e.wb.GetSheetList() {
		if strings.EqualFold(name, "Sheet1") {
			if err := e.wb.DeleteSheet(name); err != nil {
				return fmt.Errorf("removing default sheet: %w", err)
			}
		}
	}
	return nil
}

// Close releases the workbook.
func (e *Exporter) Close() error {
	return e.wb.Close()
}
