package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ledgermap/internal/model"
)

// XLSXParser reads the first sheet of an Excel trial balance.
type XLSXParser struct {
	Options Options
}

// Format returns the parser name.
func (p *XLSXParser) Format() string { return "xlsx" }

// Parse reads the first worksheet of the workbook.
func (p *XLSXParser) Parse(r io.Reader) ([]model.LedgerAccount, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	return parseTable(rows, p.Options)
}
