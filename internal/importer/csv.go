package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/ledgermap/internal/model"
)

// CSVParser reads trial balances exported as CSV.
type CSVParser struct {
	Options Options
}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a CSV trial balance. Rows may be ragged; a preamble before the
// header row is skipped.
func (p *CSVParser) Parse(r io.Reader) ([]model.LedgerAccount, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading trial balance CSV: %w", err)
	}
	return parseTable(records, p.Options)
}
