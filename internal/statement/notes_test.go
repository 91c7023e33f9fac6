package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

func TestNumberNotesSkipsEmpty(t *testing.T) {
	tax := schedule.Default()
	notes := NewExportNotes()
	cur := amounts("EL-SHF-SC", "100", "AS-CA-CASH", "100")
	prior := amounts("AS-CA-TR", "40", "EXP-OE-RENT", "5")
	require.NoError(t, notes.NumberNotes(tax, model.VariantPrimary, cur, prior, model.DefaultAggregationConfig()))

	get := func(st model.Statement, code string) int {
		n, ok := notes.Lookup(st, model.VariantPrimary, code)
		require.True(t, ok, code)
		return n
	}
	assert.Equal(t, 1, get(model.StatementBalanceSheet, "EL-SHF-SC"))
	assert.Equal(t, 2, get(model.StatementBalanceSheet, "AS-CA-TR"))
	assert.Equal(t, 3, get(model.StatementBalanceSheet, "AS-CA-CASH"))
	assert.Equal(t, 4, notes.Contingent[model.VariantPrimary])
	assert.Equal(t, 5, get(model.StatementProfitLoss, "EXP-OE-RENT"))

	_, ok := notes.Lookup(model.StatementBalanceSheet, model.VariantPrimary, "EL-SHF-RS")
	assert.False(t, ok)
	assert.Equal(t, schedule.Range{First: 1, Last: 3}, notes.Range(model.StatementBalanceSheet, model.VariantPrimary))
}

func TestNumberNotesWithoutSkipMatchesStaticMap(t *testing.T) {
	tax := schedule.Default()
	cfg := model.DefaultAggregationConfig()
	cfg.SkipEmptyNotes = false
	cfg.StartNoteNumber = 3
	notes := NewExportNotes()
	require.NoError(t, notes.NumberNotes(tax, model.VariantPrimary, Amounts{}, Amounts{}, cfg))

	static, err := tax.BuildNoteNumberMap(3, true)
	require.NoError(t, err)
	for code, want := range static.Numbers {
		st := model.StatementBalanceSheet
		if _, ok := notes.Lookup(st, model.VariantPrimary, code); !ok {
			st = model.StatementProfitLoss
		}
		got, ok := notes.Lookup(st, model.VariantPrimary, code)
		require.True(t, ok, code)
		assert.Equal(t, want, got, code)
	}
	assert.Equal(t, static.Contingent, notes.Contingent[model.VariantPrimary])
}

func TestNumberNotesWithoutContingent(t *testing.T) {
	cfg := model.DefaultAggregationConfig()
	cfg.IncludeContingentLiabilities = false
	notes := NewExportNotes()
	require.NoError(t, notes.NumberNotes(schedule.Default(), model.VariantPrimary,
		amounts("AS-CA-CASH", "1", "INC-REV-SALE", "1"), Amounts{}, cfg))

	n, ok := notes.Lookup(model.StatementProfitLoss, model.VariantPrimary, "INC-REV-SALE")
	require.True(t, ok)
	assert.Equal(t, 2, n)
	_, ok = notes.Contingent[model.VariantPrimary]
	assert.False(t, ok)
}

func TestNumberNotesVariantsAreIndependent(t *testing.T) {
	tax := schedule.Default()
	cur := amounts("AS-CA-CASH", "10", "INC-REV-SALE", "10")

	run := func(comparisonCfg model.AggregationConfig) ExportNotes {
		notes := NewExportNotes()
		require.NoError(t, notes.NumberNotes(tax, model.VariantPrimary, cur, Amounts{}, model.DefaultAggregationConfig()))
		require.NoError(t, notes.NumberNotes(tax, model.VariantComparison,
			amounts("EL-SHF-SC", "1", "AS-CA-CASH", "1", "INC-REV-SALE", "1"), Amounts{}, comparisonCfg))
		return notes
	}

	a := run(model.DefaultAggregationConfig())
	shifted := model.DefaultAggregationConfig()
	shifted.StartNoteNumber = 20
	b := run(shifted)

	for _, notes := range []ExportNotes{a, b} {
		n, _ := notes.Lookup(model.StatementBalanceSheet, model.VariantPrimary, "AS-CA-CASH")
		assert.Equal(t, 1, n)
		n, _ = notes.Lookup(model.StatementProfitLoss, model.VariantPrimary, "INC-REV-SALE")
		assert.Equal(t, 3, n)
	}

	n, _ := a.Lookup(model.StatementBalanceSheet, model.VariantComparison, "EL-SHF-SC")
	assert.Equal(t, 1, n, "comparison restarts at the start number")
	n, _ = b.Lookup(model.StatementBalanceSheet, model.VariantComparison, "EL-SHF-SC")
	assert.Equal(t, 20, n)
}

func TestNumberNotesRenumbersVariant(t *testing.T) {
	tax := schedule.Default()
	notes := NewExportNotes()
	cfg := model.DefaultAggregationConfig()
	require.NoError(t, notes.NumberNotes(tax, model.VariantPrimary, amounts("EL-SHF-SC", "1"), Amounts{}, cfg))
	require.NoError(t, notes.NumberNotes(tax, model.VariantPrimary, amounts("AS-CA-CASH", "1"), Amounts{}, cfg))

	_, ok := notes.Lookup(model.StatementBalanceSheet, model.VariantPrimary, "EL-SHF-SC")
	assert.False(t, ok)
	n, ok := notes.Lookup(model.StatementBalanceSheet, model.VariantPrimary, "AS-CA-CASH")
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestNumberNotesRejectsBadStart(t *testing.T) {
	cfg := model.DefaultAggregationConfig()
	cfg.StartNoteNumber = 0
	err := NewExportNotes().NumberNotes(schedule.Default(), model.VariantPrimary, Amounts{}, Amounts{}, cfg)
	assert.Error(t, err)
}
