package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/ledgermap/internal/classify"
	"github.com/cleared-dev/ledgermap/internal/ledger"
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
)

func readSample(t *testing.T) []model.LedgerAccount {
	t.Helper()
	f, err := os.Open("../../testdata/trial_balance.csv")
	require.NoError(t, err)
	defer f.Close()

	ls, err := (&CSVParser{}).Parse(f)
	require.NoError(t, err)
	return ls
}

func TestCSVParser_Parse(t *testing.T) {
	ls := readSample(t)
	require.Len(t, ls, 12)

	capital := ls[0]
	assert.Equal(t, "Equity Share Capital", capital.Name)
	assert.Equal(t, "Capital Account", capital.Group)
	assert.Equal(t, "-100000", capital.Closing.String())
	assert.Equal(t, "100000", capital.Amount.String())
	assert.False(t, capital.IsDeemedPositive)

	bank := ls[1]
	assert.Equal(t, "Bank Accounts", bank.Group)
	assert.Equal(t, "Current Assets", bank.ParentGroup)
	assert.Equal(t, "45000", bank.Closing.String())
	assert.Equal(t, "25000", bank.Debit.String())
	assert.True(t, bank.IsDeemedPositive)

	creditors := ls[3]
	assert.Equal(t, "-15000", creditors.Closing.String(), "parentheses are negative")
	assert.Equal(t, "15000", creditors.Amount.String())
}

func TestCSVParser_Balances(t *testing.T) {
	total := decimal.Zero
	for _, l := range readSample(t)[:11] {
		total = total.Add(l.Closing)
	}
	assert.True(t, total.IsZero(), "got %s", total)
}

func TestParseMissingClosingUsesMovement(t *testing.T) {
	csv := "Ledger,Group,Opening,Debit,Credit\nCash,Cash-in-hand,100,50,30\n"
	ls, err := (&CSVParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ls, 1)
	assert.Equal(t, "120", ls[0].Closing.String())
	assert.True(t, ls[0].IsDeemedPositive, "cash-in-hand is debit-natured")
}

func TestParseInfersNatureFromGroup(t *testing.T) {
	csv := "Name,Parent,Closing Balance\n" +
		"HDFC Bank,Bank Accounts,-300\n" +
		"Discount Reversal,Indirect Expenses,-40\n" +
		"Beta Supplies,Sundry Creditors,-15000\n" +
		"Advance to Beta,Sundry Creditors,200\n"
	ls, err := (&CSVParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ls, 4)

	assert.True(t, ls[0].IsDeemedPositive)
	assert.Equal(t, "-300", ls[0].Amount.String(), "overdrawn bank keeps its credit sign")
	assert.True(t, ls[1].IsDeemedPositive)
	assert.Equal(t, "-40", ls[1].Amount.String())
	assert.False(t, ls[2].IsDeemedPositive)
	assert.Equal(t, "15000", ls[2].Amount.String())
	assert.Equal(t, "-200", ls[3].Amount.String(), "creditor in debit keeps its sign")

	results := classify.New(rules.Defaults()).ClassifyAll(ls)
	issueTypes := func(r model.ClassificationResult) []string {
		var out []string
		for _, i := range r.Issues {
			out = append(out, i.Type)
		}
		return out
	}
	assert.Contains(t, issueTypes(results[0]), model.CheckAssetCreditBalance)
	assert.Contains(t, issueTypes(results[1]), model.CheckSignPolarity)
	assert.NotContains(t, issueTypes(results[2]), model.CheckLiabilityDebitBalance)
	assert.Contains(t, issueTypes(results[3]), model.CheckLiabilityDebitBalance)
}

func TestParseKeepsLedgersNamedTotal(t *testing.T) {
	csv := "Name,Parent,Closing Balance,IsDeemedPositive\n" +
		"Total Gas Ltd,Sundry Creditors,-500,0\n" +
		"Sub Total,,-500,0\n" +
		"Grand Total:,,0,0\n"
	ls, err := (&CSVParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ls, 1)
	assert.Equal(t, "Total Gas Ltd", ls[0].Name)
}

func TestParseDebitNegative(t *testing.T) {
	csv := "Name,Parent,Closing Balance,IsDeemedPositive,IsRevenue\nCash,Cash-in-hand,-500,1,0\nSales,Sales Accounts,900,0,1\n"
	ls, err := (&CSVParser{Options: Options{DebitNegative: true}}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, ls, 2)
	assert.Equal(t, "500", ls[0].Closing.String())
	assert.Equal(t, "500", ls[0].Amount.String())
	assert.Equal(t, "-900", ls[1].Closing.String())
	assert.Equal(t, "900", ls[1].Amount.String())
	assert.True(t, ls[1].IsRevenue)
}

func TestParseErrors(t *testing.T) {
	_, err := (&CSVParser{}).Parse(strings.NewReader("Foo,Bar\n1,2\n"))
	assert.ErrorContains(t, err, "no name or ledger column")

	_, err = (&CSVParser{}).Parse(strings.NewReader("Name,Closing\nCash,lots\n"))
	assert.ErrorContains(t, err, "row 2")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "0"},
		{"-", "0"},
		{"1,200.50", "1200.5"},
		{"1,00,000", "100000"},
		{"(250)", "-250"},
		{"250 Cr", "-250"},
		{"250 Dr", "250"},
		{"-250", "-250"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestMapColumns(t *testing.T) {
	cols := mapColumns([]string{"Ledger Name", "Under", "Primary Group", "Closing Balance"})
	assert.Equal(t, 0, cols[fieldName])
	assert.Equal(t, 1, cols[fieldGroup])
	assert.Equal(t, 2, cols[fieldParentGroup])
	assert.Equal(t, 3, cols[fieldClosing])
	assert.Equal(t, -1, cols[fieldDebit])
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Trial Balance"},
		{"Name", "Parent", "Closing Balance", "IsDeemedPositive"},
		{"Cash", "Cash-in-hand", 5000, 1},
		{"Sales - Domestic", "Sales Accounts", -20000, 0},
		{"Total", "", 0, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	ls, err := (&XLSXParser{}).Parse(buf)
	require.NoError(t, err)
	require.Len(t, ls, 2)
	assert.Equal(t, "Cash", ls[0].Name)
	assert.Equal(t, "5000", ls[0].Amount.String())
	assert.Equal(t, "20000", ls[1].Amount.String())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry(Options{})
	assert.NotNil(t, r.Get("CSV"))
	assert.NotNil(t, r.Get("Xlsx"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestScan_FindsSupportedFiles(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(filepath.Join(importDir, "processed"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(importDir, "tb.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "tb.XLSX"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "notes.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "processed", "old.csv"), []byte("data"), 0o644))

	files, err := DefaultRegistry(Options{}).Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "tb.XLSX", files[0].Name)
	assert.Equal(t, "xlsx", files[0].Format())
	assert.Equal(t, "tb.csv", files[1].Name)
}

func TestScan_EmptyDir(t *testing.T) {
	files, err := DefaultRegistry(Options{}).Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "tb.csv"), []byte("data"), 0o644))

	require.NoError(t, MarkProcessed(dir, "tb.csv"))

	_, err := os.Stat(filepath.Join(importDir, "tb.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "tb.csv"))
	assert.NoError(t, err)
}

func TestImportMergesAndCountsDuplicates(t *testing.T) {
	dir := t.TempDir()
	importDir := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importDir, 0o755))
	data, err := os.ReadFile("../../testdata/trial_balance.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(importDir, "tb.csv"), data, 0o644))

	r := DefaultRegistry(Options{})
	files, err := r.Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	set := ledger.NewSet()
	res, err := r.Import(dir, files[0], set)
	require.NoError(t, err)
	assert.Equal(t, 12, res.Parsed)
	assert.Equal(t, 11, res.Added)
	assert.Equal(t, 1, res.Duplicates)
	assert.Equal(t, 11, set.Len())

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "tb.csv"))
	assert.NoError(t, err)
}
