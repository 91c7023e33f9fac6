package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgermap/internal/model"
)

func TestMergeSkipsDuplicates(t *testing.T) {
	s := NewSet()
	added, err := s.Merge(SampleTrialBalance())
	require.NoError(t, err)
	assert.Equal(t, len(SampleTrialBalance()), added)

	again := []model.LedgerAccount{
		{Name: "Cash", Group: "Cash-in-hand"},
		{Name: "Cash", Group: "Petty Cash"},
		{Name: "Salary", Group: "Indirect Expenses"},
	}
	added, err = s.Merge(again)
	assert.Equal(t, 1, added)

	var dup *DuplicateLedgerError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, 2, dup.Count)
	assert.Equal(t, []model.LedgerKey{
		{Name: "Cash", Group: "Cash-in-hand"},
		{Name: "Salary", Group: "Indirect Expenses"},
	}, dup.Keys)
	assert.Equal(t, len(SampleTrialBalance())+1, s.Len())
}

func TestGetExists(t *testing.T) {
	s := NewSet()
	_, err := s.Merge(SampleTrialBalance())
	require.NoError(t, err)

	l, ok := s.Get(model.LedgerKey{Name: "HDFC Bank", Group: "Bank Accounts"})
	assert.True(t, ok)
	assert.Equal(t, "Current Assets", l.ParentGroup)

	_, ok = s.Get(model.LedgerKey{Name: "HDFC Bank", Group: "Cash-in-hand"})
	assert.False(t, ok)

	assert.True(t, s.Exists(model.LedgerKey{Name: "Cash", Group: "Cash-in-hand"}))
	assert.False(t, s.Exists(model.LedgerKey{Name: "Nope"}))
}

func TestByGroup(t *testing.T) {
	s := NewSet()
	_, err := s.Merge(SampleTrialBalance())
	require.NoError(t, err)

	exp := s.ByGroup("Indirect Expenses")
	assert.Len(t, exp, 2)
	for _, l := range exp {
		assert.Equal(t, "Indirect Expenses", l.Group)
	}
}

func TestSampleBalances(t *testing.T) {
	total := decimal.Zero
	for _, l := range SampleTrialBalance() {
		total = total.Add(l.Closing)
		assert.True(t, l.Amount.IsPositive(), "%s presents as positive", l.Name)
	}
	assert.True(t, total.IsZero())
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := NewSet()
	_, err := s.Merge(SampleTrialBalance())
	require.NoError(t, err)
	require.NoError(t, s.Save(dir, model.PeriodCurrent))

	_, err = os.Stat(filepath.Join(dir, "ledgers", "current.csv"))
	require.NoError(t, err)

	got, err := Load(dir, model.PeriodCurrent)
	require.NoError(t, err)
	require.Equal(t, s.Len(), got.Len())
	for i, l := range s.All() {
		assert.Equal(t, l.Key(), got.All()[i].Key())
		assert.True(t, l.Amount.Equal(got.All()[i].Amount), l.Name)
	}
}

func TestLoadMissingPeriod(t *testing.T) {
	s, err := Load(t.TempDir(), model.PeriodPrior)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}
