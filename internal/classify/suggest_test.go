package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
)

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("Cash", "cash"), 0.0001)
	assert.InDelta(t, 1.0, Similarity("", ""), 0.0001)
	assert.InDelta(t, 0.75, Similarity("cash", "cast"), 0.0001)
	assert.Less(t, Similarity("cash", "inventory"), 0.5)
}

func TestSuggestForMisspeltGroup(t *testing.T) {
	l := model.LedgerAccount{Name: "Petty cash", Group: "Cash in Hand"}
	got := Suggest(l, rules.Defaults(), 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "GM028", got[0].RuleID)
	assert.Equal(t, "AS-CA-CASH-COH", got[0].Code)
}

func TestSuggestKeywordWord(t *testing.T) {
	l := model.LedgerAccount{Name: "Staff Salry", Group: "Unknown"}
	got := Suggest(l, rules.Defaults(), 5)
	require.NotEmpty(t, got)

	var ids []string
	for _, s := range got {
		ids = append(ids, s.RuleID)
	}
	assert.Contains(t, ids, "KW029")
}

func TestSuggestNothingClose(t *testing.T) {
	l := model.LedgerAccount{Name: "Qwxz", Group: "Zzzz"}
	assert.Empty(t, Suggest(l, rules.Defaults(), 3))
}
