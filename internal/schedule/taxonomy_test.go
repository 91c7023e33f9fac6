package schedule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomyShape(t *testing.T) {
	tax := Default()
	require.Greater(t, tax.Len(), 0)

	for e := range tax.All() {
		if e.Note {
			assert.Equal(t, MinAssignableLevel, e.Level(), "%s: notes sit at level 3", e.Code)
		}
		if e.Level() < MinAssignableLevel {
			assert.False(t, e.Assignable(), "%s", e.Code)
		}
		assert.NotEqual(t, BalanceSheet|ProfitLoss, e.Statements, "%s: no stock code is dual-tagged", e.Code)
	}
}

func TestResolve(t *testing.T) {
	tax := Default()

	e, err := tax.Resolve("AS-CA-CASH")
	require.NoError(t, err)
	assert.Equal(t, "Cash and cash equivalents", e.Description)
	assert.True(t, e.Statements.Has(BalanceSheet))

	e, err = tax.Resolve("INC-REV-SALE")
	require.NoError(t, err)
	assert.True(t, e.Statements.Has(ProfitLoss))

	_, err = tax.Resolve("AS-CA")
	var mce *MalformedCodeError
	assert.True(t, errors.As(err, &mce), "level-2 codes are not assignable")

	_, err = tax.Resolve("AS-CA-CSH")
	var uce *UnknownCodeError
	require.True(t, errors.As(err, &uce))
	assert.Contains(t, uce.Suggestions, "AS-CA-CASH")
	assert.Contains(t, err.Error(), "did you mean")
}

func TestNoteOf(t *testing.T) {
	e, ok := Default().NoteOf("AS-CA-CASH-COH")
	require.True(t, ok)
	assert.Equal(t, "AS-CA-CASH", e.Code.String())

	_, ok = Default().NoteOf("XX-YY")
	assert.False(t, ok)
}

func TestAllNotableCodesRestartable(t *testing.T) {
	seq := Default().AllNotableCodes()

	var first, second []string
	for e := range seq {
		first = append(first, e.Code.String())
	}
	for e := range seq {
		second = append(second, e.Code.String())
		if len(second) == 3 {
			break
		}
	}
	require.NotEmpty(t, first)
	assert.Equal(t, first[:3], second)
	assert.Equal(t, "EL-SHF-SC", first[0])
}

func TestNewRejectsBadTables(t *testing.T) {
	_, err := New([]Entry{header("EL", "x"), header("EL", "y")})
	assert.ErrorContains(t, err, "duplicate")

	_, err = New([]Entry{note("EL-SHF-SC", "orphan")})
	assert.ErrorContains(t, err, "parent")

	_, err = New([]Entry{{Code: mustParse("ZZ"), Description: "nowhere"}})
	assert.ErrorContains(t, err, "no statement")
}

func TestStatementsString(t *testing.T) {
	assert.Equal(t, "BS", BalanceSheet.String())
	assert.Equal(t, "PL", ProfitLoss.String())
	assert.Equal(t, "BS-PL", (BalanceSheet | ProfitLoss).String())
	assert.Equal(t, "", Statements(0).String())
}
