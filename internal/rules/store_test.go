package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

func TestAddRejectsUnknownCode(t *testing.T) {
	s := NewStore(nil)
	err := s.Add(model.GroupRule{ID: "GM001", GroupName: "Cash-in-hand", TargetCode: "AS-CA-CSH", Active: true})
	require.Error(t, err)

	var uce *schedule.UnknownCodeError
	require.True(t, errors.As(err, &uce))
	assert.Equal(t, "AS-CA-CSH", uce.Code)
	assert.Zero(t, s.Len())
}

func TestAddRejectsMalformedAndHeaderCodes(t *testing.T) {
	s := NewStore(nil)
	var mce *schedule.MalformedCodeError

	err := s.Add(model.KeywordRule{ID: "KW001", Pattern: "x", MatchType: model.MatchContains, TargetCode: "AS-CA"})
	assert.True(t, errors.As(err, &mce), "level-2 targets are rejected")

	err = s.Add(model.KeywordRule{ID: "KW002", Pattern: "x", MatchType: model.MatchContains, TargetCode: "AS--CASH"})
	assert.True(t, errors.As(err, &mce))
}

func TestAddRejectsDuplicateID(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.Add(model.GroupRule{ID: "GM001", GroupName: "Cash-in-hand", TargetCode: "AS-CA-CASH"}))
	err := s.Add(model.OverrideRule{ID: "GM001", LedgerName: "Petty cash", TargetCode: "AS-CA-CASH"})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestAddRejectsInvalidFields(t *testing.T) {
	s := NewStore(nil)
	err := s.Add(model.KeywordRule{ID: "KW001", Pattern: "Sales", MatchType: "fuzzy", TargetCode: "INC-REV-SALE"})
	assert.Error(t, err)
	err = s.AddValidation(model.ValidationRule{ID: "VL001", Type: model.CheckUnmapped, Severity: "severe", MessageTemplate: "x"})
	assert.Error(t, err)
}

func TestStoreTiersKeepDeclarationOrder(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.Add(model.GroupRule{ID: "GM002", GroupName: "B", TargetCode: "AS-CA-CASH"}))
	require.NoError(t, s.Add(model.KeywordRule{ID: "KW001", Pattern: "a", MatchType: model.MatchContains, TargetCode: "AS-CA-CASH"}))
	require.NoError(t, s.Add(model.GroupRule{ID: "GM001", GroupName: "A", TargetCode: "AS-CA-CASH"}))
	require.NoError(t, s.Add(model.OverrideRule{ID: "OV001", LedgerName: "Z", TargetCode: "AS-CA-CASH"}))

	var ids []string
	for _, r := range s.Rules() {
		ids = append(ids, r.RuleID())
	}
	assert.Equal(t, []string{"OV001", "KW001", "GM002", "GM001"}, ids)
}

func TestRemoveAndSetActive(t *testing.T) {
	s := Defaults()
	n := s.Len()

	require.NoError(t, s.SetActive("KW015", false))
	for _, k := range s.Keywords() {
		if k.ID == "KW015" {
			assert.False(t, k.Active)
		}
	}

	assert.True(t, s.Remove("KW015"))
	assert.False(t, s.Remove("KW015"))
	assert.Equal(t, n-1, s.Len())

	var nf *NotFoundError
	assert.True(t, errors.As(s.SetActive("KW015", true), &nf))
}

func TestCopiesAreIndependent(t *testing.T) {
	s := Defaults()
	kws := s.Keywords()
	kws[0].Pattern = "changed"
	assert.NotEqual(t, "changed", s.Keywords()[0].Pattern)

	c := s.Clone()
	require.NoError(t, c.SetActive("GM001", false))
	assert.True(t, s.Groups()[0].Active)
}

func TestNextID(t *testing.T) {
	s := Defaults()
	assert.Equal(t, "KW042", s.NextID("KW"))
	assert.Equal(t, "OV003", s.NextID("OV"))
	assert.Equal(t, "VL013", s.NextID("VL"))
}

func TestDefaultsAreValid(t *testing.T) {
	s := Defaults()
	assert.Len(t, s.Overrides(), 2)
	assert.Len(t, s.Keywords(), 41)
	assert.Len(t, s.Groups(), 42)
	assert.Len(t, s.Validations(), 12)
}
