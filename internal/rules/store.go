// Package rules holds the classification and validation rule collections and
// their persistence.
package rules

import (
	"fmt"
	"slices"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/ruleid"
	"github.com/cleared-dev/ledgermap/internal/schedule"
)

// Store is the set of Override, Keyword, Group and Validation rules in
// declaration order. Every rule in a Store targets a code that exists in its
// taxonomy.
type Store struct {
	tax         *schedule.Taxonomy
	overrides   []model.OverrideRule
	keywords    []model.KeywordRule
	groups      []model.GroupRule
	validations []model.ValidationRule
	ids         map[string]struct{}
}

// NewStore creates an empty store bound to a taxonomy.
func NewStore(tax *schedule.Taxonomy) *Store {
	if tax == nil {
		tax = schedule.Default()
	}
	return &Store{tax: tax, ids: make(map[string]struct{})}
}

// Taxonomy returns the taxonomy rules are checked against.
func (s *Store) Taxonomy() *schedule.Taxonomy { return s.tax }

// Add validates a classification rule and appends it to its tier. A target
// code missing from the taxonomy is rejected with *schedule.UnknownCodeError.
func (s *Store) Add(r model.Rule) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("rule %s: %w", r.RuleID(), err)
	}
	if _, dup := s.ids[r.RuleID()]; dup {
		return fmt.Errorf("rule %s: %w", r.RuleID(), ErrDuplicateID)
	}
	if _, err := s.tax.Resolve(r.Target()); err != nil {
		return fmt.Errorf("rule %s: %w", r.RuleID(), err)
	}

	switch v := r.(type) {
	case model.OverrideRule:
		s.overrides = append(s.overrides, v)
	case model.KeywordRule:
		s.keywords = append(s.keywords, v)
	case model.GroupRule:
		s.groups = append(s.groups, v)
	default:
		return fmt.Errorf("rule %s: unsupported rule kind %T", r.RuleID(), r)
	}
	s.ids[r.RuleID()] = struct{}{}
	return nil
}

// AddValidation validates and appends a validation rule.
func (s *Store) AddValidation(v model.ValidationRule) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("rule %s: %w", v.ID, err)
	}
	if _, dup := s.ids[v.ID]; dup {
		return fmt.Errorf("rule %s: %w", v.ID, ErrDuplicateID)
	}
	s.validations = append(s.validations, v)
	s.ids[v.ID] = struct{}{}
	return nil
}

// Remove deletes a rule of any kind by ID.
func (s *Store) Remove(id string) bool {
	if _, ok := s.ids[id]; !ok {
		return false
	}
	delete(s.ids, id)
	s.overrides = slices.DeleteFunc(s.overrides, func(r model.OverrideRule) bool { return r.ID == id })
	s.keywords = slices.DeleteFunc(s.keywords, func(r model.KeywordRule) bool { return r.ID == id })
	s.groups = slices.DeleteFunc(s.groups, func(r model.GroupRule) bool { return r.ID == id })
	s.validations = slices.DeleteFunc(s.validations, func(r model.ValidationRule) bool { return r.ID == id })
	return true
}

// SetActive toggles a rule without removing it.
func (s *Store) SetActive(id string, active bool) error {
	for i := range s.overrides {
		if s.overrides[i].ID == id {
			s.overrides[i].Active = active
			return nil
		}
	}
	for i := range s.keywords {
		if s.keywords[i].ID == id {
			s.keywords[i].Active = active
			return nil
		}
	}
	for i := range s.groups {
		if s.groups[i].ID == id {
			s.groups[i].Active = active
			return nil
		}
	}
	for i := range s.validations {
		if s.validations[i].ID == id {
			s.validations[i].Active = active
			return nil
		}
	}
	return &NotFoundError{ID: id}
}

// Overrides returns a copy of the override rules.
func (s *Store) Overrides() []model.OverrideRule { return slices.Clone(s.overrides) }

// Keywords returns a copy of the keyword rules in declaration order.
func (s *Store) Keywords() []model.KeywordRule { return slices.Clone(s.keywords) }

// Groups returns a copy of the group rules.
func (s *Store) Groups() []model.GroupRule { return slices.Clone(s.groups) }

// Validations returns a copy of the validation rules.
func (s *Store) Validations() []model.ValidationRule { return slices.Clone(s.validations) }

// Rules returns every classification rule, tier by tier.
func (s *Store) Rules() []model.Rule {
	out := make([]model.Rule, 0, len(s.overrides)+len(s.keywords)+len(s.groups))
	for _, r := range s.overrides {
		out = append(out, r)
	}
	for _, r := range s.keywords {
		out = append(out, r)
	}
	for _, r := range s.groups {
		out = append(out, r)
	}
	return out
}

// Len returns the number of rules of all kinds.
func (s *Store) Len() int { return len(s.ids) }

// NextID returns an unused ID for the given prefix.
func (s *Store) NextID(prefix string) string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	return ruleid.Next(prefix, ids)
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	c := NewStore(s.tax)
	c.overrides = slices.Clone(s.overrides)
	c.keywords = slices.Clone(s.keywords)
	c.groups = slices.Clone(s.groups)
	c.validations = slices.Clone(s.validations)
	for id := range s.ids {
		c.ids[id] = struct{}{}
	}
	return c
}
