package validation

import (
	"sort"

	"github.com/cleared-dev/ledgermap/internal/model"
)

// Summary counts issues by severity and by validation type.
type Summary struct {
	Total      int                    `json:"total"`
	BySeverity map[model.Severity]int `json:"by_severity"`
	ByType     map[string]int         `json:"by_type"`
}

// Summarize derives counts from an issue list.
func Summarize(issues []model.Issue) Summary {
	s := Summary{
		Total:      len(issues),
		BySeverity: make(map[model.Severity]int, len(model.Severities)),
		ByType:     make(map[string]int),
	}
	for _, sev := range model.Severities {
		s.BySeverity[sev] = 0
	}
	for _, is := range issues {
		s.BySeverity[is.Severity]++
		s.ByType[is.Type]++
	}
	return s
}

// GroupBySeverity buckets issues by severity, keeping input order within a
// bucket.
func GroupBySeverity(issues []model.Issue) map[model.Severity][]model.Issue {
	out := make(map[model.Severity][]model.Issue)
	for _, is := range issues {
		out[is.Severity] = append(out[is.Severity], is)
	}
	return out
}

// Types returns the validation types present in a summary, sorted.
func (s Summary) Types() []string {
	types := make([]string, 0, len(s.ByType))
	for t := range s.ByType {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
