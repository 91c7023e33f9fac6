package classify

import (
	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/validation"
)

// Stats summarises a classification run. Mapped+Unmapped always equals Total.
type Stats struct {
	Total      int                `json:"total"`
	Mapped     int                `json:"mapped"`
	Unmapped   int                `json:"unmapped"`
	ByTier     map[model.Tier]int `json:"by_tier"`
	Validation validation.Summary `json:"validation"`
}

// Summarize derives statistics from results.
func Summarize(results []model.ClassificationResult) Stats {
	s := Stats{
		Total: len(results),
		ByTier: map[model.Tier]int{
			model.TierOverride: 0,
			model.TierKeyword:  0,
			model.TierGroup:    0,
			model.TierUnmapped: 0,
		},
	}
	for _, r := range results {
		if r.Mapped() {
			s.Mapped++
		} else {
			s.Unmapped++
		}
		s.ByTier[r.Tier]++
	}
	s.Validation = validation.Summarize(Issues(results))
	return s
}
