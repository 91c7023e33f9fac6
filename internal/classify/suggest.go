package classify

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/cleared-dev/ledgermap/internal/model"
	"github.com/cleared-dev/ledgermap/internal/rules"
)

// minSimilarity is the lowest similarity a suggestion may have.
const minSimilarity = 0.6

// Suggestion proposes a rule for an unmapped ledger.
type Suggestion struct {
	RuleID     string  `json:"rule_id"`
	Code       string  `json:"code"`
	Matched    string  `json:"matched"`
	Similarity float64 `json:"similarity"`
}

// Similarity returns 1 minus the edit distance normalised by the longer
// input, case-insensitively.
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(strings.TrimSpace(a)))
	rb := []rune(strings.ToLower(strings.TrimSpace(b)))
	longest := max(len(ra), len(rb))
	if longest == 0 {
		return 1
	}
	opts := levenshtein.Options{
		InsCost: 1,
		DelCost: 1,
		SubCost: 1,
		Matches: levenshtein.IdenticalRunes,
	}
	d := levenshtein.DistanceForStrings(ra, rb, opts)
	return 1 - float64(d)/float64(longest)
}

// Suggest ranks near-miss rules for a ledger: group rules by the ledger's
// group and keyword rules by its name. At most n suggestions are returned,
// best first.
func Suggest(l model.LedgerAccount, s *rules.Store, n int) []Suggestion {
	var out []Suggestion
	for _, g := range s.Groups() {
		if !g.Active {
			continue
		}
		if sim := Similarity(g.GroupName, l.Group); sim >= minSimilarity {
			out = append(out, Suggestion{RuleID: g.ID, Code: g.TargetCode, Matched: g.GroupName, Similarity: sim})
		}
	}
	for _, k := range s.Keywords() {
		if !k.Active {
			continue
		}
		best := 0.0
		for _, word := range strings.Fields(l.Name) {
			best = max(best, Similarity(k.Pattern, word))
		}
		if best >= minSimilarity {
			out = append(out, Suggestion{RuleID: k.ID, Code: k.TargetCode, Matched: k.Pattern, Similarity: best})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
