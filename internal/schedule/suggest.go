package schedule

import (
	"sort"
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestDistance bounds how far a suggestion may be from the input.
const maxSuggestDistance = 4

// Suggest returns up to n assignable codes closest to code by edit distance.
func (t *Taxonomy) Suggest(code string, n int) []string {
	type candidate struct {
		code string
		dist int
	}
	target := []rune(strings.ToUpper(strings.TrimSpace(code)))
	var cands []candidate
	for e := range t.AllNotableCodes() {
		c := e.Code.String()
		d := levenshtein.DistanceForStrings(target, []rune(c), levenshtein.DefaultOptions)
		if d <= maxSuggestDistance {
			cands = append(cands, candidate{code: c, dist: d})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })
	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.code
	}
	return out
}
