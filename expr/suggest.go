package expr

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns the known name closest to name, or "" when nothing is close.
// Names containing the query as a subsequence win; otherwise the nearest name by
// edit distance sharing the first letter is used.
func (c *Context) Suggest(name string) string {
	if name == "" {
		return ""
	}
	names := c.Names()

	ranks := fuzzy.RankFindFold(name, names)
	if len(ranks) > 0 {
		sort.SliceStable(ranks, func(i, j int) bool {
			if ranks[i].Distance != ranks[j].Distance {
				return ranks[i].Distance < ranks[j].Distance
			}
			return ranks[i].Target < ranks[j].Target
		})
		return ranks[0].Target
	}

	best, bestDist := "", (len(name)+1)/2+1
	for _, n := range names {
		if n == "" || n[0] != name[0] {
			continue
		}
		if d := fuzzy.LevenshteinDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}
