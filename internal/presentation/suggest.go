package presentation

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the registered id closest to anchor by edit distance,
// when it is close enough to be a plausible typo.
func Suggest(anchor string, ids []string) (string, bool) {
	anchor = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(anchor), "#"))
	if anchor == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, id := range ids {
		d := levenshtein.ComputeDistance(anchor, strings.ToLower(id))
		if bestDist < 0 || d < bestDist {
			best, bestDist = id, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(anchor)/3) {
		return "", false
	}
	return best, true
}
