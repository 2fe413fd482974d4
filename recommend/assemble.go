package recommend

import (
	"cmp"
	"slices"
	"time"

	"github.com/poiesic/coursematch/core"
)

// Assemble wraps items into a response. Items are ordered by confidence,
// highest first, keeping the incoming order among equal scores.
func Assemble(query string, intent core.UserIntent, items []core.RecommendationItem, matchType core.MatchType, now time.Time) *core.RecommendationResponse {
	sorted := make([]core.RecommendationItem, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, func(a, b core.RecommendationItem) int {
		return cmp.Compare(b.ConfidenceScore, a.ConfidenceScore)
	})

	return &core.RecommendationResponse{
		Query:           query,
		Intent:          intent,
		Recommendations: sorted,
		MatchType:       matchType,
		Timestamp:       now.UTC(),
	}
}
