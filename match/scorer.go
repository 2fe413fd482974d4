package match

import (
	"fmt"
	"strings"

	"github.com/poiesic/coursematch/core"
)

// Boost and threshold constants.
const (
	LevelBoost   = 0.20
	KeywordBoost = 0.15
	TopicBoost   = 0.10

	ExactBoostThreshold  = 0.30
	SimilarBaseThreshold = 0.70

	// epsilon absorbs float drift when comparing accumulated boosts.
	epsilon = 1e-9
)

// Result is the outcome of scoring one course.
type Result struct {
	Confidence      float64
	MatchType       core.MatchType
	Boost           float64
	LevelMatched    bool
	MatchedKeywords []string
	MatchedTopics   []string
}

// Score computes the confidence and match type of course for intent, given
// the retriever's base score.
func Score(course core.Course, intent core.UserIntent, baseScore float64) Result {
	var r Result

	if intent.Level != "" && strings.EqualFold(intent.Level, string(course.Level)) {
		r.LevelMatched = true
		r.Boost += LevelBoost
	}

	title := strings.ToLower(course.Title)
	for _, kw := range intent.Keywords {
		if kw != "" && strings.Contains(title, strings.ToLower(kw)) {
			r.MatchedKeywords = append(r.MatchedKeywords, kw)
			r.Boost += KeywordBoost
		}
	}

	for _, topic := range intent.Topics {
		for _, tag := range course.Tags {
			if strings.EqualFold(topic, tag) {
				r.MatchedTopics = append(r.MatchedTopics, topic)
				r.Boost += TopicBoost
				break
			}
		}
	}

	r.Confidence = min(1.0, baseScore+r.Boost)

	switch {
	case r.Boost >= ExactBoostThreshold-epsilon:
		r.MatchType = core.MatchExact
	case baseScore >= SimilarBaseThreshold:
		r.MatchType = core.MatchSimilar
	default:
		r.MatchType = core.MatchFallback
	}
	return r
}

// Reasoning renders a human-readable explanation for a scored course.
func Reasoning(course core.Course, intent core.UserIntent, r Result) string {
	var reasons []string

	switch r.MatchType {
	case core.MatchExact:
		if r.LevelMatched {
			reasons = append(reasons, fmt.Sprintf("perfect match for %s level", intent.Level))
		}
		for _, kw := range r.MatchedKeywords {
			reasons = append(reasons, "covers "+kw)
		}
	case core.MatchSimilar:
		reasons = append(reasons, fmt.Sprintf("highly relevant to your interests (%.0f%% match)", r.Confidence*100))
		if course.Rating != nil && *course.Rating > 4.5 {
			reasons = append(reasons, "excellent student ratings")
		}
	default:
		if course.Rating != nil && *course.Rating > 4.0 {
			reasons = append(reasons, "popular course with good ratings")
		}
		reasons = append(reasons, "builds fundamental skills")
	}

	if len(reasons) == 0 {
		return "recommended based on your query"
	}
	return strings.Join(reasons, ", ")
}

// OverallMatchType summarizes an accepted set. Any exact item makes the set
// exact; otherwise a strict majority of similar items makes it similar.
func OverallMatchType(items []core.RecommendationItem) core.MatchType {
	if len(items) == 0 {
		return core.MatchFallback
	}
	similar := 0
	for _, item := range items {
		switch item.MatchType {
		case core.MatchExact:
			return core.MatchExact
		case core.MatchSimilar:
			similar++
		}
	}
	if similar*2 > len(items) {
		return core.MatchSimilar
	}
	return core.MatchFallback
}
