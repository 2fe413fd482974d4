package match

import (
	"testing"

	"github.com/poiesic/coursematch/core"
	"github.com/stretchr/testify/assert"
)

func rating(v float64) *float64 { return &v }

func TestScore_LevelAndKeywords(t *testing.T) {
	course := core.Course{Title: "Python Backend Fundamentals", Level: core.LevelBeginner}
	intent := core.NewUserIntent("Beginner", []string{"python", "backend"}, nil, core.IntentLearn)

	r := Score(course, intent, 0.4)

	assert.InDelta(t, 0.50, r.Boost, 1e-9)
	assert.InDelta(t, 0.90, r.Confidence, 1e-9)
	assert.Equal(t, core.MatchExact, r.MatchType)
	assert.True(t, r.LevelMatched)
	assert.Equal(t, []string{"python", "backend"}, r.MatchedKeywords)
	assert.Equal(t, "perfect match for Beginner level, covers python, covers backend", Reasoning(course, intent, r))
}

func TestScore_NodeBackendTitleWithoutLevelMatch(t *testing.T) {
	course := core.Course{
		Title: "Complete Node.js Backend Development",
		Level: core.LevelIntermediate,
		Tags:  []string{"nodejs", "backend", "api", "express", "mongodb", "javascript"},
	}
	intent := core.NewUserIntent("beginner", []string{"node.js", "nodejs", "backend"}, []string{"web_development"}, core.IntentLearn)

	r := Score(course, intent, 0.55)

	assert.False(t, r.LevelMatched)
	assert.Equal(t, []string{"node.js", "backend"}, r.MatchedKeywords)
	assert.Empty(t, r.MatchedTopics)
	assert.InDelta(t, 0.30, r.Boost, 1e-9)
	assert.Equal(t, core.MatchExact, r.MatchType)
	assert.InDelta(t, 0.85, r.Confidence, 1e-9)
	assert.Equal(t, "covers node.js, covers backend", Reasoning(course, intent, r))
}

func TestScore_Similar(t *testing.T) {
	course := core.Course{Title: "Rust in Practice", Level: core.LevelAdvanced, Rating: rating(4.8)}
	intent := core.NewUserIntent("beginner", []string{"python"}, nil, core.IntentLearn)

	r := Score(course, intent, 0.75)

	assert.Equal(t, core.MatchSimilar, r.MatchType)
	assert.InDelta(t, 0.75, r.Confidence, 1e-9)
	assert.Equal(t, "highly relevant to your interests (75% match), excellent student ratings", Reasoning(course, intent, r))
}

func TestScore_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		rating *float64
		want   string
	}{
		{"well rated", rating(4.2), "popular course with good ratings, builds fundamental skills"},
		{"exactly four", rating(4.0), "builds fundamental skills"},
		{"unrated", nil, "builds fundamental skills"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := core.Course{Title: "Spreadsheets", Level: core.LevelBeginner, Rating: tt.rating}
			intent := core.NewUserIntent("advanced", nil, nil, core.IntentLearn)

			r := Score(course, intent, 0.5)
			assert.Equal(t, core.MatchFallback, r.MatchType)
			assert.InDelta(t, 0.5, r.Confidence, 1e-9)
			assert.Equal(t, tt.want, Reasoning(course, intent, r))
		})
	}
}

func TestScore_TopicBoostRequiresExactTag(t *testing.T) {
	course := core.Course{Title: "Servers", Level: core.LevelBeginner, Tags: []string{"Backend", "backend-dev"}}
	intent := core.NewUserIntent("advanced", nil, []string{"backend", "dev"}, core.IntentLearn)

	r := Score(course, intent, 0.6)

	assert.Equal(t, []string{"backend"}, r.MatchedTopics)
	assert.InDelta(t, 0.10, r.Boost, 1e-9)
	assert.InDelta(t, 0.70, r.Confidence, 1e-9)
	assert.Equal(t, core.MatchFallback, r.MatchType)
}

func TestScore_ExactFromTopicsOnly(t *testing.T) {
	course := core.Course{Title: "Misc", Level: core.LevelBeginner, Tags: []string{"a", "b", "c"}}
	intent := core.NewUserIntent("", nil, []string{"a", "b", "c"}, core.IntentLearn)

	r := Score(course, intent, 0.1)

	assert.Equal(t, core.MatchExact, r.MatchType)
	assert.Equal(t, "recommended based on your query", Reasoning(course, intent, r))
}

func TestScore_ConfidenceCapped(t *testing.T) {
	course := core.Course{Title: "Go Go Go", Level: core.LevelBeginner}
	intent := core.NewUserIntent("beginner", []string{"go", "go go"}, nil, core.IntentLearn)

	r := Score(course, intent, 0.95)

	assert.Equal(t, 1.0, r.Confidence)
	assert.InDelta(t, 0.50, r.Boost, 1e-9)
}

func TestScore_EmptyLevelNeverMatches(t *testing.T) {
	course := core.Course{Title: "X"}
	r := Score(course, core.NewUserIntent("", nil, nil, core.IntentLearn), 0.2)
	assert.False(t, r.LevelMatched)
}

func TestOverallMatchType(t *testing.T) {
	item := func(mt core.MatchType) core.RecommendationItem { return core.RecommendationItem{MatchType: mt} }

	tests := []struct {
		name  string
		items []core.RecommendationItem
		want  core.MatchType
	}{
		{"empty", nil, core.MatchFallback},
		{"any exact", []core.RecommendationItem{item(core.MatchFallback), item(core.MatchSimilar), item(core.MatchExact)}, core.MatchExact},
		{"similar majority", []core.RecommendationItem{item(core.MatchSimilar), item(core.MatchSimilar), item(core.MatchFallback)}, core.MatchSimilar},
		{"half similar", []core.RecommendationItem{item(core.MatchSimilar), item(core.MatchFallback)}, core.MatchFallback},
		{"all fallback", []core.RecommendationItem{item(core.MatchFallback)}, core.MatchFallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OverallMatchType(tt.items))
		})
	}
}
