package match

import (
	"testing"

	"github.com/poiesic/coursematch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(id, title string, level core.Level, score float64) core.Candidate {
	course := core.Course{ID: id, Title: title, Level: level, Category: "Programming"}
	return core.Candidate{ID: id, Score: score, Document: title, Metadata: core.CourseMetadata(course)}
}

func TestProcessor_Process(t *testing.T) {
	intent := core.NewUserIntent("beginner", []string{"python"}, nil, core.IntentLearn)
	candidates := []core.Candidate{
		candidate("a", "Rust Systems", core.LevelAdvanced, 0.9),
		{ID: "broken", Score: 0.8, Metadata: map[string]string{core.MetaLevel: "beginner"}},
		candidate("b", "Cooking", core.LevelAdvanced, 0.3),
		candidate("c", "Python Basics", core.LevelBeginner, 0.2),
		candidate("d", "Spreadsheets", core.LevelBeginner, 0.6),
		candidate("e", "Python Data", core.LevelBeginner, 0.9),
	}

	var skipped []string
	p := NewProcessor("targeted", core.DefaultCourseDefaults())
	items := p.Process(candidates, intent, 3, 0.5, func(c core.Candidate, err error) {
		assert.ErrorIs(t, err, core.ErrMalformedCandidate)
		skipped = append(skipped, c.ID)
	})

	require.Len(t, items, 3)
	assert.Equal(t, []string{"broken"}, skipped)

	ids := []string{items[0].Course.ID, items[1].Course.ID, items[2].Course.ID}
	assert.Equal(t, []string{"a", "c", "d"}, ids, "retriever order preserved, low scores dropped, stops at max")

	assert.Equal(t, core.MatchSimilar, items[0].MatchType)
	assert.InDelta(t, 0.55, items[1].ConfidenceScore, 1e-9)
	assert.Equal(t, core.MatchExact, items[1].MatchType)
	assert.InDelta(t, 0.80, items[2].ConfidenceScore, 1e-9)

	for i, item := range items {
		assert.Equal(t, i+1, item.Metadata[MetaSearchRank])
		assert.Equal(t, "targeted", item.Metadata[MetaTier])
		assert.GreaterOrEqual(t, item.ConfidenceScore, 0.5)
	}
	assert.Equal(t, 0.9, items[0].Metadata[MetaOriginalScore])
}

func TestProcessor_NilSkipAndEmpty(t *testing.T) {
	p := NewProcessor("targeted", core.DefaultCourseDefaults())
	intent := core.NewUserIntent("beginner", nil, nil, core.IntentLearn)

	items := p.Process([]core.Candidate{{ID: "x"}}, intent, 5, 0, nil)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	assert.Empty(t, p.Process(nil, intent, 5, 0, nil))
}
