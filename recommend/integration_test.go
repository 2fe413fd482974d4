package recommend

import (
	"context"
	"strings"
	"testing"

	"github.com/poiesic/coursematch/ai/mock"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/intent"
	"github.com/poiesic/coursematch/match"
	"github.com/poiesic/coursematch/retrieval"
	"github.com/poiesic/coursematch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vocabulary = []string{"node", "backend", "python", "javascript", "design", "algorithm", "data"}

// vocabularyEmbedder counts vocabulary terms, plus a constant bias so no
// vector is zero.
func vocabularyEmbedder() *mock.MockEmbedder {
	embed := func(text string) []float32 {
		lower := strings.ToLower(text)
		v := make([]float32, len(vocabulary)+1)
		for i, term := range vocabulary {
			v[i] = float32(strings.Count(lower, term))
		}
		v[len(vocabulary)] = 0.5
		return v
	}
	e := mock.NewMockEmbedder()
	e.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return embed(text), nil
	}
	e.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i, t := range texts {
			out[i] = embed(t)
		}
		return out, nil
	}
	return e
}

func indexedEngine(t *testing.T, courses ...core.Course) *Engine {
	t.Helper()
	repo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	r, err := retrieval.NewRetriever(repo, vocabularyEmbedder())
	require.NoError(t, err)

	items := make([]retrieval.Item, len(courses))
	for i, c := range courses {
		items[i] = retrieval.Item{Course: c}
	}
	n, err := r.AddItems(context.Background(), items...)
	require.NoError(t, err)
	require.Equal(t, len(courses), n)

	ex, err := intent.NewExtractor()
	require.NoError(t, err)
	e, err := NewEngine(r, ex)
	require.NoError(t, err)
	return e
}

func TestIntegration_NodeBackendScenario(t *testing.T) {
	rating := 4.8
	nodeCourse := core.Course{
		ID:          "nodejs-backend-complete",
		Title:       "Complete Node.js Backend Development",
		Description: "Build production APIs with Node.js, Express and MongoDB.",
		Level:       core.LevelIntermediate,
		Category:    "Programming",
		Tags:        []string{"nodejs", "backend", "api", "express", "mongodb", "javascript"},
		Price:       1999,
		Rating:      &rating,
	}
	design := core.Course{
		ID:          "ui-design",
		Title:       "Interface Design Studio",
		Description: "Visual design for product teams.",
		Level:       core.LevelBeginner,
		Category:    "Design",
		Tags:        []string{"design"},
	}
	e := indexedEngine(t, nodeCourse, design)

	req := core.NewRecommendationRequest("I want to be a backend engineer and I'm interested in Node.js", "backend", "nodejs")
	resp, err := e.Recommend(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, string(core.LevelBeginner), resp.Intent.Level)
	assert.Contains(t, resp.Intent.Keywords, "backend")

	require.NotEmpty(t, resp.Recommendations)
	top := resp.Recommendations[0]
	assert.Equal(t, "nodejs-backend-complete", top.Course.ID)
	assert.Equal(t, core.MatchExact, top.MatchType)
	assert.Contains(t, top.Reasoning, "covers backend")
	assert.NotContains(t, top.Reasoning, "perfect match")
	assert.Equal(t, core.MatchExact, resp.MatchType)
	assert.LessOrEqual(t, len(resp.Recommendations), req.MaxResults)
}

func TestIntegration_Properties(t *testing.T) {
	var courses []core.Course
	titles := []string{
		"Python Backend Fundamentals", "JavaScript Full Stack", "Data Structures and Algorithms",
		"Node Backend Patterns", "Design Systems", "Python Data Analysis", "Backend Design Principles",
	}
	for i, title := range titles {
		level := []core.Level{core.LevelBeginner, core.LevelIntermediate, core.LevelAdvanced}[i%3]
		courses = append(courses, core.Course{
			ID:          strings.ReplaceAll(strings.ToLower(title), " ", "-"),
			Title:       title,
			Description: title + " course",
			Level:       level,
			Category:    "Programming",
			Tags:        []string{"programming"},
		})
	}
	e := indexedEngine(t, courses...)

	queries := []string{"learn python backend", "advanced algorithms and data", "javascript", "node backend design"}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			for _, max := range []int{1, 3, 5} {
				req := core.NewRecommendationRequest(q)
				req.MaxResults = max
				req.MinConfidence = 0.3

				resp, err := e.Recommend(context.Background(), req)
				require.NoError(t, err)

				assert.LessOrEqual(t, len(resp.Recommendations), max)
				assert.NotEmpty(t, resp.Recommendations)
				for i, item := range resp.Recommendations {
					if item.Metadata[match.MetaTier] != string(TierHardcoded) {
						assert.GreaterOrEqual(t, item.ConfidenceScore, req.MinConfidence)
					}
					if i > 0 {
						assert.GreaterOrEqual(t, resp.Recommendations[i-1].ConfidenceScore, item.ConfidenceScore)
					}
				}

				again, err := e.Recommend(context.Background(), req)
				require.NoError(t, err)
				assert.Equal(t, ids(resp.Recommendations), ids(again.Recommendations))
			}
		})
	}
}

func TestIntegration_EmptyIndex(t *testing.T) {
	e := indexedEngine(t)

	resp, err := e.Recommend(context.Background(), core.NewRecommendationRequest("learn kubernetes"))
	require.NoError(t, err)

	assert.Equal(t, core.MatchFallback, resp.MatchType)
	assert.GreaterOrEqual(t, len(resp.Recommendations), 2)
	assert.Equal(t, []string{"fallback-backend", "fallback-web"}, ids(resp.Recommendations))
}
