package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/poiesic/coursematch/ai"
	"github.com/poiesic/coursematch/ai/mock"
	"github.com/poiesic/coursematch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeywordExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor()
	require.NoError(t, err)
	return e
}

func TestNewExtractor_RejectsBadTimeout(t *testing.T) {
	_, err := NewExtractor(WithAnalyzerTimeout(0))
	assert.Error(t, err)
}

func TestExtract_BackendEngineerQuery(t *testing.T) {
	e := newKeywordExtractor(t)
	req := core.NewRecommendationRequest("I want to be a backend engineer and I'm interested in Node.js", "backend", "nodejs")

	got := e.Extract(context.Background(), req.EnhancedQuery())

	assert.Equal(t, string(core.LevelBeginner), got.Level)
	assert.Equal(t, core.IntentLearn, got.IntentType)
	assert.Equal(t, []string{"node.js", "nodejs", "backend"}, got.Keywords)
	assert.Equal(t, []string{"web_development"}, got.Topics)
	assert.NoError(t, core.ValidateIntent(got))
}

func TestExtract_BlankText(t *testing.T) {
	e := newKeywordExtractor(t)
	got := e.Extract(context.Background(), "   ")

	assert.Equal(t, string(core.LevelBeginner), got.Level)
	assert.Equal(t, core.IntentLearn, got.IntentType)
	assert.Empty(t, got.Keywords)
	assert.NotNil(t, got.Keywords)
	assert.Empty(t, got.Topics)
}

func TestExtract_WordBoundaries(t *testing.T) {
	e := newKeywordExtractor(t)

	tests := []struct {
		name     string
		text     string
		keywords []string
		topics   []string
	}{
		{"go inside google", "deploy on google cloud", []string{"google cloud"}, []string{"cloud"}},
		{"java inside javascript", "modern javascript", []string{"javascript"}, []string{"programming"}},
		{"ai inside word", "maintain legacy systems", []string{}, []string{}},
		{"symbol suffix", "learning c++, fast", []string{"c++"}, []string{"programming"}},
		{"trailing punctuation", "Learn Node.js.", []string{"node.js"}, []string{"web_development"}},
		{"later category owns duplicate", "swift apps", []string{"swift"}, []string{"mobile_development"}},
		{"multi-word phrase", "intro to  Machine   Learning", []string{"machine learning"}, []string{"data_science"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(context.Background(), tt.text)
			assert.Equal(t, tt.keywords, got.Keywords)
			assert.Equal(t, tt.topics, got.Topics)
		})
	}
}

func TestExtract_Caps(t *testing.T) {
	e := newKeywordExtractor(t)
	got := e.Extract(context.Background(), "python java ruby php rust typescript docker sql figma seo")

	assert.Len(t, got.Keywords, core.MaxIntentKeywords)
	assert.Equal(t, []string{"python", "java", "ruby", "php", "rust"}, got.Keywords)
	assert.Equal(t, []string{"programming", "cloud", "databases"}, got.Topics)
}

func TestExtract_Level(t *testing.T) {
	e := newKeywordExtractor(t)

	tests := []struct {
		text string
		want core.Level
	}{
		{"advanced kubernetes", core.LevelAdvanced},
		{"become an expert", core.LevelAdvanced},
		{"intermediate sql", core.LevelIntermediate},
		{"getting started with rust", core.LevelBeginner},
		{"intermediate or beginner", core.LevelBeginner},
		{"python", core.LevelBeginner},
		{"mastering rust", core.LevelBeginner},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, string(tt.want), e.Extract(context.Background(), tt.text).Level)
		})
	}
}

func TestExtract_IntentType(t *testing.T) {
	e := newKeywordExtractor(t)

	tests := []struct {
		text string
		want core.IntentType
	}{
		{"build a react app", core.IntentBuild},
		{"compare react vs angular", core.IntentCompare},
		{"react versus vue", core.IntentCompare},
		{"explore data science", core.IntentExplore},
		{"how to build an api", core.IntentLearn},
		{"backend development", core.IntentLearn},
		{"kubernetes", core.IntentLearn},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Extract(context.Background(), tt.text).IntentType)
		})
	}
}

func TestExtract_AnalyzerPath(t *testing.T) {
	analyzer := mock.NewMockAnalyzer()
	analyzer.AnalyzeFunc = func(ctx context.Context, text string) (*ai.Analysis, error) {
		return &ai.Analysis{
			Entities:    []string{"Node.js"},
			NounPhrases: []string{"backend engineer", "I"},
			Tokens: []ai.Token{
				{Text: "want", Lemma: "want", POS: ai.POSVerb},
				{Text: "backend", Lemma: "backend", POS: ai.POSNoun},
				{Text: "engineer", Lemma: "engineer", POS: ai.POSNoun},
				{Text: "I", Lemma: "I", POS: ai.POSPronoun},
				{Text: "js", Lemma: "js", POS: ai.POSProperNoun},
				{Text: "great", Lemma: "", POS: ai.POSAdjective},
			},
		}, nil
	}

	e, err := NewExtractor(WithAnalyzer(analyzer))
	require.NoError(t, err)

	got := e.Extract(context.Background(), "I want to be a great backend engineer using Node.js")

	assert.Equal(t, 1, analyzer.CallCount())
	assert.Equal(t, []string{"node.js", "backend engineer", "backend", "engineer", "great"}, got.Keywords)
	assert.Equal(t, []string{"node.js", "backend engineer"}, got.Topics)
	assert.Equal(t, string(core.LevelBeginner), got.Level)
	assert.Equal(t, core.IntentLearn, got.IntentType)
}

func TestExtract_AnalyzerFallback(t *testing.T) {
	tests := []struct {
		name    string
		analyze func(ctx context.Context, text string) (*ai.Analysis, error)
	}{
		{"error", func(ctx context.Context, text string) (*ai.Analysis, error) {
			return nil, errors.New("service unavailable")
		}},
		{"nil analysis", func(ctx context.Context, text string) (*ai.Analysis, error) {
			return nil, nil
		}},
		{"empty analysis", func(ctx context.Context, text string) (*ai.Analysis, error) {
			return &ai.Analysis{}, nil
		}},
		{"timeout", func(ctx context.Context, text string) (*ai.Analysis, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := mock.NewMockAnalyzer()
			analyzer.AnalyzeFunc = tt.analyze

			e, err := NewExtractor(WithAnalyzer(analyzer), WithAnalyzerTimeout(20*time.Millisecond))
			require.NoError(t, err)

			got := e.Extract(context.Background(), "advanced docker and kubernetes")
			assert.Equal(t, []string{"docker", "kubernetes"}, got.Keywords)
			assert.Equal(t, []string{"cloud"}, got.Topics)
			assert.Equal(t, string(core.LevelAdvanced), got.Level)
		})
	}
}

func TestContainsTerm(t *testing.T) {
	assert.True(t, containsTerm("go", "go"))
	assert.True(t, containsTerm("i like go.", "go"))
	assert.False(t, containsTerm("gopher", "go"))
	assert.False(t, containsTerm("ergo", "go"))
	assert.True(t, containsTerm("ergo go", "go"))
	assert.True(t, containsTerm("ci/cd pipelines", "ci/cd"))
	assert.False(t, containsTerm("anything", ""))
}
