package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/ingestion"
	"github.com/poiesic/coursematch/intent"
	"github.com/poiesic/coursematch/recommend"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// emptyRetriever never finds anything, which drives the engine to the
// hardcoded tier.
type emptyRetriever struct{}

func (emptyRetriever) Search(context.Context, string, int, float64, *core.Filter) ([]core.Candidate, error) {
	return nil, nil
}

// capturingRecommender records requests and answers with a fixed course.
type capturingRecommender struct {
	mu   sync.Mutex
	last core.RecommendationRequest
	err  error
}

func (r *capturingRecommender) Recommend(_ context.Context, req core.RecommendationRequest) (*core.RecommendationResponse, error) {
	r.mu.Lock()
	r.last = req
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return &core.RecommendationResponse{
		Query:  req.UserQuery,
		Intent: core.NewUserIntent("beginner", []string{"backend"}, []string{"web_development"}, core.IntentBuild),
		Recommendations: []core.RecommendationItem{{
			Course: core.Course{
				ID:          "nodejs-backend-complete",
				Title:       "Complete Node.js Backend Development",
				Description: strings.Repeat("a", 250),
				Level:       core.LevelIntermediate,
			},
			ConfidenceScore: 0.9,
			Reasoning:       "covers backend",
			MatchType:       core.MatchExact,
		}},
		MatchType: core.MatchExact,
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

type staticIndex struct {
	count int
	err   error
}

func (i staticIndex) Count(context.Context) (int, error) { return i.count, i.err }

type fakeIngester struct {
	mu     sync.Mutex
	source string
	data   []byte
	force  bool
	err    error
}

func (f *fakeIngester) IngestAsync(source string, data []byte, force bool, done func(*ingestion.Result, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.source, f.data, f.force = source, data, force
	if done != nil {
		done(&ingestion.Result{Source: source}, nil)
	}
	return nil
}

type recordedRequest struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func newTestServer(t *testing.T, rec Recommender, idx Index, ing Ingester, cfg Config) *gin.Engine {
	t.Helper()
	s, err := New(rec, idx, ing, cfg)
	require.NoError(t, err)
	return s.Router()
}

func do(router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestNew(t *testing.T) {
	_, err := New(nil, staticIndex{}, nil, Config{})
	assert.ErrorIs(t, err, ErrRecommenderRequired)

	_, err = New(&capturingRecommender{}, nil, nil, Config{})
	assert.ErrorIs(t, err, ErrIndexRequired)
}

func TestRecommendations(t *testing.T) {
	t.Run("applies defaults and wraps the response", func(t *testing.T) {
		rec := &capturingRecommender{}
		router := newTestServer(t, rec, staticIndex{}, nil, Config{})

		w := do(router, http.MethodPost, "/api/recommendations", map[string]any{
			"user_query": "learn node",
			"ui_chips":   []string{"backend"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, core.DefaultMaxResults, rec.last.MaxResults)
		assert.InDelta(t, core.DefaultMinConfidence, rec.last.MinConfidence, 1e-9)
		assert.Equal(t, []string{"backend"}, rec.last.UIChips)

		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		data := body["data"].(map[string]any)
		assert.Equal(t, "learn node", data["query"])
		assert.Equal(t, "exact", data["match_type"])
		recs := data["recommendations"].([]any)
		require.Len(t, recs, 1)
		item := recs[0].(map[string]any)
		assert.Equal(t, "covers backend", item["reasoning"])
		assert.Equal(t, "nodejs-backend-complete", item["course"].(map[string]any)["id"])
	})

	t.Run("explicit limits are passed through", func(t *testing.T) {
		rec := &capturingRecommender{}
		router := newTestServer(t, rec, staticIndex{}, nil, Config{})

		w := do(router, http.MethodPost, "/api/recommendations", map[string]any{
			"user_query":     "learn node",
			"user_id":        "u-1",
			"max_results":    3,
			"min_confidence": 0,
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, rec.last.MaxResults)
		assert.Zero(t, rec.last.MinConfidence)
		assert.Equal(t, "u-1", rec.last.UserID)
	})

	t.Run("empty query is a validation failure", func(t *testing.T) {
		rec := &capturingRecommender{}
		router := newTestServer(t, rec, staticIndex{}, nil, Config{})

		w := do(router, http.MethodPost, "/api/recommendations", map[string]any{"user_query": ""})
		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Contains(t, body["error"], "user_query is required")
		assert.Empty(t, rec.last.UserQuery, "engine must not be called")
	})

	t.Run("blank query rejected by the engine", func(t *testing.T) {
		e, err := recommend.NewEngine(emptyRetriever{}, mustExtractor(t))
		require.NoError(t, err)
		router := newTestServer(t, e, staticIndex{}, nil, Config{})

		w := do(router, http.MethodPost, "/api/recommendations", map[string]any{"user_query": "   "})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["error"], core.ErrEmptyQuery.Error())
	})

	t.Run("out of range max_results", func(t *testing.T) {
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{})
		w := do(router, http.MethodPost, "/api/recommendations", map[string]any{"user_query": "go", "max_results": 0})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["error"], "max_results must be at least 1")
	})

	t.Run("malformed json", func(t *testing.T) {
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{})
		w := do(router, http.MethodPost, "/api/recommendations", "{not json")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["error"], "invalid request body")
	})

	t.Run("unexpected engine error", func(t *testing.T) {
		rec := &capturingRecommender{err: errors.New("boom")}
		router := newTestServer(t, rec, staticIndex{}, nil, Config{})
		w := do(router, http.MethodPost, "/api/recommendations", map[string]any{"user_query": "go"})
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})

	t.Run("hardcoded tier through the real engine", func(t *testing.T) {
		e, err := recommend.NewEngine(emptyRetriever{}, mustExtractor(t))
		require.NoError(t, err)
		router := newTestServer(t, e, staticIndex{}, nil, Config{})

		w := do(router, http.MethodPost, "/api/recommendations", map[string]any{"user_query": "anything"})
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "fallback", data["match_type"])
		assert.Len(t, data["recommendations"], len(recommend.HardcodedCourses()))
	})
}

func TestRecommendationsBackend(t *testing.T) {
	rec := &capturingRecommender{}
	router := newTestServer(t, rec, staticIndex{}, nil, Config{BackendMinConfidence: 0.4})

	w := do(router, http.MethodPost, "/api/recommendations/backend", map[string]any{
		"query":       "backend engineer",
		"chips":       []string{"nodejs"},
		"max_results": 2,
		"userContext": map[string]any{"userId": "user-7"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "backend engineer", rec.last.UserQuery)
	assert.Equal(t, []string{"nodejs"}, rec.last.UIChips)
	assert.Equal(t, "user-7", rec.last.UserID)
	assert.Equal(t, 2, rec.last.MaxResults)
	assert.InDelta(t, 0.4, rec.last.MinConfidence, 1e-9)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "build", data["intent"])
	assert.Equal(t, "exact", data["match_summary"])

	recs := data["recommendations"].([]any)
	require.Len(t, recs, 1)
	item := recs[0].(map[string]any)
	assert.Equal(t, "nodejs-backend-complete", item["course_stub"])
	assert.Equal(t, "intermediate", item["level"])
	assert.InDelta(t, 0.9, item["confidence"], 1e-9)
	assert.Equal(t, []any{"Certificate", "Expert Instruction"}, item["features"])
	copyText := item["persuasive_copy"].(string)
	assert.True(t, strings.HasSuffix(copyText, "..."))
	assert.Len(t, copyText, persuasiveCopyLimit+3)

	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 1, meta["total_results"])
	assert.Equal(t, "backend engineer", meta["query"])

	t.Run("missing query", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/recommendations/backend", map[string]any{"chips": []string{"x"}})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode(t, w)["error"], "query is required")
	})
}

func TestPersuasiveCopy(t *testing.T) {
	assert.Equal(t, "short", persuasiveCopy("short"))
	long := strings.Repeat("é", persuasiveCopyLimit+1)
	assert.Equal(t, strings.Repeat("é", persuasiveCopyLimit)+"...", persuasiveCopy(long))
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router := newTestServer(t, &capturingRecommender{}, staticIndex{count: 3}, nil, Config{
			HealthChecks: map[string]HealthCheck{
				"models": func(context.Context) error { return nil },
			},
		})
		w := do(router, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, map[string]any{"vector_store": "ready", "models": "ready"}, body["services"])
		assert.Equal(t, Version, body["version"])
	})

	t.Run("degraded", func(t *testing.T) {
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{
			HealthChecks: map[string]HealthCheck{
				"retrieval": func(context.Context) error { return errors.New("breaker open") },
			},
		})
		w := do(router, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		body := decode(t, w)
		assert.Equal(t, "degraded", body["status"])
		assert.Equal(t, "unavailable", body["services"].(map[string]any)["retrieval"])
	})
}

func TestIndexStatus(t *testing.T) {
	router := newTestServer(t, &capturingRecommender{}, staticIndex{count: 5}, nil, Config{StorePath: "data/index"})
	w := do(router, http.MethodGet, "/api/vector-store/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["initialized"])
	assert.EqualValues(t, 5, body["document_count"])
	assert.Equal(t, "data/index", body["store_path"])

	router = newTestServer(t, &capturingRecommender{}, staticIndex{err: errors.New("closed")}, nil, Config{})
	w = do(router, http.MethodGet, "/api/vector-store/status", nil)
	body = decode(t, w)
	assert.Equal(t, false, body["initialized"])
	assert.Equal(t, "closed", body["error"])
}

func TestIngestCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.json")
	require.NoError(t, os.WriteFile(path, ingestion.SampleCatalog(), 0644))

	t.Run("schedules ingestion", func(t *testing.T) {
		ing := &fakeIngester{}
		var got *ingestion.Result
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, ing, Config{
			CatalogPath: path,
			OnIngested:  func(r *ingestion.Result, _ error) { got = r },
		})
		w := do(router, http.MethodPost, "/api/ingest-json-catalog?force=true", nil)
		require.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, true, decode(t, w)["success"])
		assert.Equal(t, path, ing.source)
		assert.True(t, ing.force)
		assert.Equal(t, ingestion.SampleCatalog(), ing.data)
		require.NotNil(t, got)
		assert.Equal(t, path, got.Source)
	})

	t.Run("busy", func(t *testing.T) {
		ing := &fakeIngester{err: ingestion.ErrIngestionBusy}
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, ing, Config{CatalogPath: path})
		w := do(router, http.MethodPost, "/api/ingest-json-catalog", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unreadable catalog", func(t *testing.T) {
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, &fakeIngester{}, Config{
			CatalogPath: filepath.Join(t.TempDir(), "missing.json"),
		})
		w := do(router, http.MethodPost, "/api/ingest-json-catalog", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("not configured", func(t *testing.T) {
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{})
		w := do(router, http.MethodPost, "/api/ingest-json-catalog", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("request id is generated and echoed", func(t *testing.T) {
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{})
		w := do(router, http.MethodGet, "/health", nil)
		assert.NotEmpty(t, w.Header().Get(requestIDHeader))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(requestIDHeader, "abc-123")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
	})

	t.Run("requests are recorded by route", func(t *testing.T) {
		recorder := &fakeRecorder{}
		router := newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{Recorder: recorder})
		do(router, http.MethodGet, "/api/vector-store/status", nil)
		do(router, http.MethodGet, "/nowhere", nil)

		require.Len(t, recorder.requests, 2)
		assert.Equal(t, recordedRequest{http.MethodGet, "/api/vector-store/status", http.StatusOK}, recorder.requests[0])
		assert.Equal(t, recordedRequest{http.MethodGet, "unmatched", http.StatusNotFound}, recorder.requests[1])
	})

	t.Run("panics become 500", func(t *testing.T) {
		s, err := New(&capturingRecommender{}, staticIndex{}, nil, Config{})
		require.NoError(t, err)
		router := s.Router()
		router.GET("/panic", func(*gin.Context) { panic("kaboom") })

		w := do(router, http.MethodGet, "/panic", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "coursematch_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	router := newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{Gatherer: reg})
	w := do(router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "coursematch_test_total 1")

	router = newTestServer(t, &capturingRecommender{}, staticIndex{}, nil, Config{})
	w = do(router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func mustExtractor(t *testing.T) *intent.Extractor {
	t.Helper()
	ex, err := intent.NewExtractor()
	require.NoError(t, err)
	return ex
}
