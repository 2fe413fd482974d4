package metrics

import (
	"strconv"
	"time"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/recommend"
	"github.com/poiesic/coursematch/retrieval"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coursematch"

// Tier outcomes.
const (
	TierOutcomeSelected = "selected"
	TierOutcomeEmpty    = "empty"
	TierOutcomeFailed   = "failed"
)

// Metrics holds the service collectors.
type Metrics struct {
	Recommendations    *prometheus.CounterVec
	RecommendationTime prometheus.Histogram
	RecommendedItems   prometheus.Histogram
	TierOutcomes       *prometheus.CounterVec
	SkippedCandidates  *prometheus.CounterVec
	BreakerState       *prometheus.GaugeVec
	BreakerCalls       *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	IngestionRuns      *prometheus.CounterVec
	IndexedCourses     prometheus.Gauge
}

var (
	_ recommend.Monitor         = (*Metrics)(nil)
	_ retrieval.BreakerObserver = (*Metrics)(nil)
)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Recommendations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommendation responses by overall match type.",
		}, []string{"match_type"}),
		RecommendationTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_duration_seconds",
			Help:      "Time to answer a recommendation request.",
			Buckets:   prometheus.DefBuckets,
		}),
		RecommendedItems: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendation_items",
			Help:      "Number of items per recommendation response.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20},
		}),
		TierOutcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cascade_tier_outcomes_total",
			Help:      "Cascade tier outcomes (selected, empty, failed).",
		}, []string{"tier", "outcome"}),
		SkippedCandidates: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_candidates_total",
			Help:      "Candidates skipped because of malformed metadata.",
		}, []string{"tier"}),
		BreakerState: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		}, []string{"name"}),
		BreakerCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_calls_total",
			Help:      "Calls through the circuit breaker by outcome.",
		}, []string{"name", "outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		IngestionRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingestion_runs_total",
			Help:      "Catalog ingestion runs by outcome.",
		}, []string{"outcome"}),
		IndexedCourses: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_courses",
			Help:      "Courses currently in the similarity index.",
		}),
	}
}

func (m *Metrics) Start(_ core.RecommendationRequest) {}

func (m *Metrics) IntentExtracted(_ core.UserIntent) {}

func (m *Metrics) CandidateSkipped(tier recommend.Tier, _ string, _ error) {
	m.SkippedCandidates.WithLabelValues(string(tier)).Inc()
}

func (m *Metrics) TierFailed(tier recommend.Tier, _ error) {
	m.TierOutcomes.WithLabelValues(string(tier), TierOutcomeFailed).Inc()
}

func (m *Metrics) TierEmpty(tier recommend.Tier) {
	m.TierOutcomes.WithLabelValues(string(tier), TierOutcomeEmpty).Inc()
}

func (m *Metrics) TierSelected(tier recommend.Tier, _ int) {
	m.TierOutcomes.WithLabelValues(string(tier), TierOutcomeSelected).Inc()
}

func (m *Metrics) Finish(resp *core.RecommendationResponse, elapsed time.Duration) {
	m.Recommendations.WithLabelValues(string(resp.MatchType)).Inc()
	m.RecommendationTime.Observe(elapsed.Seconds())
	m.RecommendedItems.Observe(float64(len(resp.Recommendations)))
}

// BreakerStateChanged records the new state of breaker name.
func (m *Metrics) BreakerStateChanged(name, _, to string) {
	m.BreakerState.WithLabelValues(name).Set(breakerStateValue(to))
}

// BreakerCall counts one call outcome.
func (m *Metrics) BreakerCall(name, outcome string) {
	m.BreakerCalls.WithLabelValues(name, outcome).Inc()
}

// RecordHTTPRequest records one served request.
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordIngestion counts an ingestion run. Skipped runs count as "skipped".
func (m *Metrics) RecordIngestion(skipped bool, err error) {
	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
	case skipped:
		outcome = "skipped"
	}
	m.IngestionRuns.WithLabelValues(outcome).Inc()
}

// SetIndexedCourses updates the index size gauge.
func (m *Metrics) SetIndexedCourses(n int) {
	m.IndexedCourses.Set(float64(n))
}

func breakerStateValue(state string) float64 {
	switch state {
	case "half-open":
		return 1
	case "open":
		return 2
	default:
		return 0
	}
}
