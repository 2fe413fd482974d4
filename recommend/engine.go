package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/match"
)

// DefaultRetrievalTimeout bounds each retriever call.
const DefaultRetrievalTimeout = 10 * time.Second

// Retriever finds candidates similar to a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int, minScore float64, filter *core.Filter) ([]core.Candidate, error)
}

// IntentExtractor reads a user intent from query text. It never fails.
type IntentExtractor interface {
	Extract(ctx context.Context, text string) core.UserIntent
}

// Engine runs recommendation requests through the tier cascade.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	retriever    Retriever
	extractor    IntentExtractor
	monitor      Monitor
	timeout      time.Duration
	genericQuery string
	filter       *core.Filter
	now          func() time.Time
	logger       *slog.Logger

	targeted *match.Processor
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMonitor registers a cascade observer.
func WithMonitor(m Monitor) Option {
	return func(e *Engine) error {
		if m != nil {
			e.monitor = m
		}
		return nil
	}
}

// WithRetrievalTimeout bounds each retriever call.
// Default is DefaultRetrievalTimeout.
func WithRetrievalTimeout(d time.Duration) Option {
	return func(e *Engine) error {
		if d <= 0 {
			return fmt.Errorf("retrieval timeout must be positive, got %s", d)
		}
		e.timeout = d
		return nil
	}
}

// WithGenericQuery replaces the query used by the generic tier.
func WithGenericQuery(query string) Option {
	return func(e *Engine) error {
		if strings.TrimSpace(query) == "" {
			return fmt.Errorf("generic query cannot be empty")
		}
		e.genericQuery = query
		return nil
	}
}

// WithFilter restricts every retrieval to matching metadata.
func WithFilter(f *core.Filter) Option {
	return func(e *Engine) error {
		e.filter = f
		return nil
	}
}

// WithClock sets the time source for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) error {
		if now != nil {
			e.now = now
		}
		return nil
	}
}

// NewEngine creates an engine over a retriever and an intent extractor.
func NewEngine(retriever Retriever, extractor IntentExtractor, opts ...Option) (*Engine, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	e := &Engine{
		retriever:    retriever,
		extractor:    extractor,
		monitor:      &noopMonitor{},
		timeout:      DefaultRetrievalTimeout,
		genericQuery: DefaultGenericQuery,
		now:          time.Now,
		logger:       slog.Default(),
		targeted:     match.NewProcessor(string(TierTargeted), core.DefaultCourseDefaults()),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "recommend")
	return e, nil
}

// Recommend answers req. The only errors are validation failures wrapping
// core.ErrInvalidRequest; collaborator failures degrade to later tiers.
func (e *Engine) Recommend(ctx context.Context, req core.RecommendationRequest) (*core.RecommendationResponse, error) {
	if err := core.ValidateRequest(&req); err != nil {
		return nil, err
	}

	started := time.Now()
	e.monitor.Start(req)

	query := req.EnhancedQuery()
	k := candidateK(req.MaxResults)

	// Intent extraction and the targeted retrieval are independent.
	var (
		wg     sync.WaitGroup
		intent core.UserIntent
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		intent = e.extractor.Extract(ctx, query)
	}()
	candidates, searchErr := e.search(ctx, query, k)
	wg.Wait()
	e.monitor.IntentExtracted(intent)

	st := &cascadeState{
		req:        req,
		intent:     intent,
		candidates: candidates,
		searchErr:  searchErr,
	}
	items, tier := e.runCascade(ctx, st)

	resp := Assemble(req.UserQuery, intent, items, match.OverallMatchType(items), e.now())
	elapsed := time.Since(started)
	e.monitor.Finish(resp, elapsed)

	e.logger.Info("recommendation served",
		"user_id", req.UserID,
		"tier", tier,
		"results", len(resp.Recommendations),
		"match_type", resp.MatchType,
		"elapsed", elapsed)
	return resp, nil
}

// search runs one bounded retriever call.
// candidateK is the retrieval depth for a request: twice the result count,
// saturating instead of overflowing.
func candidateK(maxResults int) int {
	if maxResults > math.MaxInt/2 {
		return math.MaxInt
	}
	return 2 * maxResults
}

func (e *Engine) search(ctx context.Context, query string, k int) ([]core.Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	return e.retriever.Search(ctx, query, k, 0, e.filter)
}
