package retrieval

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/poiesic/coursematch/ai"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/storage"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Retriever answers nearest-neighbor queries over the course index.
// It is safe for concurrent use.
type Retriever struct {
	repo     storage.CourseRepository
	embedder ai.Embedder
	breaker  *gobreaker.CircuitBreaker[any]
	observer BreakerObserver
	settings BreakerSettings
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithBreakerSettings overrides the circuit breaker configuration.
func WithBreakerSettings(s BreakerSettings) Option {
	return func(r *Retriever) error {
		if s.Name == "" {
			return fmt.Errorf("breaker name is required")
		}
		if s.FailureRatio <= 0 || s.FailureRatio > 1 {
			return fmt.Errorf("breaker failure ratio must be in (0,1], got %g", s.FailureRatio)
		}
		r.settings = s
		return nil
	}
}

// WithBreakerObserver registers an observer for breaker events.
func WithBreakerObserver(o BreakerObserver) Option {
	return func(r *Retriever) error {
		if o != nil {
			r.observer = o
		}
		return nil
	}
}

// NewRetriever creates a retriever over repo using embedder for queries.
func NewRetriever(repo storage.CourseRepository, embedder ai.Embedder, opts ...Option) (*Retriever, error) {
	if repo == nil {
		return nil, ErrCourseRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Retriever{
		repo:     repo,
		embedder: embedder,
		observer: noopBreakerObserver{},
		settings: DefaultBreakerSettings(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.logger = r.logger.With("component", "retriever")
	r.breaker = r.newBreaker(r.settings)
	return r, nil
}

// Search returns up to k candidates for query ordered by descending score,
// ties broken by id, keeping only scores >= minScore. An empty index yields
// an empty slice and no error.
func (r *Retriever) Search(ctx context.Context, query string, k int, minScore float64, filter *core.Filter) ([]core.Candidate, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if k < 1 {
		return nil, ErrInvalidK
	}

	result, err := r.execute(func() (any, error) {
		return r.search(ctx, query, k, filter)
	})
	if err != nil {
		r.logger.Warn("similarity search failed", "k", k, "err", err)
		return nil, err
	}
	matches := result.([]storage.SimilarityMatch)

	candidates := make([]core.Candidate, 0, len(matches))
	for _, m := range matches {
		score := ScoreFromSimilarity(m.Similarity)
		if score < minScore {
			continue
		}
		candidates = append(candidates, core.Candidate{
			ID:       m.Course.CourseID,
			Score:    score,
			Document: m.Course.Document,
			Metadata: maps.Clone(m.Course.Metadata),
		})
	}

	// Scores are clamped, so equal similarities can collapse; keep the id tie-break.
	slices.SortStableFunc(candidates, func(a, b core.Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	r.logger.Debug("similarity search", "k", k, "hits", len(matches), "kept", len(candidates))
	return candidates, nil
}

func (r *Retriever) search(ctx context.Context, query string, k int, filter *core.Filter) ([]storage.SimilarityMatch, error) {
	vector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	matches, err := r.repo.FindSimilar(ctx, NormalizeVector(vector), k, filter)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	return matches, nil
}

// AddItems embeds and upserts items into the index. Every course is
// validated before anything is embedded.
func (r *Retriever) AddItems(ctx context.Context, items ...Item) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	texts := make([]string, len(items))
	for i := range items {
		if err := core.ValidateCourse(&items[i].Course); err != nil {
			return 0, err
		}
		texts[i] = items[i].document()
	}

	vectors, err := r.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding %d documents: %w", len(texts), err)
	}
	if len(vectors) != len(items) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d documents", len(vectors), len(items))
	}

	records := make([]*core.IndexedCourse, len(items))
	for i, item := range items {
		records[i] = &core.IndexedCourse{
			CourseID: item.Course.ID,
			Document: texts[i],
			Metadata: core.CourseMetadata(item.Course),
			Vector:   NormalizeVector(vectors[i]),
		}
	}
	if _, err := r.repo.AddCourses(ctx, records...); err != nil {
		return 0, fmt.Errorf("storing %d courses: %w", len(records), err)
	}
	return len(records), nil
}

// Count returns the number of indexed courses.
func (r *Retriever) Count(ctx context.Context) (int, error) {
	return r.repo.Count(ctx)
}
