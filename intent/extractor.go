package intent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/coursematch/ai"
	"github.com/poiesic/coursematch/core"
)

// DefaultAnalyzerTimeout bounds a single analyzer call.
const DefaultAnalyzerTimeout = 5 * time.Second

// Extractor derives user intents from query text. It is safe for concurrent
// use.
type Extractor struct {
	analyzer ai.Analyzer
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithAnalyzer enables the linguistic path. A nil analyzer keeps keyword
// matching only.
func WithAnalyzer(analyzer ai.Analyzer) Option {
	return func(e *Extractor) error {
		e.analyzer = analyzer
		return nil
	}
}

// WithAnalyzerTimeout bounds each analyzer call.
// Default is DefaultAnalyzerTimeout.
func WithAnalyzerTimeout(d time.Duration) Option {
	return func(e *Extractor) error {
		if d <= 0 {
			return fmt.Errorf("analyzer timeout must be positive, got %s", d)
		}
		e.timeout = d
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates an extractor.
func NewExtractor(opts ...Option) (*Extractor, error) {
	e := &Extractor{
		timeout: DefaultAnalyzerTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Extract reads the intent of text. It never fails: analyzer errors fall
// back to keyword matching.
func (e *Extractor) Extract(ctx context.Context, text string) core.UserIntent {
	norm := normalize(text)
	level := detectLevel(norm)
	intentType := detectIntentType(norm)

	if norm == "" {
		return core.NewUserIntent(string(level), nil, nil, intentType)
	}

	if e.analyzer != nil {
		keywords, topics, err := e.analyze(ctx, text)
		if err == nil && (len(keywords) > 0 || len(topics) > 0) {
			return core.NewUserIntent(string(level), keywords, topics, intentType)
		}
		if err != nil {
			e.logger.Warn("query analysis failed, using keyword matching", "err", err)
		}
	}

	keywords, topics := matchKeywords(norm)
	return core.NewUserIntent(string(level), keywords, topics, intentType)
}

var errNilAnalysis = errors.New("analyzer returned no analysis")

func (e *Extractor) analyze(ctx context.Context, text string) ([]string, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	analysis, err := e.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, nil, err
	}
	if analysis == nil {
		return nil, nil, errNilAnalysis
	}
	keywords, topics := fromAnalysis(analysis)
	return keywords, topics, nil
}

// matchKeywords scans the curated table. Keywords come out in table order,
// topics are the categories of matched keywords in first-seen order.
func matchKeywords(norm string) (keywords, topics []string) {
	for _, entry := range keywordTable {
		if containsTerm(norm, entry.keyword) {
			keywords = append(keywords, entry.keyword)
			topics = append(topics, entry.category)
		}
	}
	return keywords, topics
}

func detectLevel(norm string) core.Level {
	for _, group := range levelWords {
		if containsAny(norm, group.words) {
			return group.level
		}
	}
	return core.LevelBeginner
}

func detectIntentType(norm string) core.IntentType {
	for _, tier := range intentTiers {
		if containsAny(norm, tier.markers) {
			return tier.intent
		}
	}
	return core.IntentLearn
}
