package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/coursematch/ai"
)

// MockAnalyzer is a test double for ai.Analyzer.
// It allows custom behavior injection via function fields.
type MockAnalyzer struct {
	// AnalyzeFunc is called by Analyze if set.
	// If nil, every word becomes a NOUN token and nothing else is reported.
	AnalyzeFunc func(ctx context.Context, text string) (*ai.Analysis, error)

	callCount atomic.Int64
}

var _ ai.Analyzer = (*MockAnalyzer)(nil)

// NewMockAnalyzer creates a mock analyzer with default behavior.
func NewMockAnalyzer() *MockAnalyzer {
	return &MockAnalyzer{}
}

// Analyze returns a naive analysis of text.
func (m *MockAnalyzer) Analyze(ctx context.Context, text string) (*ai.Analysis, error) {
	m.callCount.Add(1)

	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, text)
	}

	words := strings.Fields(strings.ToLower(text))
	analysis := &ai.Analysis{
		Entities:    []string{},
		NounPhrases: []string{},
		Tokens:      make([]ai.Token, 0, len(words)),
	}
	for _, w := range words {
		w = strings.Trim(w, ",!?;:\"'()[]{}")
		if w == "" {
			continue
		}
		analysis.Tokens = append(analysis.Tokens, ai.Token{Text: w, Lemma: w, POS: ai.POSNoun})
	}
	return analysis, nil
}

// CallCount returns the number of times Analyze was called.
func (m *MockAnalyzer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockAnalyzer) Reset() {
	m.callCount.Store(0)
	m.AnalyzeFunc = nil
}
