package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Analyzer performs linguistic analysis of short queries: named entities,
// noun phrases and part-of-speech tagged tokens.
// Implementations must be thread-safe for concurrent use.
type Analyzer interface {
	// Analyze returns the linguistic structure of text.
	// Returns an error if the analysis service fails or answers garbage.
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// Analysis is the linguistic structure of a text.
type Analysis struct {
	// Entities are named entities such as technologies or products ("node.js").
	Entities []string

	// NounPhrases are base noun chunks ("backend development").
	NounPhrases []string

	// Tokens are the words of the text in order.
	Tokens []Token
}

// Token is a single tagged word.
type Token struct {
	Text  string
	Lemma string
	// POS is a universal part-of-speech tag (see PartOfSpeechTags).
	POS string
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Analyzer returns the linguistic analysis service, or nil when
	// analysis is disabled. Callers fall back to keyword matching on nil.
	Analyzer() Analyzer

	// Close releases resources held by the provider and its services.
	Close() error
}
