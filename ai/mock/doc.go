// Package mock provides test doubles for the ai interfaces.
//
//	provider := mock.NewMockProvider()
//	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{1, 0, 0}, nil
//	}
//
// Defaults:
//
//   - MockEmbedder: unit vectors derived from an FNV hash of the text
//   - MockAnalyzer: one NOUN token per word, no entities or noun phrases
//   - MockProvider: aggregates both; a nil analyzer disables analysis
package mock
