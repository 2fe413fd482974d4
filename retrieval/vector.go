package retrieval

import "math"

// NormalizeVector normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func NormalizeVector(v []float32) []float32 {
	result := make([]float32, len(v))
	if len(v) == 0 {
		return result
	}

	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	magnitude := math.Sqrt(sumSquares)
	if magnitude == 0 {
		return result
	}

	for i, val := range v {
		result[i] = float32(float64(val) / magnitude)
	}
	return result
}

// ScoreFromSimilarity converts a cosine similarity to a retrieval score.
// The index reports cosine distance d = 1 - similarity and the score is
// max(0, 1 - d), clamped to 1 against rounding.
func ScoreFromSimilarity(similarity float32) float64 {
	distance := 1 - float64(similarity)
	return math.Min(1, math.Max(0, 1-distance))
}
