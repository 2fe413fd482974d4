// Package retrieval is the similarity retriever of the matching engine.
//
// Search embeds the query, L2-normalizes it and asks the course index for
// the k nearest courses by cosine similarity. Scores are
// max(0, 1 - cosine distance). Calls go through a sony/gobreaker circuit
// breaker; while it is open Search fails fast with ErrIndexUnavailable and
// callers move on to their next fallback.
//
// AddItems validates courses, embeds their document text in one batch and
// upserts them with flattened metadata (see core.CourseMetadata).
package retrieval
