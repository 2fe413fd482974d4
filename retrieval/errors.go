package retrieval

import "errors"

var (
	// ErrCourseRepositoryRequired is returned when no repository is given.
	ErrCourseRepositoryRequired = errors.New("course repository is required")

	// ErrEmbedderRequired is returned when no embedder is given.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmptyQuery is returned for blank search text.
	ErrEmptyQuery = errors.New("query text cannot be empty")

	// ErrInvalidK is returned when fewer than one result is requested.
	ErrInvalidK = errors.New("k must be at least 1")

	// ErrIndexUnavailable is returned while the circuit breaker rejects calls.
	ErrIndexUnavailable = errors.New("similarity index unavailable")
)
