package ingestion

import "errors"

var (
	// ErrIndexerRequired is returned when an indexer is not provided.
	ErrIndexerRequired = errors.New("indexer required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrInvalidCatalog is returned when catalog data cannot be parsed.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrEmptyCatalog is returned when a catalog holds no courses.
	ErrEmptyCatalog = errors.New("catalog has no courses")

	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrIngestionBusy is returned when a background ingestion is already running.
	ErrIngestionBusy = errors.New("ingestion already in progress")
)
