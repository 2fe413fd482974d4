package recommend

import "errors"

var (
	// ErrRetrieverRequired is returned when no retriever is given.
	ErrRetrieverRequired = errors.New("retriever is required")

	// ErrExtractorRequired is returned when no intent extractor is given.
	ErrExtractorRequired = errors.New("intent extractor is required")
)
