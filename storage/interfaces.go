package storage

import (
	"context"

	"github.com/poiesic/coursematch/core"
)

// SimilarityMatch is a stored course together with its cosine similarity to
// a query vector.
type SimilarityMatch struct {
	Course     *core.IndexedCourse
	Similarity float32
}

// CourseRepository stores the vector index of catalog courses.
// Implementations must be thread-safe and support concurrent access.
type CourseRepository interface {
	// AddCourses upserts indexed courses keyed by IDFromContent(CourseID).
	// Sets InsertedAt on first insert and UpdatedAt on every write.
	AddCourses(ctx context.Context, courses ...*core.IndexedCourse) ([]*core.IndexedCourse, error)

	// GetCourse retrieves a single indexed course by catalog id.
	// Returns ErrNotFound if the course doesn't exist.
	GetCourse(ctx context.Context, courseID string) (*core.IndexedCourse, error)

	// DeleteCourses removes courses by catalog id.
	// Returns ErrNotFound if any course doesn't exist.
	DeleteCourses(ctx context.Context, courseIDs ...string) error

	// Count returns the number of indexed courses.
	Count(ctx context.Context) (int, error)

	// FindSimilar returns up to limit courses ordered by cosine similarity
	// to vector (highest first). Courses whose metadata does not satisfy
	// filter are skipped. Vectors are expected to be L2-normalized.
	FindSimilar(ctx context.Context, vector []float32, limit int, filter *core.Filter) ([]SimilarityMatch, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// CheckpointRepository records the last ingested state of catalog sources.
type CheckpointRepository interface {
	// SaveCheckpoint stores the checkpoint for its source.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint returns the checkpoint for source.
	// Returns ErrNotFound if the source was never ingested.
	LoadCheckpoint(ctx context.Context, source string) (*core.Checkpoint, error)
}
