package badger

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/storage"
)

// CourseRepository implements storage.CourseRepository for BadgerDB.
type CourseRepository struct {
	backend *Backend
}

var _ storage.CourseRepository = (*CourseRepository)(nil)

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(backend *Backend) *CourseRepository {
	return &CourseRepository{backend: backend}
}

// Close is a no-op; the backend owns the database handle.
func (r *CourseRepository) Close() error {
	return nil
}

// AddCourses upserts indexed courses.
func (r *CourseRepository) AddCourses(ctx context.Context, courses ...*core.IndexedCourse) ([]*core.IndexedCourse, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		now := time.Now().UTC()
		for _, course := range courses {
			if course == nil {
				return storage.ErrRecordRequired
			}
			if len(course.Vector) == 0 {
				return fmt.Errorf("%w: course %s", storage.ErrEmptyVector, course.CourseID)
			}
			key := makeCourseKey(course.CourseID)
			course.Key = core.IDFromContent(course.CourseID)

			existing, err := getValue(tx, key, storage.UnmarshalIndexedCourse)
			switch {
			case err == nil:
				course.InsertedAt = existing.InsertedAt
			case errors.Is(err, storage.ErrNotFound):
				course.InsertedAt = now
			default:
				return err
			}
			course.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalIndexedCourse(course)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// GetCourse retrieves a single indexed course by catalog id.
func (r *CourseRepository) GetCourse(ctx context.Context, courseID string) (*core.IndexedCourse, error) {
	var course *core.IndexedCourse
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		course, err = getValue(tx, makeCourseKey(courseID), storage.UnmarshalIndexedCourse)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourses removes courses by catalog id.
func (r *CourseRepository) DeleteCourses(ctx context.Context, courseIDs ...string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range courseIDs {
			key := makeCourseKey(id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: course %s", storage.ErrNotFound, id)
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of indexed courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	return r.backend.countPrefix(ctx, []byte(courseRecordPrefix))
}

// FindSimilar scans every indexed course and returns the limit best matches
// by dot product, which equals cosine similarity for normalized vectors.
// Equal similarities are ordered by catalog id.
func (r *CourseRepository) FindSimilar(ctx context.Context, vector []float32, limit int, filter *core.Filter) ([]storage.SimilarityMatch, error) {
	if len(vector) == 0 {
		return nil, storage.ErrEmptyVector
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	var results []storage.SimilarityMatch
	err := r.backend.scanPrefix(ctx, []byte(courseRecordPrefix), func(_, val []byte) error {
		course, err := storage.UnmarshalIndexedCourse(val)
		if err != nil {
			return err
		}
		// Skip records without embeddings
		if len(course.Vector) == 0 || !filter.Matches(course.Metadata) {
			return nil
		}
		results = append(results, storage.SimilarityMatch{
			Course:     course,
			Similarity: dotProduct(vector, course.Vector),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b storage.SimilarityMatch) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.Course.CourseID, b.Course.CourseID)
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
