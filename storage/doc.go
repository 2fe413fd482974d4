// Package storage defines the persistence contracts of the course index.
//
// CourseRepository holds every catalog course as an IndexedCourse: the
// embedding vector, the embedded document text and the flat string metadata
// the matching engine rebuilds courses from. CheckpointRepository records a
// content digest per catalog source so unchanged catalogs are not
// re-embedded.
//
// The badger subpackage is the only backend:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	courses := badger.NewCourseRepository(backend)
//
// Tests use badger.NewMemoryRepositories.
//
// Repository methods accept a context and are safe for concurrent use.
package storage
