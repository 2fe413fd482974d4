// Package ingestion loads JSON course catalogs into the similarity index.
//
// The Pipeline type manages the ingestion workflow, including:
//   - Parsing and validating catalog courses
//   - Skipping catalogs whose digest matches the stored checkpoint
//   - Embedding and indexing batches concurrently on a worker pool
//   - Recording a checkpoint once every batch succeeded
//
// Embedding calls are retried with exponential backoff. Courses that fail
// validation are skipped and counted; a failed batch fails the ingestion and
// leaves the checkpoint untouched so the next run retries it.
package ingestion
