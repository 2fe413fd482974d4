package ingestion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/retrieval"
	"github.com/poiesic/coursematch/storage"
)

// Pipeline defaults.
const (
	DefaultBatchSize      = 16
	DefaultMaxAttempts    = 3
	DefaultRetryBaseDelay = 500 * time.Millisecond
)

// Pipeline orchestrates catalog ingestion into the similarity index.
type Pipeline struct {
	indexer        Indexer
	checkpoints    storage.CheckpointRepository
	embeddingPool  *ants.Pool
	jobPool        *ants.Pool
	proc           processor
	batchSize      int
	maxAttempts    int
	retryBaseDelay time.Duration
	progress       io.Writer
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the number of batches embedded concurrently.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if p.embeddingPool != nil {
			p.embeddingPool.Release()
		}
		p.embeddingPool = pool
		return nil
	}
}

// WithBatchSize sets how many courses are embedded per call.
// Default is DefaultBatchSize.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be at least 1, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithRetry sets the attempts and base backoff delay for embedding calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.retryBaseDelay = baseDelay
		return nil
	}
}

// WithProgress writes progress lines to w.
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) error {
		p.progress = w
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(indexer Indexer, checkpoints storage.CheckpointRepository, opts ...Option) (*Pipeline, error) {
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	if checkpoints == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	poolSize := max(runtime.NumCPU()/2, 1)
	embeddingPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	// A single nonblocking worker: a second background job is refused.
	jobPool, err := ants.NewPool(1, ants.WithNonblocking(true))
	if err != nil {
		embeddingPool.Release()
		return nil, err
	}

	p := &Pipeline{
		indexer:        indexer,
		checkpoints:    checkpoints,
		embeddingPool:  embeddingPool,
		jobPool:        jobPool,
		batchSize:      DefaultBatchSize,
		maxAttempts:    DefaultMaxAttempts,
		retryBaseDelay: DefaultRetryBaseDelay,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	p.logger = p.logger.With("component", "ingestion")

	proc, err := newEmbeddingProcessor(indexer, p.maxAttempts, p.retryBaseDelay, p.logger)
	if err != nil {
		p.Release()
		return nil, err
	}
	p.proc = proc

	return p, nil
}

// Result summarizes one ingestion run.
type Result struct {
	Source  string        `json:"source"`
	Digest  string        `json:"digest"`
	Total   int           `json:"total"`
	Indexed int           `json:"indexed"`
	Invalid int           `json:"invalid"`
	Skipped bool          `json:"skipped"`
	Elapsed time.Duration `json:"elapsed"`
}

// IngestFile reads and ingests the catalog at path, using the path as the
// checkpoint source.
func (p *Pipeline) IngestFile(ctx context.Context, path string, force bool) (*Result, error) {
	data, err := ReadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	return p.Ingest(ctx, path, data, force)
}

// Ingest indexes raw catalog JSON. Unless force is set, a catalog whose
// digest matches the checkpoint of source is skipped.
func (p *Pipeline) Ingest(ctx context.Context, source string, data []byte, force bool) (*Result, error) {
	started := time.Now()
	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}

	result := &Result{Source: source, Digest: Digest(data), Total: len(catalog.Courses)}

	if !force && p.unchanged(ctx, source, result.Digest) {
		p.logger.Info("catalog unchanged, skipping", "source", source, "digest", result.Digest)
		result.Skipped = true
		result.Elapsed = time.Since(started)
		return result, nil
	}

	items := make([]retrieval.Item, 0, len(catalog.Courses))
	for i, cc := range catalog.Courses {
		item, err := cc.Item()
		if err != nil {
			p.logger.Warn("skipping invalid course", "source", source, "index", i, "err", err)
			result.Invalid++
			continue
		}
		items = append(items, item)
	}

	indexed, err := p.index(ctx, items)
	result.Indexed = indexed
	result.Elapsed = time.Since(started)
	if err != nil {
		return result, err
	}

	cp := &core.Checkpoint{Source: source, Digest: result.Digest, Count: indexed, UpdatedAt: time.Now().UTC()}
	if err := p.checkpoints.SaveCheckpoint(ctx, cp); err != nil {
		return result, fmt.Errorf("saving checkpoint for %s: %w", source, err)
	}

	p.logger.Info("catalog ingested",
		"source", source,
		"indexed", result.Indexed,
		"invalid", result.Invalid,
		"elapsed", result.Elapsed)
	return result, nil
}

// IngestAsync runs Ingest on the background worker. done, if set, receives
// the outcome. Returns ErrIngestionBusy while another job runs.
func (p *Pipeline) IngestAsync(source string, data []byte, force bool, done func(*Result, error)) error {
	err := p.jobPool.Submit(func() {
		result, err := p.Ingest(context.Background(), source, data, force)
		if err != nil {
			p.logger.Error("background ingestion failed", "source", source, "err", err)
		}
		if done != nil {
			done(result, err)
		}
	})
	if errors.Is(err, ants.ErrPoolOverload) {
		return ErrIngestionBusy
	}
	return err
}

func (p *Pipeline) unchanged(ctx context.Context, source, digest string) bool {
	cp, err := p.checkpoints.LoadCheckpoint(ctx, source)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("error loading checkpoint", "source", source, "err", err)
		}
		return false
	}
	return cp.Digest == digest
}

// index embeds items in batches on the embedding pool.
func (p *Pipeline) index(ctx context.Context, items []retrieval.Item) (int, error) {
	tracker := NewProgressTracker(p.progress, len(items), p.batchSize)
	tracker.Start()
	defer func() {
		if p.progress != nil {
			tracker.Finish()
		}
	}()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for start := 0; start < len(items); start += p.batchSize {
		batch := items[start:min(start+p.batchSize, len(items))]
		wg.Add(1)
		submitErr := p.embeddingPool.Submit(func() {
			defer wg.Done()
			n, err := p.proc.process(ctx, batch)
			if err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				return
			}
			tracker.Increment(n)
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, submitErr)
			mu.Unlock()
		}
	}
	wg.Wait()

	return tracker.Current(), errors.Join(errs...)
}

// Release releases resources including worker pools.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embeddingPool != nil {
		p.embeddingPool.Release()
	}
	if p.jobPool != nil {
		p.jobPool.Release()
	}
}
