package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/coursematch/retrieval"
)

// embeddingProcessor embeds and indexes batches, retrying failures.
type embeddingProcessor struct {
	indexer        Indexer
	maxAttempts    int
	retryBaseDelay time.Duration
	logger         *slog.Logger
}

var _ processor = (*embeddingProcessor)(nil)

func newEmbeddingProcessor(indexer Indexer, maxAttempts int, retryBaseDelay time.Duration, logger *slog.Logger) (*embeddingProcessor, error) {
	if indexer == nil {
		return nil, ErrIndexerRequired
	}
	if maxAttempts <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &embeddingProcessor{
		indexer:        indexer,
		maxAttempts:    maxAttempts,
		retryBaseDelay: retryBaseDelay,
		logger:         logger.With("processor", "embeddings"),
	}, nil
}

func (ep *embeddingProcessor) process(ctx context.Context, batch []retrieval.Item) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	ep.logger.Debug("indexing batch", "courses", len(batch), "first", batch[0].Course.ID)

	var stored int
	err := RetryWithBackoff(ctx, func() error {
		n, err := ep.indexer.AddItems(ctx, batch...)
		if err != nil {
			return err
		}
		stored = n
		return nil
	}, ep.maxAttempts, ep.retryBaseDelay)
	if err != nil {
		return 0, fmt.Errorf("indexing batch starting at %s after %d attempts: %w", batch[0].Course.ID, ep.maxAttempts, err)
	}
	return stored, nil
}
