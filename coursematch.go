// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package coursematch

import (
	"log/slog"

	"github.com/poiesic/coursematch/ai"
	"github.com/poiesic/coursematch/ai/openai"
	"github.com/poiesic/coursematch/ingestion"
	"github.com/poiesic/coursematch/intent"
	"github.com/poiesic/coursematch/recommend"
	"github.com/poiesic/coursematch/retrieval"
	"github.com/poiesic/coursematch/storage"
	"github.com/poiesic/coursematch/storage/badger"
)

// Catalog owns the course index and the services built on it. It is opened
// once at process start and shared by every request handler.
type Catalog struct {
	backend        *badger.Backend
	courseRepo     storage.CourseRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.AIProvider
	retriever      *retrieval.Retriever
	extractor      *intent.Extractor
	engine         *recommend.Engine
	logger         *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig         *ai.Config
	provider         ai.AIProvider
	inMemory         bool
	retrieverOptions []retrieval.Option
	extractorOptions []intent.Option
	engineOptions    []recommend.Option
}

// WithAIConfig sets the configuration of the OpenAI-compatible provider.
func WithAIConfig(cfg *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider uses provider instead of building one from the AI config.
// The catalog takes ownership and closes it.
func WithProvider(provider ai.AIProvider) CatalogOption {
	return func(o *catalogOptions) {
		o.provider = provider
	}
}

// WithInMemory keeps the index in memory; the path is ignored.
func WithInMemory() CatalogOption {
	return func(o *catalogOptions) {
		o.inMemory = true
	}
}

// WithRetrieverOptions passes options to the similarity retriever.
func WithRetrieverOptions(opts ...retrieval.Option) CatalogOption {
	return func(o *catalogOptions) {
		o.retrieverOptions = append(o.retrieverOptions, opts...)
	}
}

// WithExtractorOptions passes options to the intent extractor.
func WithExtractorOptions(opts ...intent.Option) CatalogOption {
	return func(o *catalogOptions) {
		o.extractorOptions = append(o.extractorOptions, opts...)
	}
}

// WithEngineOptions passes options to the recommendation engine.
func WithEngineOptions(opts ...recommend.Option) CatalogOption {
	return func(o *catalogOptions) {
		o.engineOptions = append(o.engineOptions, opts...)
	}
}

// OpenCatalog opens the index at filePath and wires the retriever, intent
// extractor and recommendation engine.
func OpenCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	c := &Catalog{
		backend:        backend,
		courseRepo:     badger.NewCourseRepository(backend),
		checkpointRepo: badger.NewCheckpointRepository(backend),
		provider:       provider,
		logger:         slog.Default(),
	}

	if err := c.wire(options); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Catalog) wire(options *catalogOptions) error {
	var err error
	c.retriever, err = retrieval.NewRetriever(c.courseRepo, c.provider.Embedder(), options.retrieverOptions...)
	if err != nil {
		return err
	}

	// The analyzer option goes first so callers can still override it.
	extractorOpts := append([]intent.Option{intent.WithAnalyzer(c.provider.Analyzer())}, options.extractorOptions...)
	c.extractor, err = intent.NewExtractor(extractorOpts...)
	if err != nil {
		return err
	}

	c.engine, err = recommend.NewEngine(c.retriever, c.extractor, options.engineOptions...)
	return err
}

// Close releases the provider and the storage backend.
func (c *Catalog) Close() error {
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}
	if err := c.courseRepo.Close(); err != nil {
		c.logger.Error("error closing course repository", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Engine returns the recommendation engine.
func (c *Catalog) Engine() *recommend.Engine {
	return c.engine
}

// Retriever returns the similarity retriever.
func (c *Catalog) Retriever() *retrieval.Retriever {
	return c.retriever
}

// Extractor returns the intent extractor.
func (c *Catalog) Extractor() *intent.Extractor {
	return c.extractor
}

// CourseRepository returns the vector index repository.
func (c *Catalog) CourseRepository() storage.CourseRepository {
	return c.courseRepo
}

// CheckpointRepository returns the ingestion checkpoint repository.
func (c *Catalog) CheckpointRepository() storage.CheckpointRepository {
	return c.checkpointRepo
}

// Path returns the index location, or "" for an in-memory catalog.
func (c *Catalog) Path() string {
	return c.backend.Path()
}

// NewIngestionPipeline creates a pipeline that indexes through the
// catalog's retriever. Callers must Release it.
func (c *Catalog) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.retriever, c.checkpointRepo, opts...)
}
