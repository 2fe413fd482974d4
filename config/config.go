package config

import (
	"time"

	"github.com/poiesic/coursematch/ai"
	"github.com/poiesic/coursematch/retrieval"
)

// Config is the service configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Storage   StorageConfig   `koanf:"storage"`
	AI        AIConfig        `koanf:"ai"`
	Engine    EngineConfig    `koanf:"engine"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Ingestion IngestionConfig `koanf:"ingestion"`
	Server    ServerConfig    `koanf:"server"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is text or json.
	Format string `koanf:"format"`
}

// StorageConfig locates the BadgerDB index.
type StorageConfig struct {
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`
}

// AIConfig mirrors ai.Config.
type AIConfig struct {
	EmbeddingHost    string `koanf:"embedding_host"`
	EmbeddingModel   string `koanf:"embedding_model"`
	AnalyzerHost     string `koanf:"analyzer_host"`
	AnalyzerModel    string `koanf:"analyzer_model"`
	APIKey           string `koanf:"api_key"`
	AnalyzerEnabled  bool   `koanf:"analyzer_enabled"`
	MaxParseAttempts int    `koanf:"max_parse_attempts"`
}

// EngineConfig tunes the recommendation cascade.
type EngineConfig struct {
	RetrievalTimeout     time.Duration `koanf:"retrieval_timeout"`
	AnalyzerTimeout      time.Duration `koanf:"analyzer_timeout"`
	GenericQuery         string        `koanf:"generic_query"`
	MaxResults           int           `koanf:"max_results"`
	MinConfidence        float64       `koanf:"min_confidence"`
	BackendMinConfidence float64       `koanf:"backend_min_confidence"`
}

// BreakerConfig mirrors retrieval.BreakerSettings.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// CatalogConfig names the JSON catalog loaded by serve and ingest.
type CatalogConfig struct {
	Path string `koanf:"path"`
	// AutoLoad ingests Path at startup when the index is empty.
	AutoLoad bool `koanf:"auto_load"`
}

// IngestionConfig tunes catalog embedding.
type IngestionConfig struct {
	PoolSize    int           `koanf:"pool_size"`
	BatchSize   int           `koanf:"batch_size"`
	MaxAttempts int           `koanf:"max_attempts"`
	RetryDelay  time.Duration `koanf:"retry_delay"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// AIOptions converts the AI section to ai.Config options.
func (c *Config) AIOptions() []ai.ConfigOption {
	return []ai.ConfigOption{
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithAnalyzerHost(c.AI.AnalyzerHost),
		ai.WithAnalyzerModel(c.AI.AnalyzerModel),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithAnalyzer(c.AI.AnalyzerEnabled),
		ai.WithMaxParseAttempts(c.AI.MaxParseAttempts),
	}
}

// BreakerSettings converts the breaker section.
func (c *Config) BreakerSettings() retrieval.BreakerSettings {
	s := retrieval.DefaultBreakerSettings()
	s.MaxRequests = c.Breaker.MaxRequests
	s.Interval = c.Breaker.Interval
	s.Timeout = c.Breaker.Timeout
	s.MinRequests = c.Breaker.MinRequests
	s.FailureRatio = c.Breaker.FailureRatio
	return s
}
