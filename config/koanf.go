package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/ingestion"
	"github.com/poiesic/coursematch/recommend"
	"github.com/poiesic/coursematch/retrieval"
)

// EnvPrefix starts every environment override. Sections are separated by a
// double underscore: COURSEMATCH_ENGINE__RETRIEVAL_TIMEOUT=2s.
const EnvPrefix = "COURSEMATCH_"

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "COURSEMATCH_CONFIG"

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"coursematch.yaml",
	"coursematch.yml",
	"/etc/coursematch/config.yaml",
}

// Default returns the built-in configuration.
func Default() *Config {
	breaker := retrieval.DefaultBreakerSettings()
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			Path: "data/index",
		},
		AI: AIConfig{
			EmbeddingHost:    "http://localhost:11434/v1",
			EmbeddingModel:   "embeddinggemma",
			AnalyzerHost:     "http://localhost:11434/v1",
			AnalyzerModel:    "qwen2.5:3b",
			APIKey:           "none",
			AnalyzerEnabled:  false,
			MaxParseAttempts: 3,
		},
		Engine: EngineConfig{
			RetrievalTimeout:     recommend.DefaultRetrievalTimeout,
			AnalyzerTimeout:      5 * time.Second,
			GenericQuery:         recommend.DefaultGenericQuery,
			MaxResults:           core.DefaultMaxResults,
			MinConfidence:        core.DefaultMinConfidence,
			BackendMinConfidence: 0.4,
		},
		Breaker: BreakerConfig{
			MaxRequests:  breaker.MaxRequests,
			Interval:     breaker.Interval,
			Timeout:      breaker.Timeout,
			MinRequests:  breaker.MinRequests,
			FailureRatio: breaker.FailureRatio,
		},
		Catalog: CatalogConfig{
			Path:     "data/courses.json",
			AutoLoad: true,
		},
		Ingestion: IngestionConfig{
			PoolSize:    2,
			BatchSize:   ingestion.DefaultBatchSize,
			MaxAttempts: ingestion.DefaultMaxAttempts,
			RetryDelay:  ingestion.DefaultRetryBaseDelay,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8003,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Load layers the defaults, a YAML file and COURSEMATCH_ environment
// variables, then validates the result. An empty path searches
// ConfigPathEnvVar and DefaultConfigPaths; finding no file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps COURSEMATCH_ENGINE__MAX_RESULTS to engine.max_results.
// The config path variable is not a setting and maps to an ignored key.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
