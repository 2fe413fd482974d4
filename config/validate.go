package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks ranges and required values.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		add("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		add("log.format must be text or json, got %q", c.Log.Format)
	}

	if !c.Storage.InMemory && strings.TrimSpace(c.Storage.Path) == "" {
		add("storage.path is required unless storage.in_memory is set")
	}

	if c.AI.EmbeddingHost == "" {
		add("ai.embedding_host is required")
	}
	if c.AI.EmbeddingModel == "" {
		add("ai.embedding_model is required")
	}

	if c.Engine.RetrievalTimeout <= 0 {
		add("engine.retrieval_timeout must be positive")
	}
	if c.Engine.AnalyzerTimeout <= 0 {
		add("engine.analyzer_timeout must be positive")
	}
	if strings.TrimSpace(c.Engine.GenericQuery) == "" {
		add("engine.generic_query is required")
	}
	if c.Engine.MaxResults < 1 {
		add("engine.max_results must be at least 1, got %d", c.Engine.MaxResults)
	}
	if !inUnit(c.Engine.MinConfidence) {
		add("engine.min_confidence must be between 0 and 1, got %g", c.Engine.MinConfidence)
	}
	if !inUnit(c.Engine.BackendMinConfidence) {
		add("engine.backend_min_confidence must be between 0 and 1, got %g", c.Engine.BackendMinConfidence)
	}

	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		add("breaker.failure_ratio must be in (0,1], got %g", c.Breaker.FailureRatio)
	}
	if c.Breaker.Timeout <= 0 {
		add("breaker.timeout must be positive")
	}

	if c.Ingestion.BatchSize < 1 {
		add("ingestion.batch_size must be at least 1, got %d", c.Ingestion.BatchSize)
	}
	if c.Ingestion.MaxAttempts < 1 {
		add("ingestion.max_attempts must be at least 1, got %d", c.Ingestion.MaxAttempts)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	return errors.Join(errs...)
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
