package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/coursematch"
	"github.com/poiesic/coursematch/ai"
	"github.com/poiesic/coursematch/config"
	"github.com/poiesic/coursematch/ingestion"
	"github.com/poiesic/coursematch/intent"
	"github.com/poiesic/coursematch/recommend"
	"github.com/poiesic/coursematch/retrieval"
	"github.com/urfave/cli/v2"
)

const configKey = "config"

// loadConfig reads the layered configuration, applies global flag overrides
// and installs the process logger.
func loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if db := c.String("db"); db != "" {
		cfg.Storage.Path = db
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := setupLogger(cfg.Log); err != nil {
		return err
	}
	c.App.Metadata = map[string]any{configKey: cfg}
	return nil
}

func configFrom(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata[configKey].(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func setupLogger(lc config.LogConfig) error {
	level, err := parseLevel(lc.Level)
	if err != nil {
		return err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(lc.Format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", s)
	}
}

// openCatalog opens the index and wires the engine from cfg. extra options
// are applied last.
func openCatalog(cfg *config.Config, extra ...coursematch.CatalogOption) (*coursematch.Catalog, error) {
	opts := []coursematch.CatalogOption{
		coursematch.WithAIConfig(ai.NewConfig(cfg.AIOptions()...)),
		coursematch.WithRetrieverOptions(retrieval.WithBreakerSettings(cfg.BreakerSettings())),
		coursematch.WithExtractorOptions(intent.WithAnalyzerTimeout(cfg.Engine.AnalyzerTimeout)),
		coursematch.WithEngineOptions(
			recommend.WithRetrievalTimeout(cfg.Engine.RetrievalTimeout),
			recommend.WithGenericQuery(cfg.Engine.GenericQuery),
		),
	}
	if cfg.Storage.InMemory {
		opts = append(opts, coursematch.WithInMemory())
	}
	opts = append(opts, extra...)

	catalog, err := coursematch.OpenCatalog(cfg.Storage.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog, nil
}

func pipelineOptions(cfg *config.Config) []ingestion.Option {
	return []ingestion.Option{
		ingestion.WithPoolSize(cfg.Ingestion.PoolSize),
		ingestion.WithBatchSize(cfg.Ingestion.BatchSize),
		ingestion.WithRetry(cfg.Ingestion.MaxAttempts, cfg.Ingestion.RetryDelay),
	}
}
