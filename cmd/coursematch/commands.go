package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/coursematch"
	"github.com/poiesic/coursematch/config"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/ingestion"
	"github.com/poiesic/coursematch/metrics"
	"github.com/poiesic/coursematch/recommend"
	"github.com/poiesic/coursematch/retrieval"
	"github.com/poiesic/coursematch/server"
	"github.com/poiesic/coursematch/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v2"
)

func serveCommand(c *cli.Context) error {
	cfg := configFrom(c)
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	catalog, err := openCatalog(cfg,
		coursematch.WithRetrieverOptions(retrieval.WithBreakerObserver(m)),
		coursematch.WithEngineOptions(recommend.WithMonitor(m)),
	)
	if err != nil {
		return err
	}
	defer catalog.Close()

	pipeline, err := catalog.NewIngestionPipeline(pipelineOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	refreshIndexSize := func() {
		if n, err := catalog.Retriever().Count(context.Background()); err == nil {
			m.SetIndexedCourses(n)
		}
	}
	autoLoadCatalog(ctx, cfg, catalog, pipeline, m)
	refreshIndexSize()

	srv, err := server.New(catalog.Engine(), catalog.Retriever(), pipeline, server.Config{
		Defaults: core.RecommendationRequest{
			MaxResults:    cfg.Engine.MaxResults,
			MinConfidence: cfg.Engine.MinConfidence,
		},
		BackendMinConfidence: cfg.Engine.BackendMinConfidence,
		CatalogPath:          cfg.Catalog.Path,
		StorePath:            catalog.Path(),
		HealthChecks: map[string]server.HealthCheck{
			"retrieval": func(context.Context) error {
				if state := catalog.Retriever().BreakerState(); state == "open" {
					return retrieval.ErrIndexUnavailable
				}
				return nil
			},
		},
		Gatherer: reg,
		Recorder: m,
		OnIngested: func(r *ingestion.Result, err error) {
			m.RecordIngestion(r != nil && r.Skipped, err)
			refreshIndexSize()
		},
	})
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", httpServer.Addr, "store", catalog.Path())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// autoLoadCatalog ingests the configured catalog when the index is empty.
// Failures are logged; the service starts regardless.
func autoLoadCatalog(ctx context.Context, cfg *config.Config, catalog *coursematch.Catalog, pipeline *ingestion.Pipeline, m *metrics.Metrics) {
	if !cfg.Catalog.AutoLoad {
		slog.Info("catalog auto-load disabled")
		return
	}
	count, err := catalog.Retriever().Count(ctx)
	if err != nil {
		slog.Error("failed to count indexed courses", "err", err)
		return
	}
	if count > 0 {
		slog.Info("index already populated, skipping auto-load", "courses", count)
		return
	}
	if _, err := os.Stat(cfg.Catalog.Path); err != nil {
		slog.Warn("catalog file not found, starting with an empty index", "path", cfg.Catalog.Path)
		return
	}

	slog.Info("index is empty, loading catalog", "path", cfg.Catalog.Path)
	result, err := pipeline.IngestFile(ctx, cfg.Catalog.Path, false)
	m.RecordIngestion(result != nil && result.Skipped, err)
	if err != nil {
		slog.Error("failed to auto-load catalog", "path", cfg.Catalog.Path, "err", err)
	}
}

func ingestCommand(c *cli.Context) error {
	cfg := configFrom(c)
	path := c.String("file")
	if path == "" {
		path = cfg.Catalog.Path
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	pipeline, err := catalog.NewIngestionPipeline(append(pipelineOptions(cfg), ingestion.WithProgress(c.App.ErrWriter))...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(c.App.ErrWriter, "Index: %s\n", cfg.Storage.Path)
	fmt.Fprintf(c.App.ErrWriter, "Catalog: %s\n", path)
	fmt.Fprintln(c.App.ErrWriter)

	result, err := pipeline.IngestFile(c.Context, path, c.Bool("force"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	return printResult(c, result)
}

func seedCommand(c *cli.Context) error {
	cfg := configFrom(c)
	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	pipeline, err := catalog.NewIngestionPipeline(pipelineOptions(cfg)...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	result, err := pipeline.Ingest(c.Context, ingestion.SampleSource, ingestion.SampleCatalog(), c.Bool("force"))
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	return printResult(c, result)
}

func printResult(c *cli.Context, r *ingestion.Result) error {
	if r.Skipped {
		fmt.Fprintf(c.App.Writer, "%s unchanged (digest %s), nothing indexed\n", r.Source, r.Digest)
		return nil
	}
	fmt.Fprintf(c.App.Writer, "Indexed %d of %d courses from %s (%d invalid) in %s\n",
		r.Indexed, r.Total, r.Source, r.Invalid, r.Elapsed)
	return nil
}

func recommendCommand(c *cli.Context) error {
	cfg := configFrom(c)
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	req := core.RecommendationRequest{
		UserQuery:     query,
		UIChips:       c.StringSlice("chip"),
		UserID:        c.String("user"),
		MaxResults:    cfg.Engine.MaxResults,
		MinConfidence: cfg.Engine.MinConfidence,
	}
	if c.IsSet("max-results") {
		req.MaxResults = c.Int("max-results")
	}
	if c.IsSet("min-confidence") {
		req.MinConfidence = c.Float64("min-confidence")
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	resp, err := catalog.Engine().Recommend(c.Context, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func statusCommand(c *cli.Context) error {
	cfg := configFrom(c)
	catalog, err := openCatalog(cfg)
	if err != nil {
		return err
	}
	defer catalog.Close()

	count, err := catalog.Retriever().Count(c.Context)
	if err != nil {
		return fmt.Errorf("failed to count indexed courses: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "Index: %s\n", cfg.Storage.Path)
	fmt.Fprintf(c.App.Writer, "Courses: %d\n", count)

	for _, source := range []string{cfg.Catalog.Path, ingestion.SampleSource} {
		cp, err := catalog.CheckpointRepository().LoadCheckpoint(c.Context, source)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(c.App.Writer, "%s: never ingested\n", source)
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to load checkpoint for %s: %w", source, err)
		}
		fmt.Fprintf(c.App.Writer, "%s: %d courses, digest %s, updated %s\n",
			source, cp.Count, cp.Digest, cp.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
