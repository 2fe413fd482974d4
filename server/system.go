package server

import (
	"errors"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/coursematch/ingestion"
)

// Service readiness values reported by /health.
const (
	ServiceReady       = "ready"
	ServiceUnavailable = "unavailable"
)

type healthResponse struct {
	Status        string            `json:"status"`
	Services      map[string]string `json:"services"`
	UptimeSeconds float64           `json:"uptime_seconds"`
	Timestamp     time.Time         `json:"timestamp"`
	Version       string            `json:"version"`
}

func (s *Server) health(c *gin.Context) {
	services := make(map[string]string, len(s.cfg.HealthChecks)+1)
	healthy := true

	check := func(name string, err error) {
		if err != nil {
			s.logger.Warn("health check failed", "service", name, "err", err)
			services[name] = ServiceUnavailable
			healthy = false
			return
		}
		services[name] = ServiceReady
	}

	_, err := s.index.Count(c.Request.Context())
	check("vector_store", err)
	for _, name := range slices.Sorted(maps.Keys(s.cfg.HealthChecks)) {
		check(name, s.cfg.HealthChecks[name](c.Request.Context()))
	}

	resp := healthResponse{
		Status:        "healthy",
		Services:      services,
		UptimeSeconds: time.Since(s.started).Seconds(),
		Timestamp:     time.Now().UTC(),
		Version:       Version,
	}
	status := http.StatusOK
	if !healthy {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

type indexStatusResponse struct {
	Initialized   bool   `json:"initialized"`
	DocumentCount int    `json:"document_count"`
	StorePath     string `json:"store_path,omitempty"`
	Error         string `json:"error,omitempty"`
}

func (s *Server) indexStatus(c *gin.Context) {
	count, err := s.index.Count(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to count indexed courses", "err", err)
		c.JSON(http.StatusOK, indexStatusResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, indexStatusResponse{
		Initialized:   true,
		DocumentCount: count,
		StorePath:     s.cfg.StorePath,
	})
}

type ingestResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

// ingestCatalog reads the configured catalog and indexes it in the
// background. ?force=true ignores the checkpoint.
func (s *Server) ingestCatalog(c *gin.Context) {
	if s.ingester == nil || s.cfg.CatalogPath == "" {
		respondError(c, http.StatusServiceUnavailable, "Catalog ingestion is not configured")
		return
	}

	data, err := ingestion.ReadCatalogFile(s.cfg.CatalogPath)
	if err != nil {
		s.logger.Error("failed to read catalog", "path", s.cfg.CatalogPath, "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to start JSON catalog ingestion: catalog not readable")
		return
	}

	force := c.Query("force") == "true"
	err = s.ingester.IngestAsync(s.cfg.CatalogPath, data, force, s.cfg.OnIngested)
	if err != nil {
		if errors.Is(err, ingestion.ErrIngestionBusy) {
			respondError(c, http.StatusConflict, "Catalog ingestion already in progress")
			return
		}
		s.logger.Error("failed to schedule ingestion", "err", err)
		respondError(c, http.StatusInternalServerError, "Failed to start JSON catalog ingestion")
		return
	}

	c.JSON(http.StatusAccepted, ingestResponse{
		Success:   true,
		Message:   "JSON course catalog ingestion started in background",
		Source:    s.cfg.CatalogPath,
		Timestamp: time.Now().UTC(),
	})
}
