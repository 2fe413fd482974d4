package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/ingestion"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Recommender answers recommendation requests.
type Recommender interface {
	Recommend(ctx context.Context, req core.RecommendationRequest) (*core.RecommendationResponse, error)
}

// Index reports the size of the course index.
type Index interface {
	Count(ctx context.Context) (int, error)
}

// Ingester schedules catalog ingestion in the background.
type Ingester interface {
	IngestAsync(source string, data []byte, force bool, done func(*ingestion.Result, error)) error
}

// HealthCheck returns nil when a dependency is ready.
type HealthCheck func(ctx context.Context) error

// Config configures the HTTP handlers.
type Config struct {
	// Defaults fills max_results and min_confidence when a request omits them.
	Defaults core.RecommendationRequest
	// BackendMinConfidence is the fixed threshold of the backend endpoint.
	BackendMinConfidence float64
	// CatalogPath is the JSON catalog read by the ingestion endpoint.
	CatalogPath string
	// StorePath is reported by the index status endpoint.
	StorePath string
	// HealthChecks maps service names to readiness checks.
	HealthChecks map[string]HealthCheck
	// Gatherer serves /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// Recorder observes served requests. May be nil.
	Recorder HTTPRecorder
	// OnIngested is called after every background ingestion. May be nil.
	OnIngested func(*ingestion.Result, error)
	Logger   *slog.Logger
}

// Server holds the handler dependencies.
type Server struct {
	recommender Recommender
	index       Index
	ingester    Ingester
	cfg         Config
	started     time.Time
	logger      *slog.Logger
}

// New creates a Server. ingester may be nil, which disables the ingestion
// endpoint.
func New(recommender Recommender, index Index, ingester Ingester, cfg Config) (*Server, error) {
	if recommender == nil {
		return nil, ErrRecommenderRequired
	}
	if index == nil {
		return nil, ErrIndexRequired
	}
	if cfg.Defaults.MaxResults == 0 {
		cfg.Defaults = core.NewRecommendationRequest("")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		recommender: recommender,
		index:       index,
		ingester:    ingester,
		cfg:         cfg,
		started:     time.Now(),
		logger:      logger.With("component", "http"),
	}, nil
}

// Router builds the gin engine with middleware and routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(
		RequestID(),
		Logging(s.logger, s.cfg.Recorder),
		Recovery(s.logger),
	)

	r.GET("/health", s.health)
	if s.cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	api.POST("/recommendations", s.recommend)
	api.POST("/recommendations/backend", s.recommendBackend)
	api.GET("/vector-store/status", s.indexStatus)
	api.POST("/ingest-json-catalog", s.ingestCatalog)
	return r
}

func (s *Server) recommend(c *gin.Context) {
	var body recommendationRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	resp, err := s.recommender.Recommend(c.Request.Context(), body.toCore(s.cfg.Defaults))
	if err != nil {
		s.recommendError(c, err)
		return
	}
	respondData(c, http.StatusOK, resp)
}

func (s *Server) recommendBackend(c *gin.Context) {
	var body backendRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	req := s.cfg.Defaults
	req.UserQuery = body.Query
	req.UIChips = body.Chips
	req.UserID = body.UserContext.UserID
	req.MinConfidence = s.cfg.BackendMinConfidence
	if body.MaxResults != nil {
		req.MaxResults = *body.MaxResults
	}

	resp, err := s.recommender.Recommend(c.Request.Context(), req)
	if err != nil {
		s.recommendError(c, err)
		return
	}
	c.JSON(http.StatusOK, toBackendResponse(resp))
}

func (s *Server) recommendError(c *gin.Context, err error) {
	if errors.Is(err, core.ErrInvalidRequest) {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("recommendation failed", "request_id", RequestIDFromContext(c), "err", err)
	respondError(c, http.StatusInternalServerError, "Failed to generate recommendations")
}
