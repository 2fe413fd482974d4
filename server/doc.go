// Package server exposes the recommendation engine over HTTP with gin.
//
// Routes:
//
//	GET  /health                       service readiness, 503 when degraded
//	GET  /metrics                      Prometheus exposition
//	POST /api/recommendations          engine request/response wrapped in {"success","data"}
//	POST /api/recommendations/backend  compact format for the course backend
//	GET  /api/vector-store/status      index size
//	POST /api/ingest-json-catalog      background catalog ingestion
//
// Validation failures answer 400 with {"success":false,"error":...}.
package server
