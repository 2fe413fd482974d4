// Package metrics exposes Prometheus instrumentation for the recommendation
// service.
//
// A Metrics value owns its collectors and registers them with the
// prometheus.Registerer it was built with. It implements recommend.Monitor
// and retrieval.BreakerObserver so it can be handed straight to the engine
// and the retriever.
package metrics
