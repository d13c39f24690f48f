// Package metrics provides Prometheus-based metrics for the query cache
// and the upstream backend client.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder collects cache and upstream request metrics.
type Recorder struct {
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	cacheInvalidations  *prometheus.CounterVec
	cacheRemovals       *prometheus.CounterVec
	optimisticWrites    *prometheus.CounterVec
	optimisticRollbacks *prometheus.CounterVec
	upstreamRequests    *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
}

// NewRecorder creates a Recorder registered against the given registerer.
// Pass prometheus.DefaultRegisterer in production; tests use their own
// registry to avoid duplicate registration panics.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querycache_hits_total",
				Help: "Total number of query cache hits by entity",
			},
			[]string{"entity"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querycache_misses_total",
				Help: "Total number of query cache misses by entity",
			},
			[]string{"entity"},
		),
		cacheInvalidations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querycache_invalidations_total",
				Help: "Total number of query cache invalidations by entity",
			},
			[]string{"entity"},
		),
		cacheRemovals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querycache_removals_total",
				Help: "Total number of hard removals of cached entries by entity",
			},
			[]string{"entity"},
		),
		optimisticWrites: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querycache_optimistic_writes_total",
				Help: "Total number of optimistic cache writes by entity",
			},
			[]string{"entity"},
		),
		optimisticRollbacks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "querycache_optimistic_rollbacks_total",
				Help: "Total number of optimistic cache rollbacks by entity",
			},
			[]string{"entity"},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backend_requests_total",
				Help: "Total number of upstream backend requests by method and status",
			},
			[]string{"method", "status"},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backend_request_duration_seconds",
				Help:    "Duration of upstream backend requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// ObserveCacheHit records a cache hit for the entity.
func (r *Recorder) ObserveCacheHit(entity string) {
	r.cacheHits.WithLabelValues(entity).Inc()
}

// ObserveCacheMiss records a cache miss for the entity.
func (r *Recorder) ObserveCacheMiss(entity string) {
	r.cacheMisses.WithLabelValues(entity).Inc()
}

// ObserveInvalidation records a cache invalidation for the entity.
func (r *Recorder) ObserveInvalidation(entity string) {
	r.cacheInvalidations.WithLabelValues(entity).Inc()
}

// ObserveRemoval records a hard removal of a cached entry for the entity.
func (r *Recorder) ObserveRemoval(entity string) {
	r.cacheRemovals.WithLabelValues(entity).Inc()
}

// ObserveOptimisticWrite records an optimistic cache write for the entity.
func (r *Recorder) ObserveOptimisticWrite(entity string) {
	r.optimisticWrites.WithLabelValues(entity).Inc()
}

// ObserveOptimisticRollback records an optimistic rollback for the entity.
func (r *Recorder) ObserveOptimisticRollback(entity string) {
	r.optimisticRollbacks.WithLabelValues(entity).Inc()
}

// ObserveUpstreamRequest records a completed upstream request.
func (r *Recorder) ObserveUpstreamRequest(method, status string, duration time.Duration) {
	r.upstreamRequests.WithLabelValues(method, status).Inc()
	r.upstreamDuration.WithLabelValues(method).Observe(duration.Seconds())
}
