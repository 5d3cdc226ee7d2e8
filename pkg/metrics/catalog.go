package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CatalogMetrics tracks calls against the upstream product catalog.
type CatalogMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	cacheHit *prometheus.CounterVec
}

// NewCatalogMetrics registers catalog client metrics on the provided registerer.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	if reg == nil {
		return &CatalogMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_fetch_duration_seconds",
		Help:    "Duration of upstream catalog fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_success",
		Help: "Successful upstream catalog fetches.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_fetch_failure",
		Help: "Failed upstream catalog fetches.",
	}, []string{"operation"})
	cacheHit := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_hits",
		Help: "Catalog reads served from the redis cache.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure, cacheHit)
	return &CatalogMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		cacheHit: cacheHit,
	}
}

// ObserveDuration records the duration for the named operation.
func (c *CatalogMetrics) ObserveDuration(operation string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named operation.
func (c *CatalogMetrics) IncSuccess(operation string) {
	if c == nil || c.success == nil {
		return
	}
	c.success.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncFailure increments the failure counter for the named operation.
func (c *CatalogMetrics) IncFailure(operation string) {
	if c == nil || c.failure == nil {
		return
	}
	c.failure.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncCacheHit increments the cache-hit counter for the named operation.
func (c *CatalogMetrics) IncCacheHit(operation string) {
	if c == nil || c.cacheHit == nil {
		return
	}
	c.cacheHit.WithLabelValues(normalizeLabel(operation)).Inc()
}
