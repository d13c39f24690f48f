package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_CacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.ObserveCacheHit("orders")
	rec.ObserveCacheHit("orders")
	rec.ObserveCacheMiss("orders")
	rec.ObserveInvalidation("orders")
	rec.ObserveRemoval("orders")
	rec.ObserveOptimisticWrite("users")
	rec.ObserveOptimisticRollback("users")

	assert.Equal(t, float64(2), testutil.ToFloat64(rec.cacheHits.WithLabelValues("orders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.cacheMisses.WithLabelValues("orders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.cacheInvalidations.WithLabelValues("orders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.cacheRemovals.WithLabelValues("orders")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.optimisticWrites.WithLabelValues("users")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.optimisticRollbacks.WithLabelValues("users")))
}

func TestRecorder_UpstreamRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	rec.ObserveUpstreamRequest("GET", "200", 120*time.Millisecond)
	rec.ObserveUpstreamRequest("GET", "200", 80*time.Millisecond)
	rec.ObserveUpstreamRequest("POST", "422", 40*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(rec.upstreamRequests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.upstreamRequests.WithLabelValues("POST", "422")))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range families {
		if mf.GetName() == "backend_request_duration_seconds" {
			found = true
		}
	}
	assert.True(t, found, "duration histogram should be registered")
}
