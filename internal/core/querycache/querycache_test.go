package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stockdesk/internal/core/cache"
	"stockdesk/internal/core/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *QueryCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	rec := metrics.NewRecorder(prometheus.NewRegistry())
	return mr, New(store, rec)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "orders", Key("orders"))
	assert.Equal(t, "orders:detail:5", Key("orders", "detail", "5"))
}

func TestListKey_Deterministic(t *testing.T) {
	a := ListKey("orders", map[string]string{"status": "pending", "page": "2"})
	b := ListKey("orders", map[string]string{"page": "2", "status": "pending"})

	assert.Equal(t, a, b)
	assert.Equal(t, "orders:list?page=2&status=pending", a)
	assert.Equal(t, "orders:list", ListKey("orders", nil))
}

func TestFetch_MissThenHit(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte(`{"fresh":true}`), nil
	}

	data, err := qc.Fetch(ctx, "orders:list", time.Minute, fn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fresh":true}`, string(data))

	data, err = qc.Fetch(ctx, "orders:list", time.Minute, fn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fresh":true}`, string(data))

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "second fetch must hit the cache")
}

func TestFetch_ConcurrentMissesDeduplicated(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(50 * time.Millisecond)
		return []byte(`[]`), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, err := qc.Fetch(ctx, "orders:list", time.Minute, fn)
			assert.NoError(t, err)
			assert.Equal(t, []byte(`[]`), data)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "concurrent misses must share one backend call")
}

func TestInvalidateAndRefetch_OverlappingCallsShareOneFetch(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, qc.store.Set(ctx, "orders:list", []byte("stale"), 0))

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(100 * time.Millisecond)
		return []byte("refetched"), nil
	}

	var wg sync.WaitGroup
	results := make([][]byte, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i == 1 {
				time.Sleep(20 * time.Millisecond)
			}
			data, err := qc.InvalidateAndRefetch(ctx, "orders:list", time.Minute, fn)
			assert.NoError(t, err)
			results[i] = data
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "double invalidation must not trigger two requests")
	assert.Equal(t, []byte("refetched"), results[0])
	assert.Equal(t, []byte("refetched"), results[1])
}

func TestInvalidate_NextFetchGoesToBackend(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	var calls int32
	fn := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return []byte("v"), nil
	}

	_, err := qc.Fetch(ctx, "customers:detail:9", time.Minute, fn)
	require.NoError(t, err)

	require.NoError(t, qc.Invalidate(ctx, "customers:detail:9"))

	_, err = qc.Fetch(ctx, "customers:detail:9", time.Minute, fn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidateLists_DropsAllFilterVariants(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, qc.store.Set(ctx, ListKey("orders", nil), []byte("a"), 0))
	require.NoError(t, qc.store.Set(ctx, ListKey("orders", map[string]string{"page": "2"}), []byte("b"), 0))
	require.NoError(t, qc.store.Set(ctx, Key("orders", "detail", "1"), []byte("c"), 0))

	require.NoError(t, qc.InvalidateLists(ctx, "orders"))

	_, err := qc.store.Get(ctx, ListKey("orders", nil))
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
	_, err = qc.store.Get(ctx, ListKey("orders", map[string]string{"page": "2"}))
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	detail, err := qc.store.Get(ctx, Key("orders", "detail", "1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("c"), detail)
}

func TestFetch_ErrorPropagates(t *testing.T) {
	_, qc := newTestCache(t)

	backendErr := errors.New("backend unavailable")
	_, err := qc.Fetch(context.Background(), "orders:list", time.Minute, func(ctx context.Context) ([]byte, error) {
		return nil, backendErr
	})

	assert.ErrorIs(t, err, backendErr)
}

func TestWriteOptimistic_RestoreExactPriorState(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	prior := []byte(`[{"id":1,"name":"Ada"}]`)
	require.NoError(t, qc.store.Set(ctx, "users:list", prior, 0))

	snap, err := qc.WriteOptimistic(ctx, "users:list", []byte(`[{"id":1,"name":"Ada"},{"id":"tmp","name":"Grace"}]`), time.Minute)
	require.NoError(t, err)

	// Optimistic value visible immediately
	data, err := qc.store.Get(ctx, "users:list")
	require.NoError(t, err)
	assert.Contains(t, string(data), "Grace")

	require.NoError(t, qc.Restore(ctx, snap))

	restored, err := qc.store.Get(ctx, "users:list")
	require.NoError(t, err)
	assert.Equal(t, prior, restored, "rollback must be byte-for-byte")
}

func TestWriteOptimistic_RestoreDeletesWhenEntryWasAbsent(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	snap, err := qc.WriteOptimistic(ctx, "users:detail:7", []byte(`{"id":7}`), time.Minute)
	require.NoError(t, err)

	require.NoError(t, qc.Restore(ctx, snap))

	_, err = qc.store.Get(ctx, "users:detail:7")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestRemove_DropsEntries(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, qc.store.Set(ctx, "orders:detail:1", []byte("a"), 0))
	require.NoError(t, qc.store.Set(ctx, "orders:detail:2", []byte("b"), 0))

	require.NoError(t, qc.Remove(ctx, "orders:detail:1", "orders:detail:2"))

	_, err := qc.store.Get(ctx, "orders:detail:1")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
	_, err = qc.store.Get(ctx, "orders:detail:2")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}
