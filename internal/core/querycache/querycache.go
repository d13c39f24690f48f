// Package querycache implements the shared query cache used by all feature
// services. Cached entries are projections of backend state, never the
// source of truth: every mutation must reconcile with the backend through
// invalidation, and optimistic writes must be rolled back exactly on failure.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"stockdesk/internal/core/cache"
	"stockdesk/internal/core/logger"
	"stockdesk/internal/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads fresh data from the backend for a cache miss.
type FetchFunc func(ctx context.Context) ([]byte, error)

// QueryCache coordinates reads and writes against the shared cache.
// It is passed explicitly to every feature service; there is no hidden
// singleton.
type QueryCache struct {
	store cache.Cache
	group singleflight.Group
	rec   *metrics.Recorder
	log   *zap.Logger
}

// New creates a QueryCache over the given cache backend.
func New(store cache.Cache, rec *metrics.Recorder) *QueryCache {
	return &QueryCache{
		store: store,
		rec:   rec,
		log:   logger.Get(),
	}
}

// Key builds a composite cache key: "entity:part1:part2".
func Key(entity string, parts ...string) string {
	if len(parts) == 0 {
		return entity
	}
	return entity + ":" + strings.Join(parts, ":")
}

// ListKey builds a deterministic key for a filtered list query. Filters are
// serialized in sorted order so logically equal filter sets share one entry.
func ListKey(entity string, filters map[string]string) string {
	if len(filters) == 0 {
		return entity + ":list"
	}

	names := make([]string, 0, len(filters))
	for name := range filters {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(entity)
	b.WriteString(":list?")
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(filters[name])
	}
	return b.String()
}

// entityOf extracts the entity segment of a key for metric labels.
func entityOf(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// Fetch returns the cached value for key, or loads it with fn on a miss.
// Concurrent misses for the same key are deduplicated: only one fn call is
// in flight per key and all callers share its result.
func (q *QueryCache) Fetch(ctx context.Context, key string, ttl time.Duration, fn FetchFunc) ([]byte, error) {
	data, err := q.store.Get(ctx, key)
	if err == nil {
		q.rec.ObserveCacheHit(entityOf(key))
		return data, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		return nil, fmt.Errorf("cache read for %s: %w", key, err)
	}

	q.rec.ObserveCacheMiss(entityOf(key))
	return q.load(ctx, key, ttl, fn)
}

// Invalidate marks cached entries stale by removing them. The next Fetch
// for the key goes to the backend. Absent keys are not an error.
func (q *QueryCache) Invalidate(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := q.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("invalidate %s: %w", key, err)
		}
		q.rec.ObserveInvalidation(entityOf(key))
	}
	return nil
}

// InvalidateLists drops every filtered variant of an entity's list cache.
// Mutations call this so no stale page or filter combination survives.
func (q *QueryCache) InvalidateLists(ctx context.Context, entity string) error {
	if err := q.store.DeleteByPrefix(ctx, entity+":list"); err != nil {
		return fmt.Errorf("invalidate %s lists: %w", entity, err)
	}
	q.rec.ObserveInvalidation(entity)
	return nil
}

// InvalidateAndRefetch drops the cached entry and immediately reloads it.
// Overlapping refetches for the same key collapse into a single backend
// call; callers share the result.
func (q *QueryCache) InvalidateAndRefetch(ctx context.Context, key string, ttl time.Duration, fn FetchFunc) ([]byte, error) {
	if err := q.store.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("invalidate %s: %w", key, err)
	}
	q.rec.ObserveInvalidation(entityOf(key))

	return q.load(ctx, key, ttl, fn)
}

// Remove permanently drops cached entries for deleted records. Unlike
// Invalidate this is not a staleness marker: the caller asserts the
// underlying records no longer exist and must never be served from cache.
func (q *QueryCache) Remove(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if err := q.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
		q.rec.ObserveRemoval(entityOf(key))
	}
	return nil
}

// load runs fn under singleflight and stores the result.
func (q *QueryCache) load(ctx context.Context, key string, ttl time.Duration, fn FetchFunc) ([]byte, error) {
	result, err, _ := q.group.Do(key, func() (interface{}, error) {
		data, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if err := q.store.Set(ctx, key, data, ttl); err != nil {
			// Serve the fresh data even if the write-back failed.
			q.log.Warn("cache write-back failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// Snapshot captures the exact prior state of a cache entry so an optimistic
// write can be undone. Restore(snapshot) after WriteOptimistic must leave
// the cache byte-for-byte as it was before.
type Snapshot struct {
	key     string
	value   []byte
	existed bool
	ttl     time.Duration
}

// Key returns the cache key the snapshot belongs to.
func (s Snapshot) Key() string {
	return s.key
}

// WriteOptimistic writes a predicted post-mutation value for key and
// returns a snapshot of whatever it overwrote. The write completes before
// this returns, so callers can start the backend request knowing the
// optimistic state has landed.
func (q *QueryCache) WriteOptimistic(ctx context.Context, key string, value []byte, ttl time.Duration) (Snapshot, error) {
	snap := Snapshot{key: key, ttl: ttl}

	prior, err := q.store.Get(ctx, key)
	switch {
	case err == nil:
		snap.value = make([]byte, len(prior))
		copy(snap.value, prior)
		snap.existed = true
	case errors.Is(err, cache.ErrKeyNotFound):
		// Nothing to capture; Restore will delete the entry.
	default:
		return Snapshot{}, fmt.Errorf("snapshot read for %s: %w", key, err)
	}

	if err := q.store.Set(ctx, key, value, ttl); err != nil {
		return Snapshot{}, fmt.Errorf("optimistic write for %s: %w", key, err)
	}
	q.rec.ObserveOptimisticWrite(entityOf(key))

	return snap, nil
}

// Restore puts the cache entry back exactly as the snapshot captured it:
// the prior bytes if the entry existed, or absence if it did not.
func (q *QueryCache) Restore(ctx context.Context, snap Snapshot) error {
	q.rec.ObserveOptimisticRollback(entityOf(snap.key))

	if !snap.existed {
		if err := q.store.Delete(ctx, snap.key); err != nil {
			return fmt.Errorf("restore delete for %s: %w", snap.key, err)
		}
		return nil
	}
	if err := q.store.Set(ctx, snap.key, snap.value, snap.ttl); err != nil {
		return fmt.Errorf("restore write for %s: %w", snap.key, err)
	}
	return nil
}
