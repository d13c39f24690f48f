package querycache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// FetchJSON is a typed wrapper around QueryCache.Fetch: fn produces the
// value, the cache stores its JSON encoding.
func FetchJSON[T any](ctx context.Context, q *QueryCache, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	data, err := q.Fetch(ctx, key, ttl, marshalFetch(fn))
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return out, nil
}

// RefetchJSON is the typed counterpart of InvalidateAndRefetch.
func RefetchJSON[T any](ctx context.Context, q *QueryCache, key string, ttl time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	data, err := q.InvalidateAndRefetch(ctx, key, ttl, marshalFetch(fn))
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("decode refetched %s: %w", key, err)
	}
	return out, nil
}

// WriteOptimisticJSON encodes value and writes it as the predicted
// post-mutation state for key.
func WriteOptimisticJSON[T any](ctx context.Context, q *QueryCache, key string, value T, ttl time.Duration) (Snapshot, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode optimistic %s: %w", key, err)
	}
	return q.WriteOptimistic(ctx, key, data, ttl)
}

func marshalFetch[T any](fn func(ctx context.Context) (T, error)) FetchFunc {
	return func(ctx context.Context) ([]byte, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode fetched value: %w", err)
		}
		return data, nil
	}
}
