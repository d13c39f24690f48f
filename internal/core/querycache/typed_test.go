package querycache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestFetchJSON_RoundTrip(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	calls := 0
	fn := func(ctx context.Context) ([]widget, error) {
		calls++
		return []widget{{ID: 1, Name: "bolt"}}, nil
	}

	got, err := FetchJSON(ctx, qc, "widgets:list", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, []widget{{ID: 1, Name: "bolt"}}, got)

	got, err = FetchJSON(ctx, qc, "widgets:list", time.Minute, fn)
	require.NoError(t, err)
	assert.Equal(t, []widget{{ID: 1, Name: "bolt"}}, got)
	assert.Equal(t, 1, calls)
}

func TestRefetchJSON_BypassesCachedValue(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, qc.store.Set(ctx, "widgets:detail:1", []byte(`{"id":1,"name":"old"}`), 0))

	got, err := RefetchJSON(ctx, qc, "widgets:detail:1", time.Minute, func(ctx context.Context) (widget, error) {
		return widget{ID: 1, Name: "new"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)
}

func TestWriteOptimisticJSON(t *testing.T) {
	_, qc := newTestCache(t)
	ctx := context.Background()

	snap, err := WriteOptimisticJSON(ctx, qc, "widgets:list", []widget{{ID: 99, Name: "predicted"}}, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "widgets:list", snap.Key())

	data, err := qc.store.Get(ctx, "widgets:list")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":99,"name":"predicted"}]`, string(data))
}
