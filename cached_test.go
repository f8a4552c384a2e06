package hearth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCached_ProducerInvokedOnce(t *testing.T) {
	ctx := context.Background()
	c := newLocalCache(t)

	calls := 0
	popular := Cached(c, func(_ context.Context, limit int) ([]templateView, error) {
		calls++
		return []templateView{{X: limit}}, nil
	}, PopularKey, PopularTTL)

	first, err := popular(ctx, 10)
	require.NoError(t, err)
	second, err := popular(ctx, 10)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Equal(t, first, second)
}

func TestCached_DistinctKeysRecompute(t *testing.T) {
	ctx := context.Background()
	c := newLocalCache(t)

	calls := 0
	popular := Cached(c, func(_ context.Context, limit int) ([]templateView, error) {
		calls++
		return []templateView{{X: limit}}, nil
	}, PopularKey)

	_, err := popular(ctx, 10)
	require.NoError(t, err)
	_, err = popular(ctx, 20)
	require.NoError(t, err)

	require.Equal(t, 2, calls)
}

func TestCached_ErrorsAreNeverStored(t *testing.T) {
	ctx := context.Background()
	c := newLocalCache(t)

	calls := 0
	failing := Cached(c, func(_ context.Context, term string) (templateView, error) {
		calls++
		return templateView{}, errors.New("upstream unavailable")
	}, func(term string) string { return SearchKey(term, 20) }, time.Minute)

	_, err := failing(ctx, "foo")
	require.Error(t, err)
	_, err = failing(ctx, "foo")
	require.Error(t, err)
	require.Equal(t, 2, calls, "a failed result must not be served from the cache")

	var got templateView
	found, err := c.Get(ctx, SearchKey("foo", 20), &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestCached_UsesConfiguredDefaultTTL(t *testing.T) {
	ctx := context.Background()
	c := newLocalCache(t, WithDefaultTTL(40*time.Millisecond))

	calls := 0
	lookup := Cached(c, func(_ context.Context, id string) (templateView, error) {
		calls++
		return templateView{X: 1}, nil
	}, ResourceKey)

	_, err := lookup(ctx, "abc")
	require.NoError(t, err)
	_, err = lookup(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	time.Sleep(60 * time.Millisecond)

	_, err = lookup(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, 2, calls, "expired entries recompute")
}
