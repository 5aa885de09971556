package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewWithClient(client), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "acc-1:k", []byte(`{"a":1}`), time.Minute))

	got, err := cache.Get(ctx, "acc-1:k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
	assert.True(t, mr.Exists(keyPrefix+"acc-1:k"))

	mr.FastForward(2 * time.Minute)

	got, err = cache.Get(ctx, "acc-1:k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_MissAndNonPositiveTTL(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	got, err := cache.Get(ctx, "inexistente")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	assert.False(t, mr.Exists(keyPrefix+"k"))
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(context.Background(), "://sem-esquema")
	assert.Error(t, err)
}
