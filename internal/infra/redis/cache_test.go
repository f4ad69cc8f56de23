package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "vds"), mr
}

func TestCache_SetGet(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "trending:all:10", []byte(`[{"id":"v1"}]`), time.Minute))

	data, err := cache.Get(ctx, "trending:all:10")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"v1"}]`), data)
}

func TestCache_Get_Missing(t *testing.T) {
	cache, _ := newTestCache(t)

	data, err := cache.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Get_Expired(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "k"))

	data, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, data)

	assert.NoError(t, cache.Delete(ctx, "k"), "deleting a missing key is a no-op")
}

func TestCache_Clear_PrefixScoped(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, cache.Clear(ctx))

	data, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, data)

	got, err := mr.Get("other:key")
	require.NoError(t, err)
	assert.Equal(t, "keep", got, "keys outside the prefix survive")
}
