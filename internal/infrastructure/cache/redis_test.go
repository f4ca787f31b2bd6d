package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cinetrip-backend/internal/infrastructure/cache"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

type movieMeta struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

func TestRedisCache_SetGet(t *testing.T) {
	mr, client := newTestClient(t)
	c := cache.NewRedisCache(client)
	ctx := context.Background()

	var got movieMeta
	found, err := c.Get(ctx, "movie:meta:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "movie:meta:1", movieMeta{Title: "Parasite", Year: 2019}, time.Hour))

	found, err = c.Get(ctx, "movie:meta:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, movieMeta{Title: "Parasite", Year: 2019}, got)

	mr.FastForward(2 * time.Hour)
	found, err = c.Get(ctx, "movie:meta:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_DeletePattern(t *testing.T) {
	mr, client := newTestClient(t)
	c := cache.NewRedisCache(client)
	ctx := context.Background()

	for _, k := range []string{"movie:meta:1", "movie:meta:2", "other:1"} {
		require.NoError(t, c.Set(ctx, k, 1, 0))
	}

	require.NoError(t, c.DeletePattern(ctx, "movie:meta:*"))

	assert.False(t, mr.Exists("movie:meta:1"))
	assert.False(t, mr.Exists("movie:meta:2"))
	assert.True(t, mr.Exists("other:1"))
}

func TestRedisCache_Counters(t *testing.T) {
	_, client := newTestClient(t)
	c := cache.NewRedisCache(client)
	ctx := context.Background()

	n, err := c.Increment(ctx, "hits")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, c.Expire(ctx, "hits", time.Minute))
	ttl, err := c.TTL(ctx, "hits")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	ok, err := c.Exists(ctx, "hits")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, c.Delete(ctx, "hits"))
	ok, err = c.Exists(ctx, "hits")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLocker(t *testing.T) {
	mr, client := newTestClient(t)
	l := cache.NewRedisLocker(client)
	ctx := context.Background()

	token, ok, err := l.TryLock(ctx, "scene:lock:1", 30*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = l.TryLock(ctx, "scene:lock:1", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must be refused")

	// a foreign token does not release the lock
	require.NoError(t, l.Unlock(ctx, "scene:lock:1", "not-the-owner"))
	assert.True(t, mr.Exists("scene:lock:1"))

	require.NoError(t, l.Unlock(ctx, "scene:lock:1", token))
	assert.False(t, mr.Exists("scene:lock:1"))

	_, ok, err = l.TryLock(ctx, "scene:lock:1", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLocker_Expires(t *testing.T) {
	mr, client := newTestClient(t)
	l := cache.NewRedisLocker(client)
	ctx := context.Background()

	_, ok, err := l.TryLock(ctx, "scene:lock:2", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	_, ok, err = l.TryLock(ctx, "scene:lock:2", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}
