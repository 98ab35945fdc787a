//go:build integration

package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func startRedisClient(t *testing.T) *RedisClient {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := NewRedisClient(RedisConfig{
		Addr: strings.TrimPrefix(endpoint, "redis://"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisClientRoundTrip(t *testing.T) {
	client := startRedisClient(t)
	ctx := context.Background()

	key := CacheKey("g", "gen-1", "ctx", "best midfielders")
	require.NoError(t, client.Set(ctx, key, []byte(`{"intent":"filtered_stat"}`), time.Minute))

	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"intent":"filtered_stat"}`, string(got))

	require.NoError(t, client.Delete(ctx, key))
	_, err = client.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisClientDeleteByGeneration(t *testing.T) {
	client := startRedisClient(t)
	ctx := context.Background()

	old := GenerationCacheKey("gen-1", "ctx", "q1")
	current := GenerationCacheKey("gen-2", "ctx", "q1")
	require.NoError(t, client.Set(ctx, old, []byte("a"), time.Minute))
	require.NoError(t, client.Set(ctx, current, []byte("b"), time.Minute))

	require.NoError(t, client.DeleteByPrefix(ctx, CacheKey("g", "gen-1")))

	_, err := client.Get(ctx, old)
	assert.ErrorIs(t, err, ErrCacheMiss)

	got, err := client.Get(ctx, current)
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

func TestRedisClientExpiry(t *testing.T) {
	client := startRedisClient(t)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "short", []byte("v"), time.Second))
	time.Sleep(1500 * time.Millisecond)

	_, err := client.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
