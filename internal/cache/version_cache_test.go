package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/cache"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/config"
	"github.com/yasinhessnawi1/BlogSpace_Backend/internal/models"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.VersionCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewVersionCache(client, ttl), mr
}

func TestVersionCache_SetGet(t *testing.T) {
	vc, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok, err := vc.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	state := models.CredentialsState{Role: models.RoleAdmin, Version: 3}
	require.NoError(t, vc.Set(ctx, 1, state))

	got, ok, err := vc.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, state, got)
}

func TestVersionCache_Expiry(t *testing.T) {
	vc, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, vc.Set(ctx, 7, models.CredentialsState{Role: models.RoleUser, Version: 1}))
	assert.Equal(t, time.Minute, mr.TTL("blogspace:credentials:7"))

	mr.FastForward(2 * time.Minute)

	_, ok, err := vc.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVersionCache_Invalidate(t *testing.T) {
	vc, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, vc.Set(ctx, 2, models.CredentialsState{Role: models.RoleUser, Version: 1}))
	require.NoError(t, vc.Invalidate(ctx, 2))

	_, ok, err := vc.Get(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	// Invalidating a missing key is not an error.
	assert.NoError(t, vc.Invalidate(ctx, 404))
}

func TestVersionCache_CorruptEntryIsMiss(t *testing.T) {
	vc, mr := newTestCache(t, time.Minute)

	require.NoError(t, mr.Set("blogspace:credentials:3", "not json"))

	_, ok, err := vc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVersionCache_UnreachableRedis(t *testing.T) {
	vc, mr := newTestCache(t, time.Minute)
	mr.Close()

	_, _, err := vc.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.Error(t, vc.Ping(context.Background()))
}

func TestNewVersionCache_DefaultTTL(t *testing.T) {
	vc, mr := newTestCache(t, 0)

	require.NoError(t, vc.Set(context.Background(), 1, models.CredentialsState{Role: models.RoleUser, Version: 1}))
	assert.Equal(t, 5*time.Minute, mr.TTL("blogspace:credentials:1"))
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.NewRedisClient(context.Background(), &config.CacheSettings{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	_, err = cache.NewRedisClient(context.Background(), &config.CacheSettings{RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}
