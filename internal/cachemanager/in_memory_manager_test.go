package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type repoKey string

type entry struct {
	Repo  string
	Files int
}

func newTestCache() *InMemoryCacheManager[repoKey, entry] {
	return NewInMemoryCacheManager[repoKey, entry]("test", DefaultExpiration, DefaultCleanupInterval)
}

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	cache := newTestCache()
	cache.Set(context.Background(), "api@main", entry{Repo: "api", Files: 3}, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "api@main")
	require.True(t, ok)
	require.Equal(t, entry{Repo: "api", Files: 3}, got)
	require.Equal(t, 1, cache.Len())
}

func TestInMemoryCacheManager_Miss(t *testing.T) {
	cache := newTestCache()

	got, ok := cache.Get(context.Background(), "missing")
	require.False(t, ok)
	require.Zero(t, got)
}

func TestInMemoryCacheManager_WrongTypeIsMiss(t *testing.T) {
	cache := newTestCache()
	cache.cache.Set("api", 123, DefaultExpiration)

	_, ok := cache.Get(context.Background(), "api")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := newTestCache()
	cache.Set(context.Background(), "api", entry{Repo: "api"}, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "api")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()

	_, ok := cache.GetWithRefresh(ctx, "api", time.Minute)
	require.False(t, ok)

	cache.Set(ctx, "api", entry{Repo: "api"}, 50*time.Millisecond)
	got, ok := cache.GetWithRefresh(ctx, "api", time.Hour)
	require.True(t, ok)
	require.Equal(t, "api", got.Repo)

	time.Sleep(100 * time.Millisecond)
	_, ok = cache.Get(ctx, "api")
	require.True(t, ok, "refresh extends the expiry")
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()
	cache.Set(ctx, "a", entry{}, DefaultExpiration)
	cache.Set(ctx, "b", entry{}, DefaultExpiration)
	cache.Set(ctx, "c", entry{}, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx))
	require.NoError(t, cache.Delete(ctx, "a", "b"))
	require.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}

func TestInMemoryCacheManager_DeletePrefix(t *testing.T) {
	cache := newTestCache()
	ctx := context.Background()
	cache.Set(ctx, "repo-1@main", entry{}, DefaultExpiration)
	cache.Set(ctx, "repo-1@", entry{}, DefaultExpiration)
	cache.Set(ctx, "repo-2@main", entry{}, DefaultExpiration)

	require.Equal(t, 2, cache.DeletePrefix(ctx, "repo-1@"))
	require.Zero(t, cache.DeletePrefix(ctx, "repo-1@"))

	_, ok := cache.Get(ctx, "repo-2@main")
	require.True(t, ok)
	require.Equal(t, 1, cache.Len())
}
