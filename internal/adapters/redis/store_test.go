package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/carbondash/carbondash/internal/adapters/redis"
	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/carbondash/carbondash/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, opts ...redis.Option) (*miniredis.Miniredis, *redis.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	return mr, redis.NewFromClient(client, opts...)
}

func TestRedisStore_Contract(t *testing.T) {
	_, store := setupStore(t)
	ports.RunQueryCacheContract(t, store)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	mr, store := setupStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "series:Germany", []byte("payload")))

	// Before expiry the entry is present.
	_, err := store.Load(ctx, "series:Germany")
	require.NoError(t, err)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "series:Germany")

	// After the TTL the value is gone.
	mr.FastForward(2 * time.Minute)

	_, err = store.Load(ctx, "series:Germany")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisStore_KeysPrunesExpiredIndexEntries(t *testing.T) {
	mr, store := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "live", []byte("v")))

	// Seed a stale index member whose entry expired long ago.
	_, err := mr.ZAdd("carbondash:query:index", 1.0, "stale")
	require.NoError(t, err)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Contains(t, keys, "live")
	assert.NotContains(t, keys, "stale")
}

func TestRedisStore_CustomPrefix(t *testing.T) {
	mr, store := setupStore(t, redis.WithPrefix("myapp:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "k", []byte("v")))
	assert.True(t, mr.Exists("myapp:k"))
}
