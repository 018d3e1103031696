package ports

import (
	"context"
	"testing"
	"time"

	"github.com/carbondash/carbondash/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunQueryCacheContract runs a suite of tests to verify that a QueryCache
// implementation adheres to the defined interface contract.
func RunQueryCacheContract(t *testing.T, cache QueryCache) {
	ctx := context.Background()
	key := "contract-test-key-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		payload := []byte(`{"areas":["Germany","Portugal"]}`)

		err := cache.Save(ctx, key, payload)
		require.NoError(t, err, "Save should not return error")

		loaded, err := cache.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, payload, loaded)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := cache.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		err := cache.Save(ctx, key, []byte("payload"))
		require.NoError(t, err)

		err = cache.Delete(ctx, key)
		require.NoError(t, err, "Delete should not return error")

		_, err = cache.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss, "Load after Delete should return ErrCacheMiss")
	})

	t.Run("Keys", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		require.NoError(t, cache.Save(ctx, k1, []byte("a")))
		require.NoError(t, cache.Save(ctx, k2, []byte("b")))

		defer func() {
			_ = cache.Delete(ctx, k1)
			_ = cache.Delete(ctx, k2)
		}()

		keys, err := cache.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, k1)
		assert.Contains(t, keys, k2)
	})

	t.Run("Flush", func(t *testing.T) {
		require.NoError(t, cache.Save(ctx, key+"-flush", []byte("x")))

		err := cache.Flush(ctx)
		require.NoError(t, err, "Flush should not return error")

		keys, err := cache.Keys(ctx)
		require.NoError(t, err)
		assert.Empty(t, keys, "Keys after Flush should be empty")
	})
}
