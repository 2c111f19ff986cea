package cache_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aminati-ec/catalog-studio/internal/cache"
	"github.com/aminati-ec/catalog-studio/internal/config"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (cache.Cache, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()
	cfg := &config.CacheConfig{
		DefaultTTL: 10 * time.Minute,
	}

	return cache.NewRedisCache(client, cfg), mock
}

func TestGet(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.DescriptionKeyPrefix, "21765")
	jsonData, err := json.Marshal("上質な素材のTシャツです。")
	require.NoError(t, err)

	t.Run("Success - Key Found", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result string

		mock.ExpectGet(testKey).SetVal(string(jsonData))

		found, err := redisCache.Get(ctx, testKey, &result)

		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "上質な素材のTシャツです。", result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Cache Miss", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result string

		mock.ExpectGet(testKey).SetErr(redis.Nil)

		found, err := redisCache.Get(ctx, testKey, &result)

		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, result)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		redisCache, mock := setup(t)

		var result string

		mock.ExpectGet(testKey).SetErr(assert.AnError)

		found, err := redisCache.Get(ctx, testKey, &result)

		assert.Error(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSet(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.DescriptionKeyPrefix, "21765")
	jsonData, err := json.Marshal("説明文")
	require.NoError(t, err)

	t.Run("Success - Explicit TTL", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectSet(testKey, jsonData, time.Hour).SetVal("OK")

		err := redisCache.Set(ctx, testKey, "説明文", time.Hour)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Zero TTL uses default", func(t *testing.T) {
		redisCache, mock := setup(t)

		mock.ExpectSet(testKey, jsonData, 10*time.Minute).SetVal("OK")

		err := redisCache.Set(ctx, testKey, "説明文", 0)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	ctx := t.Context()
	testKey := cache.Key(cache.DescriptionKeyPrefix, "21765:v2")

	redisCache, mock := setup(t)

	mock.ExpectDel(testKey).SetVal(1)

	err := redisCache.Delete(ctx, testKey)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
