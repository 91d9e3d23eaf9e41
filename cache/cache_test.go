package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCache(t *testing.T) {
	cache, err := New[string](func(value string) int64 {
		return int64(len(value))
	}, "Test Cache")

	require.NoError(t, err)
	assert.NotNil(t, cache)
	defer cache.Close()

	testValue := "test string"
	cache.Set("test-key", testValue, int64(len(testValue)))
	cache.Wait()

	value, found := cache.Get("test-key")
	require.True(t, found, "Expected to find cached value")
	assert.Equal(t, testValue, value)
}

func TestCacheWithSlice(t *testing.T) {
	type car struct{ ID int }
	cache, err := New[[]car](func(value []car) int64 {
		return int64(len(value))
	}, "Slice Cache")
	require.NoError(t, err)
	defer cache.Close()

	cache.Set("cars", []car{{1}, {2}}, 0)
	cache.Wait()

	value, found := cache.Get("cars")
	require.True(t, found)
	assert.Equal(t, []car{{1}, {2}}, value)
}

func TestCacheDelAndClear(t *testing.T) {
	cache, err := New[string](func(value string) int64 { return 1 }, "Del Cache")
	require.NoError(t, err)
	defer cache.Close()

	cache.Set("a", "1", 1)
	cache.Set("b", "2", 1)
	cache.Wait()

	cache.Del("a")
	_, found := cache.Get("a")
	assert.False(t, found)
	_, found = cache.Get("b")
	assert.True(t, found)

	cache.Clear()
	_, found = cache.Get("b")
	assert.False(t, found)
}

func TestCacheTTL(t *testing.T) {
	cache, err := New[string](func(value string) int64 { return 1 }, "TTL Cache")
	require.NoError(t, err)
	defer cache.Close()

	cache.SetWithTTL("short", "v", 1, 50*time.Millisecond)
	cache.Wait()
	_, found := cache.Get("short")
	assert.True(t, found)

	time.Sleep(100 * time.Millisecond)
	_, found = cache.Get("short")
	assert.False(t, found)
}

func TestCacheStats(t *testing.T) {
	cache, err := New[string](func(value string) int64 {
		return int64(len(value))
	}, "Test Cache")
	require.NoError(t, err)
	defer cache.Close()

	testValue := "test string"
	cache.Set("key1", testValue, int64(len(testValue)))
	cache.Set("key2", testValue, int64(len(testValue)))
	cache.Wait()

	cache.Get("key1") // Hit
	cache.Get("key2") // Hit
	cache.Get("key3") // Miss

	stats := cache.Stats()

	expectedKeys := []string{
		"cache_type", "hits", "misses", "sets", "total_requests",
		"hit_rate", "memory_used", "sets_rejected", "current_items",
	}
	for _, key := range expectedKeys {
		assert.Contains(t, stats, key, "Expected key %s in stats", key)
	}

	assert.Equal(t, "Test Cache", stats["cache_type"])
	assert.Equal(t, uint64(2), stats["hits"])
	assert.Equal(t, uint64(1), stats["misses"])

	hitRate := stats["hit_rate"].(float64)
	assert.InDelta(t, 66.67, hitRate, 0.01)
}

func TestCacheStatsEmptyCache(t *testing.T) {
	cache, err := New[string](func(value string) int64 {
		return int64(len(value))
	}, "Empty Cache")
	require.NoError(t, err)
	defer cache.Close()

	stats := cache.Stats()

	assert.Equal(t, "Empty Cache", stats["cache_type"])
	assert.Equal(t, uint64(0), stats["hits"])
	assert.Equal(t, uint64(0), stats["misses"])
	assert.Equal(t, uint64(0), stats["total_requests"])
	assert.Equal(t, 0.0, stats["hit_rate"])
	assert.Equal(t, int64(0), stats["current_items"])
}

func BenchmarkCacheStats(b *testing.B) {
	cache, err := New[string](func(value string) int64 {
		return int64(len(value))
	}, "Benchmark Cache")
	if err != nil {
		b.Fatal(err)
	}
	defer cache.Close()

	testValue := "test string"
	for i := 0; i < 100; i++ {
		cache.Set(fmt.Sprintf("key%d", i), testValue, int64(len(testValue)))
	}
	cache.Wait()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if stats := cache.Stats(); stats == nil {
			b.Fatal("Stats is nil")
		}
	}
}
