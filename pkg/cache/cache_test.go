package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(symbol string, hash uint64) Key {
	return Key{Symbol: symbol, Timeframe: "1d", AsOf: 1700000000, ContentHash: hash}
}

func TestGetMissAndRoundtrip(t *testing.T) {
	c := NewComputation()
	defer c.Close()
	ctx := context.Background()
	key := testKey("BTC", 1)

	_, err := c.Get(ctx, key)
	require.ErrorIs(t, err, ErrCacheMiss)

	c.Set(ctx, key, "signal", time.Minute)
	v, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "signal", v)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestKeysAreContentSensitive(t *testing.T) {
	c := NewComputation()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, testKey("BTC", 1), "a", time.Minute)
	_, err := c.Get(ctx, testKey("BTC", 2))
	require.ErrorIs(t, err, ErrCacheMiss)
}

func TestTTLExpiry(t *testing.T) {
	c := NewComputation(WithCleanupInterval(time.Hour))
	defer c.Close()
	ctx := context.Background()
	key := testKey("BTC", 1)

	c.Set(ctx, key, "stale", 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, err := c.Get(ctx, key)
	require.ErrorIs(t, err, ErrCacheMiss)
	assert.Equal(t, 0, c.Len(), "expired entry dropped on read")
}

func TestNonPositiveTTLStoresNothing(t *testing.T) {
	c := NewComputation()
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, testKey("BTC", 1), "x", 0)
	assert.Equal(t, 0, c.Len())
}

func TestLRUEviction(t *testing.T) {
	c := NewComputation(WithCapacity(2))
	defer c.Close()
	ctx := context.Background()

	k1, k2, k3 := testKey("A", 1), testKey("B", 2), testKey("C", 3)
	c.Set(ctx, k1, 1, time.Minute)
	time.Sleep(time.Millisecond)
	c.Set(ctx, k2, 2, time.Minute)
	time.Sleep(time.Millisecond)

	// Touch k1 so k2 becomes the least recently used.
	_, err := c.Get(ctx, k1)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)

	c.Set(ctx, k3, 3, time.Minute)

	_, err = c.Get(ctx, k1)
	assert.NoError(t, err, "recently used key survived")
	_, err = c.Get(ctx, k2)
	assert.ErrorIs(t, err, ErrCacheMiss, "LRU key evicted")
	_, err = c.Get(ctx, k3)
	assert.NoError(t, err)
}

func TestGetOrComputeSingleFlight(t *testing.T) {
	c := NewComputation()
	defer c.Close()
	ctx := context.Background()
	key := testKey("BTC", 42)

	var calls atomic.Int32
	producer := func(context.Context) (interface{}, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond)
		return "computed", nil
	}

	const n = 20
	results := make([]interface{}, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.GetOrCompute(ctx, key, time.Minute, producer)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent misses share one computation")
	for _, v := range results {
		assert.Equal(t, "computed", v)
	}
}

func TestGetOrComputeDoesNotCacheErrors(t *testing.T) {
	c := NewComputation()
	defer c.Close()
	ctx := context.Background()
	key := testKey("BTC", 7)

	boom := errors.New("boom")
	var calls atomic.Int32

	_, err := c.GetOrCompute(ctx, key, time.Minute, func(context.Context) (interface{}, error) {
		calls.Add(1)
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, c.Len())

	v, err := c.GetOrCompute(ctx, key, time.Minute, func(context.Context) (interface{}, error) {
		calls.Add(1)
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, int32(2), calls.Load(), "failed producer retried")
}

func TestObserverHooks(t *testing.T) {
	var hits, misses atomic.Int32
	c := NewComputation(WithObserver(
		func() { hits.Add(1) },
		func() { misses.Add(1) },
	))
	defer c.Close()
	ctx := context.Background()
	key := testKey("BTC", 1)

	_, _ = c.Get(ctx, key)
	c.Set(ctx, key, "v", time.Minute)
	_, _ = c.Get(ctx, key)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, int32(1), misses.Load())
}

func TestJanitorSweepsExpired(t *testing.T) {
	c := NewComputation(WithCleanupInterval(10 * time.Millisecond))
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, testKey("BTC", 1), "v", 5*time.Millisecond)
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestKeyString(t *testing.T) {
	k := Key{Symbol: "BTC", Timeframe: "1h", AsOf: 1700000000, ContentHash: 0xdeadbeef}
	assert.Equal(t, "BTC:1h:1700000000:00000000deadbeef", k.String())
}
