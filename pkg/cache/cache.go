package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrCacheMiss is returned by Get when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: miss")

// Key identifies one computation. ContentHash covers the input payload, so
// two requests for the same symbol and instant but different candles never
// collide.
type Key struct {
	Symbol      string
	Timeframe   string
	AsOf        int64 // unix seconds of the last input point
	ContentHash uint64
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d:%016x", k.Symbol, k.Timeframe, k.AsOf, k.ContentHash)
}

type item struct {
	value    interface{}
	expireAt time.Time
}

func (it *item) expired(now time.Time) bool {
	return now.After(it.expireAt)
}

// Computation is an in-memory TTL cache for evaluation results with LRU
// eviction and single-flight computation: concurrent callers asking for the
// same absent key share one producer run.
type Computation struct {
	mu       sync.Mutex
	data     map[Key]*item
	access   map[Key]time.Time
	capacity int

	flight singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	onHit  func()
	onMiss func()

	cleanupTicker *time.Ticker
	done          chan struct{}
}

// NewComputation creates the cache and starts its expiry janitor.
func NewComputation(opts ...Option) *Computation {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Computation{
		data:          make(map[Key]*item),
		access:        make(map[Key]time.Time),
		capacity:      cfg.capacity,
		onHit:         cfg.onHit,
		onMiss:        cfg.onMiss,
		cleanupTicker: time.NewTicker(cfg.cleanupInterval),
		done:          make(chan struct{}),
	}

	go c.cleanupExpired()
	return c
}

// Get returns the cached value for key or ErrCacheMiss.
func (c *Computation) Get(_ context.Context, key Key) (interface{}, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.data[key]
	if !ok || it.expired(time.Now()) {
		if ok {
			delete(c.data, key)
			delete(c.access, key)
		}
		c.misses.Add(1)
		if c.onMiss != nil {
			c.onMiss()
		}
		return nil, ErrCacheMiss
	}

	c.access[key] = time.Now()
	c.hits.Add(1)
	if c.onHit != nil {
		c.onHit()
	}
	return it.value, nil
}

// Set stores value under key for ttl. A non-positive ttl stores nothing.
func (c *Computation) Set(_ context.Context, key Key, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; !exists && len(c.data) >= c.capacity {
		c.evictLRU()
	}

	now := time.Now()
	c.data[key] = &item{value: value, expireAt: now.Add(ttl)}
	c.access[key] = now
}

// GetOrCompute returns the cached value for key, running producer on a miss.
// Concurrent misses on the same key collapse into a single producer call and
// all callers receive its result. Producer errors are not cached.
func (c *Computation) GetOrCompute(ctx context.Context, key Key, ttl time.Duration, producer func(context.Context) (interface{}, error)) (interface{}, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := c.flight.Do(key.String(), func() (interface{}, error) {
		// Re-check: another flight may have filled the key between the
		// miss and acquiring the flight slot.
		if v, err := c.Get(ctx, key); err == nil {
			return v, nil
		}
		v, err := producer(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(ctx, key, v, ttl)
		return v, nil
	})
	return v, err
}

// Delete removes keys regardless of expiry.
func (c *Computation) Delete(_ context.Context, keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		delete(c.data, key)
		delete(c.access, key)
	}
}

// Len reports the number of stored entries, expired or not.
func (c *Computation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// Stats returns cumulative hit and miss counts.
func (c *Computation) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// evictLRU drops the least recently accessed entry. Caller holds mu.
func (c *Computation) evictLRU() {
	if len(c.data) == 0 {
		return
	}

	var oldestKey Key
	oldestTime := time.Now()
	found := false

	for key, accessTime := range c.access {
		if !found || accessTime.Before(oldestTime) {
			oldestTime = accessTime
			oldestKey = key
			found = true
		}
	}

	if found {
		delete(c.data, oldestKey)
		delete(c.access, oldestKey)
	}
}

func (c *Computation) cleanupExpired() {
	for {
		select {
		case <-c.done:
			return
		case <-c.cleanupTicker.C:
			c.mu.Lock()
			now := time.Now()
			for key, it := range c.data {
				if it.expired(now) {
					delete(c.data, key)
					delete(c.access, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Close stops the janitor. The cache remains usable but stops expiring in
// the background.
func (c *Computation) Close() error {
	c.cleanupTicker.Stop()
	close(c.done)
	return nil
}
