package cache

import "time"

type config struct {
	capacity        int
	cleanupInterval time.Duration
	onHit           func()
	onMiss          func()
}

func defaultConfig() *config {
	return &config{
		capacity:        1024,
		cleanupInterval: time.Minute,
	}
}

// Option customizes a Computation cache.
type Option func(*config)

// WithCapacity bounds the number of entries before LRU eviction kicks in.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithCleanupInterval sets how often the janitor sweeps expired entries.
func WithCleanupInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.cleanupInterval = d
		}
	}
}

// WithObserver registers hooks fired on every hit and miss, e.g. to feed
// metrics counters. Either may be nil.
func WithObserver(onHit, onMiss func()) Option {
	return func(c *config) {
		c.onHit = onHit
		c.onMiss = onMiss
	}
}
