package ratelimit

import (
	"log"
	"time"

	"github.com/mnasmart/onlinemart/internal/pkg/cache"
)

// RedisFixedWindow shares one counter per key across all process instances
// via the cache server. Use it where the configured limit must hold globally
// rather than per replica. Expiry replaces the in-memory sweep: counter keys
// live exactly one window.
type RedisFixedWindow struct {
	limit  int
	window time.Duration
	prefix string
}

// NewRedisFixedWindow creates a shared limiter. The prefix keeps counters of
// different endpoints apart.
func NewRedisFixedWindow(limit int, window time.Duration, prefix string) *RedisFixedWindow {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisFixedWindow{limit: limit, window: window, prefix: prefix}
}

// Allow increments the shared counter for the key. When the cache server is
// unreachable the request is allowed; the limiter is an abuse guard, not an
// availability dependency.
func (rl *RedisFixedWindow) Allow(key string) bool {
	count, err := cache.IncrWindow(rl.prefix+":"+key, rl.window)
	if err != nil {
		log.Printf("rate limit counter unavailable, allowing request: %v", err)
		return true
	}
	return count <= int64(rl.limit)
}
