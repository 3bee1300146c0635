package ratelimit

import (
	"sync"
	"time"
)

// DefaultWindow is the fixed window length shared by every endpoint limiter.
const DefaultWindow = 60 * time.Second

// Limiter bounds how many requests a single client key may issue per window.
type Limiter interface {
	Allow(key string) bool
}

type entry struct {
	count   int
	resetAt time.Time
}

// FixedWindow is an in-memory fixed-window counter. It is best-effort,
// single-instance protection: each process keeps its own counters, so with N
// replicas the effective global limit is limit*N. A sweep goroutine removes
// expired entries once per window to bound memory growth from one-off clients.
type FixedWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]*entry

	now  func() time.Time
	stop chan struct{}
}

// NewFixedWindow creates a limiter allowing limit requests per window per key
// and starts its background sweep.
func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	fw := newFixedWindow(limit, window)
	go fw.sweepLoop()
	return fw
}

func newFixedWindow(limit int, window time.Duration) *FixedWindow {
	if window <= 0 {
		window = DefaultWindow
	}
	return &FixedWindow{
		limit:   limit,
		window:  window,
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
}

// Allow reports whether the key may issue another request in the current
// window. A rejected request does not increment the counter further.
func (fw *FixedWindow) Allow(key string) bool {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	e, ok := fw.entries[key]
	if !ok || now.After(e.resetAt) {
		fw.entries[key] = &entry{count: 1, resetAt: now.Add(fw.window)}
		return true
	}
	if e.count >= fw.limit {
		return false
	}
	e.count++
	return true
}

// Stop terminates the sweep goroutine.
func (fw *FixedWindow) Stop() {
	close(fw.stop)
}

func (fw *FixedWindow) sweepLoop() {
	ticker := time.NewTicker(fw.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fw.sweep()
		case <-fw.stop:
			return
		}
	}
}

func (fw *FixedWindow) sweep() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	now := fw.now()
	for key, e := range fw.entries {
		if now.After(e.resetAt) {
			delete(fw.entries, key)
		}
	}
}

func (fw *FixedWindow) size() int {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return len(fw.entries)
}
