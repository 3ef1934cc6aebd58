// Package ratelimit provides per-client rate limiting using a token bucket.
// Recommendation requests fan out to the embedding provider and vector store,
// so they get much tighter limits than cheap reads.
package ratelimit

import (
	"sync"
	"time"
)

// Info describes the rate limit state returned with each decision.
type Info struct {
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// bucket is a token bucket refilled at a steady rate.
type bucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newBucket(capacity int, window time.Duration) *bucket {
	return &bucket{
		capacity:   capacity,
		refillRate: float64(capacity) / window.Seconds(),
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (b *bucket) allow() (bool, Info) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	b.tokens += now.Sub(b.lastRefill).Seconds() * b.refillRate
	if b.tokens > float64(b.capacity) {
		b.tokens = float64(b.capacity)
	}
	b.lastRefill = now

	info := Info{Limit: b.capacity}
	if b.tokens >= 1.0 {
		b.tokens--
		info.Remaining = int(b.tokens)
		info.ResetTime = now.Add(b.timeToFull())
		return true, info
	}

	wait := time.Duration((1.0 - b.tokens) / b.refillRate * float64(time.Second))
	info.Remaining = 0
	info.RetryAfter = wait
	info.ResetTime = now.Add(wait)
	return false, info
}

func (b *bucket) timeToFull() time.Duration {
	missing := float64(b.capacity) - b.tokens
	if missing <= 0 {
		return 0
	}
	return time.Duration(missing / b.refillRate * float64(time.Second))
}

// Limiter tracks one bucket per client and endpoint tier.
type Limiter struct {
	cfg     *Config
	buckets map[string]*bucket
	lastUse map[string]time.Time
	mu      sync.Mutex
	done    chan struct{}
}

// NewLimiter creates a limiter and starts the idle-bucket cleanup loop.
func NewLimiter(cfg *Config) *Limiter {
	l := &Limiter{
		cfg:     cfg,
		buckets: make(map[string]*bucket),
		lastUse: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	if cfg.Enabled {
		go l.cleanupLoop()
	}
	return l
}

// Allow reports whether the client may perform the request.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.cfg.Enabled {
		return true, Info{}
	}
	if l.cfg.isWhitelisted(clientID) {
		return true, Info{}
	}
	if l.cfg.isBlacklisted(clientID) {
		return false, Info{RetryAfter: time.Hour}
	}

	ec := l.cfg.endpointConfig(path, method)
	key := clientID + "|" + ec.Path + "|" + ec.Method

	l.mu.Lock()
	b, ok := l.buckets[key]
	if !ok {
		b = newBucket(ec.Limit, ec.Window)
		l.buckets[key] = b
	}
	l.lastUse[key] = time.Now()
	l.mu.Unlock()

	return b.allow()
}

// Stop terminates the cleanup goroutine.
func (l *Limiter) Stop() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

// cleanup drops buckets idle for more than two cleanup intervals.
func (l *Limiter) cleanup() {
	cutoff := time.Now().Add(-2 * l.cfg.CleanupInterval)
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, last := range l.lastUse {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastUse, key)
		}
	}
}
