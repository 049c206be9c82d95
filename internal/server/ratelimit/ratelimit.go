// Package ratelimit throttles API clients with per-route token buckets.
package ratelimit

import (
	"sync"
	"time"
)

const (
	defaultIdleTTL         = time.Hour
	defaultCleanupInterval = 5 * time.Minute
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled bool

	// DefaultLimit requests per DefaultWindow apply to routes no rule matches.
	DefaultLimit  int
	DefaultWindow time.Duration

	// Buckets idle for IdleTTL are dropped every CleanupInterval.
	IdleTTL         time.Duration
	CleanupInterval time.Duration

	Allow []string // client IDs that are never limited
	Block []string // client IDs that are always rejected
	Rules []Rule
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	Limit      int // 0 when the request was not metered
	Remaining  int
	ResetAt    time.Time // when the bucket is full again
	RetryAfter time.Duration
}

// bucket is a token bucket that refills continuously at rate tokens per second.
type bucket struct {
	mu       sync.Mutex
	capacity float64
	rate     float64
	tokens   float64
	last     time.Time
}

func newBucket(capacity int, rate float64, now time.Time) *bucket {
	return &bucket{
		capacity: float64(capacity),
		rate:     rate,
		tokens:   float64(capacity),
		last:     now,
	}
}

// take refills the bucket up to now and consumes one token when available.
func (b *bucket) take(now time.Time) (allowed bool, remaining int, resetAt time.Time, retryAfter time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.last); elapsed > 0 {
		b.tokens = min(b.capacity, b.tokens+elapsed.Seconds()*b.rate)
		b.last = now
	}

	if b.tokens >= 1 {
		b.tokens--
		allowed = true
	} else {
		retryAfter = secondsToDuration((1 - b.tokens) / b.rate)
	}

	resetAt = now.Add(secondsToDuration((b.capacity - b.tokens) / b.rate))
	return allowed, int(b.tokens), resetAt, retryAfter
}

func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last.Before(cutoff)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now for refill and expiry calculations.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// Limiter meters requests per client and route.
type Limiter struct {
	cfg      Config
	routes   []route
	fallback route
	allow    map[string]bool
	block    map[string]bool
	now      func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket // client + route pattern -> bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter validates cfg.Rules and returns a limiter. When cfg is enabled it starts a
// goroutine that drops idle buckets until Stop is called.
func NewLimiter(cfg Config, opts ...Option) (*Limiter, error) {
	routes, err := compileRules(cfg.Rules)
	if err != nil {
		return nil, err
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaultCleanupInterval
	}

	l := &Limiter{
		cfg:    cfg,
		routes: routes,
		fallback: route{Rule: Rule{
			Pattern: "*",
			Limit:   cfg.DefaultLimit,
			Window:  cfg.DefaultWindow,
		}},
		allow:   toSet(cfg.Allow),
		block:   toSet(cfg.Block),
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}

	if cfg.Enabled {
		l.stop = make(chan struct{})
		go l.cleanupLoop(cfg.CleanupInterval)
	}
	return l, nil
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// Allow meters one request from clientID to method and path. Requests to the same rule share a
// bucket, so /jobs/a/rank and /jobs/b/rank draw from one budget.
func (l *Limiter) Allow(clientID, method, path string) Decision {
	if !l.cfg.Enabled || l.allow[clientID] {
		return Decision{Allowed: true}
	}
	if l.block[clientID] {
		return Decision{Allowed: false}
	}

	rt := match(l.routes, method, path)
	if rt == nil {
		rt = &l.fallback
	}
	if rt.Limit <= 0 || rt.Window <= 0 {
		return Decision{Allowed: true}
	}

	now := l.now()
	b := l.bucketFor(clientID+" "+rt.Pattern, rt.Rule, now)
	allowed, remaining, resetAt, retryAfter := b.take(now)
	return Decision{
		Allowed:    allowed,
		Limit:      rt.Limit,
		Remaining:  remaining,
		ResetAt:    resetAt,
		RetryAfter: retryAfter,
	}
}

func (l *Limiter) bucketFor(key string, rule Rule, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.buckets[key]; ok {
		return b
	}
	capacity := rule.Burst
	if capacity <= 0 {
		capacity = rule.Limit
	}
	b := newBucket(capacity, float64(rule.Limit)/rule.Window.Seconds(), now)
	l.buckets[key] = b
	return b
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops buckets that have not been used for IdleTTL and returns how many it removed.
func (l *Limiter) sweep() int {
	cutoff := l.now().Add(-l.cfg.IdleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, b := range l.buckets {
		if b.idleSince(cutoff) {
			delete(l.buckets, key)
			removed++
		}
	}
	return removed
}

// size returns the number of live buckets.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the cleanup goroutine. It is safe to call more than once and on a nil Limiter.
func (l *Limiter) Stop() {
	if l == nil {
		return
	}
	l.stopOnce.Do(func() {
		if l.stop != nil {
			close(l.stop)
		}
	})
}
