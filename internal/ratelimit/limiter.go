package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// sweepThreshold bounds map growth under spoofed-IP traffic: once the store
// holds more keys than this, expired entries are removed opportunistically on
// the next consume instead of via a background timer.
const sweepThreshold = 1000

// Limiter is a fixed-window request counter keyed by caller-derived strings.
// Windows reset at discrete boundaries, so bursty admission exactly at a
// boundary is possible; that is the accepted cost of the simpler algorithm.
type Limiter struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

// Result reports the admission decision for one request.
type Result struct {
	Allowed bool
	// RetryAfterSeconds is how long the caller should wait before retrying.
	// Only set on denial, always at least 1.
	RetryAfterSeconds int
}

// NewLimiter creates a limiter over the given store.
func NewLimiter(store Store) *Limiter {
	return &Limiter{
		store: store,
		now:   time.Now,
	}
}

// Key derives the limiter key for a client IP. Unresolved IPs all share the
// "unknown" bucket, so such traffic is throttled as a single conservative
// quota rather than bypassing the limiter.
func Key(ip string) string {
	if ip == "" {
		ip = "unknown"
	}
	return "contact:" + strings.ToLower(ip)
}

// Consume records one request against key and reports whether it is admitted
// under maxRequests per window. The whole check-and-increment runs under the
// limiter mutex so two concurrent requests cannot both slip under the limit.
func (l *Limiter) Consume(key string, maxRequests int, window time.Duration) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, ok := l.store.Get(key)
	if !ok || !now.Before(entry.ResetAt) {
		// Expired windows are replaced, never incremented.
		l.store.Set(key, Entry{Count: 1, ResetAt: now.Add(window)})
		l.sweep(now)
		return Result{Allowed: true}
	}

	if entry.Count >= maxRequests {
		retryAfter := int((entry.ResetAt.Sub(now) + time.Second - 1) / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		return Result{Allowed: false, RetryAfterSeconds: retryAfter}
	}

	entry.Count++
	l.store.Set(key, entry)
	l.sweep(now)
	return Result{Allowed: true}
}

// sweep removes expired entries once the store grows past the threshold.
// Best-effort cleanup, not a precise TTL cache. Caller holds the mutex.
func (l *Limiter) sweep(now time.Time) {
	if l.store.Len() <= sweepThreshold {
		return
	}

	var expired []string
	l.store.Range(func(key string, entry Entry) bool {
		if !now.Before(entry.ResetAt) {
			expired = append(expired, key)
		}
		return true
	})
	for _, key := range expired {
		l.store.Delete(key)
	}
}
