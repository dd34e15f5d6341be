package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"uretimtrack/internal/core/apperror"
)

// RateLimiter is a sliding-window request limiter. One instance is
// created per limit class at startup and shared across requests, so
// its lifetime matches the router that owns it.
type RateLimiter struct {
	mu       sync.Mutex
	limit    int
	window   time.Duration
	hits     map[string][]time.Time
	lastScan time.Time
	now      func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window
// for each client key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records a hit for key and reports whether it is within the
// limit. When the limit is exceeded it returns the seconds until the
// oldest hit leaves the window.
func (l *RateLimiter) Allow(key string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	recent := prune(l.hits[key], cutoff)

	if len(recent) >= l.limit {
		l.hits[key] = recent
		retryAfter := int(recent[0].Sub(cutoff).Seconds()) + 1
		return false, retryAfter
	}

	l.hits[key] = append(recent, now)

	// Occasionally drop keys that went idle so the map does not grow
	// with every client ever seen.
	if now.Sub(l.lastScan) > l.window {
		l.lastScan = now
		for k, times := range l.hits {
			if kept := prune(times, cutoff); len(kept) == 0 {
				delete(l.hits, k)
			} else {
				l.hits[k] = kept
			}
		}
	}

	return true, 0
}

func prune(times []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(times) && !times[i].After(cutoff) {
		i++
	}
	return times[i:]
}

// RateLimit rejects requests exceeding the limiter's quota with 429
// and a Retry-After hint. Clients are keyed by IP.
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := l.Allow(c.ClientIP())
		if !ok {
			_ = c.Error(apperror.NewRateLimited(retryAfter))
			c.Abort()
			return
		}
		c.Next()
	}
}
