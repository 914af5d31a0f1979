package api

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultLimiterMaxKeys = 10000

// attemptLimiter blocks a key after limit failures inside a sliding window.
type attemptLimiter struct {
	limit   int
	window  time.Duration
	maxKeys int

	mu       sync.Mutex
	failures map[string][]time.Time
}

func newAttemptLimiter(limit int, window time.Duration) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		window:   window,
		maxKeys:  defaultLimiterMaxKeys,
		failures: make(map[string][]time.Time),
	}
}

// retryAfter is zero when key may try again, otherwise the time until its
// oldest counted failure leaves the window.
func (limiter *attemptLimiter) retryAfter(key string, now time.Time) time.Duration {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	recent := limiter.expireLocked(key, now)
	if len(recent) < limiter.limit {
		return 0
	}
	return recent[len(recent)-limiter.limit].Add(limiter.window).Sub(now)
}

func (limiter *attemptLimiter) recordFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	recent := limiter.expireLocked(key, now)
	if recent == nil && len(limiter.failures) >= limiter.maxKeys {
		for other := range limiter.failures {
			limiter.expireLocked(other, now)
		}
	}
	limiter.failures[key] = append(recent, now)
}

func (limiter *attemptLimiter) forget(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.failures, key)
}

func (limiter *attemptLimiter) trackedKeys() int {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	return len(limiter.failures)
}

// expireLocked drops failures older than the window and removes empty keys.
func (limiter *attemptLimiter) expireLocked(key string, now time.Time) []time.Time {
	cutoff := now.Add(-limiter.window)
	recent := slices.DeleteFunc(limiter.failures[key], func(at time.Time) bool {
		return !at.After(cutoff)
	})
	if len(recent) == 0 {
		delete(limiter.failures, key)
		return nil
	}
	limiter.failures[key] = recent
	return recent
}

// loginLimiterKey scopes failures to the client address and the attempted
// account, so one noisy client cannot lock out everyone.
func loginLimiterKey(c *fiber.Ctx, email string) string {
	address := strings.TrimSpace(c.IP())
	if address == "" {
		address = "unknown"
	}
	return address + "|" + strings.ToLower(strings.TrimSpace(email))
}
