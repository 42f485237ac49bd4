package collector

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RateLimiter spaces out calls to external APIs
type RateLimiter interface {
	Wait(ctx context.Context) error
	CheckLimit() (remaining int, resetTime time.Time, err error)
	UpdateLimit(remaining int, resetTime time.Time)
}

// intervalRateLimiter enforces a minimum delay between calls and, once the
// server reports the quota nearly spent, waits for the reset.
type intervalRateLimiter struct {
	mu        sync.Mutex
	remaining int
	resetTime time.Time
	minDelay  time.Duration
	lastCall  time.Time
	logger    *zap.Logger
}

// NewRateLimiter creates a rate limiter with the given minimum interval.
// An interval of zero disables the delay.
func NewRateLimiter(interval time.Duration, logger *zap.Logger) RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &intervalRateLimiter{
		remaining: 60, // unauthenticated GitHub API limit
		resetTime: time.Now().Add(time.Hour),
		minDelay:  interval,
		logger:    logger,
	}
}

// Wait waits until it's safe to make another API call
func (r *intervalRateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.remaining <= 1 {
		waitDuration := time.Until(r.resetTime)
		if waitDuration > 0 {
			r.logger.Info("Rate limit exhausted, waiting for reset",
				zap.Int("remaining", r.remaining),
				zap.Duration("wait", waitDuration.Round(time.Second)))
			if err := r.sleep(ctx, waitDuration); err != nil {
				return err
			}
		}
		// Optimistic until the next response says otherwise
		r.remaining = 60
		r.resetTime = time.Now().Add(time.Hour)
	}

	if !r.lastCall.IsZero() {
		if elapsed := time.Since(r.lastCall); elapsed < r.minDelay {
			if err := r.sleep(ctx, r.minDelay-elapsed); err != nil {
				return err
			}
		}
	}

	r.lastCall = time.Now()
	return nil
}

// sleep releases the lock while waiting. Callers hold r.mu.
func (r *intervalRateLimiter) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Unlock()
	defer r.mu.Lock()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CheckLimit returns the current rate limit status
func (r *intervalRateLimiter) CheckLimit() (remaining int, resetTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.resetTime, nil
}

// UpdateLimit updates the rate limit from API response headers
func (r *intervalRateLimiter) UpdateLimit(remaining int, resetTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = remaining
	r.resetTime = resetTime
}
