package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const userRateLimitPrefix = "ratelimit:user:"

// RateLimiter enforces a per-user fixed window over Redis. Counters live
// in one-minute windows keyed by user id; every authenticated user gets
// the same allowance.
type RateLimiter struct {
	client            *Client
	requestsPerMinute int
	burst             int
}

// Decision is the outcome of one rate-limit check
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *Client, requestsPerMinute, burst int) *RateLimiter {
	return &RateLimiter{
		client:            client,
		requestsPerMinute: requestsPerMinute,
		burst:             burst,
	}
}

// userRateKey builds the counter key for one user's current window
func userRateKey(userID uuid.UUID) string {
	return userRateLimitPrefix + userID.String()
}

// allowance is the per-window ceiling, steady rate plus burst headroom
func (r *RateLimiter) allowance() int64 {
	return int64(r.requestsPerMinute + r.burst)
}

// remainingAllowance clamps the leftover window budget at zero
func remainingAllowance(count, limit int64) int {
	if count >= limit {
		return 0
	}
	return int(limit - count)
}

// Allow counts one request for the user and reports the decision. The
// counter and its expiry are set in a single pipeline so an abandoned key
// cannot linger past its window.
func (r *RateLimiter) Allow(ctx context.Context, userID uuid.UUID) (Decision, error) {
	key := userRateKey(userID)
	resetAt := time.Now().Truncate(time.Minute).Add(time.Minute)

	pipe := r.client.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, time.Minute)

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return Decision{}, fmt.Errorf("failed to count request: %w", err)
	}

	count := incr.Val()
	limit := r.allowance()

	return Decision{
		Allowed:   count <= limit,
		Remaining: remainingAllowance(count, limit),
		ResetAt:   resetAt,
	}, nil
}

// Reset clears the user's current window
func (r *RateLimiter) Reset(ctx context.Context, userID uuid.UUID) error {
	return r.client.rdb.Del(ctx, userRateKey(userID)).Err()
}
