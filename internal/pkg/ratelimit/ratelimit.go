// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter throttles dispatch requests per artisan so a single merchant
// cannot flood the outbound WhatsApp channel.
type Limiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewLimiter(client *redis.Client, max int64, window time.Duration) *Limiter {
	return &Limiter{client: client, max: max, window: window}
}

// AllowDispatch checks whether another dispatch is allowed for the
// artisan within the current window and returns the remaining budget.
func (l *Limiter) AllowDispatch(ctx context.Context, artisanID string) (bool, int64, error) {
	key := fmt.Sprintf("ratelimit:dispatch:%s", artisanID)

	// INCR and EXPIRE run in one pipeline; ExpireNX arms the window on
	// the first increment and re-arms a key that lost its expiry.
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to increment dispatch counter: %w", err)
	}

	count := incr.Val()
	remaining := l.max - count
	if remaining < 0 {
		remaining = 0
	}

	return count <= l.max, remaining, nil
}

// Reset clears the dispatch counter for an artisan.
func (l *Limiter) Reset(ctx context.Context, artisanID string) error {
	key := fmt.Sprintf("ratelimit:dispatch:%s", artisanID)
	return l.client.Del(ctx, key).Err()
}
