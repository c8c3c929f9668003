package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts login attempts per subject in a fixed window.
type LoginLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, limit: limit, window: window}
}

func (l *LoginLimiter) Allow(ctx context.Context, subject string) (bool, error) {
	key := "login_attempts:" + subject

	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("LoginLimiter.Allow: %w", err)
	}
	if count == 1 {
		// First attempt in this window starts the clock.
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("LoginLimiter.Allow: %w", err)
		}
	}
	return count <= int64(l.limit), nil
}
