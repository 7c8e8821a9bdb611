package redis

import (
	"context"
	"fmt"
	"time"
)

// ClaimToken marks a proof token as spent. It reports false when the token
// was already claimed inside ttl.
func (r *HallinRedisManager) ClaimToken(ctx context.Context, token string, ttl time.Duration) (bool, error) {
	ok, err := r.Redis.SetNX(ctx, BuildUsedTokenKey(token), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim turnstile token: %w", err)
	}
	return ok, nil
}

// AllowSubmit counts one submission for (action, ip) in a fixed window and
// reports whether the count is still within limit.
func (r *HallinRedisManager) AllowSubmit(ctx context.Context, action, ip string, limit int, window time.Duration) (bool, error) {
	if limit <= 0 {
		return true, nil
	}
	key := BuildSubmitCounterKey(action, ip)
	pipe := r.Redis.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("count submission for %s: %w", key, err)
	}
	return incr.Val() <= int64(limit), nil
}
