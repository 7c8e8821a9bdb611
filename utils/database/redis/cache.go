package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

func (r *HallinRedisManager) SetCache(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := sonic.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for key %s: %w", key, err)
	}
	if err := r.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set redis cache for key %s: %w", key, err)
	}
	return nil
}

func (r *HallinRedisManager) GetCache(ctx context.Context, key string, out any) (bool, error) {
	val, err := r.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get redis cache for key %s: %w", key, err)
	}
	if err := sonic.Unmarshal([]byte(val), out); err != nil {
		return true, fmt.Errorf("unmarshal cache value for key %s: %w", key, err)
	}
	return true, nil
}

func (r *HallinRedisManager) DeleteCache(ctx context.Context, key string) error {
	if err := r.Redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete redis cache for key %s: %w", key, err)
	}
	return nil
}
