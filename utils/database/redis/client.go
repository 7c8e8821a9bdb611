package redis

import (
	"context"
	"fmt"

	"hallin-site/config"
	harukiLogger "hallin-site/utils/logger"

	"github.com/redis/go-redis/v9"
)

type HallinRedisManager struct {
	Redis *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *HallinRedisManager {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		harukiLogger.Errorf("Failed to connect to Redis: %v", err)
	}
	return &HallinRedisManager{
		Redis: client,
	}
}

func (r *HallinRedisManager) Close() error {
	return r.Redis.Close()
}

func (r *HallinRedisManager) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
