package database

import (
	"context"

	mongoManager "hallin-site/utils/database/mongo"
	redisManager "hallin-site/utils/database/redis"

	"go.uber.org/multierr"
)

const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
	StatusDisabled    = "disabled"
)

// HallinDBManager bundles the optional stores. Either field may be nil when
// the corresponding backend is not configured.
type HallinDBManager struct {
	Redis *redisManager.HallinRedisManager
	Mongo *mongoManager.MongoDBManager
}

func NewHallinDBManager(redis *redisManager.HallinRedisManager, mongo *mongoManager.MongoDBManager) *HallinDBManager {
	return &HallinDBManager{
		Redis: redis,
		Mongo: mongo,
	}
}

func pingStatus(ctx context.Context, ping func(context.Context) error) string {
	if err := ping(ctx); err != nil {
		return StatusUnavailable
	}
	return StatusOK
}

// Health reports each store as ok, unavailable or disabled.
func (m *HallinDBManager) Health(ctx context.Context) map[string]string {
	out := map[string]string{"redis": StatusDisabled, "mongodb": StatusDisabled}
	if m == nil {
		return out
	}
	if m.Redis != nil {
		out["redis"] = pingStatus(ctx, m.Redis.Ping)
	}
	if m.Mongo != nil {
		out["mongodb"] = pingStatus(ctx, m.Mongo.Ping)
	}
	return out
}

func (m *HallinDBManager) Close(ctx context.Context) error {
	if m == nil {
		return nil
	}
	var err error
	if m.Redis != nil {
		err = multierr.Append(err, m.Redis.Close())
	}
	if m.Mongo != nil {
		err = multierr.Append(err, m.Mongo.Close(ctx))
	}
	return err
}
