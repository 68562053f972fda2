package api

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	summaryCacheKey  = "dashboard:summary"
	projectsCacheKey = "dashboard:projects"

	cacheTTL = 60 * time.Second
)

// DashboardCache keeps dashboard payloads in Redis so repeated reads
// skip the aggregation queries. Writes to projects or work logs
// invalidate it.
type DashboardCache struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewDashboardCache(rdb *redis.Client, logger *zap.Logger) *DashboardCache {
	return &DashboardCache{rdb: rdb, logger: logger}
}

// Get unmarshals the cached payload into dest. Returns false on miss.
func (dc *DashboardCache) Get(ctx context.Context, key string, dest any) bool {
	if dc.rdb == nil {
		return false
	}

	data, err := dc.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		dc.logger.Warn("Redis get failed", zap.String("key", key), zap.Error(err))
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		dc.logger.Warn("Cached payload corrupted", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (dc *DashboardCache) Set(ctx context.Context, key string, value any) {
	if dc.rdb == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := dc.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		dc.logger.Warn("Redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every dashboard key
func (dc *DashboardCache) Invalidate(ctx context.Context) {
	if dc.rdb == nil {
		return
	}

	if err := dc.rdb.Del(ctx, summaryCacheKey, projectsCacheKey).Err(); err != nil {
		dc.logger.Warn("Redis invalidate failed", zap.Error(err))
	}
}
