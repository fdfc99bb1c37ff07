package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"warehouse-monitor/internal/domain"

	"go.uber.org/zap"
)

// lastReadingTTL 最近读数缓存的过期时间
// 正常情况下每个 tick 都会刷新；监控服务停止后缓存自然过期，
// 上报层会回落到 Postgres 查询
const lastReadingTTL = 60 * time.Second

// LastReadingCache 最近读数的 Redis 缓存
// 调度器在每次成功写库后刷新，上报层优先读缓存，miss 时回查 Postgres
type LastReadingCache struct {
	kv     KVStore
	logger *zap.Logger
}

// NewLastReadingCache 创建最近读数缓存
func NewLastReadingCache(kv KVStore, logger *zap.Logger) *LastReadingCache {
	return &LastReadingCache{kv: kv, logger: logger}
}

func lastReadingKey(sensorID string) string {
	return fmt.Sprintf("warehouse:sensor:%s:last", sensorID)
}

// Set 写入某传感器的最新读数
func (c *LastReadingCache) Set(ctx context.Context, reading domain.Reading) error {
	jsonData, err := json.Marshal(reading)
	if err != nil {
		return fmt.Errorf("failed to marshal reading: %w", err)
	}

	key := lastReadingKey(reading.SensorID)
	if err := c.kv.Set(ctx, key, string(jsonData), lastReadingTTL); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	c.logger.Debug("Updated last reading cache",
		zap.String("sensor_id", reading.SensorID),
		zap.String("key", key),
	)
	return nil
}

// Get 读取某传感器的最新读数，不存在时返回 ErrCacheMiss
func (c *LastReadingCache) Get(ctx context.Context, sensorID string) (*domain.Reading, error) {
	val, err := c.kv.Get(ctx, lastReadingKey(sensorID))
	if err != nil {
		return nil, err
	}

	var reading domain.Reading
	if err := json.Unmarshal([]byte(val), &reading); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reading: %w", err)
	}
	return &reading, nil
}
