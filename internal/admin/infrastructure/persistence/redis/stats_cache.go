package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wyfcoding/tradersroom/internal/admin/domain"
)

// StatsCache 仪表盘统计的 Redis 读缓存，短 TTL 抵挡管理端的轮询
type StatsCache struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewStatsCache 创建统计缓存
func NewStatsCache(client redis.UniversalClient) *StatsCache {
	return &StatsCache{
		client: client,
		key:    "admin:dashboard:stats",
		ttl:    30 * time.Second,
	}
}

func (c *StatsCache) Get(ctx context.Context) (*domain.DashboardStats, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stats from redis: %w", err)
	}

	var stats domain.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}
	return &stats, nil
}

func (c *StatsCache) Save(ctx context.Context, stats *domain.DashboardStats) error {
	if stats == nil {
		return nil
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}
