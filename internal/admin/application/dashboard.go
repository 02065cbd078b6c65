package application

import (
	"context"

	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/tradersroom/internal/admin/domain"
)

// StatsCache 统计缓存，缓存不可用时回退实时统计
type StatsCache interface {
	Get(ctx context.Context) (*domain.DashboardStats, error)
	Save(ctx context.Context, stats *domain.DashboardStats) error
}

// DashboardService 仪表盘查询服务
type DashboardService struct {
	stats domain.StatsRepository
	cache StatsCache
}

// NewDashboardService 创建仪表盘服务实例，cache 传 nil 则每次实时统计
func NewDashboardService(stats domain.StatsRepository, cache StatsCache) *DashboardService {
	return &DashboardService{stats: stats, cache: cache}
}

// Stats 仪表盘统计，优先命中缓存
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			logging.Error(ctx, "failed to read dashboard stats cache", "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.stats.Collect(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, stats); err != nil {
			logging.Error(ctx, "failed to cache dashboard stats", "error", err)
		}
	}
	return stats, nil
}
