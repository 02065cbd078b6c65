package application

import (
	"context"

	"github.com/wyfcoding/tradersroom/internal/auth/domain"
)

// AuthQueryService 账户查询服务
type AuthQueryService struct {
	repo domain.UserRepository
}

// NewAuthQueryService 创建账户查询服务实例
func NewAuthQueryService(repo domain.UserRepository) *AuthQueryService {
	return &AuthQueryService{repo: repo}
}

// GetProfile 查询账户资料
func (s *AuthQueryService) GetProfile(ctx context.Context, userID uint) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}
