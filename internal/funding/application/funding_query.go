package application

import (
	"context"

	"github.com/wyfcoding/tradersroom/internal/funding/domain"
)

// FundingQueryService 出入金查询服务
type FundingQueryService struct {
	depositRequests    domain.DepositRequestRepository
	withdrawalRequests domain.WithdrawalRequestRepository
	depositMethods     domain.DepositMethodRepository
	withdrawalMethods  domain.WithdrawalMethodRepository
}

// NewFundingQueryService 创建出入金查询服务实例
func NewFundingQueryService(
	depositRequests domain.DepositRequestRepository,
	withdrawalRequests domain.WithdrawalRequestRepository,
	depositMethods domain.DepositMethodRepository,
	withdrawalMethods domain.WithdrawalMethodRepository,
) *FundingQueryService {
	return &FundingQueryService{
		depositRequests:    depositRequests,
		withdrawalRequests: withdrawalRequests,
		depositMethods:     depositMethods,
		withdrawalMethods:  withdrawalMethods,
	}
}

// ActiveDepositMethods 客户端可见的入金渠道（含明细）
func (s *FundingQueryService) ActiveDepositMethods(ctx context.Context) ([]*domain.DepositMethod, error) {
	return s.depositMethods.ListActive(ctx)
}

// DepositMethods 管理端分页列出全部入金渠道
func (s *FundingQueryService) DepositMethods(ctx context.Context, limit, offset int) ([]*domain.DepositMethod, int64, error) {
	return s.depositMethods.List(ctx, limit, offset)
}

// DepositMethod 按 ID 查询入金渠道及明细
func (s *FundingQueryService) DepositMethod(ctx context.Context, id uint) (*domain.DepositMethod, error) {
	method, err := s.depositMethods.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, domain.ErrNotFound
	}
	return method, nil
}

// DepositRequests 管理端分页列出全部入金申请单
func (s *FundingQueryService) DepositRequests(ctx context.Context, limit, offset int) ([]*domain.DepositRequest, int64, error) {
	return s.depositRequests.List(ctx, limit, offset)
}

// DepositHistory 客户自己的入金申请历史
func (s *FundingQueryService) DepositHistory(ctx context.Context, userID uint, limit, offset int) ([]*domain.DepositRequest, int64, error) {
	return s.depositRequests.ListByUser(ctx, userID, limit, offset)
}

// WithdrawalRequests 管理端分页列出全部出金申请单
func (s *FundingQueryService) WithdrawalRequests(ctx context.Context, limit, offset int) ([]*domain.WithdrawalRequest, int64, error) {
	return s.withdrawalRequests.List(ctx, limit, offset)
}

// WithdrawalHistory 客户自己的出金申请历史
func (s *FundingQueryService) WithdrawalHistory(ctx context.Context, userID uint, limit, offset int) ([]*domain.WithdrawalRequest, int64, error) {
	return s.withdrawalRequests.ListByUser(ctx, userID, limit, offset)
}

// WithdrawalMethods 客户自己的全部出金账户
func (s *FundingQueryService) WithdrawalMethods(ctx context.Context, userID uint) ([]*domain.WithdrawalMethod, error) {
	return s.withdrawalMethods.ListByUser(ctx, userID)
}

// ActiveWithdrawalMethods 客户自己处于 active 的出金账户
func (s *FundingQueryService) ActiveWithdrawalMethods(ctx context.Context, userID uint) ([]*domain.WithdrawalMethod, error) {
	return s.withdrawalMethods.ListActiveByUser(ctx, userID)
}
