package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/tradersroom/internal/wallet/domain"
)

// WalletService 钱包查询服务
type WalletService struct {
	ledger domain.LedgerRepository
}

// NewWalletService 创建钱包服务
func NewWalletService(ledger domain.LedgerRepository) *WalletService {
	return &WalletService{ledger: ledger}
}

// Balance 当前余额
func (s *WalletService) Balance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	return s.ledger.Balance(ctx, userID)
}

// Transactions 分页流水
func (s *WalletService) Transactions(ctx context.Context, userID uint, limit, offset int) ([]*domain.WalletTransaction, int64, error) {
	return s.ledger.List(ctx, userID, limit, offset)
}
