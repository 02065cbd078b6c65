package mysql

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/tradersroom/internal/wallet/domain"
	"gorm.io/gorm"
)

// ledgerRepository GORM 账本仓储实现
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建账本仓储
func NewLedgerRepository(db *gorm.DB) domain.LedgerRepository {
	return &ledgerRepository{db: db}
}

// Append 写入流水。审批流程在事务内调用时，通过 contextx 复用外层事务，
// 保证状态翻转和记账要么同时生效要么同时回滚。
func (r *ledgerRepository) Append(ctx context.Context, entry *domain.WalletTransaction) error {
	return r.getDB(ctx).WithContext(ctx).Create(entry).Error
}

func (r *ledgerRepository) Balance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.getDB(ctx).WithContext(ctx).
		Model(&domain.WalletTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *ledgerRepository) List(ctx context.Context, userID uint, limit, offset int) ([]*domain.WalletTransaction, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&domain.WalletTransaction{}).Where("user_id = ?", userID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []*domain.WalletTransaction
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *ledgerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
