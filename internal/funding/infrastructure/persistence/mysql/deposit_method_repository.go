package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	"gorm.io/gorm"
)

type depositMethodRepository struct{ db *gorm.DB }

// NewDepositMethodRepository 创建入金渠道仓储
func NewDepositMethodRepository(db *gorm.DB) domain.DepositMethodRepository {
	return &depositMethodRepository{db: db}
}

func (r *depositMethodRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}

// Save 保存渠道及其明细。gorm 的关联写入会把挂载的明细一并落库。
func (r *depositMethodRepository) Save(ctx context.Context, method *domain.DepositMethod) error {
	return r.getDB(ctx).WithContext(ctx).Save(method).Error
}

func (r *depositMethodRepository) GetByID(ctx context.Context, id uint) (*domain.DepositMethod, error) {
	var method domain.DepositMethod
	err := r.getDB(ctx).WithContext(ctx).
		Preload("BankDetail").
		Preload("CryptoDetail").
		Preload("OtherDetail").
		First(&method, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *depositMethodRepository) List(ctx context.Context, limit, offset int) ([]*domain.DepositMethod, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&domain.DepositMethod{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var methods []*domain.DepositMethod
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&methods).Error
	return methods, total, err
}

func (r *depositMethodRepository) ListActive(ctx context.Context) ([]*domain.DepositMethod, error) {
	var methods []*domain.DepositMethod
	err := r.getDB(ctx).WithContext(ctx).
		Preload("BankDetail").
		Preload("CryptoDetail").
		Preload("OtherDetail").
		Where("status = ?", domain.MethodActive).
		Find(&methods).Error
	return methods, err
}

func (r *depositMethodRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
