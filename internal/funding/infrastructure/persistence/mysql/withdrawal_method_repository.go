package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	"gorm.io/gorm"
)

type withdrawalMethodRepository struct{ db *gorm.DB }

// NewWithdrawalMethodRepository 创建出金账户仓储
func NewWithdrawalMethodRepository(db *gorm.DB) domain.WithdrawalMethodRepository {
	return &withdrawalMethodRepository{db: db}
}

func (r *withdrawalMethodRepository) Save(ctx context.Context, method *domain.WithdrawalMethod) error {
	return r.getDB(ctx).WithContext(ctx).Save(method).Error
}

func (r *withdrawalMethodRepository) GetByID(ctx context.Context, id uint) (*domain.WithdrawalMethod, error) {
	var method domain.WithdrawalMethod
	err := r.getDB(ctx).WithContext(ctx).First(&method, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

// GetActiveForUser 查询归属该账户且处于 active 的出金账户
func (r *withdrawalMethodRepository) GetActiveForUser(ctx context.Context, id, userID uint) (*domain.WithdrawalMethod, error) {
	var method domain.WithdrawalMethod
	err := r.getDB(ctx).WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, userID, domain.MethodActive).
		First(&method).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &method, nil
}

func (r *withdrawalMethodRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.WithdrawalMethod, error) {
	var methods []*domain.WithdrawalMethod
	err := r.getDB(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&methods).Error
	return methods, err
}

func (r *withdrawalMethodRepository) ListActiveByUser(ctx context.Context, userID uint) ([]*domain.WithdrawalMethod, error) {
	var methods []*domain.WithdrawalMethod
	err := r.getDB(ctx).WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, domain.MethodActive).
		Find(&methods).Error
	return methods, err
}

func (r *withdrawalMethodRepository) Delete(ctx context.Context, id, userID uint) error {
	return r.getDB(ctx).WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.WithdrawalMethod{}).Error
}

func (r *withdrawalMethodRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
