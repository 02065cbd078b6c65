package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
	"gorm.io/gorm"
)

type withdrawalRequestRepository struct{ db *gorm.DB }

// NewWithdrawalRequestRepository 创建出金申请单仓储
func NewWithdrawalRequestRepository(db *gorm.DB) domain.WithdrawalRequestRepository {
	return &withdrawalRequestRepository{db: db}
}

func (r *withdrawalRequestRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}

func (r *withdrawalRequestRepository) Save(ctx context.Context, req *domain.WithdrawalRequest) error {
	return r.getDB(ctx).WithContext(ctx).Save(req).Error
}

func (r *withdrawalRequestRepository) GetByID(ctx context.Context, id uint) (*domain.WithdrawalRequest, error) {
	var req domain.WithdrawalRequest
	err := r.getDB(ctx).WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CompleteReview 以 status='pending' 为谓词写入审核结论，未命中任何行即状态冲突
func (r *withdrawalRequestRepository) CompleteReview(ctx context.Context, req *domain.WithdrawalRequest) error {
	res := r.getDB(ctx).WithContext(ctx).
		Model(&domain.WithdrawalRequest{}).
		Where("id = ? AND status = ?", req.ID, review.StatusPending).
		Updates(map[string]any{
			"status":     req.Status,
			"admin_note": req.AdminNote,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return review.ErrInvalidState
	}
	return nil
}

func (r *withdrawalRequestRepository) List(ctx context.Context, limit, offset int) ([]*domain.WithdrawalRequest, int64, error) {
	return r.list(ctx, nil, limit, offset)
}

func (r *withdrawalRequestRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*domain.WithdrawalRequest, int64, error) {
	return r.list(ctx, &userID, limit, offset)
}

func (r *withdrawalRequestRepository) list(ctx context.Context, userID *uint, limit, offset int) ([]*domain.WithdrawalRequest, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&domain.WithdrawalRequest{})
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []*domain.WithdrawalRequest
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reqs).Error
	return reqs, total, err
}

func (r *withdrawalRequestRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
