package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/tradersroom/internal/funding/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
	"gorm.io/gorm"
)

type depositRequestRepository struct{ db *gorm.DB }

// NewDepositRequestRepository 创建入金申请单仓储
func NewDepositRequestRepository(db *gorm.DB) domain.DepositRequestRepository {
	return &depositRequestRepository{db: db}
}

func (r *depositRequestRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}

func (r *depositRequestRepository) Save(ctx context.Context, req *domain.DepositRequest) error {
	return r.getDB(ctx).WithContext(ctx).Save(req).Error
}

func (r *depositRequestRepository) GetByID(ctx context.Context, id uint) (*domain.DepositRequest, error) {
	var req domain.DepositRequest
	err := r.getDB(ctx).WithContext(ctx).First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CompleteReview 条件更新：快照读之后申请单可能已被并发审核写成终态，
// 以 status='pending' 为谓词落库，未命中任何行即判定状态冲突。
func (r *depositRequestRepository) CompleteReview(ctx context.Context, req *domain.DepositRequest) error {
	res := r.getDB(ctx).WithContext(ctx).
		Model(&domain.DepositRequest{}).
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

func (r *depositRequestRepository) List(ctx context.Context, limit, offset int) ([]*domain.DepositRequest, int64, error) {
	return r.list(ctx, nil, limit, offset)
}

func (r *depositRequestRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*domain.DepositRequest, int64, error) {
	return r.list(ctx, &userID, limit, offset)
}

func (r *depositRequestRepository) list(ctx context.Context, userID *uint, limit, offset int) ([]*domain.DepositRequest, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&domain.DepositRequest{})
	if userID != nil {
		db = db.Where("user_id = ?", *userID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reqs []*domain.DepositRequest
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reqs).Error
	return reqs, total, err
}

func (r *depositRequestRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
