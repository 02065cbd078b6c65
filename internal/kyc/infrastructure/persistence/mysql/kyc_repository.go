package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/tradersroom/internal/kyc/domain"
	"github.com/wyfcoding/tradersroom/internal/review"
	"gorm.io/gorm"
)

type kycDocumentRepository struct{ db *gorm.DB }

// NewKycDocumentRepository 创建证件仓储
func NewKycDocumentRepository(db *gorm.DB) domain.KycDocumentRepository {
	return &kycDocumentRepository{db: db}
}

func (r *kycDocumentRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}

func (r *kycDocumentRepository) Save(ctx context.Context, doc *domain.KycDocument) error {
	return r.getDB(ctx).WithContext(ctx).Save(doc).Error
}

func (r *kycDocumentRepository) GetByID(ctx context.Context, id uint) (*domain.KycDocument, error) {
	var doc domain.KycDocument
	err := r.getDB(ctx).WithContext(ctx).First(&doc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// CompleteReview 以 status='pending' 为谓词写入审核结论，未命中任何行即状态冲突
func (r *kycDocumentRepository) CompleteReview(ctx context.Context, doc *domain.KycDocument) error {
	res := r.getDB(ctx).WithContext(ctx).
		Model(&domain.KycDocument{}).
		Where("id = ? AND status = ?", doc.ID, review.StatusPending).
		Updates(map[string]any{
			"status":      doc.Status,
			"admin_note":  doc.AdminNote,
			"verified_at": doc.VerifiedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return review.ErrInvalidState
	}
	return nil
}

func (r *kycDocumentRepository) GetByUserAndType(ctx context.Context, userID uint, docType domain.DocumentType) (*domain.KycDocument, error) {
	var doc domain.KycDocument
	err := r.getDB(ctx).WithContext(ctx).
		Where("user_id = ? AND document_type = ?", userID, docType).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *kycDocumentRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.KycDocument, error) {
	var docs []*domain.KycDocument
	err := r.getDB(ctx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *kycDocumentRepository) List(ctx context.Context, status review.Status, limit, offset int) ([]*domain.KycDocument, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&domain.KycDocument{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []*domain.KycDocument
	err := db.Order("submitted_at DESC").Limit(limit).Offset(offset).Find(&docs).Error
	return docs, total, err
}

func (r *kycDocumentRepository) CountApproved(ctx context.Context, userID uint, types []domain.DocumentType) (int64, error) {
	var count int64
	err := r.getDB(ctx).WithContext(ctx).
		Model(&domain.KycDocument{}).
		Where("user_id = ? AND status = ? AND document_type IN ?", userID, review.StatusApproved, types).
		Count(&count).Error
	return count, err
}

func (r *kycDocumentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
