package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/tradersroom/internal/support/domain"
	"gorm.io/gorm"
)

type supportTicketRepository struct{ db *gorm.DB }

// NewSupportTicketRepository 创建工单仓储
func NewSupportTicketRepository(db *gorm.DB) domain.SupportTicketRepository {
	return &supportTicketRepository{db: db}
}

func (r *supportTicketRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(contextx.WithTx(ctx, tx))
	})
}

func (r *supportTicketRepository) Save(ctx context.Context, ticket *domain.SupportTicket) error {
	return r.getDB(ctx).WithContext(ctx).Omit("Messages").Save(ticket).Error
}

func (r *supportTicketRepository) GetByID(ctx context.Context, id uint, withMessages bool) (*domain.SupportTicket, error) {
	return r.get(ctx, withMessages, "id = ?", id)
}

func (r *supportTicketRepository) GetForUser(ctx context.Context, id, userID uint, withMessages bool) (*domain.SupportTicket, error) {
	return r.get(ctx, withMessages, "id = ? AND user_id = ?", id, userID)
}

func (r *supportTicketRepository) get(ctx context.Context, withMessages bool, query string, args ...any) (*domain.SupportTicket, error) {
	db := r.getDB(ctx).WithContext(ctx)
	if withMessages {
		db = db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
	}

	var ticket domain.SupportTicket
	err := db.Where(query, args...).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *supportTicketRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*domain.SupportTicket, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&domain.SupportTicket{}).Where("user_id = ?", userID)
	return r.page(db, limit, offset)
}

func (r *supportTicketRepository) List(ctx context.Context, status domain.TicketStatus, limit, offset int) ([]*domain.SupportTicket, int64, error) {
	db := r.getDB(ctx).WithContext(ctx).Model(&domain.SupportTicket{})
	if status != "" {
		db = db.Where("status = ?", status)
	}
	return r.page(db, limit, offset)
}

func (r *supportTicketRepository) page(db *gorm.DB, limit, offset int) ([]*domain.SupportTicket, int64, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tickets []*domain.SupportTicket
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&tickets).Error
	return tickets, total, err
}

func (r *supportTicketRepository) AppendMessage(ctx context.Context, msg *domain.SupportTicketMessage) error {
	return r.getDB(ctx).WithContext(ctx).Create(msg).Error
}

func (r *supportTicketRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx
	}
	return r.db
}
