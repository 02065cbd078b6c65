package domain

import "context"

// SupportTicketRepository 工单仓储
type SupportTicketRepository interface {
	Save(ctx context.Context, ticket *SupportTicket) error
	// GetByID 查询工单，withMessages 时带出按时间升序的消息
	GetByID(ctx context.Context, id uint, withMessages bool) (*SupportTicket, error)
	// GetForUser 查询归属该账户的工单
	GetForUser(ctx context.Context, id, userID uint, withMessages bool) (*SupportTicket, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*SupportTicket, int64, error)
	// List 管理端分页列出工单，status 为空表示不过滤
	List(ctx context.Context, status TicketStatus, limit, offset int) ([]*SupportTicket, int64, error)
	AppendMessage(ctx context.Context, msg *SupportTicketMessage) error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
