package application

import (
	"context"

	"github.com/wyfcoding/pkg/logging"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	notifdomain "github.com/wyfcoding/tradersroom/internal/notification/domain"
	"github.com/wyfcoding/tradersroom/internal/support/domain"
)

// CreateTicketCommand 客户创建工单，首条消息随工单一起落库
type CreateTicketCommand struct {
	UserID         uint
	Subject        string
	Category       domain.Category
	Message        string
	AttachmentPath string
}

// PostMessageCommand 向工单追加消息
type PostMessageCommand struct {
	TicketID       uint
	Sender         domain.Sender
	Message        string
	AttachmentPath string
}

// SupportService 工单服务
type SupportService struct {
	tickets  domain.SupportTicketRepository
	users    authdomain.UserRepository
	notifier notifdomain.Notifier
}

// NewSupportService 创建工单服务实例
func NewSupportService(tickets domain.SupportTicketRepository, users authdomain.UserRepository, notifier notifdomain.Notifier) *SupportService {
	return &SupportService{tickets: tickets, users: users, notifier: notifier}
}

// CreateTicket 创建工单及首条客户消息，同一事务内完成
func (s *SupportService) CreateTicket(ctx context.Context, cmd CreateTicketCommand) (*domain.SupportTicket, error) {
	if cmd.Subject == "" || cmd.Message == "" {
		return nil, domain.ErrMissingFields
	}

	ticket := domain.NewSupportTicket(cmd.UserID, cmd.Subject, cmd.Category)
	err := s.tickets.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.tickets.Save(txCtx, ticket); err != nil {
			return err
		}
		return s.tickets.AppendMessage(txCtx, &domain.SupportTicketMessage{
			TicketID:       ticket.ID,
			Sender:         domain.SenderClient,
			Message:        cmd.Message,
			AttachmentPath: cmd.AttachmentPath,
		})
	})
	if err != nil {
		return nil, err
	}
	return ticket, nil
}

// MyTickets 客户自己的工单分页列表
func (s *SupportService) MyTickets(ctx context.Context, userID uint, limit, offset int) ([]*domain.SupportTicket, int64, error) {
	return s.tickets.ListByUser(ctx, userID, limit, offset)
}

// MyTicket 客户查看自己的工单详情，含按时间升序的消息
func (s *SupportService) MyTicket(ctx context.Context, id, userID uint) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetForUser(ctx, id, userID, true)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	return ticket, nil
}

// Tickets 管理端分页列出工单，可按状态过滤
func (s *SupportService) Tickets(ctx context.Context, status domain.TicketStatus, limit, offset int) ([]*domain.SupportTicket, int64, error) {
	return s.tickets.List(ctx, status, limit, offset)
}

// Ticket 管理端查看任意工单详情
func (s *SupportService) Ticket(ctx context.Context, id uint) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}
	return ticket, nil
}

// PostClientMessage 客户向自己的工单追加消息
func (s *SupportService) PostClientMessage(ctx context.Context, userID uint, cmd PostMessageCommand) error {
	if cmd.Message == "" {
		return domain.ErrMissingMessage
	}

	ticket, err := s.tickets.GetForUser(ctx, cmd.TicketID, userID, false)
	if err != nil {
		return err
	}
	if ticket == nil {
		return domain.ErrNotFound
	}

	return s.tickets.AppendMessage(ctx, &domain.SupportTicketMessage{
		TicketID:       ticket.ID,
		Sender:         domain.SenderClient,
		Message:        cmd.Message,
		AttachmentPath: cmd.AttachmentPath,
	})
}

// PostAdminMessage 管理员回复工单并邮件通知客户
func (s *SupportService) PostAdminMessage(ctx context.Context, cmd PostMessageCommand) error {
	if cmd.Message == "" {
		return domain.ErrMissingMessage
	}

	ticket, err := s.tickets.GetByID(ctx, cmd.TicketID, false)
	if err != nil {
		return err
	}
	if ticket == nil {
		return domain.ErrNotFound
	}

	err = s.tickets.AppendMessage(ctx, &domain.SupportTicketMessage{
		TicketID:       ticket.ID,
		Sender:         domain.SenderAdmin,
		Message:        cmd.Message,
		AttachmentPath: cmd.AttachmentPath,
	})
	if err != nil {
		return err
	}

	s.notify(ctx, notifdomain.EventTicketReplied, ticket)
	return nil
}

// CloseTicket 关闭工单，重复关闭返回 ErrTicketClosed 且不产生任何变更
func (s *SupportService) CloseTicket(ctx context.Context, id uint) (*domain.SupportTicket, error) {
	ticket, err := s.tickets.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, domain.ErrNotFound
	}

	if err := ticket.Close(ctx); err != nil {
		return nil, err
	}
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, err
	}

	s.notify(ctx, notifdomain.EventTicketClosed, ticket)
	return ticket, nil
}

func (s *SupportService) notify(ctx context.Context, event notifdomain.EventType, ticket *domain.SupportTicket) {
	if s.notifier == nil {
		return
	}
	user, err := s.users.GetByID(ctx, ticket.UserID)
	if err != nil || user == nil {
		logging.Error(ctx, "Failed to resolve notification recipient", "user_id", ticket.UserID, "event", string(event), "error", err)
		return
	}
	s.notifier.Dispatch(ctx, event, ticket.UserID, user.Email, map[string]any{
		"FullName": user.FullName,
		"Subject":  ticket.Subject,
	})
}
