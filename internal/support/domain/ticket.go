// Package domain 工单的领域模型。工单挂一串按时间升序的消息，closed 为终态。
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/wyfcoding/pkg/fsm"
)

// TicketStatus 工单状态
type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusResolved   TicketStatus = "resolved"
	StatusClosed     TicketStatus = "closed"
)

// Category 工单分类
type Category string

const (
	CategoryGeneral      Category = "general"
	CategoryTechnical    Category = "technical"
	CategoryPayments     Category = "payments"
	CategoryVerification Category = "verification"
)

var (
	// ErrNotFound 工单不存在
	ErrNotFound = errors.New("ticket not found")
	// ErrTicketClosed 工单已关闭，不可重复关闭
	ErrTicketClosed = errors.New("ticket is already closed")
	// ErrMissingFields 主题、分类或消息缺失
	ErrMissingFields = errors.New("subject, category and message are required")
	// ErrMissingMessage 消息内容缺失
	ErrMissingMessage = errors.New("message is required")
)

const eventClose = "CLOSE"

// SupportTicket 工单
type SupportTicket struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	UserID    uint         `json:"user_id" gorm:"column:user_id;index;not null"`
	Subject   string       `json:"subject" gorm:"column:subject;type:varchar(255);not null"`
	Category  Category     `json:"category" gorm:"column:category;type:varchar(20);not null;default:'general'"`
	Status    TicketStatus `json:"status" gorm:"column:status;type:varchar(15);index;not null;default:'open'"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	Messages []*SupportTicketMessage `json:"messages,omitempty" gorm:"foreignKey:TicketID"`
}

func (SupportTicket) TableName() string { return "support_tickets" }

// NewSupportTicket 创建 open 状态的工单
func NewSupportTicket(userID uint, subject string, category Category) *SupportTicket {
	if category == "" {
		category = CategoryGeneral
	}
	return &SupportTicket{
		UserID:   userID,
		Subject:  subject,
		Category: category,
		Status:   StatusOpen,
	}
}

// Close 关闭工单。closed 没有任何出边，重复关闭返回 ErrTicketClosed。
func (t *SupportTicket) Close(ctx context.Context) error {
	m := fsm.NewMachine[string, string](string(t.Status))
	m.AddTransition(string(StatusOpen), eventClose, string(StatusClosed))
	m.AddTransition(string(StatusInProgress), eventClose, string(StatusClosed))
	m.AddTransition(string(StatusResolved), eventClose, string(StatusClosed))
	if err := m.Trigger(ctx, eventClose); err != nil {
		return ErrTicketClosed
	}
	t.Status = StatusClosed
	return nil
}

// IsClosed 是否已关闭
func (t *SupportTicket) IsClosed() bool { return t.Status == StatusClosed }

// Sender 消息发送方
type Sender string

const (
	SenderClient Sender = "client"
	SenderAdmin  Sender = "admin"
)

// SupportTicketMessage 工单消息，追加后不可修改
type SupportTicketMessage struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	TicketID       uint      `json:"ticket_id" gorm:"column:ticket_id;index;not null"`
	Sender         Sender    `json:"sender" gorm:"column:sender;type:varchar(10);not null"`
	Message        string    `json:"message" gorm:"column:message;type:text"`
	AttachmentPath string    `json:"attachment_path,omitempty" gorm:"column:attachment_path;type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
}

func (SupportTicketMessage) TableName() string { return "support_ticket_messages" }
