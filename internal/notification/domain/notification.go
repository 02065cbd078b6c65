// Package domain 通知服务的领域模型
package domain

import (
	"context"
	"time"
)

// EventType 触发通知的业务事件
type EventType string

const (
	EventUserRegistered      EventType = "user.registered"
	EventPasswordReset       EventType = "user.password_reset"
	EventDepositSubmitted    EventType = "deposit.submitted"
	EventDepositApproved     EventType = "deposit.approved"
	EventDepositRejected     EventType = "deposit.rejected"
	EventWithdrawalSubmitted EventType = "withdrawal.submitted"
	EventWithdrawalApproved  EventType = "withdrawal.approved"
	EventWithdrawalRejected  EventType = "withdrawal.rejected"
	EventKycApproved         EventType = "kyc.approved"
	EventKycRejected         EventType = "kyc.rejected"
	EventTicketReplied       EventType = "ticket.replied"
	EventTicketClosed        EventType = "ticket.closed"
)

// Status 通知状态
type Status string

const (
	StatusSent   Status = "SENT"
	StatusFailed Status = "FAILED"
)

// Notification 已派发的通知记录
type Notification struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	UserID  uint      `json:"user_id" gorm:"column:user_id;index"`
	Event   EventType `json:"event" gorm:"column:event;type:varchar(40);not null"`
	Target  string    `json:"target" gorm:"column:target;type:varchar(100);not null"`
	Subject string    `json:"subject" gorm:"column:subject;type:varchar(150)"`
	Content string    `json:"content" gorm:"column:content;type:text"`
	Status  Status    `json:"status" gorm:"column:status;type:varchar(10);index;not null"`
	// ErrorMessage 发送失败原因
	ErrorMessage string    `json:"error_message,omitempty" gorm:"column:error_message;type:text"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// Sender 通知发送器
type Sender interface {
	Send(ctx context.Context, target, subject, content string) error
}

// Notifier 业务模块触达通知的统一入口。派发失败不阻断业务流程，所以没有返回值。
type Notifier interface {
	Dispatch(ctx context.Context, event EventType, userID uint, target string, params map[string]any)
}

// NotificationRepository 通知仓储
type NotificationRepository interface {
	Save(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*Notification, int64, error)
}
