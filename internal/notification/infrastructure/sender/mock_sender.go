package sender

import (
	"context"

	"github.com/wyfcoding/pkg/logging"
	"github.com/wyfcoding/tradersroom/internal/notification/domain"
)

// MockEmailSender 模拟邮件发送器，本地开发环境使用
type MockEmailSender struct{}

// NewMockEmailSender 创建模拟邮件发送器
func NewMockEmailSender() domain.Sender {
	return &MockEmailSender{}
}

// Send 发送邮件（模拟实现）
func (s *MockEmailSender) Send(ctx context.Context, target, subject, content string) error {
	logging.Info(ctx, "Sending email notification",
		"sender", "MockEmailSender",
		"target", target,
		"subject", subject,
	)
	return nil
}
