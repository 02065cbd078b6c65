package application

import (
	"context"
	"log/slog"

	"github.com/wyfcoding/tradersroom/internal/notification/domain"
)

// Dispatcher 通知派发器。状态流转成功后调用，发送失败只记日志，
// 永远不把错误回传给业务流程。
type Dispatcher struct {
	repo   domain.NotificationRepository
	sender domain.Sender
	logger *slog.Logger
}

// NewDispatcher 创建派发器
func NewDispatcher(repo domain.NotificationRepository, sender domain.Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{repo: repo, sender: sender, logger: logger}
}

// Dispatch 解析事件模板并发送。没有返回值：派发属于 fire-and-forget。
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.EventType, userID uint, target string, params map[string]any) {
	tmpl, ok := domain.Resolve(event)
	if !ok {
		d.logger.Warn("no template registered for event", "event", event)
		return
	}

	content, err := tmpl.Render(params)
	if err != nil {
		d.logger.Error("failed to render notification", "event", event, "error", err)
		return
	}

	record := &domain.Notification{
		UserID:  userID,
		Event:   event,
		Target:  target,
		Subject: tmpl.Subject,
		Content: content,
		Status:  domain.StatusSent,
	}

	if err := d.sender.Send(ctx, target, tmpl.Subject, content); err != nil {
		d.logger.Error("failed to send notification", "event", event, "target", target, "error", err)
		record.Status = domain.StatusFailed
		record.ErrorMessage = err.Error()
	}

	if err := d.repo.Save(ctx, record); err != nil {
		d.logger.Error("failed to persist notification record", "event", event, "error", err)
	}
}

// History 账户的通知历史
func (d *Dispatcher) History(ctx context.Context, userID uint, limit, offset int) ([]*domain.Notification, int64, error) {
	return d.repo.ListByUser(ctx, userID, limit, offset)
}
