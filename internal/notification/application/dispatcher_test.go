package application

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/tradersroom/internal/notification/domain"
	notifmysql "github.com/wyfcoding/tradersroom/internal/notification/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubSender struct {
	err  error
	sent []string
}

func (s *stubSender) Send(ctx context.Context, target, subject, content string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, target)
	return nil
}

func newDispatcher(t *testing.T, sender domain.Sender) *Dispatcher {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Notification{}))

	return NewDispatcher(notifmysql.NewNotificationRepository(db), sender, slog.Default())
}

func TestDispatchRendersAndRecordsSent(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)
	ctx := context.Background()

	d.Dispatch(ctx, domain.EventDepositApproved, 1, "jane@example.com", map[string]any{
		"FullName": "Jane Trader",
		"Amount":   "50.00",
	})

	require.Equal(t, []string{"jane@example.com"}, sender.sent)

	records, total, err := d.History(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, domain.StatusSent, records[0].Status)
	require.Equal(t, "Deposit Request Approved", records[0].Subject)
	require.Contains(t, records[0].Content, "Hello Jane Trader")
	require.Contains(t, records[0].Content, "$50.00")
}

func TestDispatchSwallowsSendFailure(t *testing.T) {
	d := newDispatcher(t, &stubSender{err: errors.New("smtp connection refused")})
	ctx := context.Background()

	// 发送失败不允许外溢到业务流程，只落一条 FAILED 记录
	d.Dispatch(ctx, domain.EventTicketClosed, 7, "jane@example.com", map[string]any{
		"FullName": "Jane Trader",
		"Subject":  "Deposit not credited",
	})

	records, total, err := d.History(ctx, 7, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, domain.StatusFailed, records[0].Status)
	require.Equal(t, "smtp connection refused", records[0].ErrorMessage)
}

func TestDispatchIgnoresUnknownEvent(t *testing.T) {
	sender := &stubSender{}
	d := newDispatcher(t, sender)

	d.Dispatch(context.Background(), domain.EventType("unknown.event"), 1, "jane@example.com", nil)

	require.Empty(t, sender.sent)
	_, total, err := d.History(context.Background(), 1, 10, 0)
	require.NoError(t, err)
	require.Zero(t, total)
}
