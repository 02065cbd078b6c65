package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	authdomain "github.com/wyfcoding/tradersroom/internal/auth/domain"
	authmysql "github.com/wyfcoding/tradersroom/internal/auth/infrastructure/persistence/mysql"
	"github.com/wyfcoding/tradersroom/internal/support/domain"
	supportmysql "github.com/wyfcoding/tradersroom/internal/support/infrastructure/persistence/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newSupportService(t *testing.T) *SupportService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authdomain.User{}, &domain.SupportTicket{}, &domain.SupportTicketMessage{}))

	return NewSupportService(supportmysql.NewSupportTicketRepository(db), authmysql.NewUserRepository(db), nil)
}

func TestCreateTicketRequiresSubjectAndMessage(t *testing.T) {
	svc := newSupportService(t)
	ctx := context.Background()

	_, err := svc.CreateTicket(ctx, CreateTicketCommand{UserID: 1, Subject: "help"})
	require.ErrorIs(t, err, domain.ErrMissingFields)

	_, err = svc.CreateTicket(ctx, CreateTicketCommand{UserID: 1, Message: "hello"})
	require.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestCreateTicketStoresFirstClientMessage(t *testing.T) {
	svc := newSupportService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketCommand{
		UserID:   1,
		Subject:  "Deposit not credited",
		Category: domain.CategoryPayments,
		Message:  "I sent a wire two days ago.",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOpen, ticket.Status)

	detail, err := svc.MyTicket(ctx, ticket.ID, 1)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 1)
	require.Equal(t, domain.SenderClient, detail.Messages[0].Sender)
	require.Equal(t, "I sent a wire two days ago.", detail.Messages[0].Message)
}

func TestTicketIsScopedToOwner(t *testing.T) {
	svc := newSupportService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketCommand{UserID: 1, Subject: "s", Message: "m"})
	require.NoError(t, err)

	_, err = svc.MyTicket(ctx, ticket.ID, 2)
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.PostClientMessage(ctx, 2, PostMessageCommand{TicketID: ticket.ID, Message: "hijack"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMessagesOrderedByCreation(t *testing.T) {
	svc := newSupportService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketCommand{UserID: 1, Subject: "s", Message: "first"})
	require.NoError(t, err)

	require.NoError(t, svc.PostAdminMessage(ctx, PostMessageCommand{TicketID: ticket.ID, Message: "second"}))
	require.NoError(t, svc.PostClientMessage(ctx, 1, PostMessageCommand{TicketID: ticket.ID, Message: "third"}))

	detail, err := svc.Ticket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, detail.Messages, 3)
	require.Equal(t, "first", detail.Messages[0].Message)
	require.Equal(t, "second", detail.Messages[1].Message)
	require.Equal(t, "third", detail.Messages[2].Message)
	require.Equal(t, domain.SenderAdmin, detail.Messages[1].Sender)
}

func TestCloseIsTerminal(t *testing.T) {
	svc := newSupportService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketCommand{UserID: 1, Subject: "s", Message: "m"})
	require.NoError(t, err)

	closed, err := svc.CloseTicket(ctx, ticket.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusClosed, closed.Status)

	_, err = svc.CloseTicket(ctx, ticket.ID)
	require.ErrorIs(t, err, domain.ErrTicketClosed)
}

func TestPostMessageRequiresBody(t *testing.T) {
	svc := newSupportService(t)
	ctx := context.Background()

	ticket, err := svc.CreateTicket(ctx, CreateTicketCommand{UserID: 1, Subject: "s", Message: "m"})
	require.NoError(t, err)

	err = svc.PostClientMessage(ctx, 1, PostMessageCommand{TicketID: ticket.ID})
	require.ErrorIs(t, err, domain.ErrMissingMessage)
}
