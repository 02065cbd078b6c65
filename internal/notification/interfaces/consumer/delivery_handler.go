package consumer

import (
	"context"
	"encoding/json"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/tradersroom/internal/notification/domain"
)

// DeliveryHandler 消费通知指令并通过实际信道（SMTP 等）投递。
type DeliveryHandler struct {
	sender domain.Sender
}

func NewDeliveryHandler(sender domain.Sender) *DeliveryHandler {
	return &DeliveryHandler{sender: sender}
}

func (h *DeliveryHandler) HandleCommand(ctx context.Context, msg kafkago.Message) error {
	var cmd struct {
		Recipient string `json:"recipient"`
		Subject   string `json:"subject"`
		Body      string `json:"body"`
	}
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		return err
	}

	slog.Info("Delivering notification command", "recipient", cmd.Recipient, "subject", cmd.Subject)

	return h.sender.Send(ctx, cmd.Recipient, cmd.Subject, cmd.Body)
}

func (h *DeliveryHandler) Subscribe(ctx context.Context, consumer *kafka.Consumer) {
	consumer.Start(ctx, 1, h.HandleCommand)
}
