package sender

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wyfcoding/pkg/messagequeue/kafka"
	"github.com/wyfcoding/tradersroom/internal/notification/domain"
)

// KafkaNotificationSender 把渲染好的通知写入 Kafka，真实投递由后台消费者
// 走 SMTP 等信道完成，审批主流程不等待发送结果。
type KafkaNotificationSender struct {
	producer *kafka.Producer
	topic    string
}

// DeliveryCommand 队列中流转的投递指令
type DeliveryCommand struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// NewKafkaNotificationSender 创建 Kafka 发送器
func NewKafkaNotificationSender(producer *kafka.Producer, topic string) domain.Sender {
	return &KafkaNotificationSender{
		producer: producer,
		topic:    topic,
	}
}

// Send 入队一条投递指令
func (s *KafkaNotificationSender) Send(ctx context.Context, target, subject, content string) error {
	cmd := DeliveryCommand{
		Recipient: target,
		Subject:   subject,
		Body:      content,
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal delivery command: %w", err)
	}

	// 同一收件人固定分区，保证该收件人看到的通知顺序
	return s.producer.PublishToTopic(ctx, s.topic, []byte(cmd.Recipient), payload)
}
