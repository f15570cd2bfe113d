package kafka

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
)

// OrderEventPublisher публикует события заказов в заданный Kafka topic.
// Ключ сообщения: ID заказа, чтобы события одного заказа шли в одну партицию.
type OrderEventPublisher struct {
	producer *Producer
	topic    string
}

// NewOrderEventPublisher создаёт паблишер; пустой topic заменяется на TopicOrderEvents.
func NewOrderEventPublisher(producer *Producer, topic string) *OrderEventPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OrderEventPublisher{
		producer: producer,
		topic:    topic,
	}
}

// Publish отправляет событие; отменённый контекст прерывает публикацию до отправки.
func (p *OrderEventPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("%w: kafka publisher is not initialized", domain.ErrEventPublish)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.producer.PublishEvent(p.topic, event.OrderID, NewOrderEventMessage(event)); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrEventPublish, err)
	}
	return nil
}

var _ domain.EventPublisher = (*OrderEventPublisher)(nil)
