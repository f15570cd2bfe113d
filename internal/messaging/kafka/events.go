package kafka

import (
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
)

// TopicOrderEvents задаёт topic по умолчанию для событий заказов.
const TopicOrderEvents = "burgershop.order.events"

// OrderEventMessage описывает JSON-представление события заказа в Kafka.
type OrderEventMessage struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	OrderID      string    `json:"order_id"`
	CustomerID   string    `json:"customer_id"`
	CustomerName string    `json:"customer_name"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	Total        int64     `json:"total"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// NewOrderEventMessage создаёт сообщение с новым event_id.
func NewOrderEventMessage(event domain.OrderEvent) *OrderEventMessage {
	occurred := event.Occurred
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return &OrderEventMessage{
		EventID:      uuid.NewString(),
		EventType:    string(event.Type),
		OrderID:      event.OrderID,
		CustomerID:   event.CustomerID,
		CustomerName: event.Customer,
		Quantity:     event.Quantity,
		Status:       string(event.Status),
		Total:        event.Total,
		OccurredAt:   occurred,
	}
}
