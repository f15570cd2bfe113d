package domain

import (
	"context"
	"time"
)

// OrderEventType определяет тип события заказа для внешних подписчиков.
type OrderEventType string

const (
	OrderEventPlaced          OrderEventType = "order.placed"
	OrderEventQuantityChanged OrderEventType = "order.quantity_changed"
	OrderEventDelivered       OrderEventType = "order.delivered"
	OrderEventCancelled       OrderEventType = "order.cancelled"
	OrderEventStatusChanged   OrderEventType = "order.status_changed"
)

// OrderEvent — снимок заказа в момент изменения.
type OrderEvent struct {
	Type       OrderEventType
	OrderID    string
	CustomerID string
	Customer   string
	Quantity   int
	Status     OrderStatus
	Total      int64
	Occurred   time.Time
}

// NewOrderEvent собирает событие из текущего состояния заказа.
func NewOrderEvent(eventType OrderEventType, order Order) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.Customer.ID,
		Customer:   order.Customer.Name,
		Quantity:   order.Quantity,
		Status:     order.Status,
		Total:      order.Total(),
		Occurred:   order.UpdatedAt,
	}
}

// StatusEventType возвращает тип события для перехода в статус.
func StatusEventType(status OrderStatus) OrderEventType {
	switch status {
	case OrderStatusDelivered:
		return OrderEventDelivered
	case OrderStatusCancelled:
		return OrderEventCancelled
	default:
		return OrderEventStatusChanged
	}
}

// EventPublisher отправляет события заказов наружу (например, в Kafka).
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(event TimelineEvent) error
	List(orderID string) ([]TimelineEvent, error)
}
