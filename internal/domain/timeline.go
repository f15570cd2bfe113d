package domain

import "time"

// Типы событий жизненного цикла заказа.
const (
	TimelineOrderPlaced     = "OrderPlaced"
	TimelineQuantityChanged = "QuantityChanged"
	TimelineStatusChanged   = "StatusChanged"
)

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	ID       string
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}
