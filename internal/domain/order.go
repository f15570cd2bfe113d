package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderStatus описывает жизненный цикл заказа в бургерной.
type OrderStatus string

const (
	// OrderStatusPreparing — заказ принят и готовится; единственный изменяемый статус.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusDelivered — заказ выдан клиенту.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// BurgerUnitPrice — фиксированная цена одного бургера в целых денежных единицах.
const BurgerUnitPrice int64 = 500

// OrderStatuses перечисляет статусы в порядке жизненного цикла.
var OrderStatuses = []OrderStatus{OrderStatusPreparing, OrderStatusDelivered, OrderStatusCancelled}

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPreparing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal сообщает, что из статуса нет переходов.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus разбирает статус без учёта регистра.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
	return status, nil
}

// ParseQuantity проверяет пользовательский ввод количества: только целое число больше нуля.
// Хранилище само количество не валидирует, это ответственность вызывающей стороны.
func ParseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: empty", ErrQuantityInvalid)
	}
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrQuantityInvalid, raw)
	}
	if qty <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrQuantityInvalid)
	}
	return qty, nil
}

// Customer — клиент, оформивший заказ. Не меняется после создания.
type Customer struct {
	ID   string
	Name string
}

// Order — одна покупка бургеров.
type Order struct {
	ID       string
	Customer Customer
	Quantity int
	Status   OrderStatus
	// UnitPrice фиксируется при создании заказа.
	UnitPrice int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total возвращает сумму заказа; всегда вычисляется, а не хранится.
func (o Order) Total() int64 {
	return int64(o.Quantity) * o.UnitPrice
}

// Mutable сообщает, можно ли менять количество и статус заказа.
func (o Order) Mutable() bool {
	return o.Status == OrderStatusPreparing
}

// CustomerTotal — сумма всех заказов клиента.
type CustomerTotal struct {
	Customer Customer
	Total    int64
}

// FormatAmount печатает сумму с двумя знаками после запятой, как на кассе.
func FormatAmount(amount int64) string {
	return fmt.Sprintf("%.2f", float64(amount))
}

// FormatCustomerID формирует идентификатор клиента из порядкового номера.
func FormatCustomerID(seq int) string {
	return fmt.Sprintf("C%03d", seq)
}

// FormatOrderID формирует идентификатор заказа из порядкового номера.
func FormatOrderID(seq int) string {
	return fmt.Sprintf("O%03d", seq)
}
