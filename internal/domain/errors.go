package domain

import "errors"

var (
	// ErrOrderNotFound возвращается, если заказа с таким идентификатором нет.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotMutable — заказ уже вышел из статуса preparing и больше не меняется.
	ErrOrderNotMutable = errors.New("order is not in preparing status")
	// Ошибка некорректного количества (не число или <= 0).
	ErrQuantityInvalid = errors.New("quantity must be a positive integer")
	// Ошибка пустого имени клиента.
	ErrCustomerNameRequired = errors.New("customer name is required")
	// Ошибка отсутствующего идентификатора заказа.
	ErrOrderIDRequired = errors.New("order_id is required")
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerIDRequired = errors.New("customer_id is required")
	// ErrUnknownStatus возвращается при разборе неизвестного статуса.
	ErrUnknownStatus = errors.New("unknown order status")
	// ErrEventPublish — ошибка публикации события заказа во внешний брокер.
	ErrEventPublish = errors.New("order event publish failed")
)

// IsNotFound проверяет, является ли ошибка отсутствием заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsNotMutable проверяет, является ли ошибка попыткой изменить завершённый заказ.
func IsNotMutable(err error) bool {
	return errors.Is(err, ErrOrderNotMutable)
}

// IsInvalidInput проверяет, относится ли ошибка к некорректному вводу.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrQuantityInvalid) ||
		errors.Is(err, ErrCustomerNameRequired) ||
		errors.Is(err, ErrOrderIDRequired) ||
		errors.Is(err, ErrCustomerIDRequired) ||
		errors.Is(err, ErrUnknownStatus)
}
