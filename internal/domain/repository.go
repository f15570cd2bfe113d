package domain

// OrderStore описывает требования к хранилищу заказов и клиентов.
// Неудачные изменения в булевых методах не различают «нет заказа» и «заказ завершён»;
// для этого есть ChangeQuantity и ChangeStatus.
type OrderStore interface {
	// CreateOrder заводит нового клиента и заказ в статусе preparing.
	CreateOrder(customerName string, quantity int) Order
	// FindOrder ищет заказ по идентификатору без учёта регистра.
	FindOrder(orderID string) (Order, bool)
	// FindOrdersByCustomer возвращает заказы клиента в порядке создания.
	FindOrdersByCustomer(customerID string) []Order
	// OrdersByStatus возвращает заказы с указанным статусом в порядке создания.
	OrdersByStatus(status OrderStatus) []Order
	// AllOrders возвращает все заказы в порядке создания.
	AllOrders() []Order
	// NextIDs показывает идентификаторы, которые получит следующий заказ, не расходуя их.
	NextIDs() (orderID, customerID string)
	// UpdateQuantity меняет количество, пока заказ готовится.
	UpdateQuantity(orderID string, quantity int) bool
	// UpdateStatus переводит заказ из preparing в другой статус.
	UpdateStatus(orderID string, status OrderStatus) bool
	// ChangeQuantity — то же, что UpdateQuantity, но с причиной отказа.
	ChangeQuantity(orderID string, quantity int) (Order, error)
	// ChangeStatus — то же, что UpdateStatus, но с причиной отказа.
	ChangeStatus(orderID string, status OrderStatus) (Order, error)
	// CustomerTotals суммирует заказы по клиентам независимо от статуса.
	CustomerTotals() map[Customer]int64
	// CustomersByTotalDescending сортирует клиентов по сумме заказов по убыванию.
	CustomersByTotalDescending() []CustomerTotal
}
