package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
)

// OrderStore хранит in-memory реестр клиентов и заказов.
// Заказы хранятся в порядке создания; индекс по ID в нижнем регистре даёт
// поиск без учёта регистра.
type OrderStore struct {
	mu sync.RWMutex

	orders    []*domain.Order
	byOrderID map[string]*domain.Order
	customers map[string]domain.Customer

	orderSeq    int
	customerSeq int
	unitPrice   int64
	now         func() time.Time
}

// StoreOption настраивает хранилище.
type StoreOption func(*OrderStore)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) StoreOption {
	return func(s *OrderStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithUnitPrice задаёт цену бургера для новых заказов.
func WithUnitPrice(price int64) StoreOption {
	return func(s *OrderStore) {
		s.unitPrice = price
	}
}

// NewOrderStore создаёт пустое хранилище со счётчиками, начинающимися с нуля.
func NewOrderStore(opts ...StoreOption) *OrderStore {
	s := &OrderStore{
		byOrderID: make(map[string]*domain.Order),
		customers: make(map[string]domain.Customer),
		unitPrice: domain.BurgerUnitPrice,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func normalizeID(id string) string {
	return strings.ToLower(id)
}

// CreateOrder заводит нового клиента и заказ на него. Количество не проверяется.
func (s *OrderStore) CreateOrder(customerName string, quantity int) domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customerSeq++
	customer := domain.Customer{ID: domain.FormatCustomerID(s.customerSeq), Name: customerName}
	s.customers[normalizeID(customer.ID)] = customer

	s.orderSeq++
	now := s.now()
	order := &domain.Order{
		ID:        domain.FormatOrderID(s.orderSeq),
		Customer:  customer,
		Quantity:  quantity,
		Status:    domain.OrderStatusPreparing,
		UnitPrice: s.unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders = append(s.orders, order)
	s.byOrderID[normalizeID(order.ID)] = order

	return *order
}

// NextIDs возвращает идентификаторы, которые получит следующий CreateOrder.
func (s *OrderStore) NextIDs() (orderID, customerID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.FormatOrderID(s.orderSeq + 1), domain.FormatCustomerID(s.customerSeq + 1)
}

// FindOrder ищет заказ по точному совпадению ID без учёта регистра.
func (s *OrderStore) FindOrder(orderID string) (domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.byOrderID[normalizeID(orderID)]
	if !ok {
		return domain.Order{}, false
	}
	return *order, true
}

// FindOrdersByCustomer возвращает заказы клиента в порядке создания.
func (s *OrderStore) FindOrdersByCustomer(customerID string) []domain.Order {
	want := normalizeID(customerID)
	return s.filter(func(o *domain.Order) bool {
		return normalizeID(o.Customer.ID) == want
	})
}

// OrdersByStatus возвращает заказы с текущим статусом status.
func (s *OrderStore) OrdersByStatus(status domain.OrderStatus) []domain.Order {
	return s.filter(func(o *domain.Order) bool {
		return o.Status == status
	})
}

// AllOrders возвращает копии всех заказов.
func (s *OrderStore) AllOrders() []domain.Order {
	return s.filter(func(*domain.Order) bool { return true })
}

func (s *OrderStore) filter(keep func(*domain.Order) bool) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range s.orders {
		if keep(order) {
			result = append(result, *order)
		}
	}
	return result
}

// UpdateQuantity меняет количество; false, если заказа нет или он не готовится.
func (s *OrderStore) UpdateQuantity(orderID string, quantity int) bool {
	_, err := s.ChangeQuantity(orderID, quantity)
	return err == nil
}

// UpdateStatus меняет статус; false, если заказа нет или он не готовится.
func (s *OrderStore) UpdateStatus(orderID string, status domain.OrderStatus) bool {
	_, err := s.ChangeStatus(orderID, status)
	return err == nil
}

// ChangeQuantity перезаписывает количество заказа в статусе preparing.
func (s *OrderStore) ChangeQuantity(orderID string, quantity int) (domain.Order, error) {
	return s.mutate(orderID, func(o *domain.Order) {
		o.Quantity = quantity
	})
}

// ChangeStatus переводит заказ из preparing. Обратного перехода нет:
// после delivered/cancelled заказ больше не меняется.
func (s *OrderStore) ChangeStatus(orderID string, status domain.OrderStatus) (domain.Order, error) {
	return s.mutate(orderID, func(o *domain.Order) {
		o.Status = status
	})
}

func (s *OrderStore) mutate(orderID string, apply func(*domain.Order)) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.byOrderID[normalizeID(orderID)]
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	if !order.Mutable() {
		return *order, fmt.Errorf("%w: %s is %s", domain.ErrOrderNotMutable, order.ID, order.Status)
	}

	apply(order)
	order.UpdatedAt = s.now()
	return *order, nil
}

// CustomerTotals суммирует итоги заказов по клиентам, включая отменённые.
func (s *OrderStore) CustomerTotals() map[domain.Customer]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[domain.Customer]int64, len(s.customers))
	for _, order := range s.orders {
		totals[order.Customer] += order.Total()
	}
	return totals
}

// CustomersByTotalDescending возвращает клиентов по убыванию суммы.
// При равных суммах сохраняется порядок первого заказа клиента.
func (s *OrderStore) CustomersByTotalDescending() []domain.CustomerTotal {
	s.mu.RLock()
	result := make([]domain.CustomerTotal, 0, len(s.customers))
	index := make(map[domain.Customer]int, len(s.customers))
	for _, order := range s.orders {
		idx, seen := index[order.Customer]
		if !seen {
			idx = len(result)
			index[order.Customer] = idx
			result = append(result, domain.CustomerTotal{Customer: order.Customer})
		}
		result[idx].Total += order.Total()
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	return result
}

// Len возвращает количество заказов (используется в health-check).
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

var _ domain.OrderStore = (*OrderStore)(nil)
