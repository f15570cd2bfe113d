package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
	"github.com/vladislavdragonenkov/burgershop/internal/metrics"
)

const (
	operationUpdateQuantity = "update_quantity"
	operationUpdateStatus   = "update_status"
)

// ServiceOptions задаёт необязательные зависимости сервиса.
type ServiceOptions struct {
	Logger    *log.Entry
	Publisher domain.EventPublisher
	Metrics   *metrics.OrderMetrics
}

// Option настраивает Service.
type Option func(*ServiceOptions)

// WithLogger задаёт logger сервиса.
func WithLogger(logger *log.Entry) Option {
	return func(opts *ServiceOptions) {
		opts.Logger = logger
	}
}

// WithPublisher задаёт паблишер событий заказов.
func WithPublisher(publisher domain.EventPublisher) Option {
	return func(opts *ServiceOptions) {
		opts.Publisher = publisher
	}
}

// WithMetrics задаёт метрики.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(opts *ServiceOptions) {
		opts.Metrics = m
	}
}

// Service реализует прикладной слой кассы поверх OrderStore: валидирует ввод,
// ведёт timeline, метрики и публикует события заказов.
type Service struct {
	store     domain.OrderStore
	timeline  domain.TimelineRepository
	publisher domain.EventPublisher
	metrics   *metrics.OrderMetrics
	logger    *log.Entry
}

// NewService конструирует сервис с зависимостями.
func NewService(store domain.OrderStore, timeline domain.TimelineRepository, options ...Option) *Service {
	var opts ServiceOptions
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "order-service")
	}

	return &Service{
		store:     store,
		timeline:  timeline,
		publisher: opts.Publisher,
		metrics:   opts.Metrics,
		logger:    logger,
	}
}

// NextIDs показывает идентификаторы следующего заказа.
func (s *Service) NextIDs() (orderID, customerID string) {
	return s.store.NextIDs()
}

// PlaceOrder проверяет ввод и оформляет заказ.
func (s *Service) PlaceOrder(ctx context.Context, customerName string, quantity int) (domain.Order, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return domain.Order{}, domain.ErrCustomerNameRequired
	}
	if quantity <= 0 {
		return domain.Order{}, fmt.Errorf("%w: got %d", domain.ErrQuantityInvalid, quantity)
	}

	order := s.store.CreateOrder(customerName, quantity)

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.Customer.ID,
		"quantity":    order.Quantity,
		"total":       order.Total(),
	}).Info("order placed")

	if s.metrics != nil {
		s.metrics.RecordOrderPlaced(order.Quantity, string(order.Status))
	}
	s.appendTimeline(order, domain.TimelineOrderPlaced, fmt.Sprintf("quantity=%d", order.Quantity))
	s.publish(ctx, domain.NewOrderEvent(domain.OrderEventPlaced, order))

	return order, nil
}

// FindOrder возвращает заказ или ErrOrderNotFound.
func (s *Service) FindOrder(orderID string) (domain.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.Order{}, domain.ErrOrderIDRequired
	}
	order, ok := s.store.FindOrder(orderID)
	if !ok {
		return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
	}
	return order, nil
}

// CustomerOrders возвращает заказы клиента; пустой список, если их нет.
func (s *Service) CustomerOrders(customerID string) ([]domain.Order, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, domain.ErrCustomerIDRequired
	}
	return s.store.FindOrdersByCustomer(customerID), nil
}

// OrdersByStatus возвращает заказы в указанном статусе.
func (s *Service) OrdersByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, status)
	}
	return s.store.OrdersByStatus(status), nil
}

// AllOrders возвращает все заказы в порядке оформления.
func (s *Service) AllOrders() []domain.Order {
	return s.store.AllOrders()
}

// UpdateQuantity меняет количество готовящегося заказа.
func (s *Service) UpdateQuantity(ctx context.Context, orderID string, quantity int) (domain.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.Order{}, domain.ErrOrderIDRequired
	}
	if quantity <= 0 {
		return domain.Order{}, fmt.Errorf("%w: got %d", domain.ErrQuantityInvalid, quantity)
	}

	order, err := s.store.ChangeQuantity(orderID, quantity)
	if err != nil {
		s.rejected(operationUpdateQuantity, orderID, err)
		return order, err
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"quantity": order.Quantity,
		"total":    order.Total(),
	}).Info("order quantity updated")

	if s.metrics != nil {
		s.metrics.RecordQuantityUpdated()
	}
	s.appendTimeline(order, domain.TimelineQuantityChanged, fmt.Sprintf("quantity=%d", order.Quantity))
	s.publish(ctx, domain.NewOrderEvent(domain.OrderEventQuantityChanged, order))

	return order, nil
}

// UpdateStatus переводит заказ из preparing в новый статус.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.Order{}, domain.ErrOrderIDRequired
	}
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: %q", domain.ErrUnknownStatus, status)
	}

	previous := domain.OrderStatusPreparing
	order, err := s.store.ChangeStatus(orderID, status)
	if err != nil {
		s.rejected(operationUpdateStatus, orderID, err)
		return order, err
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   order.Status,
	}).Info("order status updated")

	if s.metrics != nil {
		s.metrics.RecordStatusChanged(string(previous), string(order.Status))
	}
	s.appendTimeline(order, domain.TimelineStatusChanged, fmt.Sprintf("%s -> %s", previous, order.Status))
	s.publish(ctx, domain.NewOrderEvent(domain.StatusEventType(order.Status), order))

	return order, nil
}

// CustomerTotals возвращает суммы заказов по клиентам.
func (s *Service) CustomerTotals() map[domain.Customer]int64 {
	return s.store.CustomerTotals()
}

// TopCustomers возвращает клиентов по убыванию суммы заказов.
func (s *Service) TopCustomers() []domain.CustomerTotal {
	return s.store.CustomersByTotalDescending()
}

// Timeline возвращает историю заказа.
func (s *Service) Timeline(orderID string) ([]domain.TimelineEvent, error) {
	order, err := s.FindOrder(orderID)
	if err != nil {
		return nil, err
	}
	if s.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}
	return s.timeline.List(order.ID)
}

func (s *Service) rejected(operation, orderID string, err error) {
	reason := metrics.RejectReasonNotFound
	if errors.Is(err, domain.ErrOrderNotMutable) {
		reason = metrics.RejectReasonNotMutable
	}

	s.logger.WithError(err).WithFields(log.Fields{
		"operation": operation,
		"order_id":  orderID,
	}).Warn("order change rejected")

	if s.metrics != nil {
		s.metrics.RecordRejected(operation, reason)
	}
}

func (s *Service) appendTimeline(order domain.Order, eventType, reason string) {
	if s.timeline == nil {
		return
	}
	event := domain.TimelineEvent{
		OrderID:  order.ID,
		Type:     eventType,
		Reason:   reason,
		Occurred: order.UpdatedAt,
	}
	if err := s.timeline.Append(event); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to append timeline event")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordTimelineEvent()
	}
}

// publish не влияет на результат операции: заказ уже изменён в хранилище.
func (s *Service) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.Publish(ctx, event)
	if s.metrics != nil {
		s.metrics.RecordEventPublished(err == nil)
	}
	if err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"order_id":   event.OrderID,
			"event_type": event.Type,
		}).Warn("failed to publish order event")
	}
}
