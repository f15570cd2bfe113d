package grpcsvc

import (
	"context"
	"errors"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
	"github.com/vladislavdragonenkov/burgershop/internal/service/orders"
)

// OrderDesk реализует gRPC API кассы поверх сервиса заказов.
type OrderDesk struct {
	svc    *orders.Service
	logger *log.Entry
}

// NewOrderDesk конструирует gRPC-обработчик.
func NewOrderDesk(svc *orders.Service, logger *log.Entry) *OrderDesk {
	if logger == nil {
		logger = log.WithField("component", "order-desk")
	}
	return &OrderDesk{svc: svc, logger: logger}
}

// PlaceOrder оформляет заказ: {"customer_name": string, "quantity": number}.
func (d *OrderDesk) PlaceOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	quantity, err := intField(req, "quantity")
	if err != nil {
		return nil, err
	}

	order, err := d.svc.PlaceOrder(ctx, stringField(req, "customer_name"), quantity)
	if err != nil {
		return nil, d.toStatus(err, MethodPlaceOrder)
	}
	return orderToStruct(order)
}

// GetOrder возвращает заказ по ID без учёта регистра.
func (d *OrderDesk) GetOrder(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	order, err := d.svc.FindOrder(req.GetValue())
	if err != nil {
		return nil, d.toStatus(err, MethodGetOrder)
	}
	return orderToStruct(order)
}

// ListCustomerOrders возвращает заказы клиента в порядке оформления.
func (d *OrderDesk) ListCustomerOrders(_ context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	list, err := d.svc.CustomerOrders(req.GetValue())
	if err != nil {
		return nil, d.toStatus(err, MethodListCustomerOrders)
	}
	return ordersToList(list)
}

// ListOrdersByStatus возвращает заказы в статусе (без учёта регистра).
func (d *OrderDesk) ListOrdersByStatus(_ context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	orderStatus, err := domain.ParseOrderStatus(req.GetValue())
	if err != nil {
		return nil, d.toStatus(err, MethodListOrdersByStatus)
	}
	list, err := d.svc.OrdersByStatus(orderStatus)
	if err != nil {
		return nil, d.toStatus(err, MethodListOrdersByStatus)
	}
	return ordersToList(list)
}

// UpdateQuantity меняет количество: {"order_id": string, "quantity": number}.
func (d *OrderDesk) UpdateQuantity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	quantity, err := intField(req, "quantity")
	if err != nil {
		return nil, err
	}
	order, err := d.svc.UpdateQuantity(ctx, stringField(req, "order_id"), quantity)
	if err != nil {
		return nil, d.toStatus(err, MethodUpdateQuantity)
	}
	return orderToStruct(order)
}

// UpdateStatus меняет статус: {"order_id": string, "status": string}.
func (d *OrderDesk) UpdateStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	orderStatus, err := domain.ParseOrderStatus(stringField(req, "status"))
	if err != nil {
		return nil, d.toStatus(err, MethodUpdateStatus)
	}
	order, err := d.svc.UpdateStatus(ctx, stringField(req, "order_id"), orderStatus)
	if err != nil {
		return nil, d.toStatus(err, MethodUpdateStatus)
	}
	return orderToStruct(order)
}

// CustomerTotals возвращает суммы по клиентам: {"C001": {"customer_name": ..., "total": ...}}.
func (d *OrderDesk) CustomerTotals(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	fields := make(map[string]any)
	for customer, total := range d.svc.CustomerTotals() {
		fields[customer.ID] = map[string]any{
			"customer_name": customer.Name,
			"total":         total,
		}
	}
	result, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode customer totals")
	}
	return result, nil
}

// TopCustomers возвращает клиентов по убыванию суммы заказов.
func (d *OrderDesk) TopCustomers(_ context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	ranked := d.svc.TopCustomers()
	items := make([]any, 0, len(ranked))
	for _, entry := range ranked {
		items = append(items, map[string]any{
			"customer_id":   entry.Customer.ID,
			"customer_name": entry.Customer.Name,
			"total":         entry.Total,
		})
	}
	result, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode customer ranking")
	}
	return result, nil
}

// GetTimeline возвращает историю заказа.
func (d *OrderDesk) GetTimeline(_ context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	events, err := d.svc.Timeline(req.GetValue())
	if err != nil {
		return nil, d.toStatus(err, MethodGetTimeline)
	}
	items := make([]any, 0, len(events))
	for _, event := range events {
		items = append(items, map[string]any{
			"id":          event.ID,
			"type":        event.Type,
			"reason":      event.Reason,
			"occurred_at": event.Occurred.Format(time.RFC3339Nano),
		})
	}
	result, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode timeline")
	}
	return result, nil
}

// toStatus переводит доменные ошибки в коды gRPC.
func (d *OrderDesk) toStatus(err error, method string) error {
	entry := d.logger.WithError(err).WithField("method", method)

	switch {
	case domain.IsInvalidInput(err):
		entry.Debug("invalid request")
		return status.Error(codes.InvalidArgument, err.Error())
	case domain.IsNotFound(err):
		entry.Debug("order not found")
		return status.Error(codes.NotFound, err.Error())
	case domain.IsNotMutable(err):
		entry.Debug("order is not mutable")
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		entry.Error("request failed")
		return status.Error(codes.Internal, "internal error")
	}
}

func stringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

// intField читает целое число; дробные и отсутствующие значения отклоняются.
func intField(req *structpb.Struct, name string) (int, error) {
	value, ok := req.GetFields()[name]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s is required", name)
	}
	number, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be a number", name)
	}
	if number.NumberValue != math.Trunc(number.NumberValue) ||
		number.NumberValue > math.MaxInt32 || number.NumberValue < math.MinInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer", name)
	}
	return int(number.NumberValue), nil
}

func orderFields(order domain.Order) map[string]any {
	return map[string]any{
		"order_id":      order.ID,
		"customer_id":   order.Customer.ID,
		"customer_name": order.Customer.Name,
		"quantity":      order.Quantity,
		"status":        string(order.Status),
		"unit_price":    order.UnitPrice,
		"total":         order.Total(),
		"created_at":    order.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":    order.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func orderToStruct(order domain.Order) (*structpb.Struct, error) {
	result, err := structpb.NewStruct(orderFields(order))
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode order")
	}
	return result, nil
}

func ordersToList(list []domain.Order) (*structpb.ListValue, error) {
	items := make([]any, 0, len(list))
	for _, order := range list {
		items = append(items, orderFields(order))
	}
	result, err := structpb.NewList(items)
	if err != nil {
		return nil, status.Error(codes.Internal, "failed to encode orders")
	}
	return result, nil
}

var _ OrderDeskServer = (*OrderDesk)(nil)
