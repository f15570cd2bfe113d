package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// OrderDeskClient вызывает API кассы.
type OrderDeskClient struct {
	cc grpc.ClientConnInterface
}

// NewOrderDeskClient оборачивает соединение.
func NewOrderDeskClient(cc grpc.ClientConnInterface) *OrderDeskClient {
	return &OrderDeskClient{cc: cc}
}

func (c *OrderDeskClient) PlaceOrder(ctx context.Context, customerName string, quantity int, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]any{"customer_name": customerName, "quantity": quantity})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(MethodPlaceOrder), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) GetOrder(ctx context.Context, orderID string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(MethodGetOrder), wrapperspb.String(orderID), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) ListCustomerOrders(ctx context.Context, customerID string, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod(MethodListCustomerOrders), wrapperspb.String(customerID), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) ListOrdersByStatus(ctx context.Context, orderStatus string, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod(MethodListOrdersByStatus), wrapperspb.String(orderStatus), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) UpdateQuantity(ctx context.Context, orderID string, quantity int, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]any{"order_id": orderID, "quantity": quantity})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(MethodUpdateQuantity), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) UpdateStatus(ctx context.Context, orderID, orderStatus string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(map[string]any{"order_id": orderID, "status": orderStatus})
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(MethodUpdateStatus), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) CustomerTotals(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(MethodCustomerTotals), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) TopCustomers(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod(MethodTopCustomers), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *OrderDeskClient) GetTimeline(ctx context.Context, orderID string, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, FullMethod(MethodGetTimeline), wrapperspb.String(orderID), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
