package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName задаёт полное имя gRPC-сервиса кассы.
const ServiceName = "burgershop.v1.OrderDesk"

// Имена методов OrderDesk.
const (
	MethodPlaceOrder         = "PlaceOrder"
	MethodGetOrder           = "GetOrder"
	MethodListCustomerOrders = "ListCustomerOrders"
	MethodListOrdersByStatus = "ListOrdersByStatus"
	MethodUpdateQuantity     = "UpdateQuantity"
	MethodUpdateStatus       = "UpdateStatus"
	MethodCustomerTotals     = "CustomerTotals"
	MethodTopCustomers       = "TopCustomers"
	MethodGetTimeline        = "GetTimeline"
)

// FullMethod возвращает путь метода в формате /service/method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// OrderDeskServer описывает серверную часть API кассы.
// Сообщения: well-known types protobuf, поэтому сервис не требует кодогенерации.
type OrderDeskServer interface {
	PlaceOrder(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOrder(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	ListCustomerOrders(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	ListOrdersByStatus(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	UpdateQuantity(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateStatus(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CustomerTotals(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	TopCustomers(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetTimeline(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
}

// unaryHandler строит grpc.MethodHandler для метода с типизированным запросом.
func unaryHandler[Req proto.Message, Resp proto.Message](
	method string,
	newReq func() Req,
	call func(OrderDeskServer, context.Context, Req) (Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OrderDeskServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OrderDeskServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newStruct() *structpb.Struct        { return new(structpb.Struct) }
func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }
func newEmpty() *emptypb.Empty           { return new(emptypb.Empty) }

// OrderDeskServiceDesc содержит описание сервиса для grpc.Server.RegisterService.
var OrderDeskServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderDeskServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: MethodPlaceOrder,
			Handler:    unaryHandler(MethodPlaceOrder, newStruct, OrderDeskServer.PlaceOrder),
		},
		{
			MethodName: MethodGetOrder,
			Handler:    unaryHandler(MethodGetOrder, newString, OrderDeskServer.GetOrder),
		},
		{
			MethodName: MethodListCustomerOrders,
			Handler:    unaryHandler(MethodListCustomerOrders, newString, OrderDeskServer.ListCustomerOrders),
		},
		{
			MethodName: MethodListOrdersByStatus,
			Handler:    unaryHandler(MethodListOrdersByStatus, newString, OrderDeskServer.ListOrdersByStatus),
		},
		{
			MethodName: MethodUpdateQuantity,
			Handler:    unaryHandler(MethodUpdateQuantity, newStruct, OrderDeskServer.UpdateQuantity),
		},
		{
			MethodName: MethodUpdateStatus,
			Handler:    unaryHandler(MethodUpdateStatus, newStruct, OrderDeskServer.UpdateStatus),
		},
		{
			MethodName: MethodCustomerTotals,
			Handler:    unaryHandler(MethodCustomerTotals, newEmpty, OrderDeskServer.CustomerTotals),
		},
		{
			MethodName: MethodTopCustomers,
			Handler:    unaryHandler(MethodTopCustomers, newEmpty, OrderDeskServer.TopCustomers),
		},
		{
			MethodName: MethodGetTimeline,
			Handler:    unaryHandler(MethodGetTimeline, newString, OrderDeskServer.GetTimeline),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterOrderDeskServer регистрирует реализацию на gRPC-сервере.
func RegisterOrderDeskServer(registrar grpc.ServiceRegistrar, srv OrderDeskServer) {
	registrar.RegisterService(&OrderDeskServiceDesc, srv)
}
