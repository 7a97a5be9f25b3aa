// Package greeterv1 は greeter.v1.GreeterService の gRPC バインディングです。
// メッセージには protobuf の well-known types を利用します。
package greeterv1

import (
	context "context"

	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
	emptypb "google.golang.org/protobuf/types/known/emptypb"
	structpb "google.golang.org/protobuf/types/known/structpb"
	wrapperspb "google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	GreeterService_SayHello_FullMethodName       = "/greeter.v1.GreeterService/SayHello"
	GreeterService_GetDefaultUser_FullMethodName = "/greeter.v1.GreeterService/GetDefaultUser"
	GreeterService_ListGreetings_FullMethodName  = "/greeter.v1.GreeterService/ListGreetings"
)

// GreeterServiceClient は GreeterService のクライアント API です。
type GreeterServiceClient interface {
	SayHello(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetDefaultUser(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	ListGreetings(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type greeterServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewGreeterServiceClient は GreeterServiceClient を生成します。
func NewGreeterServiceClient(cc grpc.ClientConnInterface) GreeterServiceClient {
	return &greeterServiceClient{cc}
}

func (c *greeterServiceClient) SayHello(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GreeterService_SayHello_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *greeterServiceClient) GetDefaultUser(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GreeterService_GetDefaultUser_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *greeterServiceClient) ListGreetings(ctx context.Context, in *wrapperspb.UInt32Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, GreeterService_ListGreetings_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GreeterServiceServer は GreeterService のサーバー API です。
// 実装は前方互換のため UnimplementedGreeterServiceServer を埋め込む必要があります。
type GreeterServiceServer interface {
	SayHello(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	GetDefaultUser(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	ListGreetings(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error)
	mustEmbedUnimplementedGreeterServiceServer()
}

// UnimplementedGreeterServiceServer は全メソッドで Unimplemented を返します。
type UnimplementedGreeterServiceServer struct{}

func (UnimplementedGreeterServiceServer) SayHello(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SayHello not implemented")
}

func (UnimplementedGreeterServiceServer) GetDefaultUser(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDefaultUser not implemented")
}

func (UnimplementedGreeterServiceServer) ListGreetings(context.Context, *wrapperspb.UInt32Value) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListGreetings not implemented")
}

func (UnimplementedGreeterServiceServer) mustEmbedUnimplementedGreeterServiceServer() {}

// RegisterGreeterServiceServer は srv を gRPC サーバーへ登録します。
func RegisterGreeterServiceServer(s grpc.ServiceRegistrar, srv GreeterServiceServer) {
	s.RegisterService(&GreeterService_ServiceDesc, srv)
}

func _GreeterService_SayHello_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GreeterServiceServer).SayHello(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GreeterService_SayHello_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GreeterServiceServer).SayHello(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _GreeterService_GetDefaultUser_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GreeterServiceServer).GetDefaultUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GreeterService_GetDefaultUser_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GreeterServiceServer).GetDefaultUser(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _GreeterService_ListGreetings_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.UInt32Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GreeterServiceServer).ListGreetings(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GreeterService_ListGreetings_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GreeterServiceServer).ListGreetings(ctx, req.(*wrapperspb.UInt32Value))
	}
	return interceptor(ctx, in, info, handler)
}

// GreeterService_ServiceDesc は greeter.v1.GreeterService の grpc.ServiceDesc です。
var GreeterService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "greeter.v1.GreeterService",
	HandlerType: (*GreeterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SayHello",
			Handler:    _GreeterService_SayHello_Handler,
		},
		{
			MethodName: "GetDefaultUser",
			Handler:    _GreeterService_GetDefaultUser_Handler,
		},
		{
			MethodName: "ListGreetings",
			Handler:    _GreeterService_ListGreetings_Handler,
		},
	},
	Streams: []grpc.StreamDesc{},
}
