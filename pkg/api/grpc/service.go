package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "numcalc.v1.Calculator"

const (
	evaluateMethod = "/" + ServiceName + "/Evaluate"
	convertMethod  = "/" + ServiceName + "/Convert"
)

// CalculatorServer is the server API for the Calculator service. Messages are
// protobuf well-known types, so the service needs no generated code:
//
//	service Calculator {
//	  rpc Evaluate(google.protobuf.StringValue) returns (google.protobuf.StringValue);
//	  rpc Convert(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	}
type CalculatorServer interface {
	Evaluate(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Convert(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// RegisterCalculatorServer registers srv on s.
func RegisterCalculatorServer(s grpc.ServiceRegistrar, srv CalculatorServer) {
	s.RegisterService(&calculatorServiceDesc, srv)
}

var calculatorServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CalculatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "Convert", Handler: convertHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "numcalc/v1/calculator.proto",
}

func evaluateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: evaluateMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServer).Evaluate(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func convertHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CalculatorServer).Convert(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: convertMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CalculatorServer).Convert(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Client is a client for the Calculator service.
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps an established connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Evaluate evaluates expression remotely and returns the formatted result.
func (c *Client) Evaluate(ctx context.Context, expression string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, evaluateMethod, wrapperspb.String(expression), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}

// Convert converts between Arabic and Roman notation remotely.
func (c *Client) Convert(ctx context.Context, value string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, convertMethod, wrapperspb.String(value), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
