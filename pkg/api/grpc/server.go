// Package grpcapi implements the gRPC Calculator service, giving RPC clients
// the same evaluation semantics as the REST API.
package grpcapi

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/numeral"
	"github.com/lemonberrylabs/numcalc/pkg/store"
	"github.com/lemonberrylabs/numcalc/pkg/types"
)

// errorDomain is the ErrorInfo domain attached to evaluation failures.
const errorDomain = "numcalc"

// Server implements the Calculator gRPC service.
type Server struct {
	store  *store.Store
	logger *zap.Logger
	grpc   *grpc.Server
}

// New creates a new gRPC server wrapping the given store. logger may be nil.
func New(s *store.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &Server{
		store:  s,
		logger: logger,
	}

	gs := grpc.NewServer(grpc.UnaryInterceptor(srv.logUnary))
	RegisterCalculatorServer(gs, srv)
	srv.grpc = gs

	return srv
}

// Serve starts listening on the given address and serves gRPC requests.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return s.grpc.Serve(lis)
}

// GracefulStop gracefully stops the gRPC server.
func (s *Server) GracefulStop() {
	s.grpc.GracefulStop()
}

// Evaluate implements CalculatorServer.
func (s *Server) Evaluate(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if strings.TrimSpace(req.GetValue()) == "" {
		return nil, status.Error(codes.InvalidArgument, "expression is required")
	}

	res, err := expr.EvaluateDetailed(req.GetValue())
	s.store.Record(req.GetValue(), "grpc", res, err)
	if err != nil {
		return nil, calcStatus(err)
	}
	return wrapperspb.String(res.Output), nil
}

// Convert implements CalculatorServer.
func (s *Server) Convert(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	value := req.GetValue()

	var arabic int
	var roman string
	if n, err := strconv.Atoi(value); err == nil {
		if n < 1 || n > numeral.MaxRoman {
			return nil, status.Errorf(codes.OutOfRange, "value must be between 1 and %d", numeral.MaxRoman)
		}
		arabic, roman = n, numeral.FromInt(n)
	} else {
		if value == "" || expr.Classify(value) != expr.KindRoman {
			return nil, status.Errorf(codes.InvalidArgument, "%q is neither an integer nor a Roman numeral", value)
		}
		n, err := numeral.ToIntStrict(value)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		arabic, roman = n, value
	}

	out, err := structpb.NewStruct(map[string]interface{}{
		"arabic": arabic,
		"roman":  roman,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build response: %v", err)
	}
	return out, nil
}

func (s *Server) logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.Info("grpc request failed",
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Error(err))
		return resp, err
	}
	s.logger.Debug("grpc request", zap.String("method", info.FullMethod))
	return resp, nil
}

// calcStatus maps an evaluation error to an InvalidArgument status carrying
// the error kind as ErrorInfo.
func calcStatus(err error) error {
	kind := types.KindOf(err)
	if kind == "" {
		return status.Error(codes.Internal, err.Error())
	}
	st := status.New(codes.InvalidArgument, types.Message(err))
	detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: string(kind),
		Domain: errorDomain,
	})
	if derr != nil {
		return st.Err()
	}
	return detailed.Err()
}

// KindFromError extracts the evaluation error kind from a status returned
// by the Calculator service. It returns "" if none is attached.
func KindFromError(err error) types.ErrorKind {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == errorDomain {
			return types.ErrorKind(info.GetReason())
		}
	}
	return ""
}
