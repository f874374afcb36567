package arithtransport

import (
	"context"
	"errors"
	"time"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	grpctransport "github.com/go-kit/kit/transport/grpc"

	"github.com/arithkit/arithsvc/pb"
	"github.com/arithkit/arithsvc/pkg/arithendpoint"
	"github.com/arithkit/arithsvc/pkg/arithservice"
)

type grpcServer struct {
	add      grpctransport.Handler
	subtract grpctransport.Handler
}

// NewGRPCServer makes a set of endpoints available as a gRPC ArithServer.
func NewGRPCServer(endpoints arithendpoint.Set, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) pb.ArithServer {
	options := []grpctransport.ServerOption{
		grpctransport.ServerErrorLogger(logger),
	}

	if zipkinTracer != nil {
		// Zipkin GRPC Server Trace can either be instantiated per gRPC method
		// with a provided operation name or a global tracing service can be
		// instantiated without an operation name and fed to each Go kit gRPC
		// server as ServerOption.
		options = append(options, zipkin.GRPCServerTrace(zipkinTracer))
	}

	return &grpcServer{
		add: grpctransport.NewServer(
			endpoints.AddEndpoint,
			decodeGRPCAddRequest,
			encodeGRPCAddResponse,
			append(options, grpctransport.ServerBefore(opentracing.GRPCToContext(otTracer, "Add", logger)))...,
		),
		subtract: grpctransport.NewServer(
			endpoints.SubtractEndpoint,
			decodeGRPCSubtractRequest,
			encodeGRPCSubtractResponse,
			append(options, grpctransport.ServerBefore(opentracing.GRPCToContext(otTracer, "Subtract", logger)))...,
		),
	}
}

func (s *grpcServer) Add(ctx context.Context, req *pb.AddRequest) (*pb.AddReply, error) {
	_, rep, err := s.add.ServeGRPC(ctx, req)
	if err != nil {
		return nil, err
	}
	return rep.(*pb.AddReply), nil
}

func (s *grpcServer) Subtract(ctx context.Context, req *pb.SubtractRequest) (*pb.SubtractReply, error) {
	_, rep, err := s.subtract.ServeGRPC(ctx, req)
	if err != nil {
		return nil, err
	}
	return rep.(*pb.SubtractReply), nil
}

// NewGRPCClient returns an ArithService backed by a gRPC server at the other
// end of the conn. The caller is responsible for constructing the conn, and
// eventually closing the underlying transport. We bake-in certain middlewares,
// implementing the client library pattern.
func NewGRPCClient(conn *grpc.ClientConn, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) arithservice.Service {
	// We construct a single ratelimiter middleware, to limit the total
	// outgoing QPS from this client to all methods on the remote instance. We
	// also construct per-endpoint circuitbreaker middlewares to demonstrate
	// how that's done, although they could easily be combined into a single
	// breaker for the entire remote instance, too.
	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	var options []grpctransport.ClientOption

	if zipkinTracer != nil {
		options = append(options, zipkin.GRPCClientTrace(zipkinTracer))
	}

	// Each individual endpoint is an grpc/transport.Client (which implements
	// endpoint.Endpoint) that gets wrapped with various middlewares. If you
	// made your own client library, you'd do this work there, so your server
	// could rely on a consistent set of client behavior.
	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = grpctransport.NewClient(
			conn,
			"pb.Arith",
			"Add",
			encodeGRPCAddRequest,
			decodeGRPCAddResponse,
			pb.AddReply{},
			append(options, grpctransport.ClientBefore(opentracing.ContextToGRPC(otTracer, logger)))...,
		).Endpoint()
		addEndpoint = opentracing.TraceClient(otTracer, "Add")(addEndpoint)
		addEndpoint = limiter(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
	}

	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = grpctransport.NewClient(
			conn,
			"pb.Arith",
			"Subtract",
			encodeGRPCSubtractRequest,
			decodeGRPCSubtractResponse,
			pb.SubtractReply{},
			append(options, grpctransport.ClientBefore(opentracing.ContextToGRPC(otTracer, logger)))...,
		).Endpoint()
		subtractEndpoint = opentracing.TraceClient(otTracer, "Subtract")(subtractEndpoint)
		subtractEndpoint = limiter(subtractEndpoint)
		subtractEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Subtract",
			Timeout: 30 * time.Second,
		}))(subtractEndpoint)
	}

	// Returning the endpoint.Set as a service.Service relies on the
	// endpoint.Set implementing the Service methods. That's just a simple bit
	// of glue code.
	return arithendpoint.Set{
		AddEndpoint:      addEndpoint,
		SubtractEndpoint: subtractEndpoint,
	}
}

// decodeGRPCAddRequest is a transport/grpc.DecodeRequestFunc that converts a
// gRPC add request to a user-domain add request. Primarily useful in a server.
func decodeGRPCAddRequest(_ context.Context, grpcReq interface{}) (interface{}, error) {
	req := grpcReq.(*pb.AddRequest)
	return arithendpoint.AddRequest{A: req.A, B: req.B}, nil
}

// decodeGRPCSubtractRequest is a transport/grpc.DecodeRequestFunc that
// converts a gRPC subtract request to a user-domain subtract request.
// Primarily useful in a server.
func decodeGRPCSubtractRequest(_ context.Context, grpcReq interface{}) (interface{}, error) {
	req := grpcReq.(*pb.SubtractRequest)
	return arithendpoint.SubtractRequest{A: req.A, B: req.B}, nil
}

// decodeGRPCAddResponse is a transport/grpc.DecodeResponseFunc that converts a
// gRPC add reply to a user-domain add response. Primarily useful in a client.
func decodeGRPCAddResponse(_ context.Context, grpcReply interface{}) (interface{}, error) {
	reply := grpcReply.(*pb.AddReply)
	return arithendpoint.AddResponse{V: reply.V, Err: str2err(reply.Err)}, nil
}

// decodeGRPCSubtractResponse is a transport/grpc.DecodeResponseFunc that
// converts a gRPC subtract reply to a user-domain subtract response. Primarily
// useful in a client.
func decodeGRPCSubtractResponse(_ context.Context, grpcReply interface{}) (interface{}, error) {
	reply := grpcReply.(*pb.SubtractReply)
	return arithendpoint.SubtractResponse{V: reply.V, Err: str2err(reply.Err)}, nil
}

// encodeGRPCAddResponse is a transport/grpc.EncodeResponseFunc that converts a
// user-domain add response to a gRPC add reply. Primarily useful in a server.
func encodeGRPCAddResponse(_ context.Context, response interface{}) (interface{}, error) {
	resp := response.(arithendpoint.AddResponse)
	return &pb.AddReply{V: resp.V, Err: err2str(resp.Err)}, nil
}

// encodeGRPCSubtractResponse is a transport/grpc.EncodeResponseFunc that
// converts a user-domain subtract response to a gRPC subtract reply. Primarily
// useful in a server.
func encodeGRPCSubtractResponse(_ context.Context, response interface{}) (interface{}, error) {
	resp := response.(arithendpoint.SubtractResponse)
	return &pb.SubtractReply{V: resp.V, Err: err2str(resp.Err)}, nil
}

// encodeGRPCAddRequest is a transport/grpc.EncodeRequestFunc that converts a
// user-domain add request to a gRPC add request. Primarily useful in a client.
func encodeGRPCAddRequest(_ context.Context, request interface{}) (interface{}, error) {
	req := request.(arithendpoint.AddRequest)
	return &pb.AddRequest{A: req.A, B: req.B}, nil
}

// encodeGRPCSubtractRequest is a transport/grpc.EncodeRequestFunc that
// converts a user-domain subtract request to a gRPC subtract request.
// Primarily useful in a client.
func encodeGRPCSubtractRequest(_ context.Context, request interface{}) (interface{}, error) {
	req := request.(arithendpoint.SubtractRequest)
	return &pb.SubtractRequest{A: req.A, B: req.B}, nil
}

// These annoying helper functions are required to translate Go error types to
// and from strings, which is the type we use in our IDLs to represent errors.
// There is special casing to treat empty strings as nil errors.

func str2err(s string) error {
	if s == "" {
		return nil
	}
	return errors.New(s)
}

func err2str(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
