package arithendpoint

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"

	"github.com/arithkit/arithsvc/pkg/arithservice"
)

// Set collects all of the endpoints that compose an arith service. It's meant
// to be used as a helper struct, to collect all of the endpoints into a single
// parameter.
type Set struct {
	AddEndpoint      endpoint.Endpoint
	SubtractEndpoint endpoint.Endpoint
}

// New returns a Set that wraps the provided server, and wires in all of the
// expected endpoint middlewares via the various parameters.
func New(svc arithservice.Service, logger log.Logger, duration metrics.Histogram, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer) Set {
	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = MakeAddEndpoint(svc)
		addEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 1))(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(addEndpoint)
		addEndpoint = opentracing.TraceServer(otTracer, "Add")(addEndpoint)
		if zipkinTracer != nil {
			addEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Add")(addEndpoint)
		}
		addEndpoint = LoggingMiddleware(log.With(logger, "method", "Add"))(addEndpoint)
		addEndpoint = InstrumentingMiddleware(duration.With("method", "Add"))(addEndpoint)
	}
	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = MakeSubtractEndpoint(svc)
		subtractEndpoint = ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 1))(subtractEndpoint)
		subtractEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{}))(subtractEndpoint)
		subtractEndpoint = opentracing.TraceServer(otTracer, "Subtract")(subtractEndpoint)
		if zipkinTracer != nil {
			subtractEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Subtract")(subtractEndpoint)
		}
		subtractEndpoint = LoggingMiddleware(log.With(logger, "method", "Subtract"))(subtractEndpoint)
		subtractEndpoint = InstrumentingMiddleware(duration.With("method", "Subtract"))(subtractEndpoint)
	}
	return Set{
		AddEndpoint:      addEndpoint,
		SubtractEndpoint: subtractEndpoint,
	}
}

// Add implements the service interface, so Set may be used as a service.
// This is primarily useful in the context of a client library.
func (s Set) Add(ctx context.Context, a, b int64) (int64, error) {
	resp, err := s.AddEndpoint(ctx, AddRequest{A: a, B: b})
	if err != nil {
		return 0, err
	}
	response := resp.(AddResponse)
	return response.V, response.Err
}

// Subtract implements the service interface, so Set may be used as a service.
func (s Set) Subtract(ctx context.Context, a, b int64) (int64, error) {
	resp, err := s.SubtractEndpoint(ctx, SubtractRequest{A: a, B: b})
	if err != nil {
		return 0, err
	}
	response := resp.(SubtractResponse)
	return response.V, response.Err
}

// MakeAddEndpoint constructs an Add endpoint wrapping the service.
func MakeAddEndpoint(s arithservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AddRequest)
		v, err := s.Add(ctx, req.A, req.B)
		return AddResponse{V: v, Err: err}, nil
	}
}

// MakeSubtractEndpoint constructs a Subtract endpoint wrapping the service.
func MakeSubtractEndpoint(s arithservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(SubtractRequest)
		v, err := s.Subtract(ctx, req.A, req.B)
		return SubtractResponse{V: v, Err: err}, nil
	}
}

// compile time assertions for our response types implementing endpoint.Failer.
var (
	_ endpoint.Failer = AddResponse{}
	_ endpoint.Failer = SubtractResponse{}
)

// AddRequest collects the request parameters for the Add method.
type AddRequest struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// AddResponse collects the response values for the Add method.
type AddResponse struct {
	V   int64 `json:"v"`
	Err error `json:"-"` // should be intercepted by Failed/errorEncoder
}

// Failed implements endpoint.Failer.
func (r AddResponse) Failed() error { return r.Err }

// SubtractRequest collects the request parameters for the Subtract method.
type SubtractRequest struct {
	A int64 `json:"a"`
	B int64 `json:"b"`
}

// SubtractResponse collects the response values for the Subtract method.
type SubtractResponse struct {
	V   int64 `json:"v"`
	Err error `json:"-"`
}

// Failed implements endpoint.Failer.
func (r SubtractResponse) Failed() error { return r.Err }
