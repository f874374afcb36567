package arithtransport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	stdzipkin "github.com/openzipkin/zipkin-go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/tracing/zipkin"
	httptransport "github.com/go-kit/kit/transport/http"

	"github.com/arithkit/arithsvc/pkg/arithendpoint"
	"github.com/arithkit/arithsvc/pkg/arithservice"
)

// NewHTTPHandler returns an HTTP handler that makes a set of endpoints
// available on predefined paths.
func NewHTTPHandler(endpoints arithendpoint.Set, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(errorEncoder),
		httptransport.ServerErrorLogger(logger),
	}

	if zipkinTracer != nil {
		// Zipkin HTTP Server Trace can either be instantiated per endpoint
		// with a provided operation name or a global tracing service can be
		// instantiated without an operation name and fed to each Go kit
		// endpoint as ServerOption.
		options = append(options, zipkin.HTTPServerTrace(zipkinTracer))
	}

	m := mux.NewRouter()
	m.Methods("POST").Path("/add").Handler(httptransport.NewServer(
		endpoints.AddEndpoint,
		decodeHTTPAddRequest,
		encodeHTTPGenericResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Add", logger)))...,
	))
	m.Methods("POST").Path("/subtract").Handler(httptransport.NewServer(
		endpoints.SubtractEndpoint,
		decodeHTTPSubtractRequest,
		encodeHTTPGenericResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(otTracer, "Subtract", logger)))...,
	))
	return m
}

// NewHTTPClient returns an ArithService backed by an HTTP server living at the
// remote instance. We expect instance to come from a service discovery system,
// so likely of the form "host:port". We bake-in certain middlewares,
// implementing the client library pattern.
func NewHTTPClient(instance string, otTracer stdopentracing.Tracer, zipkinTracer *stdzipkin.Tracer, logger log.Logger) (arithservice.Service, error) {
	// Quickly sanitize the instance string.
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	u, err := url.Parse(instance)
	if err != nil {
		return nil, err
	}

	// We construct a single ratelimiter middleware, to limit the total
	// outgoing QPS from this client to all methods on the remote instance. We
	// also construct per-endpoint circuitbreaker middlewares to demonstrate
	// how that's done, although they could easily be combined into a single
	// breaker for the entire remote instance, too.
	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	var options []httptransport.ClientOption

	if zipkinTracer != nil {
		// Zipkin HTTP Client Trace can either be instantiated per endpoint
		// with a provided operation name or a global tracing client can be
		// instantiated without an operation name and fed to each Go kit
		// endpoint as ClientOption. In the latter case, the operation name
		// will be the endpoint's http method.
		options = append(options, zipkin.HTTPClientTrace(zipkinTracer))
	}

	// Each individual endpoint is an http/transport.Client (which implements
	// endpoint.Endpoint) that gets wrapped with various middlewares. If you
	// made your own client library, you'd do this work there, so your server
	// could rely on a consistent set of client behavior.
	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = httptransport.NewClient(
			"POST",
			copyURL(u, "/add"),
			encodeHTTPGenericRequest,
			decodeHTTPAddResponse,
			options...,
		).Endpoint()
		addEndpoint = opentracing.TraceClient(otTracer, "Add")(addEndpoint)
		if zipkinTracer != nil {
			addEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Add")(addEndpoint)
		}
		addEndpoint = limiter(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
	}

	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = httptransport.NewClient(
			"POST",
			copyURL(u, "/subtract"),
			encodeHTTPGenericRequest,
			decodeHTTPSubtractResponse,
			options...,
		).Endpoint()
		subtractEndpoint = opentracing.TraceClient(otTracer, "Subtract")(subtractEndpoint)
		if zipkinTracer != nil {
			subtractEndpoint = zipkin.TraceEndpoint(zipkinTracer, "Subtract")(subtractEndpoint)
		}
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
	}, nil
}

func copyURL(base *url.URL, path string) (next *url.URL) {
	n := *base
	n.Path = path
	next = &n
	return
}

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	w.WriteHeader(err2code(err))
	json.NewEncoder(w).Encode(errorWrapper{Error: err.Error()})
}

func err2code(err error) int {
	switch err {
	case ratelimit.ErrLimited:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func errorDecoder(r *http.Response) error {
	var w errorWrapper
	if err := json.NewDecoder(r.Body).Decode(&w); err != nil {
		return err
	}
	return errors.New(w.Error)
}

type errorWrapper struct {
	Error string `json:"error"`
}

// decodeHTTPAddRequest is a transport/http.DecodeRequestFunc that decodes a
// JSON-encoded add request from the HTTP request body. Primarily useful in a
// server.
func decodeHTTPAddRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req arithendpoint.AddRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

// decodeHTTPSubtractRequest is a transport/http.DecodeRequestFunc that decodes
// a JSON-encoded subtract request from the HTTP request body. Primarily useful
// in a server.
func decodeHTTPSubtractRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req arithendpoint.SubtractRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}

// decodeHTTPAddResponse is a transport/http.DecodeResponseFunc that decodes a
// JSON-encoded add response from the HTTP response body. If the response has a
// non-200 status code, we will interpret that as an error and attempt to decode
// the specific error message from the response body. Primarily useful in a
// client.
func decodeHTTPAddResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode != http.StatusOK {
		return nil, errors.New(r.Status)
	}
	var resp arithendpoint.AddResponse
	err := json.NewDecoder(r.Body).Decode(&resp)
	return resp, err
}

// decodeHTTPSubtractResponse is a transport/http.DecodeResponseFunc that
// decodes a JSON-encoded subtract response from the HTTP response body. If the
// response has a non-200 status code, we will interpret that as an error and
// attempt to decode the specific error message from the response body.
// Primarily useful in a client.
func decodeHTTPSubtractResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode != http.StatusOK {
		return nil, errors.New(r.Status)
	}
	var resp arithendpoint.SubtractResponse
	err := json.NewDecoder(r.Body).Decode(&resp)
	return resp, err
}

// encodeHTTPGenericRequest is a transport/http.EncodeRequestFunc that
// JSON-encodes any request to the request body. Primarily useful in a client.
func encodeHTTPGenericRequest(_ context.Context, r *http.Request, request interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return err
	}
	r.Body = ioutil.NopCloser(&buf)
	return nil
}

// encodeHTTPGenericResponse is a transport/http.EncodeResponseFunc that encodes
// the response as JSON to the response writer. Primarily useful in a server.
func encodeHTTPGenericResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		errorEncoder(ctx, f.Failed(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}
