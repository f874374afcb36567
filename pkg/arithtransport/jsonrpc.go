package arithtransport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/transport/http/jsonrpc"

	"github.com/arithkit/arithsvc/pkg/arithendpoint"
	"github.com/arithkit/arithsvc/pkg/arithservice"
)

// NewJSONRPCHandler returns a JSON RPC Server/Handler that can be passed to
// http.Handle().
func NewJSONRPCHandler(endpoints arithendpoint.Set, logger log.Logger) *jsonrpc.Server {
	handler := jsonrpc.NewServer(
		makeEndpointCodecMap(endpoints),
		jsonrpc.ServerErrorLogger(logger),
	)
	return handler
}

// NewJSONRPCClient returns an ArithService backed by a JSON RPC over HTTP
// server living at the remote instance. We expect instance to come from a
// service discovery system, so likely of the form "host:port". We bake-in
// certain middlewares, implementing the client library pattern.
func NewJSONRPCClient(instance string, logger log.Logger) (arithservice.Service, error) {
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	tgt, err := url.Parse(instance)
	if err != nil {
		return nil, err
	}

	// As with the other client constructors, one limiter governs the whole
	// client, and each endpoint gets its own circuit breaker.
	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = jsonrpc.NewClient(
			tgt,
			"add",
			jsonrpc.ClientRequestEncoder(encodeJSONRPCAddRequest),
			jsonrpc.ClientResponseDecoder(decodeJSONRPCAddResponse),
		).Endpoint()
		addEndpoint = limiter(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
	}

	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = jsonrpc.NewClient(
			tgt,
			"subtract",
			jsonrpc.ClientRequestEncoder(encodeJSONRPCSubtractRequest),
			jsonrpc.ClientResponseDecoder(decodeJSONRPCSubtractResponse),
		).Endpoint()
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

// makeEndpointCodecMap returns a codec map configured for the arithsvc.
func makeEndpointCodecMap(endpoints arithendpoint.Set) jsonrpc.EndpointCodecMap {
	return jsonrpc.EndpointCodecMap{
		"add": jsonrpc.EndpointCodec{
			Endpoint: endpoints.AddEndpoint,
			Decode:   decodeJSONRPCAddRequest,
			Encode:   encodeJSONRPCAddResponse,
		},
		"subtract": jsonrpc.EndpointCodec{
			Endpoint: endpoints.SubtractEndpoint,
			Decode:   decodeJSONRPCSubtractRequest,
			Encode:   encodeJSONRPCSubtractResponse,
		},
	}
}

func decodeJSONRPCAddRequest(_ context.Context, msg json.RawMessage) (interface{}, error) {
	var req arithendpoint.AddRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return nil, &jsonrpc.Error{
			Code:    -32000,
			Message: fmt.Sprintf("couldn't unmarshal body to add request: %s", err),
		}
	}
	return req, nil
}

func encodeJSONRPCAddResponse(_ context.Context, obj interface{}) (json.RawMessage, error) {
	res, ok := obj.(arithendpoint.AddResponse)
	if !ok {
		return nil, &jsonrpc.Error{
			Code:    -32000,
			Message: fmt.Sprintf("asserting result to *AddResponse failed. Got %T, %+v", obj, obj),
		}
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal response: %s", err)
	}
	return b, nil
}

func decodeJSONRPCSubtractRequest(_ context.Context, msg json.RawMessage) (interface{}, error) {
	var req arithendpoint.SubtractRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return nil, &jsonrpc.Error{
			Code:    -32000,
			Message: fmt.Sprintf("couldn't unmarshal body to subtract request: %s", err),
		}
	}
	return req, nil
}

func encodeJSONRPCSubtractResponse(_ context.Context, obj interface{}) (json.RawMessage, error) {
	res, ok := obj.(arithendpoint.SubtractResponse)
	if !ok {
		return nil, &jsonrpc.Error{
			Code:    -32000,
			Message: fmt.Sprintf("asserting result to *SubtractResponse failed. Got %T, %+v", obj, obj),
		}
	}
	b, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal response: %s", err)
	}
	return b, nil
}

func encodeJSONRPCAddRequest(_ context.Context, obj interface{}) (json.RawMessage, error) {
	req, ok := obj.(arithendpoint.AddRequest)
	if !ok {
		return nil, fmt.Errorf("couldn't assert request as AddRequest, got %T", obj)
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal request: %s", err)
	}
	return b, nil
}

func decodeJSONRPCAddResponse(_ context.Context, res jsonrpc.Response) (interface{}, error) {
	if res.Error != nil {
		return nil, *res.Error
	}
	var addRes arithendpoint.AddResponse
	if err := json.Unmarshal(res.Result, &addRes); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal body to AddResponse: %s", err)
	}
	return addRes, nil
}

func encodeJSONRPCSubtractRequest(_ context.Context, obj interface{}) (json.RawMessage, error) {
	req, ok := obj.(arithendpoint.SubtractRequest)
	if !ok {
		return nil, fmt.Errorf("couldn't assert request as SubtractRequest, got %T", obj)
	}
	b, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal request: %s", err)
	}
	return b, nil
}

func decodeJSONRPCSubtractResponse(_ context.Context, res jsonrpc.Response) (interface{}, error) {
	if res.Error != nil {
		return nil, *res.Error
	}
	var subRes arithendpoint.SubtractResponse
	if err := json.Unmarshal(res.Result, &subRes); err != nil {
		return nil, fmt.Errorf("couldn't unmarshal body to SubtractResponse: %s", err)
	}
	return subRes, nil
}
