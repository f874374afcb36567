package arithtransport

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	natstransport "github.com/go-kit/kit/transport/nats"

	"github.com/arithkit/arithsvc/pkg/arithendpoint"
	"github.com/arithkit/arithsvc/pkg/arithservice"
)

// Subjects for the NATS request/reply transport. Subscribers join a queue
// group of the same name as the service, so multiple instances share the load.
const (
	AddSubject      = "arithsvc.add"
	SubtractSubject = "arithsvc.subtract"
	NATSQueue       = "arithsvc"
)

// NATSHandlers collects the subscribers that compose a NATS transport. The
// caller registers each subscriber on a connection, e.g. via QueueSubscribe.
type NATSHandlers struct {
	Add      *natstransport.Subscriber
	Subtract *natstransport.Subscriber
}

// NewNATSHandlers returns NATS subscribers that make the set of endpoints
// available on the predefined subjects.
func NewNATSHandlers(endpoints arithendpoint.Set, logger log.Logger) NATSHandlers {
	options := []natstransport.SubscriberOption{
		natstransport.SubscriberErrorLogger(logger),
		natstransport.SubscriberErrorEncoder(encodeNATSError),
	}

	return NATSHandlers{
		Add: natstransport.NewSubscriber(
			endpoints.AddEndpoint,
			decodeNATSAddRequest,
			encodeNATSGenericResponse,
			options...,
		),
		Subtract: natstransport.NewSubscriber(
			endpoints.SubtractEndpoint,
			decodeNATSSubtractRequest,
			encodeNATSGenericResponse,
			options...,
		),
	}
}

// NewNATSClient returns an ArithService backed by a NATS request/reply
// transport over the passed connection. The caller owns the connection.
func NewNATSClient(nc *nats.Conn, logger log.Logger) arithservice.Service {
	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = natstransport.NewPublisher(
			nc,
			AddSubject,
			natstransport.EncodeJSONRequest,
			decodeNATSAddResponse,
		).Endpoint()
		addEndpoint = limiter(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
	}

	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = natstransport.NewPublisher(
			nc,
			SubtractSubject,
			natstransport.EncodeJSONRequest,
			decodeNATSSubtractResponse,
		).Endpoint()
		subtractEndpoint = limiter(subtractEndpoint)
		subtractEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Subtract",
			Timeout: 30 * time.Second,
		}))(subtractEndpoint)
	}

	return arithendpoint.Set{
		AddEndpoint:      addEndpoint,
		SubtractEndpoint: subtractEndpoint,
	}
}

func decodeNATSAddRequest(_ context.Context, msg *nats.Msg) (interface{}, error) {
	var req arithendpoint.AddRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeNATSSubtractRequest(_ context.Context, msg *nats.Msg) (interface{}, error) {
	var req arithendpoint.SubtractRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeNATSAddResponse(_ context.Context, msg *nats.Msg) (interface{}, error) {
	if err := errorFrom(msg.Data); err != nil {
		return nil, err
	}
	var resp arithendpoint.AddResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func decodeNATSSubtractResponse(_ context.Context, msg *nats.Msg) (interface{}, error) {
	if err := errorFrom(msg.Data); err != nil {
		return nil, err
	}
	var resp arithendpoint.SubtractResponse
	if err := json.Unmarshal(msg.Data, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// encodeNATSGenericResponse publishes the response as JSON to the reply
// subject, routing business errors through the same error wrapper the
// subscriber uses for transport errors.
func encodeNATSGenericResponse(ctx context.Context, reply string, nc *nats.Conn, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		b, err := json.Marshal(errorWrapper{Error: f.Failed().Error()})
		if err != nil {
			return err
		}
		return nc.Publish(reply, b)
	}
	return natstransport.EncodeJSONResponse(ctx, reply, nc, response)
}

// encodeNATSError publishes transport and decode errors to the reply subject
// in the same error wrapper the response encoder uses, so clients see one
// error shape regardless of where in the subscriber the failure happened.
func encodeNATSError(_ context.Context, err error, reply string, nc *nats.Conn) {
	b, merr := json.Marshal(errorWrapper{Error: err.Error()})
	if merr != nil {
		return
	}
	nc.Publish(reply, b)
}

// errorFrom inspects a reply payload for an error. It understands the error
// wrapper published by encodeNATSError as well as the {"err": ...} shape other
// subscribers publish by default. A nil return means the payload carries a
// regular response.
func errorFrom(data []byte) error {
	var w struct {
		Error string `json:"error"`
		Err   string `json:"err"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return nil
	}
	if w.Error != "" {
		return errors.New(w.Error)
	}
	if w.Err != "" {
		return errors.New(w.Err)
	}
	return nil
}
