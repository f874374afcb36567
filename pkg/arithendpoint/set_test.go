package arithendpoint

import (
	"context"
	"testing"

	stdopentracing "github.com/opentracing/opentracing-go"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/ratelimit"

	"github.com/arithkit/arithsvc/pkg/arithservice"
)

func newTestSet() Set {
	return New(
		arithservice.NewBasicService(),
		log.NewNopLogger(),
		discard.NewHistogram(),
		stdopentracing.GlobalTracer(),
		nil, // no zipkin tracer
	)
}

func TestSetAsService(t *testing.T) {
	set := newTestSet()
	ctx := context.Background()

	v, err := set.Add(ctx, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(6), v; want != have {
		t.Errorf("Add(4, 2): want %d, have %d", want, have)
	}

	v, err = set.Subtract(ctx, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(2), v; want != have {
		t.Errorf("Subtract(4, 2): want %d, have %d", want, have)
	}
}

func TestEndpointRateLimited(t *testing.T) {
	set := newTestSet()
	ctx := context.Background()

	// The server-side limiter permits one request per second, so the second
	// immediate invocation must be rejected.
	if _, err := set.AddEndpoint(ctx, AddRequest{A: 1, B: 2}); err != nil {
		t.Fatalf("first request: %v", err)
	}
	_, err := set.AddEndpoint(ctx, AddRequest{A: 1, B: 2})
	if want, have := ratelimit.ErrLimited, err; want != have {
		t.Errorf("second request: want %v, have %v", want, have)
	}
}

func TestMakeEndpoints(t *testing.T) {
	svc := arithservice.NewBasicService()
	ctx := context.Background()

	resp, err := MakeAddEndpoint(svc)(ctx, AddRequest{A: 10, B: 5})
	if err != nil {
		t.Fatal(err)
	}
	addResp := resp.(AddResponse)
	if addResp.Err != nil {
		t.Fatal(addResp.Err)
	}
	if want, have := int64(15), addResp.V; want != have {
		t.Errorf("Add(10, 5): want %d, have %d", want, have)
	}

	resp, err = MakeSubtractEndpoint(svc)(ctx, SubtractRequest{A: 10, B: 5})
	if err != nil {
		t.Fatal(err)
	}
	subResp := resp.(SubtractResponse)
	if subResp.Err != nil {
		t.Fatal(subResp.Err)
	}
	if want, have := int64(5), subResp.V; want != have {
		t.Errorf("Subtract(10, 5): want %d, have %d", want, have)
	}
}
