package arithservice

import (
	"context"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics/discard"
)

func TestBasicService(t *testing.T) {
	svc := NewBasicService()
	ctx := context.Background()

	for _, testcase := range []struct {
		a, b, want int64
	}{
		{4, 2, 6},
		{10, 5, 15},
		{-1, 1, 0},
	} {
		have, err := svc.Add(ctx, testcase.a, testcase.b)
		if err != nil {
			t.Fatalf("Add(%d, %d): %v", testcase.a, testcase.b, err)
		}
		if testcase.want != have {
			t.Errorf("Add(%d, %d): want %d, have %d", testcase.a, testcase.b, testcase.want, have)
		}
	}

	for _, testcase := range []struct {
		a, b, want int64
	}{
		{4, 2, 2},
		{10, 5, 5},
		{-1, 1, -2},
	} {
		have, err := svc.Subtract(ctx, testcase.a, testcase.b)
		if err != nil {
			t.Fatalf("Subtract(%d, %d): %v", testcase.a, testcase.b, err)
		}
		if testcase.want != have {
			t.Errorf("Subtract(%d, %d): want %d, have %d", testcase.a, testcase.b, testcase.want, have)
		}
	}
}

func TestMiddlewaresPassThrough(t *testing.T) {
	svc := New(log.NewNopLogger(), discard.NewCounter(), discard.NewCounter())
	ctx := context.Background()

	v, err := svc.Add(ctx, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(6), v; want != have {
		t.Errorf("Add(4, 2): want %d, have %d", want, have)
	}

	v, err = svc.Subtract(ctx, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(2), v; want != have {
		t.Errorf("Subtract(4, 2): want %d, have %d", want, have)
	}
}

func TestLoggingMiddlewareKeyvals(t *testing.T) {
	var kvs []interface{}
	logger := log.LoggerFunc(func(keyvals ...interface{}) error {
		kvs = keyvals
		return nil
	})

	svc := LoggingMiddleware(logger)(NewBasicService())
	if _, err := svc.Add(context.Background(), 1, 2); err != nil {
		t.Fatal(err)
	}

	if want, have := 10, len(kvs); want != have {
		t.Fatalf("want %d keyvals, have %d (%v)", want, have, kvs)
	}
	if want, have := "Add", kvs[1]; want != have {
		t.Errorf("method: want %q, have %q", want, have)
	}
}
