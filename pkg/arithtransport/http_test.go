package arithtransport

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	stdopentracing "github.com/opentracing/opentracing-go"

	"github.com/go-kit/kit/log"

	"github.com/arithkit/arithsvc/pkg/arithendpoint"
	"github.com/arithkit/arithsvc/pkg/arithservice"
)

// testEndpoints builds a Set from bare endpoints, without the server-side
// rate limiter, so tests can issue requests back to back.
func testEndpoints() arithendpoint.Set {
	svc := arithservice.NewBasicService()
	return arithendpoint.Set{
		AddEndpoint:      arithendpoint.MakeAddEndpoint(svc),
		SubtractEndpoint: arithendpoint.MakeSubtractEndpoint(svc),
	}
}

func TestHTTPHandler(t *testing.T) {
	handler := NewHTTPHandler(testEndpoints(), stdopentracing.GlobalTracer(), nil, log.NewNopLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	for _, testcase := range []struct {
		path, body, want string
	}{
		{"/add", `{"a":4,"b":2}`, `{"v":6}`},
		{"/add", `{"a":10,"b":5}`, `{"v":15}`},
		{"/subtract", `{"a":4,"b":2}`, `{"v":2}`},
		{"/subtract", `{"a":10,"b":5}`, `{"v":5}`},
	} {
		resp, err := http.Post(server.URL+testcase.path, "application/json", strings.NewReader(testcase.body))
		if err != nil {
			t.Fatal(err)
		}
		if want, have := http.StatusOK, resp.StatusCode; want != have {
			t.Errorf("POST %s %s: want status %d, have %d", testcase.path, testcase.body, want, have)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if want, have := testcase.want, strings.TrimSpace(buf.String()); want != have {
			t.Errorf("POST %s %s: want %q, have %q", testcase.path, testcase.body, want, have)
		}
	}
}

func TestHTTPHandlerMethodNotAllowed(t *testing.T) {
	handler := NewHTTPHandler(testEndpoints(), stdopentracing.GlobalTracer(), nil, log.NewNopLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/add")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if want, have := http.StatusMethodNotAllowed, resp.StatusCode; want != have {
		t.Errorf("GET /add: want status %d, have %d", want, have)
	}
}

func TestHTTPClient(t *testing.T) {
	handler := NewHTTPHandler(testEndpoints(), stdopentracing.GlobalTracer(), nil, log.NewNopLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	svc, err := NewHTTPClient(server.URL, stdopentracing.GlobalTracer(), nil, log.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}

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
