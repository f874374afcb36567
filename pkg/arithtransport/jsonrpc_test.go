package arithtransport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
)

func TestJSONRPCHandler(t *testing.T) {
	handler := NewJSONRPCHandler(testEndpoints(), log.NewNopLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"add","params":{"a":10,"b":5}}`
	resp, err := http.Post(server.URL, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		t.Fatal(err)
	}
	if rpcResp.Error != nil {
		t.Fatalf("unexpected RPC error: %d %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	var result struct {
		V int64 `json:"v"`
	}
	if err := json.Unmarshal(rpcResp.Result, &result); err != nil {
		t.Fatal(err)
	}
	if want, have := int64(15), result.V; want != have {
		t.Errorf("add(10, 5): want %d, have %d", want, have)
	}
}

func TestJSONRPCClient(t *testing.T) {
	handler := NewJSONRPCHandler(testEndpoints(), log.NewNopLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	svc, err := NewJSONRPCClient(server.URL, log.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()

	v, err := svc.Add(ctx, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(15), v; want != have {
		t.Errorf("Add(10, 5): want %d, have %d", want, have)
	}

	v, err = svc.Subtract(ctx, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(5), v; want != have {
		t.Errorf("Subtract(10, 5): want %d, have %d", want, have)
	}
}

func TestJSONRPCClientEndpointError(t *testing.T) {
	endpoints := testEndpoints()
	endpoints.AddEndpoint = func(context.Context, interface{}) (interface{}, error) {
		return nil, errors.New("add failed hard")
	}
	handler := NewJSONRPCHandler(endpoints, log.NewNopLogger())
	server := httptest.NewServer(handler)
	defer server.Close()

	svc, err := NewJSONRPCClient(server.URL, log.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Add(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("want error, have nil")
	}
	if want, have := "add failed hard", err.Error(); !strings.Contains(have, want) {
		t.Errorf("want error containing %q, have %q", want, have)
	}
}
