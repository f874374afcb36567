package arithtransport

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"

	"github.com/go-kit/kit/log"

	"github.com/arithkit/arithsvc/pkg/arithendpoint"
)

func newNATSConn(t *testing.T) (*server.Server, *nats.Conn) {
	s, err := server.NewServer(&server.Options{
		Host: "localhost",
		Port: 0,
	})
	if err != nil {
		t.Fatal(err)
	}

	go s.Start()

	if ok := s.ReadyForConnections(5 * time.Second); !ok {
		s.Shutdown()
		s.WaitForShutdown()
		t.Fatal("not ready for connections")
	}

	nc, err := nats.Connect("nats://"+s.Addr().String(), nats.Name(t.Name()))
	if err != nil {
		s.Shutdown()
		s.WaitForShutdown()
		t.Fatalf("failed to connect to NATS server: %s", err)
	}

	return s, nc
}

func subscribeNATSHandlers(t *testing.T, nc *nats.Conn, endpoints arithendpoint.Set) {
	handlers := NewNATSHandlers(endpoints, log.NewNopLogger())
	if _, err := nc.QueueSubscribe(AddSubject, NATSQueue, handlers.Add.ServeMsg(nc)); err != nil {
		t.Fatal(err)
	}
	if _, err := nc.QueueSubscribe(SubtractSubject, NATSQueue, handlers.Subtract.ServeMsg(nc)); err != nil {
		t.Fatal(err)
	}
}

func TestNATSClient(t *testing.T) {
	s, nc := newNATSConn(t)
	defer func() { s.Shutdown(); s.WaitForShutdown() }()
	defer nc.Close()

	subscribeNATSHandlers(t, nc, testEndpoints())

	svc := NewNATSClient(nc, log.NewNopLogger())

	ctx := context.Background()

	v, err := svc.Add(ctx, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(6), v; want != have {
		t.Errorf("Add(4, 2): want %d, have %d", want, have)
	}

	v, err = svc.Subtract(ctx, 10, 5)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int64(5), v; want != have {
		t.Errorf("Subtract(10, 5): want %d, have %d", want, have)
	}
}

func TestNATSClientEndpointError(t *testing.T) {
	s, nc := newNATSConn(t)
	defer func() { s.Shutdown(); s.WaitForShutdown() }()
	defer nc.Close()

	endpoints := testEndpoints()
	endpoints.AddEndpoint = func(context.Context, interface{}) (interface{}, error) {
		return nil, errors.New("add failed hard")
	}
	subscribeNATSHandlers(t, nc, endpoints)

	svc := NewNATSClient(nc, log.NewNopLogger())

	_, err := svc.Add(context.Background(), 1, 2)
	if err == nil {
		t.Fatal("want error, have nil")
	}
	if want, have := "add failed hard", err.Error(); !strings.Contains(have, want) {
		t.Errorf("want error containing %q, have %q", want, have)
	}
}

func TestNATSClientBusinessError(t *testing.T) {
	s, nc := newNATSConn(t)
	defer func() { s.Shutdown(); s.WaitForShutdown() }()
	defer nc.Close()

	endpoints := testEndpoints()
	endpoints.SubtractEndpoint = func(context.Context, interface{}) (interface{}, error) {
		return arithendpoint.SubtractResponse{Err: errors.New("subtract refused")}, nil
	}
	subscribeNATSHandlers(t, nc, endpoints)

	svc := NewNATSClient(nc, log.NewNopLogger())

	_, err := svc.Subtract(context.Background(), 9, 3)
	if err == nil {
		t.Fatal("want error, have nil")
	}
	if want, have := "subtract refused", err.Error(); !strings.Contains(have, want) {
		t.Errorf("want error containing %q, have %q", want, have)
	}
}
