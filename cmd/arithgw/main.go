package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	consulapi "github.com/hashicorp/consul/api"
	stdopentracing "github.com/opentracing/opentracing-go"
	"google.golang.org/grpc"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/sd"
	consulsd "github.com/go-kit/kit/sd/consul"
	"github.com/go-kit/kit/sd/lb"

	"github.com/arithkit/arithsvc/pkg/arithendpoint"
	"github.com/arithkit/arithsvc/pkg/arithservice"
	"github.com/arithkit/arithsvc/pkg/arithtransport"
)

func main() {
	var (
		httpAddr     = flag.String("http.addr", ":8000", "Address for HTTP (JSON) server")
		consulAddr   = flag.String("consul.addr", "", "Consul agent address")
		retryMax     = flag.Int("retry.max", 3, "per-request retries to different instances")
		retryTimeout = flag.Duration("retry.timeout", 500*time.Millisecond, "per-request timeout, including retries")
	)
	flag.Parse()

	// Logging domain.
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	// Service discovery domain. In this example we use Consul.
	var client consulsd.Client
	{
		consulConfig := consulapi.DefaultConfig()
		if len(*consulAddr) > 0 {
			consulConfig.Address = *consulAddr
		}
		consulClient, err := consulapi.NewClient(consulConfig)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		client = consulsd.NewClient(consulClient)
	}

	// Transport domain.
	tracer := stdopentracing.GlobalTracer() // no-op
	r := mux.NewRouter()

	// Each method gets constructed with a factory. Factories take an instance
	// string, and return a specific endpoint. In the factory we dial the
	// instance string we get from Consul, and then leverage the arithsvc
	// client package to construct a complete service. We can then leverage
	// the arithendpoint.Make{Add,Subtract}Endpoint constructors to convert
	// the complete service to specific endpoints.
	{
		var (
			tags        = []string{}
			passingOnly = true
			endpoints   = arithendpoint.Set{}
			instancer   = consulsd.NewInstancer(client, logger, "arithsvc", tags, passingOnly)
		)
		{
			factory := arithsvcFactory(arithendpoint.MakeAddEndpoint, tracer, logger)
			endpointer := sd.NewEndpointer(instancer, factory, logger)
			balancer := lb.NewRoundRobin(endpointer)
			retry := lb.Retry(*retryMax, *retryTimeout, balancer)
			endpoints.AddEndpoint = retry
		}
		{
			factory := arithsvcFactory(arithendpoint.MakeSubtractEndpoint, tracer, logger)
			endpointer := sd.NewEndpointer(instancer, factory, logger)
			balancer := lb.NewRoundRobin(endpointer)
			retry := lb.Retry(*retryMax, *retryTimeout, balancer)
			endpoints.SubtractEndpoint = retry
		}

		// Here we leverage the fact that arithsvc comes with a constructor
		// for an HTTP handler, and just install it under a particular path
		// prefix in our router.
		r.PathPrefix("/arithsvc").Handler(http.StripPrefix("/arithsvc", arithtransport.NewHTTPHandler(endpoints, tracer, nil, logger)))
	}

	// Interrupt handler.
	errc := make(chan error)
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		errc <- fmt.Errorf("%s", <-c)
	}()

	// HTTP transport.
	go func() {
		logger.Log("transport", "HTTP", "addr", *httpAddr)
		errc <- http.ListenAndServe(*httpAddr, r)
	}()

	// Run!
	logger.Log("exit", <-errc)
}

func arithsvcFactory(makeEndpoint func(arithservice.Service) endpoint.Endpoint, tracer stdopentracing.Tracer, logger log.Logger) sd.Factory {
	return func(instance string) (endpoint.Endpoint, io.Closer, error) {
		// We could just as easily use the HTTP or JSON RPC client package to
		// make the connection to arithsvc. We've chosen gRPC arbitrarily. Note
		// that the transport is an implementation detail: it doesn't leak out
		// of this function. Nice!
		conn, err := grpc.Dial(instance, grpc.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		service := arithtransport.NewGRPCClient(conn, tracer, nil, logger)
		endpoint := makeEndpoint(service)

		return endpoint, conn, nil
	}
}
