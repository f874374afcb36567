package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/nats-io/nats.go"
	"github.com/oklog/oklog/pkg/group"
	stdopentracing "github.com/opentracing/opentracing-go"
	zipkinot "github.com/openzipkin-contrib/zipkin-go-opentracing"
	stdzipkin "github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"

	"github.com/arithkit/arithsvc/pb"
	"github.com/arithkit/arithsvc/pkg/arithendpoint"
	"github.com/arithkit/arithsvc/pkg/arithservice"
	"github.com/arithkit/arithsvc/pkg/arithtransport"
)

func main() {
	// Define our flags. Your service probably won't need to bind listeners for
	// all transports, but we do it here for demonstration purposes.
	fs := flag.NewFlagSet("arithsvc", flag.ExitOnError)
	var (
		debugAddr    = fs.String("debug.addr", ":8080", "Debug and metrics listen address")
		httpAddr     = fs.String("http-addr", ":8081", "HTTP listen address")
		grpcAddr     = fs.String("grpc-addr", ":8082", "gRPC listen address")
		jsonRPCAddr  = fs.String("jsonrpc-addr", ":8084", "JSON RPC listen address")
		natsURL      = fs.String("nats-url", "", "NATS server URL, e.g. nats://localhost:4222 (empty disables NATS)")
		zipkinURL    = fs.String("zipkin-url", "", "Enable Zipkin tracing via HTTP reporter URL e.g. http://localhost:9411/api/v2/spans")
		zipkinBridge = fs.Bool("zipkin-ot-bridge", false, "Use Zipkin OpenTracing bridge instead of native implementation")
	)
	fs.Usage = usageFor(fs, os.Args[0]+" [flags]")
	fs.Parse(os.Args[1:])

	// Create a single logger, which we'll use and give to other components.
	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	// Determine which tracer to use. We'll pass the tracer to all the
	// components that use it, as a dependency.
	var zipkinTracer *stdzipkin.Tracer
	{
		var (
			err           error
			hostPort      = "localhost:80"
			serviceName   = "arithsvc"
			useNoopTracer = (*zipkinURL == "")
			reporter      = zipkinhttp.NewReporter(*zipkinURL)
		)
		defer reporter.Close()
		zEP, _ := stdzipkin.NewEndpoint(serviceName, hostPort)
		zipkinTracer, err = stdzipkin.NewTracer(
			reporter, stdzipkin.WithLocalEndpoint(zEP), stdzipkin.WithNoopTracer(useNoopTracer),
		)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		if !useNoopTracer {
			logger.Log("tracer", "Zipkin", "type", "Native", "URL", *zipkinURL)
		}
	}
	var tracer stdopentracing.Tracer
	{
		if *zipkinBridge && zipkinTracer != nil {
			logger.Log("tracer", "Zipkin", "type", "OpenTracing", "URL", *zipkinURL)
			tracer = zipkinot.Wrap(zipkinTracer)
			zipkinTracer = nil // do not instrument with both native tracer and opentracing bridge
		} else {
			tracer = stdopentracing.GlobalTracer() // no-op
		}
	}

	// Create the (sparse) metrics we'll use in the service. They, too, are
	// dependencies that we pass to components that use them.
	var adds, subtracts metrics.Counter
	{
		// Business-level metrics.
		adds = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "arithkit",
			Subsystem: "arithsvc",
			Name:      "additions_performed",
			Help:      "Total count of additions performed via the Add method.",
		}, []string{})
		subtracts = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "arithkit",
			Subsystem: "arithsvc",
			Name:      "subtractions_performed",
			Help:      "Total count of subtractions performed via the Subtract method.",
		}, []string{})
	}
	var duration metrics.Histogram
	{
		// Endpoint-level metrics.
		duration = prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "arithkit",
			Subsystem: "arithsvc",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds.",
		}, []string{"method", "success"})
	}
	http.DefaultServeMux.Handle("/metrics", promhttp.Handler())

	// Build the layers of the service "onion" from the inside out. First, the
	// business logic service; then, the set of endpoints that wrap the
	// service; and finally, a series of concrete transport adapters.
	var (
		service        = arithservice.New(logger, adds, subtracts)
		endpoints      = arithendpoint.New(service, logger, duration, tracer, zipkinTracer)
		httpHandler    = arithtransport.NewHTTPHandler(endpoints, tracer, zipkinTracer, logger)
		grpcServer     = arithtransport.NewGRPCServer(endpoints, tracer, zipkinTracer, logger)
		jsonrpcHandler = arithtransport.NewJSONRPCHandler(endpoints, logger)
		natsHandlers   = arithtransport.NewNATSHandlers(endpoints, logger)
	)

	// Now we're to the part of the func main where we want to start actually
	// running things, like servers bound to listeners to receive connections.
	// The method is the same for each component: add a new actor to the group
	// struct, which is a combination of 2 anonymous functions: the first
	// function actually runs the component, and the second function should
	// interrupt the first function and cause it to return. It's in these
	// functions that we actually bind the Go kit server/handler structs to the
	// concrete transports and run them.
	var g group.Group
	{
		// The debug listener mounts the http.DefaultServeMux, and serves up
		// stuff like the Prometheus metrics route, the Go debug and profiling
		// routes, and so on.
		debugListener, err := net.Listen("tcp", *debugAddr)
		if err != nil {
			logger.Log("transport", "debug/HTTP", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			logger.Log("transport", "debug/HTTP", "addr", *debugAddr)
			return http.Serve(debugListener, http.DefaultServeMux)
		}, func(error) {
			debugListener.Close()
		})
	}
	{
		// The HTTP listener mounts the Go kit HTTP handler we created.
		httpListener, err := net.Listen("tcp", *httpAddr)
		if err != nil {
			logger.Log("transport", "HTTP", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			logger.Log("transport", "HTTP", "addr", *httpAddr)
			return http.Serve(httpListener, httpHandler)
		}, func(error) {
			httpListener.Close()
		})
	}
	{
		// The gRPC listener mounts the Go kit gRPC server we created.
		grpcListener, err := net.Listen("tcp", *grpcAddr)
		if err != nil {
			logger.Log("transport", "gRPC", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			logger.Log("transport", "gRPC", "addr", *grpcAddr)
			baseServer := grpc.NewServer()
			pb.RegisterArithServer(baseServer, grpcServer)
			return baseServer.Serve(grpcListener)
		}, func(error) {
			grpcListener.Close()
		})
	}
	{
		// The JSON RPC listener mounts the Go kit JSON RPC handler we created.
		jsonrpcListener, err := net.Listen("tcp", *jsonRPCAddr)
		if err != nil {
			logger.Log("transport", "JSONRPC over HTTP", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			logger.Log("transport", "JSONRPC over HTTP", "addr", *jsonRPCAddr)
			return http.Serve(jsonrpcListener, jsonrpcHandler)
		}, func(error) {
			jsonrpcListener.Close()
		})
	}
	if *natsURL != "" {
		// The NATS transport registers queue subscribers on the connection;
		// the actor just holds the connection open until interrupted.
		nc, err := nats.Connect(*natsURL)
		if err != nil {
			logger.Log("transport", "NATS", "during", "Connect", "err", err)
			os.Exit(1)
		}
		done := make(chan struct{})
		g.Add(func() error {
			logger.Log("transport", "NATS", "url", *natsURL)
			if _, err := nc.QueueSubscribe(arithtransport.AddSubject, arithtransport.NATSQueue, natsHandlers.Add.ServeMsg(nc)); err != nil {
				return err
			}
			if _, err := nc.QueueSubscribe(arithtransport.SubtractSubject, arithtransport.NATSQueue, natsHandlers.Subtract.ServeMsg(nc)); err != nil {
				return err
			}
			<-done
			return nil
		}, func(error) {
			nc.Close()
			close(done)
		})
	}
	{
		// This function just sits and waits for ctrl-C.
		cancelInterrupt := make(chan struct{})
		g.Add(func() error {
			c := make(chan os.Signal, 1)
			signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-c:
				return fmt.Errorf("received signal %s", sig)
			case <-cancelInterrupt:
				return nil
			}
		}, func(error) {
			close(cancelInterrupt)
		})
	}
	logger.Log("exit", g.Run())
}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}
