package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/nats-io/nats.go"
	stdopentracing "github.com/opentracing/opentracing-go"
	"google.golang.org/grpc"

	"github.com/go-kit/kit/log"

	"github.com/arithkit/arithsvc/pkg/arithservice"
	"github.com/arithkit/arithsvc/pkg/arithtransport"
)

func main() {
	// The arithcli presumes no service discovery system, and expects users to
	// provide the direct address of an arithsvc. This presumption is reflected
	// in the arithcli binary and the client packages: the -*-addr flags and
	// various client constructors both expect host:port strings.
	fs := flag.NewFlagSet("arithcli", flag.ExitOnError)
	var (
		httpAddr    = fs.String("http-addr", "", "HTTP address of arithsvc")
		grpcAddr    = fs.String("grpc-addr", "", "gRPC address of arithsvc")
		jsonRPCAddr = fs.String("jsonrpc-addr", "", "JSON RPC address of arithsvc")
		natsURL     = fs.String("nats-url", "", "NATS server URL, e.g. nats://localhost:4222")
		method      = fs.String("method", "add", "add, subtract")
	)
	fs.Usage = usageFor(fs, os.Args[0]+" [flags] <a> <b>")
	fs.Parse(os.Args[1:])
	if len(fs.Args()) != 2 {
		fs.Usage()
		os.Exit(1)
	}

	// This is a demonstration client, which supports multiple transports.
	// Your clients will probably just define and stick with 1 transport.
	var (
		svc arithservice.Service
		err error
	)
	if *httpAddr != "" {
		svc, err = arithtransport.NewHTTPClient(*httpAddr, stdopentracing.GlobalTracer(), nil, log.NewNopLogger())
	} else if *grpcAddr != "" {
		conn, e := grpc.Dial(*grpcAddr, grpc.WithInsecure(), grpc.WithTimeout(time.Second))
		if e != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", e)
			os.Exit(1)
		}
		defer conn.Close()
		svc = arithtransport.NewGRPCClient(conn, stdopentracing.GlobalTracer(), nil, log.NewNopLogger())
	} else if *jsonRPCAddr != "" {
		svc, err = arithtransport.NewJSONRPCClient(*jsonRPCAddr, log.NewNopLogger())
	} else if *natsURL != "" {
		nc, e := nats.Connect(*natsURL)
		if e != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", e)
			os.Exit(1)
		}
		defer nc.Close()
		svc = arithtransport.NewNATSClient(nc, log.NewNopLogger())
	} else {
		fmt.Fprintf(os.Stderr, "error: no remote address specified\n")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	a, err := strconv.ParseInt(fs.Args()[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	b, err := strconv.ParseInt(fs.Args()[1], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	switch *method {
	case "add":
		v, err := svc.Add(context.Background(), a, b)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "add(%d, %d) = %d\n", a, b, v)

	case "subtract":
		v, err := svc.Subtract(context.Background(), a, b)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stdout, "subtract(%d, %d) = %d\n", a, b, v)

	default:
		fmt.Fprintf(os.Stderr, "error: invalid method %q\n", *method)
		os.Exit(1)
	}
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
