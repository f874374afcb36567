package arithservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"

	"github.com/arithkit/arithsvc/arith"
)

// Service describes a service that performs the basic arithmetic operations.
type Service interface {
	Add(ctx context.Context, a, b int64) (int64, error)
	Subtract(ctx context.Context, a, b int64) (int64, error)
}

// New returns a basic Service with all of the expected middlewares wired in.
func New(logger log.Logger, adds, subtracts metrics.Counter) Service {
	var svc Service
	{
		svc = NewBasicService()
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(adds, subtracts)(svc)
	}
	return svc
}

// NewBasicService returns a naïve, stateless implementation of Service.
func NewBasicService() Service {
	return basicService{}
}

type basicService struct{}

// Add implements Service. The operation cannot fail; overflow wraps around,
// following the behavior of the underlying arith package.
func (s basicService) Add(_ context.Context, a, b int64) (int64, error) {
	return arith.Add(a, b), nil
}

// Subtract implements Service with the same semantics as Add.
func (s basicService) Subtract(_ context.Context, a, b int64) (int64, error) {
	return arith.Subtract(a, b), nil
}
