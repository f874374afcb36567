package arithservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
)

// Middleware describes a service (as opposed to endpoint) middleware.
type Middleware func(Service) Service

// LoggingMiddleware takes a logger as a dependency
// and returns a service Middleware.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) Add(ctx context.Context, a, b int64) (v int64, err error) {
	defer func() {
		mw.logger.Log("method", "Add", "a", a, "b", b, "v", v, "err", err)
	}()
	return mw.next.Add(ctx, a, b)
}

func (mw loggingMiddleware) Subtract(ctx context.Context, a, b int64) (v int64, err error) {
	defer func() {
		mw.logger.Log("method", "Subtract", "a", a, "b", b, "v", v, "err", err)
	}()
	return mw.next.Subtract(ctx, a, b)
}

// InstrumentingMiddleware returns a service middleware that counts the
// number of operations performed over the lifetime of the service.
func InstrumentingMiddleware(adds, subtracts metrics.Counter) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{
			adds:      adds,
			subtracts: subtracts,
			next:      next,
		}
	}
}

type instrumentingMiddleware struct {
	adds      metrics.Counter
	subtracts metrics.Counter
	next      Service
}

func (mw instrumentingMiddleware) Add(ctx context.Context, a, b int64) (int64, error) {
	v, err := mw.next.Add(ctx, a, b)
	mw.adds.Add(1)
	return v, err
}

func (mw instrumentingMiddleware) Subtract(ctx context.Context, a, b int64) (int64, error) {
	v, err := mw.next.Subtract(ctx, a, b)
	mw.subtracts.Add(1)
	return v, err
}
