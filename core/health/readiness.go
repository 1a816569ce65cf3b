package health

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/logger"
	"github.com/dmitrymomot/raptor/core/response"
)

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if every check passes, 503 Service Unavailable otherwise.
func Readiness(log *slog.Logger, checks ...func(context.Context) error) handler.Middleware {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx *handler.Context, _ handler.Next) (any, error) {
		g, gctx := errgroup.WithContext(ctx)
		for _, check := range checks {
			g.Go(func() error {
				return check(gctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.ErrorContext(ctx, "readiness check failed",
				logger.Component("health"),
				logger.Error(err),
			)
			return nil, response.ErrServiceUnavailable.WithCause(err)
		}
		return "READY", nil
	}
}
