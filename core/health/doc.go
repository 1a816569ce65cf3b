// Package health provides terminal middleware for service health probes.
//
// Probes:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//   - NoContent: returns 204 for minimal overhead
//
// Probes never call next, so they are meant to be dispatched to from an
// application's own terminal middleware:
//
//	ready := health.Readiness(logger, db.PingContext, cache.Ping)
//	k.Add(func(ctx *handler.Context, next handler.Next) (any, error) {
//		switch ctx.Request().URL.Path {
//		case "/health/live":
//			return health.Liveness(ctx, next)
//		case "/health/ready":
//			return ready(ctx, next)
//		}
//		return app(ctx, next)
//	})
//
// Dependency checks must follow func(context.Context) error signature. They
// run concurrently and share a context cancelled on the first failure.
package health
