// Package raptor is an HTTP request kernel: a middleware pipeline with strict
// hand-off semantics, a response manager that turns whatever a middleware
// returns into a response, and content negotiation for rendered errors.
//
// # Package Organization
//
// Core:
//
//   - github.com/dmitrymomot/raptor/core/kernel: middleware chain, error capture and panic recovery
//   - github.com/dmitrymomot/raptor/core/handler: Context, Response and the middleware signature
//   - github.com/dmitrymomot/raptor/core/response: body classification, processors, builders and HTTP errors
//   - github.com/dmitrymomot/raptor/core/negotiator: Accept header parsing and media type selection
//   - github.com/dmitrymomot/raptor/core/server: net/http and fasthttp adapters with graceful shutdown
//   - github.com/dmitrymomot/raptor/core/health: liveness and readiness probes
//   - github.com/dmitrymomot/raptor/core/config: environment configuration loading
//   - github.com/dmitrymomot/raptor/core/logger: slog construction and attribute helpers
//
// Middleware:
//
//   - github.com/dmitrymomot/raptor/middleware: request ID, client IP, logging, metrics, rate limiting, CORS, security headers
//
// Application:
//
//   - github.com/dmitrymomot/raptor/app/simple: configuration, kernel, adapter and metrics endpoint wired together
//   - github.com/dmitrymomot/raptor/cmd/raptor: runnable demo service
//
// # Quick Start
//
//	k := kernel.New(kernel.WithLogger(log))
//	k.Add(middleware.RequestID(), middleware.LoggingWithLogger(log))
//	k.Add(func(ctx *handler.Context, next handler.Next) (any, error) {
//		return map[string]string{"hello": "world"}, nil
//	})
//	http.ListenAndServe(":8080", k)
//
// A middleware returns a body, an error, or calls next. Bodies are classified
// as a finished response, an error, a string or a structured object and
// processed accordingly. Strings containing markup become text/html, other
// strings text/plain, objects JSON. Errors are rendered as JSON, HTML or
// plain text according to the request's Accept header.
package raptor
