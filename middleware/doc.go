// Package middleware provides kernel middleware for common cross-cutting
// concerns: request IDs, client IP extraction, request logging, Prometheus
// metrics, rate limiting, CORS and security headers.
//
// Every middleware has the kernel signature and follows the same pattern:
//   - a default constructor and a WithConfig constructor
//   - an optional Skip function to bypass the middleware per request
//   - context helpers for values it stores
//
// Header-setting middleware writes headers to the in-progress response before
// calling next, so they survive into bodies rendered by the response manager,
// and fills in missing headers on the final response after next returns,
// which covers finished responses returned by downstream middleware. That
// response is cloned first, so a prebuilt response shared between requests
// is never modified.
//
// # Usage
//
//	k := kernel.New(kernel.WithLogger(log))
//	k.Add(
//		middleware.RequestID(),
//		middleware.ClientIP(),
//		middleware.LoggingWithLogger(log),
//		middleware.Metrics(),
//		middleware.RateLimit(rate.Limit(50), 100),
//		middleware.CORS(),
//		middleware.SecurityHeaders(),
//	)
//	k.Add(func(ctx *handler.Context, next handler.Next) (any, error) {
//		id, _ := middleware.GetRequestID(ctx)
//		return map[string]string{"request_id": id}, nil
//	})
//
// Logging and Metrics observe the final response, including responses
// rendered from errors, so they should be registered early.
//
// # Rate limiting
//
// RateLimit keeps one token bucket per key, by default the client IP.
// Rejected requests produce response.ErrTooManyRequests with a Retry-After
// header; with SetHeaders the X-RateLimit-Limit and X-RateLimit-Remaining
// headers are added to every response.
//
// # CORS
//
// Preflight requests are answered directly with 204 No Content and never
// reach later middleware. Disallowed preflights produce 403 Forbidden.
package middleware
