// Package handler defines the per-request values shared by every stage of the
// request pipeline: the Context, the platform-neutral Response, and the
// Middleware, Next and ErrorHandler function types.
//
// # Context
//
// A Context is created for every inbound request and discarded once the
// response has been produced. It bundles:
//
//   - the inbound request (a clone owned by the pipeline)
//   - the in-progress response, which starts as an empty 200 response
//   - the error captured when a middleware fails
//
// Context implements context.Context by delegating to the request context, so
// it can be passed directly to database drivers, HTTP clients and similar APIs:
//
//	func loadUser(ctx *handler.Context, next handler.Next) (any, error) {
//		user, err := repo.GetUser(ctx, ctx.Request().URL.Query().Get("id"))
//		if err != nil {
//			return nil, err
//		}
//		return user, nil
//	}
//
// # Middleware
//
// Middleware receives the context and a one-shot continuation. Returning a
// value without calling next produces the response; calling next hands control
// to the rest of the chain and the middleware's own return value is discarded:
//
//	func auth(ctx *handler.Context, next handler.Next) (any, error) {
//		if ctx.Request().Header.Get("Authorization") == "" {
//			return nil, response.ErrUnauthorized
//		}
//		next()
//		return nil, nil
//	}
//
// Calling next more than once is a no-op that returns the same response.
//
// # Response
//
// A *Response returned from a middleware is used as is. It may be a value
// prebuilt once and returned for every request: middleware that adjusts the
// final response clones it before writing to it.
package handler
