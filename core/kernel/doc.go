// Package kernel runs an ordered chain of middleware for each request and
// converts whatever the chain produces into a response.
//
// # Middleware
//
// A middleware receives the request context and a one-shot continuation:
//
//	k := kernel.New(kernel.WithLogger(log))
//
//	k.Use(func(ctx *handler.Context, next handler.Next) (any, error) {
//		ctx.Response().Header.Set("X-Powered-By", "raptor")
//		next()
//		return nil, nil
//	})
//
//	k.Use(func(ctx *handler.Context, next handler.Next) (any, error) {
//		return map[string]string{"hello": "world"}, nil
//	})
//
// Delegation is a strict hand-off. Once a middleware calls next, the rest of
// the chain owns the outcome and the middleware's own return value is
// discarded. A middleware that returns without calling next ends the chain;
// its non-empty return value is processed by the response manager. Calling
// next more than once, or after returning, does nothing and yields the
// current response.
//
// # Errors
//
// A returned error or a panic is captured on the context and resolved in the
// frame where it happened. Panics are wrapped in a PanicError. A handler
// registered with Catch gets first refusal:
//
//	k.Catch(func(ctx *handler.Context) (any, error) {
//		return response.JSONWithStatus(map[string]string{"error": ctx.Error().Error()}, 500)
//	})
//
// If the handler fails, panics, returns nothing or returns something that
// cannot be processed, the captured error is rendered by the error processor.
// Respond never panics and always returns a response.
//
// # Serving
//
//	http.ListenAndServe(":8080", k)           // net/http
//	k.Serve(ctx, server.NewFastHTTP(":8080")) // any server.Adapter
//
// Registration is setup-time only. The first Respond, ServeHTTP or Serve
// seals the kernel and later registration panics with ErrSealed.
package kernel
