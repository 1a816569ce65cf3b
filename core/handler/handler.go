package handler

// Next runs the remaining middleware chain and returns the context response
// once it has completed. Only the first call has an effect.
type Next func() *Response

// Middleware is a pipeline stage. A non-nil error return, or a panic, is
// captured on the context and rendered as an error response.
type Middleware func(ctx *Context, next Next) (any, error)

// ErrorHandler renders a captured error. It receives the context with
// Context.Error set and may return any value a middleware could return.
type ErrorHandler func(ctx *Context) (any, error)
