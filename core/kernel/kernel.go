package kernel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync/atomic"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/logger"
	"github.com/dmitrymomot/raptor/core/response"
	"github.com/dmitrymomot/raptor/core/server"
)

// Kernel runs the middleware chain for every request and turns its outcome
// into a response. Registration is setup-time only: the first request seals
// the kernel and later registration panics with ErrSealed.
type Kernel struct {
	middleware   []handler.Middleware
	errorHandler handler.ErrorHandler
	manager      response.Manager
	strict       bool
	logger       *slog.Logger
	sealed       atomic.Bool
}

// New creates a kernel with the default response manager and a no-op logger.
func New(opts ...Option) *Kernel {
	k := &Kernel{
		logger: logger.Discard(),
	}

	for _, opt := range opts {
		opt(k)
	}

	if k.manager == nil {
		k.manager = response.NewManager(response.WithStrictContentNegotiation(k.strict))
	}

	return k
}

// Add appends middleware to the chain. Registration order is execution order.
func (k *Kernel) Add(mw ...handler.Middleware) *Kernel {
	k.mustBeOpen("Add")
	k.middleware = append(k.middleware, mw...)
	return k
}

// Use is an alias for Add.
func (k *Kernel) Use(mw ...handler.Middleware) *Kernel {
	return k.Add(mw...)
}

// Catch registers the custom error handler, replacing any previous one.
func (k *Kernel) Catch(h handler.ErrorHandler) *Kernel {
	k.mustBeOpen("Catch")
	k.errorHandler = h
	return k
}

// SetResponseManager replaces the response manager. Nil is ignored.
func (k *Kernel) SetResponseManager(m response.Manager) *Kernel {
	k.mustBeOpen("SetResponseManager")
	if m != nil {
		k.manager = m
	}
	return k
}

// SetProcessor replaces the processor for a body type on the current manager.
func (k *Kernel) SetProcessor(t response.BodyType, p response.Processor) *Kernel {
	k.mustBeOpen("SetProcessor")
	k.manager.SetProcessor(t, p)
	return k
}

// Sealed reports whether the kernel has started serving.
func (k *Kernel) Sealed() bool {
	return k.sealed.Load()
}

// Respond runs the chain for r and returns the resulting response.
// It never panics and always returns a non-nil response.
func (k *Kernel) Respond(r *http.Request) *handler.Response {
	k.sealed.Store(true)
	if r == nil {
		return fallbackResponse()
	}

	ctx := handler.NewContext(r.Clone(r.Context()))
	k.run(ctx, 0)

	if resp := ctx.Response(); resp != nil {
		return resp
	}
	return fallbackResponse()
}

// ServeHTTP implements http.Handler.
func (k *Kernel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := k.Respond(r).Write(w); err != nil {
		k.logger.DebugContext(r.Context(), "failed to write response",
			logger.Component("kernel"),
			logger.Error(err),
		)
	}
}

// Serve seals the kernel and hands it to adapter until ctx is cancelled.
func (k *Kernel) Serve(ctx context.Context, adapter server.Adapter) error {
	k.sealed.Store(true)
	return adapter.Serve(ctx, k)
}

// frameState tracks one middleware invocation.
type frameState uint8

const (
	framePending   frameState = iota // next not called yet
	frameDelegated                   // next called; the rest of the chain owns the outcome
	frameResolved                    // middleware returned
)

// run executes the middleware at index. Each frame resolves its own failures,
// so nothing propagates to the caller.
func (k *Kernel) run(ctx *handler.Context, index int) {
	if index >= len(k.middleware) {
		return
	}
	mw := k.middleware[index]
	if mw == nil {
		return
	}

	state := framePending
	next := func() *handler.Response {
		if state != framePending {
			return ctx.Response()
		}
		state = frameDelegated
		k.run(ctx, index+1)
		return ctx.Response()
	}

	body, err := k.invoke(ctx, func() (any, error) { return mw(ctx, next) })
	delegated := state == frameDelegated
	state = frameResolved

	if err != nil {
		k.fail(ctx, err)
		return
	}
	if delegated || response.IsEmpty(body) {
		return
	}

	resp, err := k.process(ctx, body)
	if err != nil {
		k.fail(ctx, err)
		return
	}
	ctx.SetResponse(resp)
}

// process runs the manager on body, converting a processor panic into a PanicError.
func (k *Kernel) process(ctx *handler.Context, body any) (*handler.Response, error) {
	var resp *handler.Response
	_, err := k.invoke(ctx, func() (any, error) {
		var err error
		resp, err = k.manager.Process(ctx, body)
		return nil, err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// invoke calls fn, converting a panic into a PanicError.
func (k *Kernel) invoke(ctx *handler.Context, fn func() (any, error)) (body any, err error) {
	defer func() {
		if p := recover(); p != nil {
			pe := &panicError{value: p, stack: debug.Stack()}
			k.logger.ErrorContext(ctx, "recovered from panic",
				logger.Component("kernel"),
				logger.Method(ctx.Request().Method),
				logger.Path(ctx.Request().URL.Path),
				logger.Panic(p),
				logger.Stack(pe.stack),
			)
			body, err = nil, pe
		}
	}()
	return fn()
}

func (k *Kernel) fail(ctx *handler.Context, err error) {
	ctx.SetError(err)
	k.handleError(ctx)
}

// handleError gives the custom handler first refusal, then falls back to
// rendering the captured error.
func (k *Kernel) handleError(ctx *handler.Context) {
	if k.errorHandler != nil {
		if resp, ok := k.custom(ctx); ok {
			ctx.SetResponse(resp)
			return
		}
	}
	ctx.SetResponse(k.render(ctx))
}

func (k *Kernel) custom(ctx *handler.Context) (*handler.Response, bool) {
	captured := ctx.Error()

	body, err := k.invoke(ctx, func() (any, error) { return k.errorHandler(ctx) })
	if err != nil {
		k.logger.WarnContext(ctx, "error handler failed",
			logger.Component("kernel"),
			logger.Error(err),
			slog.Any("captured", captured),
		)
		return nil, false
	}
	if response.IsEmpty(body) {
		return nil, false
	}

	resp, err := k.process(ctx, body)
	if err != nil {
		k.logger.WarnContext(ctx, "error handler result could not be processed",
			logger.Component("kernel"),
			logger.BodyType(response.Classify(body).String()),
			logger.Error(err),
		)
		return nil, false
	}
	return resp, true
}

// render turns ctx.Error() into a response through the manager. If that
// fails too, a plain-text 500 is built directly.
func (k *Kernel) render(ctx *handler.Context) *handler.Response {
	resp, err := k.process(ctx, ctx.Error())
	if err == nil {
		return resp
	}

	k.logger.ErrorContext(ctx, "failed to render error response",
		logger.Component("kernel"),
		logger.Error(err),
		slog.Any("captured", ctx.Error()),
	)
	return fallbackResponse()
}

func fallbackResponse() *handler.Response {
	resp := handler.NewResponse()
	resp.Status = http.StatusInternalServerError
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.Body = []byte(http.StatusText(http.StatusInternalServerError))
	return resp
}

func (k *Kernel) mustBeOpen(op string) {
	if k.sealed.Load() {
		panic(fmt.Errorf("%w: %s", ErrSealed, op))
	}
}
