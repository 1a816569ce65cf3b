package kernel

import (
	"log/slog"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/response"
)

// Option configures a Kernel during creation.
type Option func(*Kernel)

// WithLogger sets the logger for panics and error handler failures.
func WithLogger(logger *slog.Logger) Option {
	return func(k *Kernel) {
		if logger != nil {
			k.logger = logger
		}
	}
}

// WithStrictContentNegotiation enables 406 responses for representations the
// client does not accept. Ignored when WithResponseManager is also given.
func WithStrictContentNegotiation(strict bool) Option {
	return func(k *Kernel) {
		k.strict = strict
	}
}

// WithResponseManager replaces the default response manager.
func WithResponseManager(m response.Manager) Option {
	return func(k *Kernel) {
		if m != nil {
			k.manager = m
		}
	}
}

// WithErrorHandler registers a custom error handler.
func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(k *Kernel) {
		k.errorHandler = h
	}
}

// WithMiddleware appends middleware in order.
func WithMiddleware(mw ...handler.Middleware) Option {
	return func(k *Kernel) {
		k.middleware = append(k.middleware, mw...)
	}
}
