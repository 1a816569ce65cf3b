package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/raptor/core/handler"
)

// Adapter names accepted by NewAdapter.
const (
	AdapterHTTP     = "http"
	AdapterFastHTTP = "fasthttp"
)

// ErrUnknownAdapter is returned by NewAdapter for an unsupported adapter name.
var ErrUnknownAdapter = errors.New("unknown server adapter")

// Handler turns a platform-neutral request into a finished response.
// Implementations must never panic and must always return a response.
type Handler interface {
	Respond(r *http.Request) *handler.Response
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(r *http.Request) *handler.Response

// Respond calls f(r).
func (f HandlerFunc) Respond(r *http.Request) *handler.Response {
	return f(r)
}

// Adapter binds a Handler to a listening socket until ctx is cancelled,
// then shuts down gracefully. A cancelled context is not an error.
type Adapter interface {
	Serve(ctx context.Context, h Handler) error
}

// NewAdapter selects the adapter named by cfg.Adapter. An empty name means net/http.
func NewAdapter(cfg Config, opts ...Option) (Adapter, error) {
	switch cfg.Adapter {
	case "", AdapterHTTP:
		return NewFromConfig(cfg, opts...)
	case AdapterFastHTTP:
		return NewFastHTTPFromConfig(cfg, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAdapter, cfg.Adapter)
}

// HTTPHandler exposes h as an http.Handler.
func HTTPHandler(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := h.Respond(r)
		if resp == nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		// The client may have gone away; nothing left to report to.
		_ = resp.Write(w)
	})
}
