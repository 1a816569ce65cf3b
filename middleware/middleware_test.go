package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/dmitrymomot/raptor/core/handler"
	"github.com/dmitrymomot/raptor/core/kernel"
	"github.com/dmitrymomot/raptor/core/logger"
)

func newKernel(mw ...handler.Middleware) *kernel.Kernel {
	return kernel.New(kernel.WithLogger(logger.Discard())).Add(mw...)
}

func serve(k *kernel.Kernel, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	k.ServeHTTP(w, req)
	return w
}

func get(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func text(body string) handler.Middleware {
	return func(*handler.Context, handler.Next) (any, error) {
		return body, nil
	}
}

func fails(err error) handler.Middleware {
	return func(*handler.Context, handler.Next) (any, error) {
		return nil, err
	}
}
